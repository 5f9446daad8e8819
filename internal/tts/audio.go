package tts

// SampleRate is the PCM sample rate used throughout the pipeline.
const SampleRate = 24000

// Silence returns the given duration of silence as PCM samples.
func Silence(seconds float64, sampleRate int) []int16 {
	n := int(seconds * float64(sampleRate))
	if n < 0 {
		n = 0
	}
	return make([]int16, n)
}

// AdjustSpeed resamples audio to play at the given rate using linear
// interpolation. rate > 1 speeds playback up, rate < 1 slows it down.
// Rates at or below zero return the input unchanged.
func AdjustSpeed(samples []int16, rate float64) []int16 {
	if rate <= 0 || rate == 1.0 || len(samples) == 0 {
		return samples
	}

	outLen := int(float64(len(samples)) / rate)
	if outLen < 1 {
		outLen = 1
	}

	out := make([]int16, outLen)
	for i := range out {
		pos := float64(i) * rate
		idx := int(pos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := pos - float64(idx)
		a := float64(samples[idx])
		b := float64(samples[idx+1])
		out[i] = int16(a + (b-a)*frac)
	}
	return out
}

// CombineSegments concatenates audio segments with a fixed gap of silence
// between consecutive segments. No gap precedes the first segment or
// follows the last.
func CombineSegments(segments [][]int16, gapSeconds float64, sampleRate int) []int16 {
	if len(segments) == 0 {
		return nil
	}

	gap := int(gapSeconds * float64(sampleRate))
	if gap < 0 {
		gap = 0
	}

	total := gap * (len(segments) - 1)
	for _, seg := range segments {
		total += len(seg)
	}

	out := make([]int16, 0, total)
	for i, seg := range segments {
		if i > 0 {
			out = append(out, make([]int16, gap)...)
		}
		out = append(out, seg...)
	}
	return out
}

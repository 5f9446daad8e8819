package tts

import "testing"

func TestSilence(t *testing.T) {
	got := Silence(0.3, SampleRate)
	if len(got) != 7200 {
		t.Errorf("0.3s at 24kHz = %d samples, want 7200", len(got))
	}
	for i, s := range got {
		if s != 0 {
			t.Fatalf("sample %d = %d, want 0", i, s)
		}
	}

	if n := len(Silence(0, SampleRate)); n != 0 {
		t.Errorf("zero duration = %d samples", n)
	}
	if n := len(Silence(-1, SampleRate)); n != 0 {
		t.Errorf("negative duration = %d samples", n)
	}
}

func TestAdjustSpeedIdentity(t *testing.T) {
	in := []int16{1, 2, 3, 4}
	if got := AdjustSpeed(in, 1.0); len(got) != len(in) {
		t.Errorf("rate 1.0 changed length: %d", len(got))
	}
	if got := AdjustSpeed(in, 0); len(got) != len(in) {
		t.Errorf("rate 0 changed length: %d", len(got))
	}
	if got := AdjustSpeed(nil, 2.0); got != nil {
		t.Errorf("empty input produced %v", got)
	}
}

func TestAdjustSpeedResamples(t *testing.T) {
	in := make([]int16, 24000)
	for i := range in {
		in[i] = int16(i % 100)
	}

	fast := AdjustSpeed(in, 2.0)
	if len(fast) != 12000 {
		t.Errorf("rate 2.0 length = %d, want 12000", len(fast))
	}

	slow := AdjustSpeed(in, 0.5)
	if len(slow) != 48000 {
		t.Errorf("rate 0.5 length = %d, want 48000", len(slow))
	}
}

func TestAdjustSpeedInterpolates(t *testing.T) {
	// Slowing a ramp to half speed should insert midpoints.
	in := []int16{0, 100, 200, 300}
	out := AdjustSpeed(in, 0.5)

	if out[0] != 0 {
		t.Errorf("out[0] = %d, want 0", out[0])
	}
	if out[1] != 50 {
		t.Errorf("out[1] = %d, want 50 (midpoint of 0 and 100)", out[1])
	}
	if out[2] != 100 {
		t.Errorf("out[2] = %d, want 100", out[2])
	}
}

func TestCombineSegments(t *testing.T) {
	segments := [][]int16{
		{1, 1, 1},
		{2, 2},
		{3},
	}

	got := CombineSegments(segments, 0.5, 8) // gap of 4 samples

	wantLen := 3 + 2 + 1 + 4*2
	if len(got) != wantLen {
		t.Fatalf("combined length = %d, want %d", len(got), wantLen)
	}

	// Layout: seg0, gap, seg1, gap, seg2.
	for i := 3; i < 7; i++ {
		if got[i] != 0 {
			t.Errorf("gap sample %d = %d, want 0", i, got[i])
		}
	}
	if got[7] != 2 || got[8] != 2 {
		t.Errorf("second segment misplaced: %v", got)
	}
	if got[len(got)-1] != 3 {
		t.Errorf("last sample = %d, want 3", got[len(got)-1])
	}
}

func TestCombineSegmentsEdgeCases(t *testing.T) {
	if got := CombineSegments(nil, 1.0, SampleRate); got != nil {
		t.Errorf("no segments produced %d samples", len(got))
	}

	single := CombineSegments([][]int16{{5, 6}}, 1.0, SampleRate)
	if len(single) != 2 {
		t.Errorf("single segment gained a gap: %d samples", len(single))
	}
}

package tts

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// WAV container constants for 16-bit mono PCM.
const (
	wavFormatPCM   = 1
	wavNumChannels = 1
	wavBitsPerSamp = 16

	// wavMinFmtSize is the smallest valid PCM fmt chunk.
	wavMinFmtSize = 16
	// wavMaxChunkSize caps how much a single chunk may claim. Synthesis
	// output arrives one short turn at a time; anything larger is a
	// corrupt or hostile stream, not audio.
	wavMaxChunkSize = 64 << 20
)

// WriteWAV writes samples to path as a 16-bit mono PCM WAV file.
func WriteWAV(path string, samples []int16, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := EncodeWAV(f, samples, sampleRate); err != nil {
		return fmt.Errorf("write wav file %s: %w", path, err)
	}
	return f.Close()
}

// EncodeWAV writes samples to w as a 16-bit mono PCM WAV stream.
func EncodeWAV(w io.Writer, samples []int16, sampleRate int) error {
	dataSize := uint32(len(samples) * 2)
	byteRate := uint32(sampleRate * wavNumChannels * wavBitsPerSamp / 8)
	blockAlign := uint16(wavNumChannels * wavBitsPerSamp / 8)

	// RIFF header
	if _, err := w.Write([]byte("RIFF")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(36+dataSize)); err != nil {
		return err
	}
	if _, err := w.Write([]byte("WAVE")); err != nil {
		return err
	}

	// fmt chunk
	if _, err := w.Write([]byte("fmt ")); err != nil {
		return err
	}
	for _, v := range []any{
		uint32(16), // chunk size
		uint16(wavFormatPCM),
		uint16(wavNumChannels),
		uint32(sampleRate),
		byteRate,
		blockAlign,
		uint16(wavBitsPerSamp),
	} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	// data chunk
	if _, err := w.Write([]byte("data")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, dataSize); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, samples)
}

// DecodeWAV reads a 16-bit PCM WAV stream and returns its samples and
// sample rate. Multi-channel input is mixed down by taking the first
// channel. Chunks other than fmt and data are skipped.
func DecodeWAV(r io.Reader) ([]int16, int, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, 0, fmt.Errorf("read riff header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("not a wav stream")
	}

	var (
		sampleRate  int
		numChannels int
		bitsPerSamp int
		haveFmt     bool
	)

	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(r, chunkHeader[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, 0, fmt.Errorf("wav stream has no data chunk")
			}
			return nil, 0, fmt.Errorf("read chunk header: %w", err)
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		if chunkSize > wavMaxChunkSize {
			return nil, 0, fmt.Errorf("%s chunk claims %d bytes", chunkID, chunkSize)
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < wavMinFmtSize {
				return nil, 0, fmt.Errorf("fmt chunk too short: %d bytes", chunkSize)
			}
			fmtData := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, fmtData); err != nil {
				return nil, 0, fmt.Errorf("read fmt chunk: %w", err)
			}
			if format := binary.LittleEndian.Uint16(fmtData[0:2]); format != wavFormatPCM {
				return nil, 0, fmt.Errorf("unsupported wav format %d (want PCM)", format)
			}
			numChannels = int(binary.LittleEndian.Uint16(fmtData[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(fmtData[4:8]))
			bitsPerSamp = int(binary.LittleEndian.Uint16(fmtData[14:16]))
			if bitsPerSamp != 16 {
				return nil, 0, fmt.Errorf("unsupported bit depth %d (want 16)", bitsPerSamp)
			}
			if numChannels < 1 {
				return nil, 0, fmt.Errorf("invalid channel count %d", numChannels)
			}
			haveFmt = true

		case "data":
			if !haveFmt {
				return nil, 0, fmt.Errorf("wav data chunk precedes fmt chunk")
			}
			raw := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, raw); err != nil {
				return nil, 0, fmt.Errorf("read data chunk: %w", err)
			}
			frameSize := numChannels * 2
			samples := make([]int16, 0, len(raw)/frameSize)
			for off := 0; off+frameSize <= len(raw); off += frameSize {
				samples = append(samples, int16(binary.LittleEndian.Uint16(raw[off:off+2])))
			}
			return samples, sampleRate, nil

		default:
			if _, err := io.CopyN(io.Discard, r, int64(chunkSize)); err != nil {
				return nil, 0, fmt.Errorf("skip %s chunk: %w", chunkID, err)
			}
		}
	}
}

// ReadWAV reads a 16-bit PCM WAV file from path.
func ReadWAV(path string) ([]int16, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open wav file: %w", err)
	}
	defer func() { _ = f.Close() }()

	samples, rate, err := DecodeWAV(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decode wav file %s: %w", path, err)
	}
	return samples, rate, nil
}

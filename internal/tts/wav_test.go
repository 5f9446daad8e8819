package tts

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestWAVRoundTrip(t *testing.T) {
	samples := []int16{0, 100, -100, 32767, -32768, 42}

	var buf bytes.Buffer
	if err := EncodeWAV(&buf, samples, SampleRate); err != nil {
		t.Fatalf("EncodeWAV() error: %v", err)
	}

	got, rate, err := DecodeWAV(&buf)
	if err != nil {
		t.Fatalf("DecodeWAV() error: %v", err)
	}
	if rate != SampleRate {
		t.Errorf("rate = %d, want %d", rate, SampleRate)
	}
	if len(got) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], samples[i])
		}
	}
}

func TestWriteAndReadWAVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	samples := Silence(0.1, SampleRate)
	samples[0] = 7

	if err := WriteWAV(path, samples, SampleRate); err != nil {
		t.Fatalf("WriteWAV() error: %v", err)
	}

	got, rate, err := ReadWAV(path)
	if err != nil {
		t.Fatalf("ReadWAV() error: %v", err)
	}
	if rate != SampleRate || len(got) != len(samples) || got[0] != 7 {
		t.Errorf("round trip mismatch: rate=%d len=%d first=%d", rate, len(got), got[0])
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	if _, _, err := DecodeWAV(strings.NewReader("definitely not audio data")); err == nil {
		t.Error("expected error for non-WAV input")
	}
}

func TestDecodeWAVRejectsShortFmtChunk(t *testing.T) {
	samples := []int16{1, 2, 3}
	var buf bytes.Buffer
	if err := EncodeWAV(&buf, samples, SampleRate); err != nil {
		t.Fatalf("EncodeWAV() error: %v", err)
	}

	// Shrink the fmt chunk size at offset 16 below the 16 bytes a PCM
	// header needs.
	raw := buf.Bytes()
	raw[16] = 14

	_, _, err := DecodeWAV(bytes.NewReader(raw))
	if err == nil {
		t.Fatal("expected error for truncated fmt chunk")
	}
	if !strings.Contains(err.Error(), "fmt chunk too short") {
		t.Errorf("error = %v", err)
	}
}

func TestDecodeWAVRejectsOversizedChunkClaim(t *testing.T) {
	samples := []int16{1, 2, 3}
	var buf bytes.Buffer
	if err := EncodeWAV(&buf, samples, SampleRate); err != nil {
		t.Fatalf("EncodeWAV() error: %v", err)
	}

	// Rewrite the data chunk size at offset 40 to claim ~4GB.
	raw := buf.Bytes()
	raw[40], raw[41], raw[42], raw[43] = 0xff, 0xff, 0xff, 0xff

	if _, _, err := DecodeWAV(bytes.NewReader(raw)); err == nil {
		t.Error("expected error for oversized chunk claim")
	}
}

func TestDecodeWAVSkipsUnknownChunks(t *testing.T) {
	samples := []int16{1, 2, 3}
	var buf bytes.Buffer
	if err := EncodeWAV(&buf, samples, SampleRate); err != nil {
		t.Fatalf("EncodeWAV() error: %v", err)
	}

	// Splice a LIST chunk between fmt and data. fmt ends at offset 36.
	raw := buf.Bytes()
	extra := append([]byte("LIST"), 4, 0, 0, 0, 'I', 'N', 'F', 'O')
	spliced := append(append(append([]byte{}, raw[:36]...), extra...), raw[36:]...)

	got, _, err := DecodeWAV(bytes.NewReader(spliced))
	if err != nil {
		t.Fatalf("DecodeWAV() error: %v", err)
	}
	if len(got) != 3 || got[2] != 3 {
		t.Errorf("decoded %v", got)
	}
}

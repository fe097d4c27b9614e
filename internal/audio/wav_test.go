package audio

import (
	"encoding/binary"
	"testing"
)

func TestDecodeWAV_RejectsGarbage(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("short"),
		[]byte("NOTARIFFXXXWAVE stream with enough bytes to pass length"),
	}
	for i, data := range cases {
		if _, err := DecodeWAV(data); err == nil {
			t.Errorf("case %d: expected error for invalid stream", i)
		}
	}
}

func TestDecodeWAV_MissingDataChunk(t *testing.T) {
	// Valid RIFF/WAVE with a fmt chunk but no data chunk.
	samples := []int16{}
	data := EncodeWAV(samples, SampleRate, 1)
	truncated := data[:36] // cut before "data"
	binary.LittleEndian.PutUint32(truncated[4:8], uint32(len(truncated)-8))

	if _, err := DecodeWAV(truncated); err == nil {
		t.Error("expected error for missing data chunk")
	}
}

func TestDecodeWAV_SkipsUnknownChunks(t *testing.T) {
	// Insert a LIST chunk between fmt and data; the chunk walker must
	// skip it and still find both known chunks.
	samples := []int16{1, -1, 32767, -32768}
	encoded := EncodeWAV(samples, 44100, 1)

	var data []byte
	data = append(data, encoded[:36]...) // RIFF header + fmt chunk
	list := []byte("LIST")
	list = binary.LittleEndian.AppendUint32(list, 4)
	list = append(list, 'I', 'N', 'F', 'O')
	data = append(data, list...)
	data = append(data, encoded[36:]...) // data chunk
	binary.LittleEndian.PutUint32(data[4:8], uint32(len(data)-8))

	clip, err := DecodeWAV(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if clip.SampleRate != 44100 || clip.Channels != 1 {
		t.Errorf("unexpected format: %d channels at %d Hz", clip.Channels, clip.SampleRate)
	}
	if len(clip.Samples) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(clip.Samples))
	}
	for i := range samples {
		if clip.Samples[i] != samples[i] {
			t.Errorf("sample %d: expected %d, got %d", i, samples[i], clip.Samples[i])
		}
	}
}

func TestDecodeWAV_RejectsNonPCM(t *testing.T) {
	data := EncodeWAV([]int16{0, 0}, SampleRate, 1)
	binary.LittleEndian.PutUint16(data[20:22], 3) // IEEE float
	if _, err := DecodeWAV(data); err == nil {
		t.Error("expected error for non-PCM format")
	}
}

func TestClip_StereoUpmix(t *testing.T) {
	mono := &Clip{Samples: []int16{5, -5}, SampleRate: SampleRate, Channels: 1}
	out := mono.Stereo()
	want := []int16{5, 5, -5, -5}
	if len(out) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(out))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("sample %d: expected %d, got %d", i, want[i], out[i])
		}
	}

	stereo := &Clip{Samples: []int16{1, 2}, SampleRate: SampleRate, Channels: 2}
	if got := stereo.Stereo(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("stereo clip should pass through unchanged, got %v", got)
	}
}

func TestEncodeWAV_HeaderFields(t *testing.T) {
	data := EncodeWAV([]int16{1, 2, 3, 4}, SampleRate, 2)

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatal("bad container magic")
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 2 {
		t.Errorf("expected 2 channels, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(data[34:36]); got != 16 {
		t.Errorf("expected 16 bits per sample, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != 8 {
		t.Errorf("expected data size 8, got %d", got)
	}
}

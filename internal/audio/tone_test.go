package audio

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/sonicbrief/api/internal/model"
)

func TestBinauralTone_Deterministic(t *testing.T) {
	for _, mood := range model.KnownMoods {
		a := BinauralTone(mood, 2)
		b := BinauralTone(mood, 2)

		if len(a) != len(b) {
			t.Fatalf("mood %s: lengths differ: %d vs %d", mood, len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("mood %s: sample %d differs: %d vs %d", mood, i, a[i], b[i])
			}
		}
	}
}

func TestBinauralTone_Length(t *testing.T) {
	tone := BinauralTone(model.MoodCalm, 3)
	want := 3 * SampleRate * 2 // stereo interleaved
	if len(tone) != want {
		t.Errorf("expected %d samples, got %d", want, len(tone))
	}
}

func TestBinauralTone_ZeroDuration(t *testing.T) {
	if tone := BinauralTone(model.MoodFocus, 0); len(tone) != 0 {
		t.Errorf("expected empty output for zero duration, got %d samples", len(tone))
	}
}

func TestBinauralTone_UnknownMoodDefaultsToFocus(t *testing.T) {
	known := BinauralTone(model.MoodFocus, 1)
	unknown := BinauralTone(model.Mood("transcendent"), 1)

	if len(known) != len(unknown) {
		t.Fatalf("lengths differ: %d vs %d", len(known), len(unknown))
	}
	for i := range known {
		if known[i] != unknown[i] {
			t.Fatalf("sample %d differs: unknown mood should use the focus offset", i)
		}
	}
}

func TestBeatOffset(t *testing.T) {
	tests := []struct {
		mood model.Mood
		want float64
	}{
		{model.MoodFocus, 40.0},
		{model.MoodEnergy, 15.0},
		{model.MoodCalm, 8.0},
		{model.Mood("whatever"), 40.0},
		{model.Mood(""), 40.0},
	}
	for _, tt := range tests {
		if got := BeatOffset(tt.mood); got != tt.want {
			t.Errorf("BeatOffset(%q) = %v, want %v", tt.mood, got, tt.want)
		}
	}
}

func TestBinauralTone_ChannelFrequenciesDiffer(t *testing.T) {
	tone := BinauralTone(model.MoodFocus, 1)

	var left, right []int16
	for i := 0; i < len(tone); i += 2 {
		left = append(left, tone[i])
		right = append(right, tone[i+1])
	}

	same := true
	for i := range left {
		if left[i] != right[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("left and right channels are identical; expected a frequency offset")
	}
}

// Sanity check that a generated tone survives a WAV round trip.
func TestBinauralTone_WAVRoundTrip(t *testing.T) {
	tone := BinauralTone(model.MoodCalm, 1)
	data := EncodeWAV(tone, SampleRate, 2)

	if !bytes.Equal(data[0:4], []byte("RIFF")) {
		t.Fatal("missing RIFF header")
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != SampleRate {
		t.Errorf("expected sample rate %d in header, got %d", SampleRate, got)
	}

	clip, err := DecodeWAV(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if clip.Channels != 2 || clip.SampleRate != SampleRate {
		t.Errorf("unexpected format: %d channels at %d Hz", clip.Channels, clip.SampleRate)
	}
	if len(clip.Samples) != len(tone) {
		t.Fatalf("expected %d samples, got %d", len(tone), len(clip.Samples))
	}
	for i := range tone {
		if clip.Samples[i] != tone[i] {
			t.Fatalf("sample %d changed in round trip", i)
		}
	}
}

package audio

import (
	"math"
	"testing"
)

func TestMix_AllEmpty(t *testing.T) {
	if out := Mix(nil, nil, nil); len(out) != 0 {
		t.Errorf("expected empty mix, got %d samples", len(out))
	}
	if out := Mix([]int16{}, [][]int16{{}}, []int16{}); len(out) != 0 {
		t.Errorf("expected empty mix for zero-length inputs, got %d samples", len(out))
	}
}

func TestMix_VoiceOnly(t *testing.T) {
	voice := []int16{100, -200, 300}
	out := Mix(voice, nil, nil)
	if len(out) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(out))
	}
	for i := range voice {
		if out[i] != voice[i] {
			t.Errorf("sample %d: expected %d (voice weight 1.0), got %d", i, voice[i], out[i])
		}
	}
}

func TestMix_Weights(t *testing.T) {
	voice := []int16{1000}
	loop := []int16{1000}
	tone := []int16{1000}

	out := Mix(voice, [][]int16{loop}, tone)
	// 1000*1.0 + 1000*0.4 + 1000*0.3 = 1700
	if out[0] != 1700 {
		t.Errorf("expected weighted sum 1700, got %d", out[0])
	}
}

func TestMix_LoopOrderCommutative(t *testing.T) {
	voice := []int16{500, -500, 1200, 0, 77}
	a := []int16{300, -100}
	b := []int16{-250, 900, 40}
	tone := []int16{10, 20, 30, 40, 50}

	ab := Mix(voice, [][]int16{a, b}, tone)
	ba := Mix(voice, [][]int16{b, a}, tone)

	if len(ab) != len(ba) {
		t.Fatalf("lengths differ: %d vs %d", len(ab), len(ba))
	}
	for i := range ab {
		if ab[i] != ba[i] {
			t.Fatalf("sample %d differs by loop order: %d vs %d", i, ab[i], ba[i])
		}
	}
}

func TestMix_ClipsToInt16Range(t *testing.T) {
	// Weighted sum far above the positive bound and far below the
	// negative bound; output must clamp exactly, never wrap.
	voice := []int16{math.MaxInt16, math.MinInt16}
	loop := []int16{math.MaxInt16, math.MinInt16}
	tone := []int16{math.MaxInt16, math.MinInt16}

	out := Mix(voice, [][]int16{loop}, tone)
	if out[0] != math.MaxInt16 {
		t.Errorf("expected clamp to %d, got %d", math.MaxInt16, out[0])
	}
	if out[1] != math.MinInt16 {
		t.Errorf("expected clamp to %d, got %d", math.MinInt16, out[1])
	}
}

func TestMix_LoopWrapsAround(t *testing.T) {
	voice := make([]int16, 6) // silent voice defines nothing; tone defines length
	tone := []int16{0, 0, 0, 0, 0, 0}
	loop := []int16{10, 20}

	out := Mix(voice, [][]int16{loop}, tone)
	if len(out) != 6 {
		t.Fatalf("expected 6 samples, got %d", len(out))
	}
	want := []int16{4, 8, 4, 8, 4, 8} // 0.4 * loop, wrapped
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("sample %d: expected %d, got %d", i, want[i], out[i])
		}
	}
}

func TestMix_LongestInputDefinesLength(t *testing.T) {
	voice := []int16{1, 2}
	tone := []int16{1, 2, 3, 4}
	loop := []int16{1, 2, 3, 4, 5, 6, 7}

	out := Mix(voice, [][]int16{loop}, tone)
	if len(out) != 7 {
		t.Errorf("expected longest input (7) to define mix length, got %d", len(out))
	}
}

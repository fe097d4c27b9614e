package audio

import "math"

// Mix weights applied to each layer. Deliberately fixed: no loudness
// normalization, ducking or crossfade.
const (
	voiceWeight = 1.0
	loopWeight  = 0.4
	toneWeight  = 0.3
)

// Mix combines voice, zero or more ambient loops and the tone track into a
// single interleaved stream by weighted sample summation. The output length
// is the longest input's length; loops shorter than the mix wrap around.
// Sums outside the 16-bit signed range are hard-clipped, never wrapped.
// All-empty input yields an empty mix.
func Mix(voice []int16, loops [][]int16, tone []int16) []int16 {
	n := len(voice)
	if len(tone) > n {
		n = len(tone)
	}
	for _, loop := range loops {
		if len(loop) > n {
			n = len(loop)
		}
	}
	if n == 0 {
		return nil
	}

	out := make([]int16, n)
	for i := 0; i < n; i++ {
		var sum float64
		if i < len(voice) {
			sum += voiceWeight * float64(voice[i])
		}
		for _, loop := range loops {
			if len(loop) > 0 {
				sum += loopWeight * float64(loop[i%len(loop)])
			}
		}
		if i < len(tone) {
			sum += toneWeight * float64(tone[i])
		}
		out[i] = clip(sum)
	}
	return out
}

func clip(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

package audio

import (
	"math"

	"github.com/sonicbrief/api/internal/model"
)

const (
	toneBaseFreq  = 200.0 // Hz, left channel
	toneAmplitude = 0.10  // fraction of int16 full scale
)

// beatOffsets maps a mood to the frequency offset (Hz) between the right
// and left channels. Unknown moods use the focus offset.
var beatOffsets = map[model.Mood]float64{
	model.MoodFocus:  40.0, // beta
	model.MoodEnergy: 15.0, // high alpha
	model.MoodCalm:   8.0,  // alpha
}

// BeatOffset returns the binaural offset for a mood, defaulting to focus.
func BeatOffset(mood model.Mood) float64 {
	if off, ok := beatOffsets[mood]; ok {
		return off
	}
	return beatOffsets[model.MoodFocus]
}

// BinauralTone synthesizes an interleaved stereo sine pair of the given
// duration at SampleRate. Left channel runs at the base frequency, right at
// base plus the mood offset. Deterministic: identical inputs yield
// bit-identical output.
func BinauralTone(mood model.Mood, durationSec int) []int16 {
	if durationSec <= 0 {
		return nil
	}
	offset := BeatOffset(mood)
	n := durationSec * SampleRate
	amp := toneAmplitude * math.MaxInt16

	out := make([]int16, n*2)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		left := amp * math.Sin(2*math.Pi*toneBaseFreq*t)
		right := amp * math.Sin(2*math.Pi*(toneBaseFreq+offset)*t)
		out[i*2] = int16(left)
		out[i*2+1] = int16(right)
	}
	return out
}

package model

// Mood is the coarse emotional target of a brief. Free-text moods are
// accepted at creation time; unknown values fall back to focus behavior
// in the tone generator.
type Mood string

const (
	MoodFocus  Mood = "focus"
	MoodEnergy Mood = "energy"
	MoodCalm   Mood = "calm"
)

var KnownMoods = []Mood{MoodFocus, MoodEnergy, MoodCalm}

// BriefStatus is the lifecycle state of a brief.
type BriefStatus string

const (
	StatusQueued      BriefStatus = "queued"
	StatusSummarizing BriefStatus = "summarizing"
	StatusTTS         BriefStatus = "tts"
	StatusMusic       BriefStatus = "music" // reserved for the multi-segment flow
	StatusMixing      BriefStatus = "mixing"
	StatusUploading   BriefStatus = "uploading"
	StatusReady       BriefStatus = "ready"
	StatusError       BriefStatus = "error"
)

// StatusOrder is the observable progression of a single-brief pipeline run.
// A successful run writes exactly this sequence; a failing run ends on error.
var StatusOrder = []BriefStatus{
	StatusQueued, StatusSummarizing, StatusTTS,
	StatusMixing, StatusUploading, StatusReady,
}

// IsTerminal reports whether no further transitions occur from s.
func (s BriefStatus) IsTerminal() bool {
	return s == StatusReady || s == StatusError
}

// Segment types
type SegmentType string

const (
	SegmentIntroMusic  SegmentType = "intro_music"
	SegmentAffirmation SegmentType = "affirmation"
	SegmentContent     SegmentType = "content"
	SegmentOutro       SegmentType = "outro"
	SegmentAmbient     SegmentType = "ambient"
)

// Segment status
type SegmentStatus string

const (
	SegmentPending    SegmentStatus = "pending"
	SegmentGenerating SegmentStatus = "generating"
	SegmentReady      SegmentStatus = "ready"
	SegmentError      SegmentStatus = "error"
)

// Loop asset types
type LoopType string

const (
	LoopTypeAmbient LoopType = "ambient"
	LoopTypePad     LoopType = "pad"
	LoopTypeNature  LoopType = "nature"
)

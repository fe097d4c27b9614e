// Package worker drives a brief from queued to a terminal state. One task
// per brief; stages run strictly in sequence and every status change is
// written back to the store so polling observers see progress.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/oklog/ulid/v2"

	"github.com/sonicbrief/api/internal/audio"
	"github.com/sonicbrief/api/internal/client"
	"github.com/sonicbrief/api/internal/model"
	"github.com/sonicbrief/api/internal/service"
	"github.com/sonicbrief/api/internal/store"
	"github.com/sonicbrief/api/internal/websocket"
)

// Method tag written to every render record produced by this pipeline.
const renderMethod = "binaural-mix/v1"

// Voice synthesis input cap. Scripts beyond this are truncated, not
// rejected.
const maxSpeechChars = 4096

// ComposeWorker processes compose tasks.
type ComposeWorker struct {
	store   store.Store
	scripts service.ScriptGenerator
	voice   client.VoiceSynthesizer
	storage client.StorageClient
	hub     *websocket.Hub
}

// NewComposeWorker creates a new compose worker. hub may be nil.
func NewComposeWorker(st store.Store, scripts service.ScriptGenerator, voice client.VoiceSynthesizer, storage client.StorageClient, hub *websocket.Hub) *ComposeWorker {
	return &ComposeWorker{
		store:   st,
		scripts: scripts,
		voice:   voice,
		storage: storage,
		hub:     hub,
	}
}

// ProcessTask handles one compose task.
func (w *ComposeWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.ComposeTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}
	return w.Compose(ctx, payload.BriefID)
}

// Compose runs the full pipeline for one brief. Any stage error is caught
// here, written as status=error with a message, and ends the run; partial
// side effects (an uploaded file, a stored script) are not rolled back.
func (w *ComposeWorker) Compose(ctx context.Context, briefID string) error {
	brief, err := w.store.GetBrief(ctx, briefID)
	if err != nil {
		return fmt.Errorf("brief %s: %w", briefID, err)
	}
	if brief.Status.IsTerminal() {
		log.Printf("Brief %s already terminal (%s), skipping", briefID, brief.Status)
		return nil
	}

	// Without storage no render can ever be delivered; fail up front rather
	// than let the brief sit in a non-terminal state.
	if w.storage == nil {
		return w.failBrief(ctx, brief, fmt.Errorf("object storage not configured"))
	}

	log.Printf("Composing brief %s (mood=%s, duration=%ds)", briefID, brief.Mood, brief.DurationSec)
	now := time.Now()
	brief.StartedAt = &now

	// Script stage. Generation failure degrades to the fallback script
	// inside the generator, so this stage cannot fail the brief.
	if err := w.setStatus(ctx, brief, model.StatusSummarizing); err != nil {
		return err
	}
	brief.Script = w.scripts.Generate(ctx, brief.Mood, brief.Subject(), brief.DurationSec)
	w.assignScript(ctx, briefID, brief.Script)
	if err := w.setStatus(ctx, brief, model.StatusTTS); err != nil {
		return err
	}

	// Voice stage. No fallback voice exists: errors are fatal.
	speech, err := w.voice.Synthesize(ctx, truncateRunes(brief.Script, maxSpeechChars))
	if err != nil {
		return w.failBrief(ctx, brief, fmt.Errorf("voice synthesis failed: %w", err))
	}
	voiceClip, err := decodeSpeech(speech)
	if err != nil {
		return w.failBrief(ctx, brief, fmt.Errorf("voice synthesis failed: %w", err))
	}

	// Tone and mix stages.
	if err := w.setStatus(ctx, brief, model.StatusMixing); err != nil {
		return err
	}
	tone := audio.BinauralTone(brief.Mood, brief.DurationSec)
	loopBufs, loopKeys := w.fetchLoops(ctx, brief.Mood)
	mixed := audio.Mix(voiceClip.Stereo(), loopBufs, tone)

	// Upload stage.
	if err := w.setStatus(ctx, brief, model.StatusUploading); err != nil {
		return err
	}
	wavData := audio.EncodeWAV(mixed, audio.SampleRate, 2)
	key := fmt.Sprintf("briefs/%s/%s.wav", brief.OwnerID, brief.ID)
	url, err := w.storage.Upload(ctx, key, bytes.NewReader(wavData), "audio/wav")
	if err != nil {
		return w.failBrief(ctx, brief, fmt.Errorf("upload failed: %w", err))
	}

	render := &model.Render{
		ID:      ulid.Make().String(),
		BriefID: brief.ID,
		Method:  renderMethod,
		URL:     url,
		Diagnostics: model.RenderDiagnostics{
			LoopKeys:    loopKeys,
			DurationSec: brief.DurationSec,
			Mood:        brief.Mood,
		},
		CreatedAt: time.Now(),
	}
	if err := w.store.AppendRender(ctx, render); err != nil {
		return w.failBrief(ctx, brief, fmt.Errorf("failed to record render: %w", err))
	}

	// Completion: the only point at which the audio URL becomes set, in
	// the same write that flips the status to ready.
	brief.AudioURL = url
	completed := time.Now()
	brief.CompletedAt = &completed
	if err := w.setStatus(ctx, brief, model.StatusReady); err != nil {
		return err
	}
	w.markSegments(ctx, briefID, model.SegmentReady)
	w.hub.BroadcastComplete(brief.ID, url)

	log.Printf("Brief %s ready: %s", brief.ID, url)
	return nil
}

// setStatus advances the brief's status and persists the whole record.
func (w *ComposeWorker) setStatus(ctx context.Context, brief *model.Brief, status model.BriefStatus) error {
	brief.Status = status
	if err := w.store.UpdateBrief(ctx, brief); err != nil {
		return fmt.Errorf("brief %s: failed to write status %s: %w", brief.ID, status, err)
	}
	w.hub.BroadcastStatus(brief.ID, status)
	return nil
}

// failBrief writes the terminal error state. The audio URL stays unset.
func (w *ComposeWorker) failBrief(ctx context.Context, brief *model.Brief, cause error) error {
	log.Printf("Brief %s failed: %v", brief.ID, cause)

	brief.Status = model.StatusError
	brief.ErrorMessage = cause.Error()
	now := time.Now()
	brief.CompletedAt = &now

	if err := w.store.UpdateBrief(ctx, brief); err != nil {
		log.Printf("Brief %s: failed to write error state: %v", brief.ID, err)
	}
	w.markSegments(ctx, brief.ID, model.SegmentError)
	w.hub.BroadcastError(brief.ID, "COMPOSE_FAILED", cause.Error())
	return cause
}

// fetchLoops downloads ambient loops tagged with the brief's mood. Loops
// are an optional layer: a missing or unreadable loop is logged and
// skipped, never fatal.
func (w *ComposeWorker) fetchLoops(ctx context.Context, mood model.Mood) ([][]int16, []string) {
	loops, err := w.store.ListLoopsByMood(ctx, mood)
	if err != nil {
		log.Printf("Loop listing failed for mood %s: %v", mood, err)
		return nil, nil
	}

	var bufs [][]int16
	var keys []string
	for _, loop := range loops {
		data, err := w.storage.Download(ctx, loop.StorageKey)
		if err != nil {
			log.Printf("Loop %s download failed: %v", loop.StorageKey, err)
			continue
		}
		clip, err := audio.DecodeWAV(data)
		if err != nil {
			log.Printf("Loop %s decode failed: %v", loop.StorageKey, err)
			continue
		}
		bufs = append(bufs, clip.Stereo())
		keys = append(keys, loop.StorageKey)
	}
	return bufs, keys
}

// assignScript writes the generated script into the content segments and
// moves all segments to generating.
func (w *ComposeWorker) assignScript(ctx context.Context, briefID, script string) {
	segments, err := w.store.ListSegments(ctx, briefID)
	if err != nil || len(segments) == 0 {
		return
	}
	for i := range segments {
		if segments[i].Type == model.SegmentContent {
			segments[i].Script = script
		}
		segments[i].Status = model.SegmentGenerating
	}
	if err := w.store.PutSegments(ctx, briefID, segments); err != nil {
		log.Printf("Brief %s: failed to update segments: %v", briefID, err)
	}
}

// markSegments moves every segment of the brief to the given status.
func (w *ComposeWorker) markSegments(ctx context.Context, briefID string, status model.SegmentStatus) {
	segments, err := w.store.ListSegments(ctx, briefID)
	if err != nil || len(segments) == 0 {
		return
	}
	for i := range segments {
		segments[i].Status = status
	}
	if err := w.store.PutSegments(ctx, briefID, segments); err != nil {
		log.Printf("Brief %s: failed to update segments: %v", briefID, err)
	}
}

// decodeSpeech turns a synthesizer result into PCM. The mix runs at one
// fixed rate with no resampling, so speech at any other rate is rejected
// rather than played back at the wrong speed.
func decodeSpeech(speech *client.SpeechResult) (*audio.Clip, error) {
	var clip *audio.Clip
	var err error
	switch speech.Format {
	case client.SpeechFormatWAV:
		clip, err = audio.DecodeWAV(speech.Data)
	case client.SpeechFormatMP3:
		clip, err = audio.DecodeMP3(speech.Data)
	default:
		return nil, fmt.Errorf("unsupported speech format %q", speech.Format)
	}
	if err != nil {
		return nil, err
	}
	if clip.SampleRate != audio.SampleRate {
		return nil, fmt.Errorf("speech sample rate %d Hz, want %d Hz", clip.SampleRate, audio.SampleRate)
	}
	return clip, nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

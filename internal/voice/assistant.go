package voice

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// Recognizer captures a single utterance and returns its transcript. A
// blocking call; cancellation of ctx abandons the capture.
type Recognizer interface {
	Recognize(ctx context.Context, locale string) (string, error)
}

// Synthesizer speaks text in the given locale.
type Synthesizer interface {
	Speak(ctx context.Context, text, locale string) error
}

// Capture is the single result of a capture session. Either Transcript or
// Err is set.
type Capture struct {
	Transcript string
	Err        error
}

// Assistant owns the single-slot capture session: Idle -> Listening ->
// Idle. Capabilities are injected by the host adapter; the assistant never
// probes its environment.
type Assistant struct {
	rec Recognizer
	syn Synthesizer
	log zerolog.Logger

	mu  sync.Mutex
	cur *session
}

type session struct {
	cancel context.CancelFunc
}

// NewAssistant builds an assistant from host capabilities. Either may be
// nil: a nil recognizer makes StartListening fail with ErrUnsupported, a
// nil synthesizer turns Speak into a no-op.
func NewAssistant(rec Recognizer, syn Synthesizer, log zerolog.Logger) *Assistant {
	return &Assistant{rec: rec, syn: syn, log: log}
}

// Supported reports whether a speech-recognition capability is available.
func (a *Assistant) Supported() bool { return a.rec != nil }

// Listening reports whether a capture session is in flight.
func (a *Assistant) Listening() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cur != nil
}

// StartListening begins a capture session. The returned channel delivers at
// most one Capture and is then closed; a session cancelled by StopListening
// closes the channel without delivering anything. Starting while already
// listening fails immediately with ErrBusy.
func (a *Assistant) StartListening(ctx context.Context, lang Language) (<-chan Capture, error) {
	if a.rec == nil {
		return nil, ErrUnsupported
	}

	a.mu.Lock()
	if a.cur != nil {
		a.mu.Unlock()
		return nil, ErrBusy
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &session{cancel: cancel}
	a.cur = s
	a.mu.Unlock()

	ch := make(chan Capture, 1)
	go func() {
		defer close(ch)
		defer cancel()

		transcript, err := a.rec.Recognize(ctx, Locale(lang))

		a.mu.Lock()
		if a.cur == s {
			a.cur = nil
		}
		a.mu.Unlock()

		if ctx.Err() != nil {
			// Cancelled: the in-flight result is discarded, not reported.
			return
		}
		if err != nil {
			var rerr *RecognitionError
			if !errors.As(err, &rerr) {
				rerr = &RecognitionError{Code: "audio-capture", Err: err}
			}
			a.log.Debug().Str("code", rerr.Code).Err(rerr.Err).Msg("recognition failed")
			ch <- Capture{Err: rerr}
			return
		}
		ch <- Capture{Transcript: transcript}
	}()
	return ch, nil
}

// StopListening cancels any in-flight capture session. Idle is a no-op.
func (a *Assistant) StopListening() {
	a.mu.Lock()
	s := a.cur
	a.cur = nil
	a.mu.Unlock()
	if s != nil {
		s.cancel()
	}
}

// Speak voices text in the language's locale. Best-effort: an absent
// synthesizer or a synthesis failure is silent.
func (a *Assistant) Speak(ctx context.Context, text string, lang Language) {
	if a.syn == nil {
		return
	}
	if err := a.syn.Speak(ctx, text, Locale(lang)); err != nil {
		a.log.Debug().Err(err).Msg("speech synthesis failed")
	}
}

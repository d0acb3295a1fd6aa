// Package gcpspeech adapts Google Cloud Speech-to-Text to the voice
// package's Recognizer capability.
package gcpspeech

import (
	"context"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tejasm/munim/internal/voice"
)

// AudioSource supplies the raw audio for one capture, e.g. from a
// microphone buffer or a file.
type AudioSource func(ctx context.Context) ([]byte, error)

// recognizeClient is the slice of speech.Client this adapter calls.
type recognizeClient interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
}

// Recognizer implements voice.Recognizer over the synchronous Recognize
// RPC, which is suited to short command utterances.
type Recognizer struct {
	client     *speech.Client
	api        recognizeClient
	source     AudioSource
	sampleRate int32
	maxRetries int
}

// New dials the Speech-to-Text API. Audio is expected as LINEAR16 PCM at
// sampleRateHertz.
func New(ctx context.Context, source AudioSource, sampleRateHertz int, opts ...option.ClientOption) (*Recognizer, error) {
	if source == nil {
		return nil, fmt.Errorf("gcpspeech: audio source required")
	}
	c, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcpspeech: client: %w", err)
	}
	if sampleRateHertz <= 0 {
		sampleRateHertz = 16000
	}
	return &Recognizer{
		client:     c,
		api:        c,
		source:     source,
		sampleRate: int32(sampleRateHertz),
		maxRetries: 3,
	}, nil
}

func (r *Recognizer) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

// Recognize captures one utterance from the audio source and transcribes it.
func (r *Recognizer) Recognize(ctx context.Context, locale string) (string, error) {
	audio, err := r.source(ctx)
	if err != nil {
		return "", &voice.RecognitionError{Code: "audio-capture", Err: err}
	}
	if len(audio) == 0 {
		return "", &voice.RecognitionError{Code: "no-speech"}
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: r.sampleRate,
			LanguageCode:    locale,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := r.retry(ctx, req)
	if err != nil {
		return "", &voice.RecognitionError{Code: grpcCode(err), Err: err}
	}

	var full strings.Builder
	for _, res := range resp.Results {
		if res == nil || len(res.Alternatives) == 0 || res.Alternatives[0] == nil {
			continue
		}
		t := strings.TrimSpace(res.Alternatives[0].Transcript)
		if t == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(t)
	}
	transcript := full.String()
	if transcript == "" {
		return "", &voice.RecognitionError{Code: "no-speech"}
	}
	return transcript, nil
}

func (r *Recognizer) retry(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
	backoff := 500 * time.Millisecond
	var last error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		resp, err := r.api.Recognize(ctx, req)
		if err == nil {
			return resp, nil
		}
		last = err

		code := status.Code(err)
		if code != codes.Unavailable && code != codes.ResourceExhausted {
			return nil, err
		}
		if attempt == r.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, last
}

func grpcCode(err error) string {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return "network"
	case codes.PermissionDenied, codes.Unauthenticated:
		return "not-allowed"
	default:
		return "recognition-error"
	}
}

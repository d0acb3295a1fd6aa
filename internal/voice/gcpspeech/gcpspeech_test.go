package gcpspeech

import (
	"context"
	"errors"
	"testing"
	"time"

	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tejasm/munim/internal/voice"
)

type fakeAPI struct {
	calls int
	fn    func(call int) (*speechpb.RecognizeResponse, error)
}

func (f *fakeAPI) Recognize(context.Context, *speechpb.RecognizeRequest, ...gax.CallOption) (*speechpb.RecognizeResponse, error) {
	f.calls++
	return f.fn(f.calls)
}

func fixedAudio(b []byte) AudioSource {
	return func(context.Context) ([]byte, error) { return b, nil }
}

func testRecognizer(api recognizeClient, source AudioSource) *Recognizer {
	return &Recognizer{api: api, source: source, sampleRate: 16000, maxRetries: 3}
}

func transcriptResponse(texts ...string) *speechpb.RecognizeResponse {
	resp := &speechpb.RecognizeResponse{}
	for _, t := range texts {
		resp.Results = append(resp.Results, &speechpb.SpeechRecognitionResult{
			Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: t}},
		})
	}
	return resp
}

func TestRecognizeJoinsResults(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{fn: func(int) (*speechpb.RecognizeResponse, error) {
		return transcriptResponse("add income of 500", "for consulting"), nil
	}}
	r := testRecognizer(api, fixedAudio([]byte{1, 2, 3}))

	got, err := r.Recognize(context.Background(), "en-US")
	require.NoError(t, err)
	require.Equal(t, "add income of 500 for consulting", got)
}

func TestRecognizeEmptyAudio(t *testing.T) {
	t.Parallel()

	r := testRecognizer(&fakeAPI{}, fixedAudio(nil))

	_, err := r.Recognize(context.Background(), "en-US")
	var rerr *voice.RecognitionError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, "no-speech", rerr.Code)
}

func TestRecognizeAudioSourceFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("mic unavailable")
	r := testRecognizer(&fakeAPI{}, func(context.Context) ([]byte, error) { return nil, boom })

	_, err := r.Recognize(context.Background(), "en-US")
	var rerr *voice.RecognitionError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, "audio-capture", rerr.Code)
	require.ErrorIs(t, err, boom)
}

func TestRecognizeRetriesUnavailable(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{fn: func(call int) (*speechpb.RecognizeResponse, error) {
		if call == 1 {
			return nil, status.Error(codes.Unavailable, "transient")
		}
		return transcriptResponse("paid 200 for supplies"), nil
	}}
	r := testRecognizer(api, fixedAudio([]byte{1}))

	got, err := r.Recognize(context.Background(), "en-US")
	require.NoError(t, err)
	require.Equal(t, "paid 200 for supplies", got)
	require.Equal(t, 2, api.calls)
}

func TestRecognizeDoesNotRetryPermanentErrors(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{fn: func(int) (*speechpb.RecognizeResponse, error) {
		return nil, status.Error(codes.PermissionDenied, "no access")
	}}
	r := testRecognizer(api, fixedAudio([]byte{1}))

	_, err := r.Recognize(context.Background(), "en-US")
	var rerr *voice.RecognitionError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, "not-allowed", rerr.Code)
	require.Equal(t, 1, api.calls)
}

func TestRecognizeBackoffStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	api := &fakeAPI{fn: func(int) (*speechpb.RecognizeResponse, error) {
		// cancel while the retry loop would be backing off
		cancel()
		return nil, status.Error(codes.Unavailable, "transient")
	}}
	r := testRecognizer(api, fixedAudio([]byte{1}))

	start := time.Now()
	_, err := r.Recognize(ctx, "en-US")
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, api.calls)
	// cancellation short-circuits the backoff sleep
	require.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestRecognizeEmptyTranscript(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{fn: func(int) (*speechpb.RecognizeResponse, error) {
		return transcriptResponse("", "   "), nil
	}}
	r := testRecognizer(api, fixedAudio([]byte{1}))

	_, err := r.Recognize(context.Background(), "en-US")
	var rerr *voice.RecognitionError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, "no-speech", rerr.Code)
}

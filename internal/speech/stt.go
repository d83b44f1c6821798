package speech

import (
	"context"
	"fmt"
	"strings"

	speechapi "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
)

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// GoogleTranscriber uses Cloud Speech-to-Text synchronous recognition,
// which accepts clips up to one minute.
type GoogleTranscriber struct {
	client     *speechapi.Client
	language   string
	sampleRate int
}

// NewGoogleTranscriber creates a client using application default
// credentials. language is a BCP 47 tag such as "tr-TR".
func NewGoogleTranscriber(ctx context.Context, language string, sampleRate int) (*GoogleTranscriber, error) {
	c, err := speechapi.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	return &GoogleTranscriber{client: c, language: language, sampleRate: sampleRate}, nil
}

// Transcribe recognizes LINEAR16 mono audio and joins the best alternative
// of every result.
func (g *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}
	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            int32(g.sampleRate),
			AudioChannelCount:          1,
			LanguageCode:               g.language,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", speechErr("recognize", err)
	}

	var parts []string
	for _, r := range resp.GetResults() {
		if alts := r.GetAlternatives(); len(alts) > 0 {
			if t := strings.TrimSpace(alts[0].GetTranscript()); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " "), nil
}

// Close releases the client connection.
func (g *GoogleTranscriber) Close() error {
	return g.client.Close()
}

package session

// Config holds generation settings for the study session.
type Config struct {
	// MaxSubTopics caps the plan length; longer plans are truncated.
	MaxSubTopics int

	PlanMaxTokens        int
	ExplanationMaxTokens int
	ReplyMaxTokens       int
	ChallengeMaxTokens   int

	Temperature float64

	// Images toggles illustrations for sub-topic explanations.
	Images           bool
	ImageAspectRatio string
	ImageMIMEType    string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxSubTopics:         7,
		PlanMaxTokens:        512,
		ExplanationMaxTokens: 2048,
		ReplyMaxTokens:       2048,
		ChallengeMaxTokens:   256,
		Temperature:          0.7,
		Images:               true,
		ImageAspectRatio:     "1:1",
		ImageMIMEType:        "image/jpeg",
	}
}

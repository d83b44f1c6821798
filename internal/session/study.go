package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/transcript"
)

type planResponse struct {
	Plan []string `json:"plan"`
}

type explanationResponse struct {
	Explanation string `json:"explanation"`
	ImagePrompt string `json:"imagePrompt"`
}

// CreatePlan replaces the session with a fresh plan for topic. The previous
// plan, transcript, progress, badges and saved snapshot are discarded
// before the request is sent.
func (o *Orchestrator) CreatePlan(ctx context.Context, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return ErrEmptyInput
	}

	o.mu.Lock()
	if o.activity != Idle {
		o.mu.Unlock()
		return ErrBusy
	}
	o.resetLocked()
	ctx, epoch := o.begin(ctx, Planning)
	p := o.personaLocked()
	userKey := o.profile.UserKey()
	o.mu.Unlock()
	defer o.end(epoch)

	o.transcript.Reset()
	o.quiz.Exit()
	o.speech.Stop()
	o.deleteSnapshot(ctx, userKey)
	o.emit(Event{Kind: TranscriptChanged})
	o.emit(Event{Kind: StateChanged})

	plan, err := o.generatePlan(ctx, p, topic)
	if o.stale(epoch) {
		return context.Canceled
	}
	if err != nil {
		o.log.Warn("plan generation failed", "topic", topic, "error", err)
		o.transcript.Append(transcript.Entry{Role: transcript.RoleSystem, Content: o.cat.T(locale.PlanFailed)})
		o.emit(Event{Kind: TranscriptChanged})
		return err
	}

	o.mu.Lock()
	o.tracker = progress.NewTracker(plan)
	o.saveLocked(ctx)
	o.mu.Unlock()

	o.log.Info("plan created", "topic", plan.MainTopic, "sub_topics", plan.Len())
	o.transcript.Append(transcript.Entry{Role: transcript.RoleSystem, Content: o.cat.T(locale.PlanReady, p.User, p.Assistant)})
	o.emit(Event{Kind: TranscriptChanged})
	return nil
}

func (o *Orchestrator) generatePlan(ctx context.Context, p persona, topic string) (progress.Plan, error) {
	ctx = llm.WithPurpose(ctx, "plan")
	resp, err := o.provider.Generate(ctx, llm.Request{
		System: p.system(),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPlanPrompt(p, topic)},
		},
		Schema:      PlanSchema,
		MaxTokens:   o.cfg.PlanMaxTokens,
		Temperature: o.cfg.Temperature,
	})
	if err != nil {
		return progress.Plan{}, fmt.Errorf("generate plan: %w", err)
	}

	var out planResponse
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return progress.Plan{}, fmt.Errorf("parse plan: %w", err)
	}
	plan, err := progress.NewPlan(topic, out.Plan)
	if err != nil {
		return progress.Plan{}, err
	}
	if plan.Len() > o.cfg.MaxSubTopics {
		return progress.NewPlan(topic, plan.SubTopics()[:o.cfg.MaxSubTopics])
	}
	return plan, nil
}

// SelectSubTopic makes name the active sub-topic and replaces the
// conversation with its explanation. The sub-topic is marked complete once
// the explanation arrives.
func (o *Orchestrator) SelectSubTopic(ctx context.Context, name string) error {
	o.mu.Lock()
	if o.activity != Idle {
		o.mu.Unlock()
		return ErrBusy
	}
	if o.tracker == nil {
		o.mu.Unlock()
		return ErrNoPlan
	}
	if !o.tracker.SelectableByName(name) {
		o.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrLocked, name)
	}
	ctx, epoch := o.begin(ctx, Explaining)
	mainTopic := o.tracker.Plan().MainTopic
	p := o.personaLocked()
	o.active = name
	o.mu.Unlock()
	defer o.end(epoch)

	o.speech.Stop()
	o.transcript.Reset()
	placeholder := o.transcript.Append(transcript.Entry{
		Role:     transcript.RoleAssistant,
		Content:  o.cat.T(locale.Thinking, p.Assistant),
		SubTopic: name,
		Pending:  true,
	})
	o.emit(Event{Kind: TranscriptChanged})
	o.emit(Event{Kind: StateChanged})

	exp, err := o.explain(ctx, p, mainTopic, name)
	if o.stale(epoch) {
		return context.Canceled
	}
	if err != nil {
		o.log.Warn("explanation failed", "sub_topic", name, "error", err)
		_ = o.transcript.Replace(placeholder, transcript.Entry{
			Role:    transcript.RoleAssistant,
			Content: o.cat.T(locale.ExplanationFailed),
		})
		o.emit(Event{Kind: TranscriptChanged})
		return err
	}

	var images []transcript.Image
	if img, err := o.illustrate(ctx, exp.ImagePrompt); err != nil {
		o.log.Warn("illustration skipped", "sub_topic", name, "error", err)
	} else if img != nil {
		images = append(images, *img)
	}
	if o.stale(epoch) {
		return context.Canceled
	}

	_ = o.transcript.Replace(placeholder, transcript.Entry{
		Role:             transcript.RoleAssistant,
		Content:          exp.Explanation,
		SubTopic:         name,
		Images:           images,
		TopicExplanation: true,
	})

	o.mu.Lock()
	_ = o.tracker.MarkComplete(name)
	newly := o.updateBadgesLocked(ctx)
	o.saveLocked(ctx)
	o.mu.Unlock()

	o.emit(Event{Kind: TranscriptChanged})
	o.announceBadges(newly)
	return nil
}

func (o *Orchestrator) explain(ctx context.Context, p persona, mainTopic, subTopic string) (explanationResponse, error) {
	ctx = llm.WithPurpose(ctx, "explanation")
	resp, err := o.provider.Generate(ctx, llm.Request{
		System: p.system(),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildExplanationPrompt(p, mainTopic, subTopic)},
		},
		Schema:      ExplanationSchema,
		MaxTokens:   o.cfg.ExplanationMaxTokens,
		Temperature: o.cfg.Temperature,
	})
	if err != nil {
		return explanationResponse{}, fmt.Errorf("generate explanation: %w", err)
	}

	var out explanationResponse
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return explanationResponse{}, fmt.Errorf("parse explanation: %w", err)
	}
	if strings.TrimSpace(out.Explanation) == "" {
		return explanationResponse{}, &llm.ErrInvalidResponse{Content: resp.Content, Err: errEmptyContent}
	}
	return out, nil
}

// illustrate renders the image for an explanation. A nil image with a nil
// error means illustrations are off or the backend produced nothing.
func (o *Orchestrator) illustrate(ctx context.Context, prompt string) (*transcript.Image, error) {
	prompt = strings.TrimSpace(prompt)
	if !o.cfg.Images || prompt == "" {
		return nil, nil
	}
	ctx = llm.WithPurpose(ctx, "illustration")
	img, err := o.provider.GenerateImage(ctx, llm.ImageRequest{
		Prompt:      prompt,
		AspectRatio: o.cfg.ImageAspectRatio,
		MIMEType:    o.cfg.ImageMIMEType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImage, err)
	}
	if img == nil || len(img.Data) == 0 {
		return nil, nil
	}
	return &transcript.Image{MIMEType: img.MIMEType, Data: img.Data}, nil
}

// AskQuestion sends a free-form question and streams the reply into the
// transcript. The reply is read in the context of the last finished
// assistant message.
func (o *Orchestrator) AskQuestion(ctx context.Context, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return ErrEmptyInput
	}

	o.mu.Lock()
	if o.activity != Idle {
		o.mu.Unlock()
		return ErrBusy
	}
	if o.tracker == nil {
		o.mu.Unlock()
		return ErrNoPlan
	}
	if o.active == "" {
		o.mu.Unlock()
		return ErrNoActiveTopic
	}
	ctx, epoch := o.begin(ctx, Answering)
	mainTopic := o.tracker.Plan().MainTopic
	p := o.personaLocked()
	o.mu.Unlock()
	defer o.end(epoch)

	o.speech.Stop()
	lastReply := o.transcript.LastAssistantContent()
	o.transcript.Append(transcript.Entry{Role: transcript.RoleUser, Content: question})
	o.emit(Event{Kind: TranscriptChanged})
	o.emit(Event{Kind: StateChanged})

	req := llm.Request{
		System: p.system(),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionPrompt(p, mainTopic, lastReply, question)},
		},
		MaxTokens:   o.cfg.ReplyMaxTokens,
		Temperature: o.cfg.Temperature,
	}
	return o.streamReply(llm.WithPurpose(ctx, "question"), epoch, req, "", o.cat.T(locale.QuestionFailed))
}

// RequestDeeper asks for a summary, an analogy or an example of an earlier
// assistant entry and streams the answer.
func (o *Orchestrator) RequestDeeper(ctx context.Context, entryID int64, kind DeeperKind) error {
	switch kind {
	case Summarize, Analogy, Example:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDeeper, kind)
	}

	o.mu.Lock()
	if o.activity != Idle {
		o.mu.Unlock()
		return ErrBusy
	}
	if o.tracker == nil {
		o.mu.Unlock()
		return ErrNoPlan
	}
	entry, ok := o.transcript.Entry(entryID)
	if !ok || entry.Role != transcript.RoleAssistant || entry.Pending || strings.TrimSpace(entry.Content) == "" {
		o.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownEntry, entryID)
	}
	ctx, epoch := o.begin(ctx, Deepening)
	mainTopic := o.tracker.Plan().MainTopic
	p := o.personaLocked()
	o.mu.Unlock()
	defer o.end(epoch)

	o.speech.Stop()
	subject := o.cat.T(locale.DeeperSubjectAnswer)
	if entry.SubTopic != "" {
		subject = o.cat.T(locale.DeeperSubjectTopic, entry.SubTopic)
	}
	o.transcript.Append(transcript.Entry{Role: transcript.RoleUser, Content: o.cat.T(deeperRequestKey(kind), subject)})
	o.emit(Event{Kind: TranscriptChanged})
	o.emit(Event{Kind: StateChanged})

	req := llm.Request{
		System: p.system(),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDeeperPrompt(p, mainTopic, entry.SubTopic, entry.Content, kind)},
		},
		MaxTokens:   o.cfg.ReplyMaxTokens,
		Temperature: o.cfg.Temperature,
	}
	return o.streamReply(llm.WithPurpose(ctx, "deeper"), epoch, req, entry.SubTopic, o.cat.T(locale.DeeperFailed))
}

func deeperRequestKey(kind DeeperKind) locale.Key {
	switch kind {
	case Analogy:
		return locale.DeeperAnalogy
	case Example:
		return locale.DeeperExample
	default:
		return locale.DeeperSummarize
	}
}

// streamReply appends an empty assistant entry, claims it and streams the
// reply into it. Deltas that arrive after a reset find the entry gone and
// abort the stream.
func (o *Orchestrator) streamReply(ctx context.Context, epoch uint64, req llm.Request, subTopic, failMsg string) error {
	id := o.transcript.Append(transcript.Entry{Role: transcript.RoleAssistant, SubTopic: subTopic})
	if err := o.transcript.Claim(id); err != nil {
		return err
	}
	defer o.transcript.Release(id)
	o.emit(Event{Kind: TranscriptChanged})

	_, err := o.provider.Stream(ctx, req, func(delta string) error {
		if err := o.transcript.AppendContent(id, delta); err != nil {
			return err
		}
		o.emit(Event{Kind: TranscriptChanged})
		return nil
	})
	if o.stale(epoch) {
		return context.Canceled
	}
	if err != nil {
		o.log.Warn("streamed reply failed", "purpose", llm.PurposeFrom(ctx), "error", err)
		failed := transcript.Entry{Role: transcript.RoleAssistant, Content: failMsg}
		if e, ok := o.transcript.Entry(id); ok && e.Content == "" {
			_ = o.transcript.Replace(id, failed)
		} else {
			o.transcript.Append(failed)
		}
		o.emit(Event{Kind: TranscriptChanged})
		return err
	}
	return nil
}

// Challenge quizzes the learner with one question on a randomly chosen
// completed sub-topic.
func (o *Orchestrator) Challenge(ctx context.Context) error {
	o.mu.Lock()
	if o.activity != Idle {
		o.mu.Unlock()
		return ErrBusy
	}
	if o.tracker == nil {
		o.mu.Unlock()
		return ErrNoPlan
	}
	completed := o.tracker.Completed()
	if len(completed) == 0 {
		o.mu.Unlock()
		return ErrNothingCompleted
	}
	topic := completed[o.rng.IntN(len(completed))]
	ctx, epoch := o.begin(ctx, Challenging)
	p := o.personaLocked()
	o.mu.Unlock()
	defer o.end(epoch)

	o.speech.Stop()
	o.transcript.Append(transcript.Entry{Role: transcript.RoleSystem, Content: o.cat.T(locale.ChallengeIntro, p.User, topic)})
	o.emit(Event{Kind: TranscriptChanged})
	o.emit(Event{Kind: StateChanged})

	resp, err := o.provider.Generate(llm.WithPurpose(ctx, "challenge"), llm.Request{
		System: p.system(),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildChallengePrompt(p, topic)},
		},
		MaxTokens:   o.cfg.ChallengeMaxTokens,
		Temperature: o.cfg.Temperature,
	})
	if o.stale(epoch) {
		return context.Canceled
	}
	question := strings.TrimSpace(resp.Text())
	if err == nil && question == "" {
		err = &llm.ErrInvalidResponse{Err: errEmptyContent}
	}
	if err != nil {
		o.log.Warn("challenge failed", "sub_topic", topic, "error", err)
		o.transcript.Append(transcript.Entry{Role: transcript.RoleAssistant, Content: o.cat.T(locale.ChallengeFailed)})
		o.emit(Event{Kind: TranscriptChanged})
		return err
	}

	o.transcript.Append(transcript.Entry{Role: transcript.RoleAssistant, Content: question, SubTopic: topic})

	o.mu.Lock()
	o.triggers.ChallengeUsed = true
	newly := o.updateBadgesLocked(ctx)
	o.saveLocked(ctx)
	o.mu.Unlock()

	o.emit(Event{Kind: TranscriptChanged})
	o.announceBadges(newly)
	return nil
}

// ToggleSpeech starts reading the entry aloud, or stops it when it is
// already playing. It reports whether the entry is now playing.
func (o *Orchestrator) ToggleSpeech(ctx context.Context, entryID int64) (bool, error) {
	e, ok := o.transcript.Entry(entryID)
	if !ok || e.Pending || strings.TrimSpace(e.Content) == "" {
		return false, fmt.Errorf("%w: %d", ErrUnknownEntry, entryID)
	}
	playing := o.speech.Toggle(ctx, entryID, e.Content)
	o.emit(Event{Kind: SpeechChanged})
	return playing, nil
}

// StopSpeech silences any playback.
func (o *Orchestrator) StopSpeech() {
	o.speech.Stop()
	o.emit(Event{Kind: SpeechChanged})
}

// SpeechFinished announces that playback ended on its own.
func (o *Orchestrator) SpeechFinished() {
	o.emit(Event{Kind: SpeechChanged})
}

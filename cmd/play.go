package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/app"
	"github.com/abhisek/studybuddy/internal/config"
	"github.com/abhisek/studybuddy/internal/export"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/screens/deps"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/speech"
	"github.com/abhisek/studybuddy/internal/telemetry"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a study session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Path)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	shutdown, err := telemetry.Setup(cfg.Tracing, version, log)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("tracing shutdown failed", "error", err)
		}
	}()

	llmOpts := llm.Options{
		EventRepo:   st.EventRepo(),
		Logger:      log,
		CacheConfig: cfg.Cache,
		Tracing:     cfg.Tracing.Enabled,
	}
	if cfg.Cache.URL != "" {
		cache, err := llm.NewRedisCache(ctx, cfg.Cache.URL)
		if err != nil {
			log.Warn("response cache unavailable", "error", err)
		} else {
			defer cache.Close()
			llmOpts.Cache = cache
		}
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, llmOpts)
	if err != nil {
		return fmt.Errorf("create LLM provider: %w", err)
	}
	log.Info("starting", "provider", cfg.LLM.Provider, "model", provider.ModelID(), "lang", cfg.UI.Language)

	cat := locale.New(cfg.UI.Language)
	theme.Use(cfg.UI.Theme)

	var orch *session.Orchestrator
	var synth speech.Synthesizer
	if cfg.Speech.Enabled && cfg.Speech.TTSCommand != "" {
		synth = speech.NewCommandSynthesizer(cfg.Speech.TTSCommand)
	}
	player := speech.NewPlayer(synth, log, func() {
		if orch != nil {
			orch.SpeechFinished()
		}
	})

	voice, closeVoice := buildListener(ctx, cfg, cat, log)
	defer closeVoice()

	exporter, closeExporter := buildExporter(ctx, cfg, log)
	defer closeExporter()

	sessCfg := session.DefaultConfig()
	sessCfg.Images = cfg.Study.Images
	quizCfg := quiz.DefaultConfig()
	quizCfg.Questions = cfg.Study.QuizQuestions

	orch = session.New(session.Options{
		Provider:   provider,
		Snapshots:  st.SnapshotRepo(),
		Events:     st.EventRepo(),
		Speech:     player,
		Exporter:   exporter,
		Catalog:    cat,
		Logger:     log,
		Config:     sessCfg,
		QuizConfig: quizCfg,
	})

	profile, err := st.ProfileRepo().Get(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if profile != nil {
		if profile.Theme != "" {
			theme.Use(profile.Theme)
		}
		orch.SetProfile(*profile)
		if profile.AssistantName != "" && profile.UserName != "" {
			if _, err := orch.Resume(ctx); err != nil {
				log.Warn("resume failed", "error", err)
			}
		}
	}

	return app.Run(app.Options{
		Deps: deps.Deps{
			Session:  orch,
			Catalog:  cat,
			Profiles: st.ProfileRepo(),
			Events:   st.EventRepo(),
			Logger:   log,
			Voice:    voice,
		},
		Profile: profile,
	})
}

// buildListener wires the recorder to Cloud Speech-to-Text. It returns a
// nil listener when voice input is off or unavailable.
func buildListener(ctx context.Context, cfg config.Config, cat *locale.Catalog, log *logger.Logger) (*speech.Listener, func()) {
	noop := func() {}
	if !cfg.Speech.Enabled || !cfg.Speech.STT || cfg.Speech.RecordCommand == "" {
		return nil, noop
	}
	stt, err := speech.NewGoogleTranscriber(ctx, cat.SpeechLocale(), cfg.Speech.SampleRate)
	if err != nil {
		log.Warn("speech-to-text unavailable", "error", err)
		return nil, noop
	}
	rec := speech.NewRecorder(cfg.Speech.RecordCommand, cfg.Speech.SampleRate)
	return speech.NewListener(rec, stt), func() { _ = stt.Close() }
}

// buildExporter writes notes to the export directory and, when a bucket
// is configured, copies them to Cloud Storage.
func buildExporter(ctx context.Context, cfg config.Config, log *logger.Logger) (*export.Exporter, func()) {
	closeFn := func() {}
	var uploader export.Uploader
	if cfg.Export.Bucket != "" {
		gcs, err := export.NewGCSUploader(ctx, cfg.Export.Bucket, cfg.Export.Prefix)
		if err != nil {
			log.Warn("cloud export unavailable", "bucket", cfg.Export.Bucket, "error", err)
		} else {
			uploader = gcs
			closeFn = func() { _ = gcs.Close() }
		}
	}
	return export.NewExporter(cfg.Export.Dir, uploader, log), closeFn
}

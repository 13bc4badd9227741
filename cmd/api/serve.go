package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/apolaki-ghub/Project3/internal/analysis"
	"github.com/apolaki-ghub/Project3/internal/auth"
	"github.com/apolaki-ghub/Project3/internal/config"
	"github.com/apolaki-ghub/Project3/internal/events"
	"github.com/apolaki-ghub/Project3/internal/handler"
	"github.com/apolaki-ghub/Project3/internal/llm"
	"github.com/apolaki-ghub/Project3/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recorder web server",
	Long: `Start the recorder web server with the configured analysis backend.

Example:
  recorder serve
  recorder serve --port 8080
  RECORDER_ANALYSIS_BACKEND=google recorder serve`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "server host (overrides config)")
	serveCmd.Flags().Int("port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}

	applyLogFlags(cmd, &cfg.Logging)
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	gin.SetMode(ginMode(cfg.Logging.Level))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	deps, closers, err := buildDependencies(ctx, cfg, log)
	defer func() {
		for _, c := range closers {
			if cerr := c.Close(); cerr != nil {
				log.Warn("runServer(): failed to close client", zap.Error(cerr))
			}
		}
	}()
	if err != nil {
		return err
	}

	router, err := handler.NewRouter(handler.New(deps), handler.RouterOptions{
		RateLimit:       cfg.Server.RateLimit.Enabled,
		RateLimitEvery:  cfg.Server.RateLimit.Every,
		RateLimitBurst:  cfg.Server.RateLimit.Burst,
		RateLimitExpiry: cfg.Server.RateLimit.Expiry,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Info("runServer(): listening",
		zap.String("addr", srv.Addr),
		zap.String("backend", cfg.Analysis.Backend),
		zap.String("upload_dir", deps.Store.Root()),
		zap.Bool("auth", deps.Issuer != nil),
	)

	select {
	case <-stop:
		log.Info("runServer(): shutting down")
	case err := <-serverErr:
		log.Error("runServer(): server failed, shutting down", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("runServer(): forced shutdown", zap.Error(err))
		return err
	}

	log.Info("runServer(): server stopped")
	return nil
}

// buildDependencies creates the store, history index and service clients the
// handlers need. The returned closers must be closed even when err is set.
func buildDependencies(ctx context.Context, cfg *config.Config, log *zap.Logger) (handler.Dependencies, []io.Closer, error) {
	var closers []io.Closer

	store, err := storage.NewRecordingStore(cfg.Storage.UploadDir)
	if err != nil {
		return handler.Dependencies{}, closers, err
	}

	hub := events.NewHub(0)
	deps := handler.Dependencies{
		Store:          store,
		Hub:            hub,
		Logger:         log,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	}

	// The history is an addition to the upload directory, so the server still
	// runs when the database cannot be opened.
	var index *storage.ReportIndex
	if db, err := storage.OpenDB(ctx, cfg.Storage.DatabasePath); err != nil {
		log.Warn("buildDependencies(): report history disabled", zap.Error(err))
	} else {
		closers = append(closers, db)
		index = storage.NewReportIndex(db)
		deps.History = index
	}

	google := llm.GoogleOptions{CredentialsFile: cfg.Google.CredentialsFile}

	var scorer *llm.SentimentClient
	needScorer := cfg.Analysis.Backend != analysis.BackendGemini
	if needScorer || cfg.Analysis.TextToSpeech {
		scorer, err = llm.NewSentimentClient(ctx, google)
		if err != nil {
			if needScorer {
				return deps, closers, err
			}
			log.Warn("buildDependencies(): sentiment client unavailable, text entry disabled", zap.Error(err))
		} else {
			closers = append(closers, scorer)
		}
	}

	var analyzer analysis.Analyzer
	switch cfg.Analysis.Backend {
	case analysis.BackendGemini:
		gemini, err := llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return deps, closers, err
		}
		analyzer = analysis.NewGenerativeAnalyzer(gemini, cfg.Analysis.GenerateTimeout)
	case analysis.BackendGoogle:
		recognizer, err := llm.NewSpeechRecognizer(ctx, google, log)
		if err != nil {
			return deps, closers, err
		}
		closers = append(closers, recognizer)
		analyzer = analysis.NewPipelineAnalyzer(analysis.BackendGoogle, recognizer, scorer,
			cfg.Analysis.TranscribeTimeout, cfg.Analysis.SentimentTimeout)
	case analysis.BackendWhisper:
		whisper, err := llm.NewWhisperClient(cfg.OpenAI.APIKey)
		if err != nil {
			return deps, closers, err
		}
		analyzer = analysis.NewPipelineAnalyzer(analysis.BackendWhisper, whisper, scorer,
			cfg.Analysis.TranscribeTimeout, cfg.Analysis.SentimentTimeout)
	default:
		return deps, closers, fmt.Errorf("unknown analysis backend %q", cfg.Analysis.Backend)
	}

	opts := analysis.Options{
		Store:     store,
		Analyzer:  analyzer,
		Publisher: hub,
		Logger:    log,
		Timeouts: analysis.Timeouts{
			Transcribe: cfg.Analysis.TranscribeTimeout,
			Sentiment:  cfg.Analysis.SentimentTimeout,
			Synthesize: cfg.Analysis.SynthesizeTimeout,
			Generate:   cfg.Analysis.GenerateTimeout,
		},
	}
	if index != nil {
		opts.Index = index
	}
	if scorer != nil {
		opts.Scorer = scorer
	}

	if cfg.Analysis.TextToSpeech && scorer != nil {
		synthesizer, err := llm.NewSpeechSynthesizer(ctx, google, log)
		if err != nil {
			log.Warn("buildDependencies(): speech synthesis unavailable, text entry disabled", zap.Error(err))
		} else {
			closers = append(closers, synthesizer)
			opts.Synthesizer = synthesizer
		}
	}

	deps.Service = analysis.NewService(opts)

	if cfg.Auth.Enabled() {
		deps.Issuer = auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessKeyHash, cfg.Auth.TokenTTL)
	}
	return deps, closers, nil
}

package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/apolaki-ghub/Project3/internal/config"
	"github.com/apolaki-ghub/Project3/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "recorder",
	Short: "Audio sentiment recorder",
	Long: `Audio sentiment recorder - record or upload WAV audio and keep a sentiment report next to it

Uploaded recordings are analyzed by one of three backends:
  gemini   generative transcript from Gemini
  google   Cloud Speech-to-Text followed by Cloud Natural Language sentiment
  whisper  OpenAI Whisper transcription followed by Cloud Natural Language sentiment

Text can also be turned into a recording with Cloud Text-to-Speech.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "config/settings.yaml", "config file (missing file is ignored)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); overrides config")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig reads the configuration named by --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// applyLogFlags lets --log-level and --json-logs override the config.
func applyLogFlags(cmd *cobra.Command, cfg *config.LoggingConfig) {
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Level = level
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSON, _ = cmd.Flags().GetBool("json-logs")
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	return logging.New(cfg.Level, cfg.JSON)
}

// ginMode keeps gin's debug route dump for debug logging only.
func ginMode(level string) string {
	if level == "debug" {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

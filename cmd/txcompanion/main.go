package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/txcompanion/internal/config"
	"github.com/mark3labs/txcompanion/internal/logger"
	"github.com/mark3labs/txcompanion/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "▀█▀ ▀▄▀ █▀▀ █▀█ █▀▄▀█ █▀█"
	logoText2 = " █  █ █ █▄▄ █▄█ █ ▀ █ █▀▀"
)

// Version set via ldflags during build
var version = "dev"

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "txcompanion",
	Short:             "Model wizard and SD card manager for OpenTX radios",
	PersistentPreRunE: loadConfig,
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := logger.Configure(c.LogLevel, c.LogFile); err != nil {
		return err
	}
	cfg = c
	return nil
}

func renderLogo() string {
	t := theme.Current()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

txcompanion builds model configurations for OpenTX transmitters with a
step-by-step wizard that books receiver channels and writes the mixes, keeps
the models in a local library (embedded NATS JetStream), and downloads and
installs the SD card image that matches the radio's firmware.`

	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(sdcardCmd)
	rootCmd.AddCommand(radiosCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(mcpCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/txcompanion/internal/config"
	"github.com/mark3labs/txcompanion/internal/radio"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project      bool
	force        bool
	radio        string
	sdPath       string
	customSDPath string
	channelOrder string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create txcompanion configuration file",
	Long: `Create a txcompanion configuration file describing your radio.

By default, creates a global config at ~/.config/txcompanion/txcompanion.yml.
Use --project to create a project-local config in the current directory.`,
	// setup must work even when an existing config does not validate
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringVarP(&setupFlags.radio, "radio", "r", "x9d+", "Board id (see 'txcompanion radios')")
	setupCmd.Flags().StringVar(&setupFlags.sdPath, "sd-path", "", "Folder holding the SD card content")
	setupCmd.Flags().StringVar(&setupFlags.customSDPath, "custom-sd-path", "", "Folder merged over the SD card after installs")
	setupCmd.Flags().StringVar(&setupFlags.channelOrder, "channel-order", config.DefaultChannelOrder, "Stick to channel order, e.g. AETR")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}
	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	b, err := radio.Lookup(setupFlags.radio)
	if err != nil {
		return err
	}

	c := &config.Config{
		Radio:           b.ID,
		FirmwareType:    "opentx-" + b.ID,
		SDPath:          setupFlags.sdPath,
		CustomSDPath:    setupFlags.customSDPath,
		SDLanguage:      "en",
		DownloadURL:     "https://downloads.open-tx.org/2.3",
		Branch:          config.BranchRelease,
		ChannelOrder:    setupFlags.channelOrder,
		DataDir:         ".txcompanion",
		LogLevel:        "info",
		DownloadTimeout: 300,
	}
	if err := c.Validate(); err != nil {
		return err
	}

	if setupFlags.project {
		err = config.WriteProject(c)
	} else {
		err = config.WriteGlobal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Config written to: %s\n\n", targetPath)
	fmt.Println("Run 'txcompanion wizard' to create your first model.")
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

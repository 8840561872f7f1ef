package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/txcompanion/internal/config"
	"github.com/mark3labs/txcompanion/internal/hooks"
	"github.com/mark3labs/txcompanion/internal/library"
	"github.com/mark3labs/txcompanion/internal/sdcard"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var sdcardFlags struct {
	out      string
	download bool
}

var sdcardCmd = &cobra.Command{
	Use:   "sdcard",
	Short: "Manage the radio's SD card content",
	Long: `Check, download and install the SD card image that matches the
configured firmware. The card folder is sd_path; files under custom_sd_path
are merged over it after every install.`,
}

var sdcardStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Compare the installed image with the one the firmware needs",
	Args:  cobra.NoArgs,
	RunE:  runSDCardStatus,
}

var sdcardURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the download URL of the required image",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := sdcard.TargetFor(cfg)
		if err != nil {
			return err
		}
		url, err := sdcard.DownloadURL(cfg.DownloadURL, cfg.Branch, t)
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	},
}

var sdcardInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the standard folder layout on the card",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		card := newCard()
		if err := card.CreateFolders(sdcard.RootStd); err != nil {
			return err
		}
		fmt.Printf("Folders created in %s\n", card.Path)
		if card.HasRoot(sdcard.RootCustom) {
			if err := card.CreateFolders(sdcard.RootCustom); err != nil {
				return err
			}
			fmt.Printf("Folders created in %s\n", card.CustomPath)
		}
		return nil
	},
}

var sdcardDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the required image",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		t, err := sdcard.TargetFor(cfg)
		if err != nil {
			return err
		}
		_, err = download(ctx, t, sdcardFlags.out)
		return err
	},
}

var sdcardInstallCmd = &cobra.Command{
	Use:   "install [zip]",
	Short: "Install an image onto the card",
	Long: `Install an SD card image. The current card folder is kept as
<sd_path>.bak. Without an argument the last downloaded image is used;
--download fetches the required image first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSDCardInstall,
}

func init() {
	sdcardDownloadCmd.Flags().StringVarP(&sdcardFlags.out, "out", "o", "", "Destination zip (default: last download folder)")
	sdcardInstallCmd.Flags().BoolVarP(&sdcardFlags.download, "download", "d", false, "Download the required image before installing")
	sdcardInstallCmd.Flags().StringVarP(&sdcardFlags.out, "out", "o", "", "Destination zip for --download")

	sdcardCmd.AddCommand(sdcardStatusCmd, sdcardURLCmd, sdcardInitCmd, sdcardDownloadCmd, sdcardInstallCmd)
}

func runSDCardStatus(cmd *cobra.Command, args []string) error {
	t, err := sdcard.TargetFor(cfg)
	if err != nil {
		return err
	}
	st, err := newCard().Status(t)
	if errors.Is(err, sdcard.ErrNoSDPath) {
		return fmt.Errorf("no SD card folder configured, set sd_path with 'txcompanion setup --sd-path'")
	}
	if err != nil {
		return err
	}

	s := themeStyles()
	installed := "none"
	if st.InstalledVersion != "" {
		installed = fmt.Sprintf("%s %s", st.InstalledFamily, st.InstalledVersion)
	}
	fmt.Printf("Card:      %s\n", st.Path)
	fmt.Printf("Installed: %s\n", installed)
	fmt.Printf("Required:  %s %s\n", st.Family, st.Version)
	switch {
	case st.Current:
		fmt.Println(s.Success.Render("The card is up to date."))
	case st.Compatible:
		fmt.Println(s.Notice.Render("The card is compatible; a newer image is available."))
	default:
		fmt.Println(s.Problem.Render("The card needs the required image. Run 'txcompanion sdcard install --download'."))
	}

	store, cleanup, err := openLibrary(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()
	installs, err := store.Installs(cmd.Context(), t.BoardID)
	if err != nil {
		return err
	}
	if n := len(installs); n > 0 {
		last := installs[n-1]
		fmt.Println(s.Muted.Render(fmt.Sprintf("Last install: %s %s on %s (%d total)",
			last.Family, last.Version, last.InstalledAt.Local().Format("2006-01-02 15:04"), n)))
	}
	return nil
}

// download fetches the image for t to dest (or the default location),
// records it in the config and returns the saved path.
func download(ctx context.Context, t sdcard.Target, dest string) (string, error) {
	url, err := sdcard.DownloadURL(cfg.DownloadURL, cfg.Branch, t)
	if err != nil {
		return "", err
	}
	if dest == "" {
		dest = sdcard.DefaultDestZipPath(cfg.LastSDDir, t)
	}

	d := &sdcard.Downloader{
		Client: &http.Client{Timeout: time.Duration(cfg.DownloadTimeout) * time.Second},
		Fs:     afero.NewOsFs(),
	}
	fmt.Printf("Downloading %s\n", url)
	n, err := d.Download(ctx, url, dest, printProgress)
	fmt.Println()
	if err != nil {
		return "", err
	}
	fmt.Printf("Saved %s (%s)\n", dest, humanBytes(n))

	sdcard.RecordDownload(cfg, dest, t)
	if err := config.Persist(cfg); err != nil {
		return "", fmt.Errorf("failed to record download: %w", err)
	}
	return dest, nil
}

func runSDCardInstall(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t, err := sdcard.TargetFor(cfg)
	if err != nil {
		return err
	}
	card := newCard()
	if card.Path == "" {
		return sdcard.ErrNoSDPath
	}

	var zipPath string
	switch {
	case len(args) == 1:
		zipPath = args[0]
	case sdcardFlags.download:
		if zipPath, err = download(ctx, t, sdcardFlags.out); err != nil {
			return err
		}
	default:
		zipPath = sdcard.LastZipPath(cfg)
	}
	if zipPath == "" {
		return fmt.Errorf("no image to install: pass a zip file or use --download")
	}

	fmt.Printf("Installing %s into %s\n", zipPath, card.Path)
	err = card.Install(ctx, zipPath, t, printProgress)
	fmt.Println()
	if err != nil {
		return err
	}
	fmt.Println(themeStyles().Success.Render(fmt.Sprintf("Installed %s %s. Previous content kept in %s", t.Family, t.Version, card.BackupPath())))

	store, cleanup, err := openLibrary(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	if err := store.RecordInstall(ctx, t.BoardID, library.Install{Family: t.Family, Version: t.Version, Path: card.Path}); err != nil {
		return err
	}

	return runHooks(ctx, postSDInstall, hooks.Variables{Radio: t.BoardID, SDPath: card.Path, Version: t.Version})
}

func printProgress(done, total int64) {
	fmt.Printf("\r%s", progressBar(done, total))
}

package sdcard

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/txcompanion/internal/config"
	"github.com/mark3labs/txcompanion/internal/radio"
)

// SourceZipFile is the archive name of an image on the download server.
func SourceZipFile(t Target) string {
	return fmt.Sprintf("sdcard-%s-%s.zip", t.Family, t.Version)
}

// DownloadURL builds <base>/sdcard/[<flavour>-<board>/]sdcard-<family>-<version>.zip.
// Nightly builds are published without the per-board folder.
func DownloadURL(base, branch string, t Target) (string, error) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return "", fmt.Errorf("no download_url set")
	}

	url := base + "/sdcard/"
	if branch != config.BranchNightly {
		prefix, err := radio.FirmwarePrefix(t.FirmwareType)
		if err != nil {
			return "", err
		}
		url += prefix + "/"
	}
	return url + SourceZipFile(t), nil
}

// DefaultDestZipPath is where a download is saved when the user does not
// choose: the last used download folder, or the working directory.
func DefaultDestZipPath(lastDir string, t Target) string {
	if lastDir == "" {
		return SourceZipFile(t)
	}
	return filepath.Join(lastDir, SourceZipFile(t))
}

// RecordDownload stores where an image was saved and which version it is.
func RecordDownload(cfg *config.Config, destPath string, t Target) {
	cfg.SDZipDestFile = filepath.Base(destPath)
	cfg.LastSDDir = filepath.Dir(destPath)
	cfg.SDVersion = t.Version
}

// LastZipPath returns the path of the last downloaded image, or "" when no
// download was recorded.
func LastZipPath(cfg *config.Config) string {
	if cfg.SDZipDestFile == "" {
		return ""
	}
	return filepath.Join(cfg.LastSDDir, cfg.SDZipDestFile)
}

// Package sdcard manages the radio's SD card image on the computer: the
// fixed folder layout, the installed version records, and downloading and
// installing new images. All file access goes through an afero.Fs.
package sdcard

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/txcompanion/internal/config"
	"github.com/mark3labs/txcompanion/internal/logger"
	"github.com/mark3labs/txcompanion/internal/radio"
	"github.com/spf13/afero"
)

var log = logger.Named("sdcard")

// Record files written to the root of an installed image.
const (
	VersionFile = "opentx.sdcard.version"
	FamilyFile  = "opentx.sdcard.family"
)

// RequiredVersion is the image version this release of txcompanion
// installs when none is configured.
const RequiredVersion = "2.3V0025"

var (
	// ErrNoSDPath is returned when no SD card folder is configured.
	ErrNoSDPath = errors.New("no SD card folder set; run txcompanion setup or set sd_path")
	// ErrEmptyArchive is returned when a downloaded image contains no files.
	ErrEmptyArchive = errors.New("archive contains no files")
)

// Root selects the standard card folder or the user's custom overlay.
type Root int

const (
	RootStd Root = iota
	RootCustom
)

func (r Root) String() string {
	if r == RootCustom {
		return "custom"
	}
	return "standard"
}

// Folder is one directory of the card layout.
type Folder int

const (
	FolderRoot Folder = iota
	FolderCrossfire
	FolderEEPROM
	FolderFirmware
	FolderImages
	FolderLayouts
	FolderLogs
	FolderModels
	FolderScreenshots
	FolderScripts
	FolderScriptsFunctions
	FolderScriptsMixes
	FolderScriptsTelemetry
	FolderScriptsWizard
	FolderSounds
	FolderSoundsLanguage
	FolderSoundsLanguageSystem
	FolderSxR
	FolderThemes
	FolderWidgets
	folderCount
)

// %s is replaced by the sound language.
var folderNames = [folderCount]string{
	FolderRoot:                 "",
	FolderCrossfire:            "CROSSFIRE",
	FolderEEPROM:               "EEPROM",
	FolderFirmware:             "FIRMWARE",
	FolderImages:               "IMAGES",
	FolderLayouts:              "LAYOUTS",
	FolderLogs:                 "LOGS",
	FolderModels:               "MODELS",
	FolderScreenshots:          "SCREENSHOTS",
	FolderScripts:              "SCRIPTS",
	FolderScriptsFunctions:     "SCRIPTS/FUNCTIONS",
	FolderScriptsMixes:         "SCRIPTS/MIXES",
	FolderScriptsTelemetry:     "SCRIPTS/TELEMETRY",
	FolderScriptsWizard:        "SCRIPTS/WIZARD",
	FolderSounds:               "SOUNDS",
	FolderSoundsLanguage:       "SOUNDS/%s",
	FolderSoundsLanguageSystem: "SOUNDS/%s/SYSTEM",
	FolderSxR:                  "SxR",
	FolderThemes:               "THEMES",
	FolderWidgets:              "WIDGETS",
}

// Folders returns every folder of the layout, root first.
func Folders() []Folder {
	out := make([]Folder, 0, folderCount)
	for f := FolderRoot; f < folderCount; f++ {
		out = append(out, f)
	}
	return out
}

// Card is the SD card image folder (and optional custom overlay) on disk.
type Card struct {
	Fs         afero.Fs
	Path       string
	CustomPath string
	Language   string
}

// New returns the card described by cfg.
func New(fs afero.Fs, cfg *config.Config) *Card {
	return &Card{Fs: fs, Path: cfg.SDPath, CustomPath: cfg.CustomSDPath, Language: cfg.SDLanguage}
}

// RootPath returns the folder of root, or "" when it is not configured.
func (c *Card) RootPath(root Root) string {
	if root == RootCustom {
		return c.CustomPath
	}
	return c.Path
}

// HasRoot reports whether root is configured.
func (c *Card) HasRoot(root Root) bool {
	return strings.TrimSpace(c.RootPath(root)) != ""
}

// FolderPath returns the path of folder under root.
func (c *Card) FolderPath(folder Folder, root Root) (string, error) {
	if folder < FolderRoot || folder >= folderCount {
		return "", fmt.Errorf("unknown folder %d", folder)
	}
	if !c.HasRoot(root) {
		if root == RootCustom {
			return "", fmt.Errorf("no custom SD card folder set")
		}
		return "", ErrNoSDPath
	}
	name := folderNames[folder]
	if strings.Contains(name, "%s") {
		lang := c.Language
		if lang == "" {
			lang = "en"
		}
		name = fmt.Sprintf(name, lang)
	}
	return filepath.Join(c.RootPath(root), filepath.FromSlash(name)), nil
}

// CreateFolders creates the full layout under root. Existing folders are
// left alone.
func (c *Card) CreateFolders(root Root) error {
	for _, f := range Folders() {
		path, err := c.FolderPath(f, root)
		if err != nil {
			return err
		}
		if err := c.Fs.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	log.Debug("created %s folder structure in %s", root, c.RootPath(root))
	return nil
}

// InstalledVersion returns the version record of the card, or "" when
// there is none.
func (c *Card) InstalledVersion() (string, error) {
	return c.readRecord(VersionFile)
}

// InstalledFamily returns the family record of the card, or "" when there
// is none.
func (c *Card) InstalledFamily() (string, error) {
	return c.readRecord(FamilyFile)
}

// WriteRecords stores the family and version of the installed image.
func (c *Card) WriteRecords(family, version string) error {
	if !c.HasRoot(RootStd) {
		return ErrNoSDPath
	}
	if err := c.writeRecord(FamilyFile, family); err != nil {
		return err
	}
	return c.writeRecord(VersionFile, version)
}

// readRecord returns the first line of a record file.
func (c *Card) readRecord(name string) (string, error) {
	if !c.HasRoot(RootStd) {
		return "", ErrNoSDPath
	}
	path := filepath.Join(c.Path, name)
	ok, err := afero.Exists(c.Fs, path)
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	if !ok {
		log.Debug("%s not found", path)
		return "", nil
	}
	data, err := afero.ReadFile(c.Fs, path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(line), nil
}

func (c *Card) writeRecord(name, value string) error {
	if err := c.Fs.MkdirAll(c.Path, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", c.Path, err)
	}
	path := filepath.Join(c.Path, name)
	if err := afero.WriteFile(c.Fs, path, []byte(value+"\n"), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Target is the image a firmware needs.
type Target struct {
	FirmwareType string
	BoardID      string
	Family       string
	Version      string
}

// TargetFor derives the wanted image from the configured firmware type.
// The version is cfg.SDVersion, or RequiredVersion when unset.
func TargetFor(cfg *config.Config) (Target, error) {
	id, err := radio.IDFromFirmwareType(cfg.FirmwareType)
	if err != nil {
		return Target{}, err
	}
	b, err := radio.Lookup(id)
	if err != nil {
		return Target{}, err
	}
	version := cfg.SDVersion
	if version == "" {
		version = RequiredVersion
	}
	if _, err := radio.ParseVersion(version); err != nil {
		return Target{}, fmt.Errorf("sd_version: %w", err)
	}
	return Target{FirmwareType: cfg.FirmwareType, BoardID: b.ID, Family: b.Family, Version: version}, nil
}

// Status compares the installed image with a target.
type Status struct {
	Path             string `json:"path"`
	InstalledFamily  string `json:"installed_family"`
	InstalledVersion string `json:"installed_version"`
	Family           string `json:"family"`
	Version          string `json:"version"`
	// Compatible is true when the families match and the installed image
	// has the same major and minor version.
	Compatible      bool `json:"compatible"`
	Current         bool `json:"current"`
	UpdateAvailable bool `json:"update_available"`
}

// Status reads the card records and compares them with t.
func (c *Card) Status(t Target) (*Status, error) {
	family, err := c.InstalledFamily()
	if err != nil {
		return nil, err
	}
	version, err := c.InstalledVersion()
	if err != nil {
		return nil, err
	}

	st := &Status{
		Path:             c.Path,
		InstalledFamily:  family,
		InstalledVersion: version,
		Family:           t.Family,
		Version:          t.Version,
	}

	want, err := radio.ParseVersion(t.Version)
	if err != nil {
		return nil, fmt.Errorf("target version: %w", err)
	}
	have, err := radio.ParseVersion(version)
	if err != nil {
		if version != "" {
			log.Warn("unreadable version record %q: %v", version, err)
		}
		st.UpdateAvailable = true
		return st, nil
	}

	sameFamily := family == t.Family
	st.Compatible = sameFamily && have.Major == want.Major && have.Minor == want.Minor
	st.Current = sameFamily && have.Compare(want) == 0
	st.UpdateAvailable = !sameFamily || have.Less(want)
	return st, nil
}

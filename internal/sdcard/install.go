package sdcard

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// BackupPath returns the folder the previous card contents are moved to.
func (c *Card) BackupPath() string {
	return c.Path + ".bak"
}

// Install replaces the card folder with the image in zipPath.
//
// The archive is unpacked next to itself (zipPath without ".zip"); that
// folder is removed again whenever the install stops early. The current card folder is
// moved to BackupPath, replacing an older backup, and the unpacked tree is
// copied into place. Afterwards the layout is completed, the custom
// overlay merged and the family and version of t recorded.
func (c *Card) Install(ctx context.Context, zipPath string, t Target, progress Progress) error {
	if !c.HasRoot(RootStd) {
		return ErrNoSDPath
	}

	unzipPath := strings.TrimSuffix(zipPath, ".zip")
	if unzipPath == zipPath {
		unzipPath = zipPath + ".d"
	}

	log.Info("unpacking %s to %s", zipPath, unzipPath)
	n, err := Unzip(ctx, c.Fs, zipPath, unzipPath, progress)
	if err != nil {
		c.tidy(unzipPath)
		return fmt.Errorf("failed to unzip the downloaded SD card: %w", err)
	}
	log.Debug("unpacked %d files", n)

	if err := c.backup(); err != nil {
		c.tidy(unzipPath)
		return err
	}

	if err := CopyTree(ctx, c.Fs, unzipPath, c.Path, progress); err != nil {
		c.tidy(unzipPath)
		return fmt.Errorf("unable to replace SD folder with downloaded version: %w", err)
	}
	if err := c.Fs.RemoveAll(unzipPath); err != nil {
		return fmt.Errorf("failed to delete temporary unzipped SD card folder: %w", err)
	}

	if err := c.CreateFolders(RootStd); err != nil {
		return err
	}
	if c.HasRoot(RootCustom) {
		if err := c.MergeCustom(ctx); err != nil {
			return fmt.Errorf("merging custom folder: %w", err)
		}
	}
	if err := c.WriteRecords(t.Family, t.Version); err != nil {
		return err
	}

	log.Info("installed SD card %s %s in %s", t.Family, t.Version, c.Path)
	return nil
}

func (c *Card) tidy(path string) {
	if err := c.Fs.RemoveAll(path); err != nil {
		log.Error("failed to tidy up %s: %v", path, err)
	}
}

// backup moves the card folder aside. Nothing happens when it does not
// exist yet.
func (c *Card) backup() error {
	ok, err := afero.DirExists(c.Fs, c.Path)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	bak := c.BackupPath()
	exists, err := afero.DirExists(c.Fs, bak)
	if err != nil {
		return err
	}
	if exists {
		if err := c.Fs.RemoveAll(bak); err != nil {
			return fmt.Errorf("failed to delete previous SD folder backup: %w", err)
		}
	}
	if err := c.Fs.Rename(c.Path, bak); err != nil {
		return fmt.Errorf("unable to backup SD folder: %w", err)
	}
	log.Debug("backed up %s to %s", c.Path, bak)
	return nil
}

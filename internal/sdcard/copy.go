package sdcard

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// BlockSize is the unit of a file copy. Progress is reported and
// cancellation checked once per block.
const BlockSize = 512

// Progress receives the amount done and the total. total is -1 when
// unknown.
type Progress func(done, total int64)

// CopyFile copies src to dst block by block. dst is created or truncated.
func CopyFile(ctx context.Context, fs afero.Fs, src, dst string, progress Progress) error {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", src, err)
	}

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("cannot write %s: %w", dst, err)
	}

	total := info.Size()
	buf := make([]byte, BlockSize)
	var done int64
	for {
		if err := ctx.Err(); err != nil {
			out.Close()
			return err
		}
		n, rerr := in.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				out.Close()
				return fmt.Errorf("write error on %s: %w", dst, werr)
			}
			done += int64(n)
			if progress != nil {
				progress(done, total)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			out.Close()
			return fmt.Errorf("read error on %s: %w", src, rerr)
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}

// CopyTree copies the directory src into dst, creating dst and overwriting
// files that already exist. progress counts files.
func CopyTree(ctx context.Context, fs afero.Fs, src, dst string, progress Progress) error {
	var files []string
	err := afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning %s: %w", src, err)
	}

	if err := fs.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	// directories first so empty ones survive
	err = afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		return fs.MkdirAll(filepath.Join(dst, rel), 0755)
	})
	if err != nil {
		return fmt.Errorf("creating folders in %s: %w", dst, err)
	}

	total := int64(len(files))
	for i, path := range files {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if err := CopyFile(ctx, fs, path, filepath.Join(dst, rel), nil); err != nil {
			return err
		}
		if progress != nil {
			progress(int64(i+1), total)
		}
	}
	return nil
}

// MergeCustom copies the custom overlay over the standard card folder.
func (c *Card) MergeCustom(ctx context.Context) error {
	if !c.HasRoot(RootStd) {
		return ErrNoSDPath
	}
	if !c.HasRoot(RootCustom) {
		return fmt.Errorf("no custom SD card folder set")
	}
	ok, err := afero.DirExists(c.Fs, c.CustomPath)
	if err != nil {
		return err
	}
	if !ok {
		log.Debug("custom folder %s does not exist, nothing to merge", c.CustomPath)
		return nil
	}
	log.Info("merging %s into %s", c.CustomPath, c.Path)
	return CopyTree(ctx, c.Fs, c.CustomPath, c.Path, nil)
}

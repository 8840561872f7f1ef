package sdcard

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Unzip extracts the archive at zipPath into dest and returns the number
// of files written. Entries that would land outside dest are rejected.
// ctx is checked between entries and between blocks; progress counts
// files.
func Unzip(ctx context.Context, fs afero.Fs, zipPath, dest string, progress Progress) (int, error) {
	f, err := fs.Open(zipPath)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", zipPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", zipPath, err)
	}
	r, err := zip.NewReader(f, info.Size())
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", zipPath, err)
	}

	var total int64
	for _, zf := range r.File {
		if !zf.FileInfo().IsDir() {
			total++
		}
	}
	if total == 0 {
		return 0, ErrEmptyArchive
	}

	if err := fs.MkdirAll(dest, 0755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dest, err)
	}

	written := 0
	for _, zf := range r.File {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		name := filepath.FromSlash(zf.Name)
		if !filepath.IsLocal(name) {
			return written, fmt.Errorf("archive entry %q escapes destination", zf.Name)
		}
		target := filepath.Join(dest, name)

		if zf.FileInfo().IsDir() {
			if err := fs.MkdirAll(target, 0755); err != nil {
				return written, fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}
		if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return written, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), err)
		}
		if err := extract(ctx, fs, zf, target); err != nil {
			return written, err
		}
		written++
		if progress != nil {
			progress(int64(written), total)
		}
	}
	return written, nil
}

func extract(ctx context.Context, fs afero.Fs, zf *zip.File, target string) error {
	rc, err := zf.Open()
	if err != nil {
		return fmt.Errorf("opening entry %s: %w", zf.Name, err)
	}
	defer rc.Close()

	out, err := fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}

	buf := make([]byte, BlockSize)
	for {
		if err := ctx.Err(); err != nil {
			out.Close()
			return err
		}
		n, rerr := rc.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				out.Close()
				return fmt.Errorf("write error on %s: %w", target, werr)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			out.Close()
			return fmt.Errorf("extracting %s: %w", zf.Name, rerr)
		}
	}
	return out.Close()
}

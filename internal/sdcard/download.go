package sdcard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Downloader fetches images over HTTP into an afero.Fs.
type Downloader struct {
	Client *http.Client
	Fs     afero.Fs
}

// progressWriter reports bytes as they pass through and stops on
// cancellation.
type progressWriter struct {
	ctx      context.Context
	w        io.Writer
	done     int64
	total    int64
	progress Progress
}

func (p *progressWriter) Write(b []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := p.w.Write(b)
	p.done += int64(n)
	if p.progress != nil {
		p.progress(p.done, p.total)
	}
	return n, err
}

// Download saves url to dest and returns the number of bytes written. The
// body goes to dest+".part" first and is renamed once complete, so an
// aborted download never leaves a truncated archive at dest.
func (d *Downloader) Download(ctx context.Context, url, dest string, progress Progress) (int64, error) {
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("downloading %s: %s", url, resp.Status)
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := d.Fs.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	part := dest + ".part"
	f, err := d.Fs.OpenFile(part, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", part, err)
	}

	pw := &progressWriter{ctx: ctx, w: f, total: resp.ContentLength, progress: progress}
	n, err := io.Copy(pw, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		d.Fs.Remove(part)
		return n, fmt.Errorf("downloading %s: %w", url, err)
	}

	if err := d.Fs.Rename(part, dest); err != nil {
		d.Fs.Remove(part)
		return n, fmt.Errorf("saving %s: %w", dest, err)
	}
	log.Info("downloaded %s (%d bytes)", dest, n)
	return n, nil
}

package sdcard

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeZip builds an archive; names ending in "/" become directory entries.
func makeZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if !strings.HasSuffix(name, "/") {
			_, err = w.Write([]byte(body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

var image = map[string]string{
	"SOUNDS/":                  "",
	"SOUNDS/en/hello.wav":      "wav",
	"SCRIPTS/WIZARD/plane.lua": "lua",
	"IMAGES/":                  "",
}

func TestUnzip(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dl/img.zip", makeZip(t, image), 0644))

	var steps []int64
	n, err := Unzip(context.Background(), fs, "/dl/img.zip", "/dl/img", func(done, total int64) {
		assert.Equal(t, int64(2), total)
		steps = append(steps, done)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int64{1, 2}, steps)
	assert.Equal(t, "lua", readFile(t, fs, "/dl/img/SCRIPTS/WIZARD/plane.lua"))
	ok, _ := afero.DirExists(fs, "/dl/img/IMAGES")
	assert.True(t, ok)
}

func TestUnzip_Rejects(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, afero.WriteFile(fs, "/empty.zip", makeZip(t, nil), 0644))
	_, err := Unzip(context.Background(), fs, "/empty.zip", "/out", nil)
	require.ErrorIs(t, err, ErrEmptyArchive)

	require.NoError(t, afero.WriteFile(fs, "/dirs.zip", makeZip(t, map[string]string{"SOUNDS/": ""}), 0644))
	_, err = Unzip(context.Background(), fs, "/dirs.zip", "/out", nil)
	require.ErrorIs(t, err, ErrEmptyArchive)

	require.NoError(t, afero.WriteFile(fs, "/slip.zip", makeZip(t, map[string]string{"../evil.lua": "x"}), 0644))
	_, err = Unzip(context.Background(), fs, "/slip.zip", "/out", nil)
	require.ErrorContains(t, err, "escapes destination")

	require.NoError(t, afero.WriteFile(fs, "/junk.zip", []byte("not a zip"), 0644))
	_, err = Unzip(context.Background(), fs, "/junk.zip", "/out", nil)
	require.Error(t, err)

	_, err = Unzip(context.Background(), fs, "/missing.zip", "/out", nil)
	require.Error(t, err)
}

func TestUnzip_Cancel(t *testing.T) {
	fs := afero.NewMemMapFs()
	big := strings.Repeat("x", 4*BlockSize)
	require.NoError(t, afero.WriteFile(fs, "/img.zip", makeZip(t, map[string]string{"a.wav": big, "b.wav": big, "c.wav": big}), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	n, err := Unzip(ctx, fs, "/img.zip", "/out", func(done, total int64) {
		cancel()
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, n, "stops before the next entry")

	cancel()
	n, err = Unzip(ctx, fs, "/img.zip", "/again", nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestInstall(t *testing.T) {
	c := memCard()
	require.NoError(t, afero.WriteFile(c.Fs, "/dl/sdcard-taranis-x9-2.3V0025.zip", makeZip(t, image), 0644))

	// the card holds a previous image and an older backup exists
	require.NoError(t, afero.WriteFile(c.Fs, "/sd/MODELS/old.bin", []byte("old"), 0644))
	require.NoError(t, afero.WriteFile(c.Fs, "/sd.bak/stale.txt", []byte("stale"), 0644))
	// the custom overlay wins over the image
	require.NoError(t, afero.WriteFile(c.Fs, "/custom/SCRIPTS/WIZARD/plane.lua", []byte("mine"), 0644))

	var calls int
	var last, total int64
	err := c.Install(context.Background(), "/dl/sdcard-taranis-x9-2.3V0025.zip", x9Target(), func(done, n int64) {
		calls++
		last, total = done, n
	})
	require.NoError(t, err)

	assert.Equal(t, 4, calls, "two files unpacked then two copied")
	assert.Equal(t, total, last)

	assert.Equal(t, "wav", readFile(t, c.Fs, "/sd/SOUNDS/en/hello.wav"))
	assert.Equal(t, "mine", readFile(t, c.Fs, "/sd/SCRIPTS/WIZARD/plane.lua"))
	assert.Equal(t, "old", readFile(t, c.Fs, "/sd.bak/MODELS/old.bin"))

	ok, _ := afero.Exists(c.Fs, "/sd.bak/stale.txt")
	assert.False(t, ok, "older backup replaced")
	ok, _ = afero.Exists(c.Fs, "/sd/MODELS/old.bin")
	assert.False(t, ok, "previous contents moved to backup")
	ok, _ = afero.DirExists(c.Fs, "/dl/sdcard-taranis-x9-2.3V0025")
	assert.False(t, ok, "temp folder removed")
	ok, _ = afero.DirExists(c.Fs, "/sd/SOUNDS/de/SYSTEM")
	assert.True(t, ok, "layout completed")

	st, err := c.Status(x9Target())
	require.NoError(t, err)
	assert.True(t, st.Current)
}

func TestInstall_FreshCard(t *testing.T) {
	c := memCard()
	c.CustomPath = ""
	require.NoError(t, afero.WriteFile(c.Fs, "/img.zip", makeZip(t, image), 0644))

	require.NoError(t, c.Install(context.Background(), "/img.zip", x9Target(), nil))
	ok, _ := afero.DirExists(c.Fs, c.BackupPath())
	assert.False(t, ok, "nothing to back up")
	assert.Equal(t, "lua", readFile(t, c.Fs, "/sd/SCRIPTS/WIZARD/plane.lua"))
}

func TestInstall_UnzipFailureLeavesCardAlone(t *testing.T) {
	c := memCard()
	require.NoError(t, afero.WriteFile(c.Fs, "/sd/MODELS/old.bin", []byte("old"), 0644))
	require.NoError(t, afero.WriteFile(c.Fs, "/dl/img.zip", makeZip(t, map[string]string{"a.txt": "a", "../b.txt": "b"}), 0644))

	err := c.Install(context.Background(), "/dl/img.zip", x9Target(), nil)
	require.ErrorContains(t, err, "failed to unzip")

	ok, _ := afero.DirExists(c.Fs, "/dl/img")
	assert.False(t, ok, "partial extraction removed")
	assert.Equal(t, "old", readFile(t, c.Fs, "/sd/MODELS/old.bin"))
	ok, _ = afero.DirExists(c.Fs, c.BackupPath())
	assert.False(t, ok)
}

func TestInstall_CancelledRemovesTempFolder(t *testing.T) {
	c := memCard()
	require.NoError(t, afero.WriteFile(c.Fs, "/sd/MODELS/old.bin", []byte("old"), 0644))
	require.NoError(t, afero.WriteFile(c.Fs, "/dl/img.zip", makeZip(t, image), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	err := c.Install(ctx, "/dl/img.zip", x9Target(), func(done, total int64) {
		cancel()
	})
	require.ErrorIs(t, err, context.Canceled)

	ok, _ := afero.DirExists(c.Fs, "/dl/img")
	assert.False(t, ok, "temp folder removed")
	assert.Equal(t, "old", readFile(t, c.Fs, "/sd/MODELS/old.bin"), "card untouched")
}

func TestInstall_CopyCancelledRemovesTempFolder(t *testing.T) {
	c := memCard()
	require.NoError(t, afero.WriteFile(c.Fs, "/dl/img.zip", makeZip(t, image), 0644))

	// unpacking reports two files, the copy step cancels on its first
	ctx, cancel := context.WithCancel(context.Background())
	var calls int
	err := c.Install(ctx, "/dl/img.zip", x9Target(), func(done, total int64) {
		calls++
		if calls == 3 {
			cancel()
		}
	})
	require.ErrorIs(t, err, context.Canceled)

	ok, _ := afero.DirExists(c.Fs, "/dl/img")
	assert.False(t, ok, "temp folder removed")
}

func TestInstall_NoPath(t *testing.T) {
	c := memCard()
	c.Path = ""
	require.ErrorIs(t, c.Install(context.Background(), "/img.zip", x9Target(), nil), ErrNoSDPath)
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate points XDG_CONFIG_HOME and the working directory at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	origWd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmpDir))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got := GlobalPath(); got != "/custom/config/txcompanion/txcompanion.yml" {
		t.Errorf("GlobalPath() = %v", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	got := GlobalPath()
	if !filepath.IsAbs(got) {
		t.Errorf("GlobalPath() should return absolute path, got %v", got)
	}
	if filepath.Base(got) != "txcompanion.yml" {
		t.Errorf("GlobalPath() should end with txcompanion.yml, got %v", got)
	}
}

func TestExists(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Fatal("Exists() = true, want false when no config files exist")
	}

	require.NoError(t, os.WriteFile(ProjectPath(), []byte("radio: x7\n"), 0644))
	if !Exists() {
		t.Error("Exists() = false, want true when project config exists")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "x9d+", cfg.Radio)
	require.Equal(t, BranchRelease, cfg.Branch)
	require.Equal(t, DefaultChannelOrder, cfg.ChannelOrder)
	require.Equal(t, ".txcompanion", cfg.DataDir)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "en", cfg.SDLanguage)
	require.Equal(t, 300, cfg.DownloadTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	require.NoError(t, WriteGlobal(&Config{
		Radio:        "x7",
		Branch:       BranchRC,
		ChannelOrder: "AETR",
		SDPath:       "/global/sd",
	}))
	require.NoError(t, os.WriteFile(ProjectPath(), []byte("sd_path: /project/sd\n"), 0644))
	t.Setenv("TXCOMPANION_BRANCH", "nightly")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "x7", cfg.Radio, "global value should survive the project merge")
	require.Equal(t, "/project/sd", cfg.SDPath, "project file overrides global")
	require.Equal(t, BranchNightly, cfg.Branch, "env overrides files")
	require.Equal(t, "AETR", cfg.ChannelOrder)
}

func TestWriteProject(t *testing.T) {
	isolate(t)

	cfg := &Config{Radio: "x10", SDPath: "/media/sd", ChannelOrder: "TAER", LogLevel: "debug"}
	require.NoError(t, WriteProject(cfg))

	data, err := os.ReadFile(ProjectPath())
	require.NoError(t, err)
	content := string(data)
	for _, field := range []string{"radio: x10", "sd_path: /media/sd", "channel_order: TAER", "log_level: debug"} {
		if !strings.Contains(content, field) {
			t.Errorf("Config file missing expected field: %s\nContent:\n%s", field, content)
		}
	}
}

func TestPersist_PrefersProjectFile(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile(ProjectPath(), []byte("radio: x7\n"), 0644))
	require.NoError(t, Persist(&Config{Radio: "x7", SDVersion: "2.3V0025"}))

	data, err := os.ReadFile(ProjectPath())
	require.NoError(t, err)
	require.Contains(t, string(data), "sd_version: 2.3V0025")
	_, err = os.Stat(GlobalPath())
	require.True(t, os.IsNotExist(err), "global config should not be created")
}

func TestDefaultChannel(t *testing.T) {
	tests := []struct {
		order string
		want  [4]int // rudder, elevator, throttle, ailerons
	}{
		{"RETA", [4]int{0, 1, 2, 3}},
		{"AETR", [4]int{3, 1, 2, 0}},
		{"taer", [4]int{3, 2, 0, 1}},
		{"", [4]int{0, 1, 2, 3}},
		{"RRTA", [4]int{-1, -1, -1, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			cfg := &Config{ChannelOrder: tt.order}
			for stick, want := range tt.want {
				if got := cfg.DefaultChannel(stick); got != want {
					t.Errorf("DefaultChannel(%d) = %d, want %d", stick, got, want)
				}
			}
		})
	}

	cfg := &Config{ChannelOrder: "RETA"}
	require.Equal(t, -1, cfg.DefaultChannel(4))
	require.Equal(t, -1, cfg.DefaultChannel(-1))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"valid", &Config{Radio: "x9d", ChannelOrder: "AETR", Branch: BranchRelease}, false},
		{"missing radio", &Config{ChannelOrder: "AETR", Branch: BranchRelease}, true},
		{"bad order", &Config{Radio: "x9d", ChannelOrder: "AET", Branch: BranchRelease}, true},
		{"bad branch", &Config{Radio: "x9d", ChannelOrder: "AETR", Branch: "beta"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

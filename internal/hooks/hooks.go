// Package hooks runs user commands after txcompanion changes something on
// disk, for example to sync the SD card folder to the radio or commit an
// exported model.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/txcompanion/internal/logger"
	"gopkg.in/yaml.v3"
)

var log = logger.Named("hooks")

// ConfigFileName is the name of the hooks configuration file.
const ConfigFileName = ".txcompanion.hooks.yml"

// LoadConfig loads the hooks configuration from dir.
// Returns nil if the file doesn't exist; hooks are optional.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("no hooks config at %s", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hooks config: %w", err)
	}
	for _, h := range append(append([]*HookConfig(nil), cfg.Hooks.PostModelSave...), cfg.Hooks.PostSDInstall...) {
		if h == nil || strings.TrimSpace(h.Command) == "" {
			return nil, fmt.Errorf("invalid hooks config %s: hook without command", path)
		}
	}

	log.Debug("loaded hooks config from %s (version: %d)", path, cfg.Version)
	return &cfg, nil
}

// Variables are expanded in hook commands and exported to the hook's
// environment as TXCOMPANION_<NAME>.
type Variables struct {
	Model   string // model name
	Radio   string // board id
	File    string // YAML file the model was imported from, if any
	SDPath  string
	Version string // SD card image version
}

func (v Variables) pairs() [][2]string {
	return [][2]string{
		{"model", v.Model},
		{"radio", v.Radio},
		{"file", v.File},
		{"sd_path", v.SDPath},
		{"version", v.Version},
	}
}

// Execute runs a hook command and returns its output.
// A failing or timed out command is reported in the output, not as an
// error; only cancellation of ctx is returned.
func Execute(ctx context.Context, hook *HookConfig, dir string, vars Variables) (string, error) {
	if hook == nil || hook.Command == "" {
		return "", nil
	}

	command := expandVariables(hook.Command, vars)
	log.Debug("running hook: %s", command)

	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	for _, p := range vars.pairs() {
		cmd.Env = append(cmd.Env, "TXCOMPANION_"+strings.ToUpper(p[0])+"="+p[1])
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if execCtx.Err() == context.DeadlineExceeded {
		log.Warn("hook timed out after %ds: %s", timeout, command)
		return fmt.Sprintf("[Hook timed out after %ds]\nPartial output:\n%s", timeout, stdout.String()), nil
	}

	output := stdout.String()
	if stderr.Len() > 0 {
		output += "\n[stderr]\n" + stderr.String()
	}
	if err != nil {
		log.Warn("hook failed: %v", err)
		return fmt.Sprintf("[Hook command failed: %v]\n%s", err, output), nil
	}
	return output, nil
}

// ExecuteAll runs hooks in order and joins their output with blank lines.
// It stops early only when ctx is cancelled.
func ExecuteAll(ctx context.Context, hooks []*HookConfig, dir string, vars Variables) (string, error) {
	var outputs []string
	for _, h := range hooks {
		out, err := Execute(ctx, h, dir, vars)
		if err != nil {
			return strings.Join(outputs, "\n"), err
		}
		if out != "" {
			outputs = append(outputs, out)
		}
	}
	return strings.Join(outputs, "\n"), nil
}

// expandVariables replaces {{variable}} placeholders in the command string.
func expandVariables(command string, vars Variables) string {
	result := command
	for _, p := range vars.pairs() {
		result = strings.ReplaceAll(result, "{{"+p[0]+"}}", p[1])
	}
	return result
}

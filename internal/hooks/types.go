package hooks

// Config is the top-level configuration loaded from .txcompanion.hooks.yml.
type Config struct {
	Version int         `yaml:"version"`
	Hooks   HooksConfig `yaml:"hooks"`
}

// HooksConfig lists the commands run after each kind of event. Several
// commands per event run in order.
type HooksConfig struct {
	PostModelSave []*HookConfig `yaml:"post_model_save"`
	PostSDInstall []*HookConfig `yaml:"post_sd_install"`
}

// HookConfig defines a single hook command.
type HookConfig struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout"` // seconds, default 30
}

// DefaultTimeout is the default timeout for hook execution in seconds.
const DefaultTimeout = 30

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// DefaultFiles are searched, in order, when no path is given.
var DefaultFiles = []string{
	"babybehave.yaml",
	"babybehave.yml",
	"babybehave.toml",
	"babybehave.ini",
}

// Discover returns the first default config file present in dir, or "".
func Discover(dir string) string {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults unchanged. The decoder is chosen by file extension.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigNotFoundError(path)
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".ini":
		err = decodeINI(data, cfg)
	default:
		return nil, NewUnsupportedFormatError(path)
	}
	if err != nil {
		return nil, NewConfigParseError(path, err)
	}

	return cfg, nil
}

// decodeINI maps top-level keys and a [log] section onto cfg.
//
//	policy = collect
//	color = true
//
//	[log]
//	level = debug
func decodeINI(data []byte, cfg *Config) error {
	file, err := ini.Load(data)
	if err != nil {
		return err
	}

	root := file.Section("")
	if root.HasKey("policy") {
		cfg.Policy = root.Key("policy").String()
	}
	if root.HasKey("format") {
		cfg.Format = root.Key("format").String()
	}
	if cfg.Color, err = iniBool(root, "color", cfg.Color); err != nil {
		return err
	}
	if cfg.Humanize, err = iniBool(root, "humanize", cfg.Humanize); err != nil {
		return err
	}

	log := file.Section("log")
	if log.HasKey("level") {
		cfg.Log.Level = log.Key("level").String()
	}
	if cfg.Log.Enabled, err = iniBool(log, "enabled", cfg.Log.Enabled); err != nil {
		return err
	}
	if cfg.Log.JSON, err = iniBool(log, "json", cfg.Log.JSON); err != nil {
		return err
	}

	return nil
}

func iniBool(sec *ini.Section, key string, current bool) (bool, error) {
	if !sec.HasKey(key) {
		return current, nil
	}
	return sec.Key(key).Bool()
}

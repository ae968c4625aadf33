// Package settings holds the command-line settings of the jumper binary:
// where data lives, how much to log and which defaults to play with.
// Values are layered by viper: flags override JUMPER_* environment
// variables, which override ~/.jumper/settings.yaml, which overrides the
// built-in defaults.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. JUMPER_LOG_LEVEL.
const EnvPrefix = "JUMPER"

// FileName is the settings file looked up in the data directory.
const FileName = "settings.yaml"

// Settings are the resolved CLI settings.
type Settings struct {
	DataDir  string `mapstructure:"data_dir"`
	DBPath   string `mapstructure:"db_path"`
	MapsDir  string `mapstructure:"maps_dir"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
	Preset   string `mapstructure:"preset"`
	Seed     int64  `mapstructure:"seed"` // 0 picks a fresh seed per match
}

// keys lists every setting; flags use the same names with dashes.
var keys = []string{"data_dir", "db_path", "maps_dir", "log_level", "log_file", "preset", "seed"}

// Loader resolves settings from all sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader with defaults and environment lookup set up.
func NewLoader() *Loader {
	v := viper.New()
	v.SetDefault("data_dir", "~/.jumper")
	v.SetDefault("db_path", "")
	v.SetDefault("maps_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("preset", "classic")
	v.SetDefault("seed", 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// BindFlags binds every flag in fs whose name matches a setting
// (dashes for underscores, e.g. --db-path).
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for _, key := range keys {
		f := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("settings: bind --%s: %w", f.Name, err)
		}
	}
	return nil
}

// Load resolves the settings. An explicit path must exist; otherwise the
// settings file in the data directory is read when present.
func (l *Loader) Load(path string) (Settings, error) {
	if path == "" {
		path = filepath.Join(expandHome(l.v.GetString("data_dir")), FileName)
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("settings: failed to read %s: %w", path, err)
		}
	}

	var s Settings
	if err := l.v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("settings: failed to parse: %w", err)
	}
	s.resolve()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// resolve expands ~ and fills paths derived from the data directory.
func (s *Settings) resolve() {
	s.DataDir = expandHome(s.DataDir)
	if s.DBPath == "" {
		s.DBPath = filepath.Join(s.DataDir, "jumper.db")
	}
	if s.MapsDir == "" {
		s.MapsDir = filepath.Join(s.DataDir, "maps")
	}
	s.DBPath = expandHome(s.DBPath)
	s.MapsDir = expandHome(s.MapsDir)
	s.LogFile = expandHome(s.LogFile)
}

// Validate checks values that cannot be checked by type alone.
func (s Settings) Validate() error {
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("settings: log_level: %w", err)
	}
	if s.DataDir == "" {
		return errors.New("settings: data_dir must not be empty")
	}
	return nil
}

// Level returns the parsed log level.
func (s Settings) Level() log.Level {
	lvl, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func expandHome(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

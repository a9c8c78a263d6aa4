package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings holds every runtime knob. There is deliberately no config
// file: values come from defaults, PROCBROWSE_* environment variables,
// and command-line flags, in increasing precedence.
type Settings struct {
	Interval     time.Duration `mapstructure:"interval"`
	Capacity     int           `mapstructure:"capacity"`
	CPUThreshold float64       `mapstructure:"cpu-threshold"`
	MemThreshold float64       `mapstructure:"mem-threshold"`
	LogLevel     string        `mapstructure:"log-level"`
}

const envPrefix = "PROCBROWSE"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("interval", 1500*time.Millisecond)
	v.SetDefault("capacity", 2048)
	v.SetDefault("cpu-threshold", 80.0)
	v.SetDefault("mem-threshold", 80.0)
	v.SetDefault("log-level", "info")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves settings from defaults, environment and the given flag
// set (flags win). flags may be nil.
func Load(flags *pflag.FlagSet) (Settings, error) {
	v := newViper()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Settings{}, err
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, err
	}
	if s.Capacity < 1 {
		s.Capacity = 2048
	}
	if s.Interval <= 0 {
		s.Interval = 1500 * time.Millisecond
	}
	return s, nil
}

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/match"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/vessel"
)

// FileName is the config file Load looks for
const FileName = "fleetcommand.cfg.json"

// EnvPrefix prefixes environment overrides, e.g. FLEETCOMMAND_LOGLEVEL
const EnvPrefix = "FLEETCOMMAND"

// Config is every tunable of a run
type Config struct {
	LogLevel  string  `mapstructure:"logLevel"`
	LogsDir   string  `mapstructure:"logsDir"`
	Seed      int64   `mapstructure:"seed"`
	TickRate  float64 `mapstructure:"tickRate"`
	TimeScale float64 `mapstructure:"timeScale"`

	Match   match.Settings  `mapstructure:"match"`
	Vessels vessel.Settings `mapstructure:"vessels"`
}

// Default is the configuration used when no file overrides it
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogsDir:   "./fleetlogs",
		Seed:      1,
		TickRate:  30,
		TimeScale: 1,
		Match:     match.DefaultSettings(),
		Vessels:   vessel.DefaultSettings(),
	}
}

// Load reads FileName from configDir over the defaults. A missing file is not
// an error.
func Load(configDir string) (Config, error) {
	setDefaults("", reflect.ValueOf(Default()))

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every leaf of v under its mapstructure key path
func setDefaults(prefix string, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if f := v.Field(i); f.Kind() == reflect.Struct {
			setDefaults(key, f)
		} else {
			viper.SetDefault(key, f.Interface())
		}
	}
}

// Initializing common application configuration
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "IMGFILTER"

type Config struct {
	Input  InputConfig  `mapstructure:"input"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

type InputConfig struct {
	AutoOrient bool `mapstructure:"auto_orient"`
}

type OutputConfig struct {
	Dir         string `mapstructure:"dir"`
	JPEGQuality int    `mapstructure:"jpeg_quality"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text | json
}

// LoadConfig reads settings from the environment only, filters and
// files are selected by command line flags.
func LoadConfig() *viper.Viper {

	viperInstance := viper.New()

	setDefaults(viperInstance)

	viperInstance.SetEnvPrefix(envPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	return viperInstance
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode config into struct")
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return nil, errors.Errorf("output.jpeg_quality must be in [1,100], got %d", c.Output.JPEGQuality)
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return nil, errors.New("output.dir must not be empty")
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input.auto_orient", false)

	v.SetDefault("output.dir", "results")
	v.SetDefault("output.jpeg_quality", 75)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Package config resolves the paths used by the fashion_mnist command from an
// optional config file and FASHION_* environment variables.
package config

import "path/filepath"

import "github.com/magneticio/go-common/logging"
import homedir "github.com/mitchellh/go-homedir"
import "github.com/pkg/errors"
import "github.com/spf13/viper"

const (
	KeyImages  = "images"
	KeyModels  = "models"
	KeyDataset = "dataset"
	KeyVerbose = "verbose"
)

// Config holds the output locations and the extra dataset search directory.
// Training hyperparameters are fixed and are not part of it.
type Config struct {
	Images  string `mapstructure:"images"`
	Models  string `mapstructure:"models"`
	Dataset string `mapstructure:"dataset"`
	Verbose bool   `mapstructure:"verbose"`
}

// SetDefaults registers the defaults and the environment bindings on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyImages, "images")
	v.SetDefault(KeyModels, "models")
	v.SetDefault(KeyDataset, "")
	v.SetDefault(KeyVerbose, false)
	v.SetEnvPrefix("FASHION")
	v.AutomaticEnv()
	v.BindEnv("config", "FASHIONCONFIG")
}

// ReadFile reads cfgFile into v, or $HOME/.fashion/config.yaml when cfgFile is
// empty. A missing default file is not an error.
func ReadFile(v *viper.Viper, cfgFile string) error {
	if cfgFile == "" {
		cfgFile = v.GetString("config")
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "can not find home directory")
		}
		v.AddConfigPath(filepath.Join(home, ".fashion"))
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return errors.Wrap(err, "config can not be read")
	}
	logging.Info("Using config file: %v\n", v.ConfigFileUsed())
	return nil
}

// Load builds the Config from v, expanding a leading ~ in the paths
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	for _, p := range []*string{&c.Images, &c.Models, &c.Dataset} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, errors.Wrapf(err, "expanding '%s'", *p)
		}
		*p = expanded
	}
	return &c, nil
}

// Validate verifies the paths are usable
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Images == "" {
		return errors.New("images directory must be set")
	}
	if c.Models == "" {
		return errors.New("models directory must be set")
	}
	return nil
}

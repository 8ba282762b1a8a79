package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/viper"
)

// Load reads fileLocation into vip and decodes the merged settings over the
// defaults. Values bound to vip (e.g. CLI flags) take priority over the file.
// A missing default config file is not an error.
func Load(vip *viper.Viper, fileLocation string) (*Config, error) {
	if err := loadConfigFile(vip, fileLocation); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(vip *viper.Viper, fileLocation string) error {
	explicit := fileLocation != ""
	if !explicit {
		fileLocation = DefaultConfigFile
	}

	vip.SetConfigFile(smutil.GetCanonicalPath(fileLocation))
	if err := vip.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && (errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

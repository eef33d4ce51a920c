package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/deso-protocol/purehash/digest"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	"github.com/spf13/viper"
)

const (
	ConfigDirVendorName = "deso"
	ConfigDirAppName    = "purehash"
)

type Config struct {
	// Hashing
	Algorithm digest.Algorithm

	// Manifest
	DBDirectory   string
	Workers       int
	HashCacheSize int

	// Logging
	LogDirectory string
	GlogV        uint64
	GlogVmodule  string
	DebugConfig  bool
}

func LoadConfig() (*Config, error) {
	config := Config{}

	// Hashing
	alg, err := digest.ParseAlgorithm(viper.GetString("algorithm"))
	if err != nil {
		return nil, errors.Wrapf(err, "LoadConfig:")
	}
	config.Algorithm = alg

	// Manifest
	config.DBDirectory = viper.GetString("db-dir")
	if config.DBDirectory == "" {
		config.DBDirectory = GetDefaultDBDir()
	}
	config.Workers = viper.GetInt("workers")
	if config.Workers < 0 {
		return nil, errors.Errorf("LoadConfig: workers must not be negative, got %d", config.Workers)
	}
	config.HashCacheSize = viper.GetInt("hash-cache-size")
	if config.HashCacheSize <= 0 {
		return nil, errors.Errorf("LoadConfig: hash-cache-size must be positive, got %d", config.HashCacheSize)
	}

	// Logging
	config.LogDirectory = viper.GetString("log-dir")
	config.GlogV = viper.GetUint64("glog-v")
	config.GlogVmodule = viper.GetString("glog-vmodule")
	config.DebugConfig = viper.GetBool("debug-config")

	return &config, nil
}

// GetDefaultDBDir returns the manifest database directory under the user's global
// configuration folder.
func GetDefaultDBDir() string {
	configDirs := configdir.New(ConfigDirVendorName, ConfigDirAppName)
	dirString := configDirs.QueryFolders(configdir.Global)[0].Path
	return filepath.Join(dirString, "manifest")
}

// SetupLogging points glog at the configured directory and verbosity.
func (config *Config) SetupLogging() {
	if config.LogDirectory != "" {
		if err := os.MkdirAll(config.LogDirectory, os.ModePerm); err != nil {
			glog.Errorf("Could not create log directory (%s): %v", config.LogDirectory, err)
		} else {
			flag.Set("log_dir", config.LogDirectory)
		}
	}
	flag.Set("v", fmt.Sprintf("%d", config.GlogV))
	flag.Set("vmodule", config.GlogVmodule)
	glog.CopyStandardLogTo("INFO")

	if config.DebugConfig {
		spew.Fdump(os.Stderr, config)
	}
}

func (config *Config) Print() {
	if config.LogDirectory != "" {
		glog.Infof("Logging to directory %s", config.LogDirectory)
	}
	glog.Infof("Algorithm: %v", config.Algorithm)
	glog.Infof("Manifest Directory: %s", config.DBDirectory)

	if config.Workers > 0 {
		glog.Infof("Workers: %d", config.Workers)
	} else {
		glog.Infof("Workers: one per CPU")
	}
	glog.V(1).Infof("Hash cache size: %d", config.HashCacheSize)
}

// loadCommandConfig is the common prologue of every command.
func loadCommandConfig() (*Config, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	config.SetupLogging()
	return config, nil
}

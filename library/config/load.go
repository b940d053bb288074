// Package config loads optional settings files into the shared config store.
package config

import (
	"os"
	"path/filepath"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"

	"github.com/Laisky/duckduckgo-mcp/library/log"
)

// LoadFromFile loads the settings file at cfgPath into gconfig.Shared.
// A missing file is not an error since every setting has a usable default;
// a file that exists but cannot be parsed is fatal.
func LoadFromFile(cfgPath string) {
	if cfgPath == "" {
		return
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Logger.Debug("no configuration file, using defaults",
			zap.String("config", cfgPath))
		return
	}

	gconfig.Shared.Set("cfg_dir", filepath.Dir(cfgPath))
	if err := gconfig.Shared.LoadFromFile(cfgPath); err != nil {
		log.Logger.Panic("load configuration",
			zap.Error(err),
			zap.String("config", cfgPath))
	}

	log.Logger.Info("load configuration",
		zap.String("config", cfgPath))
}

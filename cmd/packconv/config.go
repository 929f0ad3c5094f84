package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the optional packconv.toml next to the invocation. Flags override
// file values.
type Config struct {
	Output           string `toml:"output"`
	Workers          int    `toml:"workers"`
	DefaultNamespace string `toml:"default_namespace"`
	MinEngineVersion []int  `toml:"min_engine_version"`
	Mcpack           bool   `toml:"mcpack"`
}

func loadConfig(path string) (Config, error) {
	cfg := Config{Output: "converted_packs", Mcpack: true}
	if path == "" {
		if _, err := os.Stat("packconv.toml"); err != nil {
			return cfg, nil
		}
		path = "packconv.toml"
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if len(cfg.MinEngineVersion) != 0 && len(cfg.MinEngineVersion) != 3 {
		return cfg, fmt.Errorf("config %s: min_engine_version must have 3 components", path)
	}
	return cfg, nil
}

func (c Config) minEngine() [3]int {
	if len(c.MinEngineVersion) == 3 {
		return [3]int{c.MinEngineVersion[0], c.MinEngineVersion[1], c.MinEngineVersion[2]}
	}
	return [3]int{}
}

package emu

import (
	"os"
	"path/filepath"
	"sync"

	"gbcore/emu/log"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk, TOML-encoded configuration for the CLI harness.
type Config struct {
	General GeneralConfig `toml:"general"`
	Audio   AudioConfig   `toml:"audio"`
}

type GeneralConfig struct {
	FrameRate float64 `toml:"frame_rate"`
}

type AudioConfig struct {
	DisableAudio bool `toml:"disable_audio"`
	SampleRate   int  `toml:"sample_rate"`
}

// DefaultConfig mirrors the documented post-boot pacing: 59.7275Hz frame
// rate, 48kHz audio enabled.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{FrameRate: 59.7275},
		Audio:   AudioConfig{SampleRate: 48000},
	}
}

var configDir = sync.OnceValue(func() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.WarnZ("could not resolve user config directory").Err(err).End()
		return "."
	}
	dir = filepath.Join(dir, "gbcore")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.ModEmu.WarnZ("failed to create config directory").String("dir", dir).Err(err).End()
	}
	return dir
})

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the user config
// directory, falling back to DefaultConfig on any read/parse error.
func LoadConfigOrDefault() Config {
	var cfg Config
	_, err := toml.DecodeFile(filepath.Join(configDir(), cfgFilename), &cfg)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig writes cfg to the user config directory.
func SaveConfig(cfg Config) error {
	f, err := os.Create(filepath.Join(configDir(), cfgFilename))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by [Validate] when the corresponding field is unset.
const (
	DefaultCommandPrefix = "."
	DefaultVolume        = 0.1
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader] and
// [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values and fills in
// defaults for optional fields. It returns a joined error listing all
// validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Discord.Token == "" {
		errs = append(errs, errors.New("discord.token is required"))
	}
	if cfg.Discord.CommandPrefix == "" {
		cfg.Discord.CommandPrefix = DefaultCommandPrefix
	}

	if cfg.TTS.VoiceTextAPIKey == "" && cfg.TTS.VoiceVoxAPIKey == "" {
		errs = append(errs, errors.New("at least one of tts.voicetext_api_key or tts.voicevox_api_key is required"))
	}

	if cfg.Database.PostgresDSN == "" {
		errs = append(errs, errors.New("database.postgres_dsn is required"))
	}

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	switch {
	case cfg.Playback.Volume == 0:
		cfg.Playback.Volume = DefaultVolume
	case cfg.Playback.Volume < 0 || cfg.Playback.Volume > 1:
		errs = append(errs, fmt.Errorf("playback.volume %.2f is out of range (0, 1]", cfg.Playback.Volume))
	}

	return errors.Join(errs...)
}

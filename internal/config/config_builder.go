package config

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	args    []string
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
		args:    os.Args[1:],
	}
}

// merge folds all collected configs into one (later wins) and fills the
// remaining zero fields with defaults.
func (b *configBuilder) merge() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := applyDefaults(config); err != nil {
		return nil, fmt.Errorf("error applying default configs: %w", err)
	}

	return config, nil
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	config, err := b.merge()
	if err != nil {
		return nil, err
	}

	return config, config.validate()
}

func (b *configBuilder) withDotEnv() *configBuilder {
	path := os.Getenv("DOTENV")
	if path == "" {
		path = ".env"
	}

	dotEnvCfg, err := parseDotEnv(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	if dotEnvCfg != nil {
		b.configs = append(b.configs, dotEnvCfg)
	}
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags, err := parseFlags(b.args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withFile() *configBuilder {
	var filePath string

	for _, cfg := range b.configs {
		if cfg.FilePath != "" {
			filePath = cfg.FilePath
		}
	}

	if filePath != "" {
		fileCfg, err := parseFile(filePath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, fileCfg)
	}

	return b
}

package config

import (
	"fmt"
)

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains the server address and the request timeout.
	Adapter Adapter
}

// GetClientConfig builds and validates a client-specific config view from
// the merged structured configuration. Flags are taken from args.
//
// Server-only requirements (DSN, token key) are not enforced.
func GetClientConfig(args []string) (*ClientConfig, error) {
	b := newConfigBuilder()
	b.args = args

	cfg, err := b.withDotEnv().withEnv().withFlags().withFile().merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{Adapter: cfg.Adapter}

	return clientCfg, clientCfg.validate()
}

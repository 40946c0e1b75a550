// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredConfig_Validate(t *testing.T) {
	valid := func() *StructuredConfig {
		cfg := validServerConfig()
		_ = applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "no dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "no sign key", mutate: func(c *StructuredConfig) { c.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "negative min length", mutate: func(c *StructuredConfig) { c.App.PasswordMinLength = -1 }, wantErr: ErrInvalidAppConfigs},
		{name: "negative deadline", mutate: func(c *StructuredConfig) { c.App.ResetDeadline = -1 }, wantErr: ErrInvalidAppConfigs},
		{name: "no address", mutate: func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{name: "bad smtp port", mutate: func(c *StructuredConfig) { c.Mail.SMTPPort = 70000 }, wantErr: ErrInvalidMailConfigs},
		{name: "async without queue", mutate: func(c *StructuredConfig) { c.Mail.Async = true; c.Mail.QueueSize = 0 }, wantErr: ErrInvalidMailConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientConfig_Validate(t *testing.T) {
	assert.NoError(t, (&ClientConfig{Adapter: Adapter{HTTPAddress: "http://x", RequestTimeout: 1}}).validate())
	assert.ErrorIs(t, (&ClientConfig{}).validate(), ErrInvalidAdapterConfigs)
}

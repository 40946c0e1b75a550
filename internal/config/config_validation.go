// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.PasswordMinLength < 1 {
		return fmt.Errorf("%w: password minimal length must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.ActivationDeadline <= 0 || cfg.App.ResetDeadline <= 0 || cfg.App.DeleteDeadline <= 0 {
		return fmt.Errorf("%w: interaction deadlines must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Mail.SMTPPort < 1 || cfg.Mail.SMTPPort > 65535 {
		return fmt.Errorf("%w: smtp port out of range", ErrInvalidMailConfigs)
	}
	if cfg.Mail.Async && cfg.Mail.QueueSize < 1 {
		return fmt.Errorf("%w: queue size must be positive", ErrInvalidMailConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

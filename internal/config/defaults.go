// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"dario.cat/mergo"
)

// Default values applied to fields left zero by every source.
const (
	DefaultPasswordMinLength   = 4
	DefaultInteractionDeadline = 48 * time.Hour
	DefaultTokenIssuer         = "go-account-keeper"
	DefaultTokenDuration       = 24 * time.Hour
	DefaultVersion             = "dev"
	DefaultHTTPAddress         = "localhost:8080"
	DefaultRequestTimeout      = 30 * time.Second
	DefaultShutdownTimeout     = 10 * time.Second
	DefaultSMTPPort            = 25
	DefaultSender              = "noreply@localhost.localdomain"
	DefaultActivationSubject   = "Account activation"
	DefaultResetSubject        = "Password reset"
	DefaultDeleteSubject       = "Account removed"
	DefaultSuspendSubject      = "Account suspended"
	DefaultConfirmBaseURL      = "http://localhost:8080/api/account/confirm"
	DefaultQueueSize           = 100
	DefaultAdapterAddress      = "http://localhost:8080"
	DefaultAdapterTimeout      = 10 * time.Second
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PasswordMinLength:  DefaultPasswordMinLength,
			ActivationDeadline: DefaultInteractionDeadline,
			ResetDeadline:      DefaultInteractionDeadline,
			DeleteDeadline:     DefaultInteractionDeadline,
			TokenIssuer:        DefaultTokenIssuer,
			TokenDuration:      DefaultTokenDuration,
			Version:            DefaultVersion,
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Mail: Mail{
			SMTPPort:          DefaultSMTPPort,
			Sender:            DefaultSender,
			ActivationSubject: DefaultActivationSubject,
			ResetSubject:      DefaultResetSubject,
			DeleteSubject:     DefaultDeleteSubject,
			SuspendSubject:    DefaultSuspendSubject,
			ConfirmBaseURL:    DefaultConfirmBaseURL,
			QueueSize:         DefaultQueueSize,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultAdapterAddress,
			RequestTimeout: DefaultAdapterTimeout,
		},
	}
}

// applyDefaults fills the zero fields of cfg.
func applyDefaults(cfg *StructuredConfig) error {
	return mergo.Merge(cfg, defaults())
}

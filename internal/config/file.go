package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig is the on-disk layout of the configuration file.
// The same structure is read from JSON and YAML.
type StructuredFileConfig struct {
	App struct {
		PasswordMinLength  int      `json:"password_min_length" yaml:"password_min_length"`
		InteractionSecret  string   `json:"interaction_secret" yaml:"interaction_secret"`
		ActivationDeadline Duration `json:"activation_deadline" yaml:"activation_deadline"`
		ResetDeadline      Duration `json:"reset_deadline" yaml:"reset_deadline"`
		DeleteDeadline     Duration `json:"delete_deadline" yaml:"delete_deadline"`
		TokenSignKey       string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer        string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration      Duration `json:"token_duration" yaml:"token_duration"`
		Version            string   `json:"version" yaml:"version"`
		AdminToken         string   `json:"admin_token" yaml:"admin_token"`
	} `json:"app,omitempty" yaml:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db,omitempty" yaml:"db,omitempty"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address" yaml:"http_address"`
		RequestTimeout  Duration `json:"request_timeout" yaml:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	} `json:"server,omitempty" yaml:"server,omitempty"`

	Mail struct {
		SMTPHost          string `json:"smtp_host" yaml:"smtp_host"`
		SMTPPort          int    `json:"smtp_port" yaml:"smtp_port"`
		Username          string `json:"username" yaml:"username"`
		Password          string `json:"password" yaml:"password"`
		Sender            string `json:"sender" yaml:"sender"`
		ActivationSubject string `json:"activation_subject" yaml:"activation_subject"`
		ResetSubject      string `json:"reset_subject" yaml:"reset_subject"`
		DeleteSubject     string `json:"delete_subject" yaml:"delete_subject"`
		SuspendSubject    string `json:"suspend_subject" yaml:"suspend_subject"`
		ConfirmBaseURL    string `json:"confirm_base_url" yaml:"confirm_base_url"`
		Async             bool   `json:"async" yaml:"async"`
		QueueSize         int    `json:"queue_size" yaml:"queue_size"`
	} `json:"mail,omitempty" yaml:"mail,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter,omitempty" yaml:"adapter,omitempty"`
}

// parseFile reads a JSON or YAML configuration file, chosen by extension.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fileCfg.toStructured(), nil
}

func (f StructuredFileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PasswordMinLength:  f.App.PasswordMinLength,
			InteractionSecret:  f.App.InteractionSecret,
			ActivationDeadline: time.Duration(f.App.ActivationDeadline),
			ResetDeadline:      time.Duration(f.App.ResetDeadline),
			DeleteDeadline:     time.Duration(f.App.DeleteDeadline),
			TokenSignKey:       f.App.TokenSignKey,
			TokenIssuer:        f.App.TokenIssuer,
			TokenDuration:      time.Duration(f.App.TokenDuration),
			Version:            f.App.Version,
			AdminToken:         f.App.AdminToken,
		},
		Storage: Storage{
			DB: DB{DSN: f.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:     f.Server.HTTPAddress,
			RequestTimeout:  time.Duration(f.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(f.Server.ShutdownTimeout),
		},
		Mail: Mail{
			SMTPHost:          f.Mail.SMTPHost,
			SMTPPort:          f.Mail.SMTPPort,
			Username:          f.Mail.Username,
			Password:          f.Mail.Password,
			Sender:            f.Mail.Sender,
			ActivationSubject: f.Mail.ActivationSubject,
			ResetSubject:      f.Mail.ResetSubject,
			DeleteSubject:     f.Mail.DeleteSubject,
			SuspendSubject:    f.Mail.SuspendSubject,
			ConfirmBaseURL:    f.Mail.ConfirmBaseURL,
			Async:             f.Mail.Async,
			QueueSize:         f.Mail.QueueSize,
		},
		Adapter: Adapter{
			HTTPAddress:    f.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(f.Adapter.RequestTimeout),
		},
	}
}

// Duration is a wrapper around time.Duration that decodes from strings
// like "1h" or "30s" as well as from integer nanoseconds, in both JSON
// and YAML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var n int64
	if err := node.Decode(&n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

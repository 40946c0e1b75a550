package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"regexp"
	"strconv"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line arguments.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config JSON or YAML file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-interaction-secret interaction code secret
//	-password-min-length minimal password length
//	-smtp-host outgoing mail relay host
//	-smtp-port outgoing mail relay port
//	-mail-sender sender address
//	-admin-token administrative token
//	-shutdown-timeout graceful shutdown bound
//	-confirm-base-url prefix of confirmation links in e-mails
//	-mail-async deliver e-mails from a background queue
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var configPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var interactionSecret string
	var passwordMinLength int
	var smtpHost string
	var smtpPort int
	var mailSender string
	var adminToken string
	var shutdownTimeout time.Duration
	var confirmBaseURL string
	var mailAsync bool

	fs := flag.NewFlagSet("go-account-keeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&configPath, "c", "", "JSON or YAML config file path")
	fs.StringVar(&configPath, "config", "", "JSON or YAML config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&interactionSecret, "interaction-secret", "", "Interaction code secret")
	fs.IntVar(&passwordMinLength, "password-min-length", 0, "Minimal password length")
	fs.StringVar(&smtpHost, "smtp-host", "", "SMTP relay host")
	fs.IntVar(&smtpPort, "smtp-port", 0, "SMTP relay port")
	fs.StringVar(&mailSender, "mail-sender", "", "Mail sender address")
	fs.StringVar(&adminToken, "admin-token", "", "Administrative token")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout (e.g., 10s)")
	fs.StringVar(&confirmBaseURL, "confirm-base-url", "", "Base URL of confirmation links")
	fs.BoolVar(&mailAsync, "mail-async", false, "Send e-mails from a background queue")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			PasswordMinLength: passwordMinLength,
			InteractionSecret: interactionSecret,
			TokenSignKey:      tokenSignKey,
			TokenIssuer:       tokenIssuer,
			TokenDuration:     tokenDuration,
			AdminToken:        adminToken,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:     serverAddress.String(),
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Mail: Mail{
			SMTPHost:       smtpHost,
			SMTPPort:       smtpPort,
			Sender:         mailSender,
			ConfirmBaseURL: confirmBaseURL,
			Async:          mailAsync,
		},
		FilePath: configPath,
	}, nil
}

// String returns host:port, bracketing IPv6 hosts. An unset address is "".
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. The host may be empty (all interfaces), an IPv4 or
// IPv6 literal, or a DNS name such as a container hostname.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form `host:port`: %w", err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "" && net.ParseIP(host) == nil && !hostnamePattern.MatchString(host) {
		return fmt.Errorf("incorrect host %q", host)
	}

	a.Host = host
	a.Port = port
	return nil
}

// hostnamePattern matches dot-separated DNS labels.
var hostnamePattern = regexp.MustCompile(`^(?i)[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)*$`)

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/go-resty/resty/v2"
)

const adminTokenHeader = "X-Admin-Token"

type httpAccountAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAccountAdapter constructs the HTTP implementation of
// [AccountAdapter]. It normalises and validates the base URL from
// cfg.HTTPAddress; a bare host:port is taken as plain HTTP.
func NewHTTPAccountAdapter(cfg config.Adapter, logger *logger.Logger) (AccountAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpAccountAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAccountAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAccountAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpAccountAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AccountResponse, error) {
	var created models.AccountResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&created).
		Post("/api/account/register")
	if err != nil {
		return models.AccountResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountResponse{}, err
	}

	return created, nil
}

// Login stores the token of the Authorization response header.
func (h *httpAccountAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AccountResponse, error) {
	var found models.AccountResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&found).
		Post("/api/account/login")
	if err != nil {
		return models.AccountResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountResponse{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.AccountResponse{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	h.logger.Debug().Int64("id", found.ID).Msg("logged in")
	return found, nil
}

func (h *httpAccountAdapter) Confirm(ctx context.Context, kind, code string) (models.AccountResponse, error) {
	var confirmed models.AccountResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"kind": kind, "code": code}).
		SetResult(&confirmed).
		Get("/api/account/confirm/{kind}/{code}")
	if err != nil {
		return models.AccountResponse{}, fmt.Errorf("confirm request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountResponse{}, err
	}

	return confirmed, nil
}

func (h *httpAccountAdapter) RequestCode(ctx context.Context, kind, email string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RequestCodeRequest{Kind: kind, Email: email}).
		Post("/api/account/confirm/request-code")
	if err != nil {
		return fmt.Errorf("request code request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAccountAdapter) ResetPassword(ctx context.Context, email string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.ResetPasswordRequest{Email: email}).
		Post("/api/account/reset-password")
	if err != nil {
		return fmt.Errorf("reset password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAccountAdapter) Me(ctx context.Context) (models.AccountResponse, error) {
	var me models.AccountResponse

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.AccountResponse{}, err
	}

	resp, err := req.SetResult(&me).Get("/api/account/me")
	if err != nil {
		return models.AccountResponse{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountResponse{}, err
	}

	return me, nil
}

func (h *httpAccountAdapter) ChangePassword(ctx context.Context, password string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.SetBody(models.ChangePasswordRequest{Password: password}).Put("/api/account/password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAccountAdapter) DeleteAccount(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete("/api/account/me")
	if err != nil {
		return fmt.Errorf("delete account request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAccountAdapter) Suspend(ctx context.Context, adminToken string, selector models.Selector) (int64, error) {
	var result models.SuspendResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(adminTokenHeader, adminToken).
		SetBody(selector).
		SetResult(&result).
		Post("/api/admin/account/suspend")
	if err != nil {
		return 0, fmt.Errorf("suspend request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return result.Suspended, nil
}

func (h *httpAccountAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpAccountAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}

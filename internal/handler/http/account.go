package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-account-keeper/internal/account"
	"github.com/MKhiriev/go-account-keeper/internal/app"
	"github.com/MKhiriev/go-account-keeper/internal/cache"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/service"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c := cache.FromContext(ctx)

	var req models.RegisterRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), app.MsgInvalidDataProvided)
		return
	}

	a, err := h.services.AccountService.NewAccount(req.Username, req.Email)
	if err != nil {
		h.writeError(w, r, err, app.MsgInvalidUsernameOrEmail)
		return
	}
	if req.Password != "" {
		if err = a.SetPassword(req.Password); err != nil {
			h.writeError(w, r, err, app.MsgPasswordTooShort)
			return
		}
	}

	err = h.services.AccountService.Create(ctx, c, a, service.CreateOptions{Notify: &service.Notification{}})
	if err != nil {
		h.writeError(w, r, err, app.MsgAccountAlreadyExists)
		return
	}

	utils.WriteJSON(w, accountResponse(a), http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), app.MsgInvalidDataProvided)
		return
	}

	a, err := h.services.AccountService.Login(ctx, cache.FromContext(ctx), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err, app.MsgInvalidLoginPassword)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, a)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	log.Debug().Int64("id", a.ID()).Msg("account successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, accountResponse(a), http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), app.MsgInvalidDataProvided)
		return
	}

	h.issueCode(w, r, account.InteractionReset, req.Email)
}

func (h *Handler) requestCode(w http.ResponseWriter, r *http.Request) {
	var req models.RequestCodeRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), app.MsgInvalidDataProvided)
		return
	}

	kind, err := account.ParseInteractionKind(req.Kind)
	if err != nil {
		h.writeError(w, r, err, app.MsgUnknownInteractionKind)
		return
	}

	h.issueCode(w, r, kind, req.Email)
}

// issueCode answers 202 for unknown e-mails too, so the endpoint does not
// reveal which addresses are registered.
func (h *Handler) issueCode(w http.ResponseWriter, r *http.Request, kind account.InteractionKind, email string) {
	ctx := r.Context()

	err := h.services.AccountService.RequestCode(ctx, cache.FromContext(ctx), kind, email)
	if errors.Is(err, service.ErrNotFound) {
		logger.FromRequest(r).Info().Str("kind", kind.String()).Msg("code requested for unknown e-mail")
		err = nil
	}
	if err != nil {
		h.writeError(w, r, err, app.MsgInvalidEmail)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, ok := account.KindFromCode(chi.URLParam(r, "kind"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	a, err := h.services.AccountService.Confirm(ctx, cache.FromContext(ctx), kind, chi.URLParam(r, "code"))
	if err != nil {
		h.writeError(w, r, err, app.MsgInvalidConfirmationCode)
		return
	}

	utils.WriteJSON(w, accountResponse(a), http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	a, ok := h.currentAccount(w, r)
	if !ok {
		return
	}

	utils.WriteJSON(w, accountResponse(a), http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.ChangePasswordRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), app.MsgInvalidDataProvided)
		return
	}

	a, ok := h.currentAccount(w, r)
	if !ok {
		return
	}

	err := h.services.AccountService.ResetPassword(ctx, cache.FromContext(ctx), a, service.ResetOptions{
		Password:            req.Password,
		RequireConfirmation: service.Bool(true),
		Notify:              &service.Notification{},
	})
	if err != nil {
		h.writeError(w, r, err, app.MsgPasswordTooShort)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	a, ok := h.currentAccount(w, r)
	if !ok {
		return
	}

	err := h.services.AccountService.Delete(ctx, cache.FromContext(ctx), models.ByUsername(a.Username()), service.DeleteOptions{
		Notify: &service.Notification{},
	})
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) suspend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var selector models.Selector
	if err := utils.DecodeJSON(w, r, &selector); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), app.MsgInvalidDataProvided)
		return
	}
	if selector.IsEmpty() {
		http.Error(w, app.MsgSelectorRequired, http.StatusBadRequest)
		return
	}

	n, err := h.services.AccountService.Suspend(ctx, cache.FromContext(ctx), selector, &service.Notification{})
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	logger.FromRequest(r).Info().Int64("suspended", n).Msg("accounts suspended by admin")
	utils.WriteJSON(w, models.SuspendResponse{Suspended: n}, http.StatusOK)
}

// currentAccount loads the account of the authenticated request. It writes
// the error response itself and reports false on failure.
func (h *Handler) currentAccount(w http.ResponseWriter, r *http.Request) (*account.Account, bool) {
	ctx := r.Context()

	id, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		h.writeError(w, r, ErrNoAccountInContext, "")
		return nil, false
	}

	a, found, err := h.services.AccountService.FetchByID(ctx, cache.FromContext(ctx), id)
	if err != nil {
		h.writeError(w, r, err, "")
		return nil, false
	}
	if !found {
		h.writeError(w, r, service.ErrNotFound, app.MsgAccountGone)
		return nil, false
	}

	return a, true
}

func accountResponse(a *account.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:           a.ID(),
		Username:     a.Username(),
		Email:        a.Email(),
		Active:       a.Active(),
		RegisteredAt: a.RegisteredAt(),
	}
}

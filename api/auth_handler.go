package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bbarboza/portfolio-backend/auth"
	"github.com/bbarboza/portfolio-backend/database"
	"github.com/bbarboza/portfolio-backend/errs"
	"github.com/bbarboza/portfolio-backend/models"
)

// Mailer sends transactional email. Satisfied by services.Mailer; nil means
// email features are not configured.
type Mailer interface {
	Send(subject, htmlBody string, recipients []string) error
}

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	store       database.Store
	tokens      *auth.TokenManager
	mailer      Mailer
	frontendURL string
}

func newAuthHandler(store database.Store, tokens *auth.TokenManager, mailer Mailer, frontendURL string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		store:       store,
		tokens:      tokens,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

// register creates a non-admin account and issues a credential for it.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if _, err := mail.ParseAddress(req.Email); err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("email", "must be a valid email address"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		existing, err := h.store.UserByEmail(r.Context(), req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewConflictError("user already exists"))
			return
		}

		user, err := h.store.CreateUser(r.Context(), models.User{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		token, err := h.tokens.Issue(*user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue token", err))
			return
		}

		h.responder.WriteJSON(w, AuthResponse{Token: token, User: user.Public()})
	}
}

// login exchanges valid credentials for a bearer token. Failures are a single
// undifferentiated 401 so the response never reveals which check failed.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		user, err := h.store.UserByEmail(r.Context(), req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil || !auth.CheckPassword(user.Password, req.Password) {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, err := h.tokens.Issue(*user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue token", err))
			return
		}

		h.responder.WriteJSON(w, AuthResponse{Token: token, User: user.Public()})
	}
}

// forgotPassword mails a short-lived reset link to a known account.
func (h authHandler) forgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		user, err := h.store.UserByEmail(r.Context(), req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		if h.mailer == nil {
			h.responder.WriteError(w, errs.NewInternalError("email delivery is not configured"))
			return
		}

		resetToken, err := h.tokens.IssueWithTTL(*user, time.Hour)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue reset token", err))
			return
		}

		body := fmt.Sprintf(
			`<h2>Reset your password</h2>
<p>Click the link below to reset your password:</p>
<a href="%s/reset-password?token=%s">Reset password</a>
<p>This link expires in 1 hour.</p>`,
			h.frontendURL, resetToken,
		)

		if err := h.mailer.Send("Reset your password", body, []string{user.Email}); err != nil {
			h.logger.Error().Err(err).Msg("failed to send password reset email")
			h.responder.WriteError(w, errs.NewInternalError("failed to send reset email"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "password reset email sent"})
	}
}

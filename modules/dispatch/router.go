package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mailico/mailico/pkg/logger"
)

// IdentityVerifier is the boundary to the external identity provider: it
// turns a bearer token into a verified account id. How sessions are issued
// or refreshed is not this module's concern.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

// VerifierFunc adapts a function to the IdentityVerifier interface.
type VerifierFunc func(ctx context.Context, token string) (uuid.UUID, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (uuid.UUID, error) {
	return f(ctx, token)
}

// Router mounts the dispatch HTTP surface:
//
//	POST /send   send an email as the authenticated account
//	GET  /usage  current-period consumption against the plan ceiling
//
// All routes require a verified caller.
func Router(svc *Service, verifier IdentityVerifier, log *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware(verifier))
	r.Post("/send", handleSend(svc, log))
	r.Get("/usage", handleUsage(svc, log))
	return r
}

type sendResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// authMiddleware resolves the caller identity from the Authorization header
// and stores the account id in the request context. Requests without a
// verifiable identity are rejected before any handler logic runs.
func authMiddleware(verifier IdentityVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
				return
			}

			accountID, err := verifier.Verify(r.Context(), token)
			if err != nil || accountID == uuid.Nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccountID(r.Context(), accountID)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(auth[len(prefix):]), true
}

func handleSend(svc *Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := AccountIDFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		var req SendRequest
		if err := decodeJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
			return
		}

		result, err := svc.Dispatch(r.Context(), accountID, req)
		if err != nil {
			writeDispatchError(w, r, log, accountID, err)
			return
		}

		writeJSON(w, http.StatusOK, sendResponse{
			Success: true,
			Data: map[string]any{
				"id":        result.DeliveryID,
				"direction": result.Direction,
			},
		})
	}
}

func handleUsage(svc *Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := AccountIDFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		info, err := svc.Usage(r.Context(), accountID)
		if err != nil {
			log.ErrorContext(r.Context(), "usage lookup failed", logger.AccountID(accountID), logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
			return
		}

		writeJSON(w, http.StatusOK, info)
	}
}

// writeDispatchError maps the dispatch error taxonomy onto the HTTP
// contract. Every branch here fires before the provider accepted the
// message; successful sends never reach it.
func writeDispatchError(w http.ResponseWriter, r *http.Request, log *slog.Logger, accountID uuid.UUID, err error) {
	var quotaErr *QuotaExceededError

	switch {
	case errors.Is(err, ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
	case errors.Is(err, ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required fields (from, email, or message)"})
	case errors.Is(err, ErrNotConfigured):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No sending credential configured for this account"})
	case errors.As(err, &quotaErr):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "Quota exceeded", Reason: quotaErr.Reason()})
	case errors.Is(err, ErrProvider):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		log.ErrorContext(r.Context(), "dispatch failed", logger.AccountID(accountID), logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

// decodeJSON strictly decodes the request body: unknown fields and trailing
// data are rejected so malformed payloads fail before any business logic.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

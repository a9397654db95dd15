package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AadiZee/car-system-api/internal/application/user"
	"github.com/AadiZee/car-system-api/internal/domain"
	"github.com/AadiZee/car-system-api/internal/pkg/validate"
	"github.com/AadiZee/car-system-api/internal/transport/http/middleware"
)

// UserHandler handles registration, login and account maintenance endpoints.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Register(r.Context(), req); err != nil {
		writeDomainError(w, err)
		return
	}
	// The generated password travels by email only, never in the response.
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Registered Successfully! Check email for password!"})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, token, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	setTokenCookie(w, token)
	writeJSON(w, http.StatusOK, u.Public())
}

func (h *UserHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	_, token, err := h.svc.UpdateEmail(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// The old token still carries the old email claim; hand out a fresh one.
	setTokenCookie(w, token)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Email updated"})
}

func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.UpdatePassword(r.Context(), req); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Password updated"})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req domain.DeleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Delete(r.Context(), req.Email); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "User deleted successfully"})
}

// IsAuth reports the identity the auth gate resolved for this request.
func (h *UserHandler) IsAuth(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not logged in")
		return
	}
	writeJSON(w, http.StatusOK, u.Public())
}

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenHeader,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

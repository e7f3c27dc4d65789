package handlers

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/TEJASTATODE/saas-notes/dto"
	"github.com/TEJASTATODE/saas-notes/errs"
	"github.com/TEJASTATODE/saas-notes/helper"
	"github.com/TEJASTATODE/saas-notes/middlewares"
	"github.com/TEJASTATODE/saas-notes/store"
	"github.com/TEJASTATODE/saas-notes/token"
)

type AuthHandler struct {
	store  store.Store
	tokens *token.Service
	logger *zap.SugaredLogger
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var payload dto.LoginUserDto
	if err := helper.ReadJson(w, r, &payload); err != nil {
		helper.WriteJsonError(w, http.StatusBadRequest, "Email and password required")
		return
	}
	if err := helper.Validator.Struct(payload); err != nil {
		helper.WriteJsonError(w, http.StatusBadRequest, "Email and password required")
		return
	}

	h.logger.Infof("login request for email: %s", payload.Email)

	user, err := h.store.FindUserByEmail(r.Context(), payload.Email)
	if err != nil {
		if errs.IsNotFound(err) {
			// Same answer as a wrong password; no account enumeration.
			helper.WriteJsonError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		helper.WriteError(w, h.logger, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		helper.WriteJsonError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	raw, err := h.tokens.Issue(user)
	if err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}

	h.logger.Infof("user logged in: %s", user.Email)
	helper.WriteJson(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   raw,
		"user": map[string]interface{}{
			"id":       user.ID,
			"email":    user.Email,
			"role":     user.Role,
			"tenantId": user.TenantID,
		},
	})
}

func (h *AuthHandler) self(w http.ResponseWriter, r *http.Request) {
	identity := middlewares.GetIdentityFromContext(r.Context())
	if identity == nil {
		helper.WriteJsonError(w, http.StatusUnauthorized, "Unauthorized: no token provided")
		return
	}
	helper.WriteJson(w, http.StatusOK, map[string]interface{}{
		"id":       identity.UserID,
		"email":    identity.Email,
		"role":     identity.Role,
		"tenantId": identity.TenantID,
	})
}

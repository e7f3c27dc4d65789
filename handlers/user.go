package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/TEJASTATODE/saas-notes/dto"
	"github.com/TEJASTATODE/saas-notes/helper"
	"github.com/TEJASTATODE/saas-notes/middlewares"
	"github.com/TEJASTATODE/saas-notes/models"
	"github.com/TEJASTATODE/saas-notes/store"
)

type UserHandler struct {
	store  store.Store
	logger *zap.SugaredLogger
}

func (h *UserHandler) getAll(w http.ResponseWriter, r *http.Request) {
	identity := middlewares.GetIdentityFromContext(r.Context())
	users, err := h.store.ListUsersByTenant(r.Context(), identity.TenantID)
	if err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}
	helper.WriteJson(w, http.StatusOK, users)
}

func (h *UserHandler) invite(w http.ResponseWriter, r *http.Request) {
	identity := middlewares.GetIdentityFromContext(r.Context())
	var payload dto.InviteUserDto
	if err := helper.ReadJson(w, r, &payload); err != nil {
		helper.WriteJsonError(w, http.StatusBadRequest, "Email and role required")
		return
	}
	if err := helper.Validator.Struct(payload); err != nil {
		helper.WriteJsonError(w, http.StatusBadRequest, "Email and role required")
		return
	}

	tempPassword, err := generatePassword()
	if err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}

	user := &models.User{
		Email:    payload.Email,
		Password: string(hash),
		Role:     models.RoleType(payload.Role),
		TenantID: identity.TenantID,
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}

	h.logger.Infof("user %s invited to tenant %s", user.Email, identity.TenantID)
	// The temporary password is shown exactly once, in this response.
	helper.WriteJson(w, http.StatusCreated, map[string]interface{}{
		"message": "User invited",
		"user": map[string]interface{}{
			"email": user.Email,
			"role":  user.Role,
		},
		"tempPassword": tempPassword,
	})
}

func generatePassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

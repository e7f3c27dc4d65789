package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/TEJASTATODE/saas-notes/helper"
	"github.com/TEJASTATODE/saas-notes/middlewares"
	"github.com/TEJASTATODE/saas-notes/quota"
	"github.com/TEJASTATODE/saas-notes/store"
)

type TenantHandler struct {
	store    store.Store
	enforcer *quota.Enforcer
	logger   *zap.SugaredLogger
}

func (h *TenantHandler) upgrade(w http.ResponseWriter, r *http.Request) {
	identity := middlewares.GetIdentityFromContext(r.Context())
	slug := r.PathValue("slug")

	tenant, err := h.store.FindTenantBySlug(r.Context(), slug)
	if err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}
	// An admin may only upgrade the tenant it belongs to.
	if tenant.ID != identity.TenantID {
		helper.WriteJsonError(w, http.StatusForbidden, "Forbidden: insufficient permissions")
		return
	}

	upgraded, err := h.enforcer.UpgradeTenant(r.Context(), tenant.ID)
	if err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}
	helper.WriteJson(w, http.StatusOK, map[string]interface{}{
		"message": "Tenant upgraded to Pro",
		"tenant":  upgraded,
	})
}

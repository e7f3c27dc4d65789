package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TEJASTATODE/saas-notes/dto"
	"github.com/TEJASTATODE/saas-notes/helper"
	"github.com/TEJASTATODE/saas-notes/middlewares"
	"github.com/TEJASTATODE/saas-notes/models"
	"github.com/TEJASTATODE/saas-notes/quota"
	"github.com/TEJASTATODE/saas-notes/store"
)

// NoteHandler serves the tenant-scoped note CRUD. The tenant id is always
// the authenticated identity's, never anything client-supplied.
type NoteHandler struct {
	store    store.Store
	enforcer *quota.Enforcer
	logger   *zap.SugaredLogger
}

func (h *NoteHandler) create(w http.ResponseWriter, r *http.Request) {
	identity := middlewares.GetIdentityFromContext(r.Context())
	var payload dto.CreateNoteDto
	if err := helper.ReadJson(w, r, &payload); err != nil {
		helper.WriteJsonError(w, http.StatusBadRequest, "Title required")
		return
	}
	if err := helper.Validator.Struct(payload); err != nil {
		helper.WriteJsonError(w, http.StatusBadRequest, "Title required")
		return
	}

	note := &models.Note{
		Title:     payload.Title,
		Content:   payload.Content,
		CreatedBy: identity.UserID,
	}
	created, err := h.enforcer.CreateNote(r.Context(), identity.TenantID, note)
	if err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}
	helper.WriteJson(w, http.StatusCreated, created)
}

func (h *NoteHandler) getAll(w http.ResponseWriter, r *http.Request) {
	identity := middlewares.GetIdentityFromContext(r.Context())
	notes, err := h.store.ListNotesByTenant(r.Context(), identity.TenantID)
	if err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}
	tenant, err := h.store.FindTenantByID(r.Context(), identity.TenantID)
	if err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}
	helper.WriteJson(w, http.StatusOK, map[string]interface{}{
		"notes":  notes,
		"tenant": tenant,
	})
}

func (h *NoteHandler) getOne(w http.ResponseWriter, r *http.Request) {
	identity := middlewares.GetIdentityFromContext(r.Context())
	noteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		helper.WriteJsonError(w, http.StatusNotFound, "Note not found")
		return
	}
	note, err := h.store.FindNoteByID(r.Context(), identity.TenantID, noteID)
	if err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}
	helper.WriteJson(w, http.StatusOK, note)
}

func (h *NoteHandler) update(w http.ResponseWriter, r *http.Request) {
	identity := middlewares.GetIdentityFromContext(r.Context())
	noteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		helper.WriteJsonError(w, http.StatusNotFound, "Note not found")
		return
	}
	var payload dto.UpdateNoteDto
	if err := helper.ReadJson(w, r, &payload); err != nil {
		helper.WriteJsonError(w, http.StatusBadRequest, "Title required")
		return
	}
	if err := helper.Validator.Struct(payload); err != nil {
		helper.WriteJsonError(w, http.StatusBadRequest, "Title required")
		return
	}
	note, err := h.store.UpdateNote(r.Context(), identity.TenantID, noteID, payload.Title, payload.Content)
	if err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}
	helper.WriteJson(w, http.StatusOK, note)
}

func (h *NoteHandler) delete(w http.ResponseWriter, r *http.Request) {
	identity := middlewares.GetIdentityFromContext(r.Context())
	noteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		helper.WriteJsonError(w, http.StatusNotFound, "Note not found")
		return
	}
	if err := h.store.DeleteNote(r.Context(), identity.TenantID, noteID); err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}
	helper.WriteJson(w, http.StatusOK, map[string]string{"message": "Note deleted"})
}

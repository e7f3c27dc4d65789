// Package auth resolves bearer tokens into live identities and gates
// operations behind role capabilities.
package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/TEJASTATODE/saas-notes/errs"
	"github.com/TEJASTATODE/saas-notes/models"
	"github.com/TEJASTATODE/saas-notes/store"
	"github.com/TEJASTATODE/saas-notes/token"
)

// Identity is the request-scoped, verified caller. Role and TenantID come
// from the credential store at resolution time, not from token claims, so
// role or tenant edits take effect on the very next request.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	Role     models.RoleType
	TenantID uuid.UUID
}

type Resolver struct {
	tokens *token.Service
	store  store.Store
}

func NewResolver(tokens *token.Service, s store.Store) *Resolver {
	return &Resolver{tokens: tokens, store: s}
}

// Resolve verifies raw and re-fetches the user record behind it. A bad
// signature, an expired token and a deleted user are indistinguishable to
// the caller: all surface as the same unauthenticated error.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*Identity, error) {
	claims, err := r.tokens.Verify(raw)
	if err != nil {
		return nil, errs.E(errs.KindUnauthenticated, "Unauthorized: invalid token")
	}
	user, err := r.store.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, errs.E(errs.KindUnauthenticated, "Unauthorized: invalid token")
	}
	return &Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		TenantID: user.TenantID,
	}, nil
}

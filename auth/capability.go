package auth

import (
	"github.com/TEJASTATODE/saas-notes/errs"
	"github.com/TEJASTATODE/saas-notes/models"
)

// Capability is a named permission checked at call sites. Roles resolve to
// capability sets, so adding a role never touches the sites themselves.
type Capability string

const (
	CapNoteCreate    Capability = "note:create"
	CapNoteRead      Capability = "note:read"
	CapNoteUpdate    Capability = "note:update"
	CapNoteDelete    Capability = "note:delete"
	CapTenantUpgrade Capability = "tenant:upgrade"
	CapUserInvite    Capability = "user:invite"
	CapUserList      Capability = "user:list"
)

type capset map[Capability]struct{}

func caps(list ...Capability) capset {
	set := make(capset, len(list))
	for _, c := range list {
		set[c] = struct{}{}
	}
	return set
}

// Role membership is exact; no role implies another role's set.
var permissions = map[models.RoleType]capset{
	models.AdminRole: caps(
		CapNoteCreate, CapNoteRead, CapNoteUpdate, CapNoteDelete,
		CapTenantUpgrade, CapUserInvite, CapUserList,
	),
	models.MemberRole: caps(
		CapNoteCreate, CapNoteRead, CapNoteUpdate, CapNoteDelete,
	),
}

// Can reports whether role grants cap. Unknown roles grant nothing.
func Can(role models.RoleType, cap Capability) bool {
	set, ok := permissions[role]
	if !ok {
		return false
	}
	_, ok = set[cap]
	return ok
}

// Require is the authorization gate: nil identity fails as unauthenticated,
// a known identity lacking cap fails as forbidden.
func Require(identity *Identity, cap Capability) error {
	if identity == nil {
		return errs.E(errs.KindUnauthenticated, "Authentication required")
	}
	if !Can(identity.Role, cap) {
		return errs.E(errs.KindForbidden, "Forbidden: insufficient permissions")
	}
	return nil
}

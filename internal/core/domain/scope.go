package domain

// ScopePredicate is the access-control filter a repository query must apply.
// Zero value means unrestricted. Both fields may be set at once; they are
// conjunctive.
type ScopePredicate struct {
	// ClientID, when non-empty, forces client_id == ClientID.
	ClientID string
	// ParticipantID, when non-empty, restricts rows to those created by this
	// user or listing them as a member/assignee.
	ParticipantID string
}

// AccessScope is the per-request access capability, built once from the
// caller's identity and consulted for every query and mutation. Exactly one
// variant per canonical role.
type AccessScope interface {
	Role() Role
	UserID() string
	// ClientID is the caller's tenant; empty for admin and staff.
	ClientID() string

	ProjectScope() ScopePredicate
	TaskScope() ScopePredicate
	RequirementScope() ScopePredicate
	UserScope() ScopePredicate

	// EnsureSameClient rejects cross-tenant mutations for client-scoped
	// roles. Called with the target row's client id, re-fetched at mutation
	// time.
	EnsureSameClient(targetClientID string) error
	// CanManageUser rejects user create/update attempts outside the
	// caller's management authority.
	CanManageUser(targetRole Role, targetClientID string) error
}

// NewAccessScope builds the scope variant for a canonical role.
func NewAccessScope(role Role, userID, clientID string) AccessScope {
	identity := identity{role: role, userID: userID, clientID: clientID}
	switch role {
	case RoleAdmin:
		return adminScope{identity}
	case RoleStaff:
		return staffScope{identity}
	case RoleClientAdmin:
		return clientScope{identity: identity, manager: true}
	default:
		return clientScope{identity: identity}
	}
}

type identity struct {
	role     Role
	userID   string
	clientID string
}

func (i identity) Role() Role       { return i.role }
func (i identity) UserID() string   { return i.userID }
func (i identity) ClientID() string { return i.clientID }

// adminScope: no restriction beyond explicit filters.
type adminScope struct{ identity }

func (adminScope) ProjectScope() ScopePredicate     { return ScopePredicate{} }
func (adminScope) TaskScope() ScopePredicate        { return ScopePredicate{} }
func (adminScope) RequirementScope() ScopePredicate { return ScopePredicate{} }
func (adminScope) UserScope() ScopePredicate        { return ScopePredicate{} }
func (adminScope) EnsureSameClient(string) error    { return nil }
func (adminScope) CanManageUser(Role, string) error { return nil }

// staffScope: projects and tasks are limited to ones the caller created or
// participates in. Requirements are readable without that restriction (they
// have no membership to scope by); users are readable unrestricted.
type staffScope struct{ identity }

func (s staffScope) ProjectScope() ScopePredicate {
	return ScopePredicate{ParticipantID: s.userID}
}

func (s staffScope) TaskScope() ScopePredicate {
	return ScopePredicate{ParticipantID: s.userID}
}

func (staffScope) RequirementScope() ScopePredicate { return ScopePredicate{} }
func (staffScope) UserScope() ScopePredicate        { return ScopePredicate{} }
func (staffScope) EnsureSameClient(string) error    { return nil }

func (staffScope) CanManageUser(Role, string) error { return ErrForbidden }

// clientScope covers client_admin and client_user; everything is pinned to
// the caller's tenant. Only client_admin may manage users, and only
// client-role users inside its own tenant.
type clientScope struct {
	identity
	manager bool
}

func (c clientScope) ProjectScope() ScopePredicate {
	return ScopePredicate{ClientID: c.clientID}
}

func (c clientScope) TaskScope() ScopePredicate {
	return ScopePredicate{ClientID: c.clientID}
}

func (c clientScope) RequirementScope() ScopePredicate {
	return ScopePredicate{ClientID: c.clientID}
}

func (c clientScope) UserScope() ScopePredicate {
	return ScopePredicate{ClientID: c.clientID}
}

func (c clientScope) EnsureSameClient(targetClientID string) error {
	if targetClientID != c.clientID {
		return ErrForbidden
	}
	return nil
}

func (c clientScope) CanManageUser(targetRole Role, targetClientID string) error {
	if !c.manager {
		return ErrForbidden
	}
	if targetRole != RoleClientUser && targetRole != RoleClientAdmin {
		return ErrForbidden
	}
	if targetClientID != c.clientID {
		return ErrForbidden
	}
	return nil
}

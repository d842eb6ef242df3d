package service

import (
	"swapskillz/internal/domain/entity"
)

// Caller identifies who is acting on a swap. It is built from the
// authenticated request and passed explicitly.
type Caller struct {
	ID   string
	Role string
}

func (c Caller) IsAdmin() bool {
	return c.Role == entity.RoleAdmin
}

type AccessDecision int

const (
	AccessDenied AccessDecision = iota
	AccessRequester
	AccessProvider
	AccessAdmin
)

func (d AccessDecision) Allowed() bool {
	return d != AccessDenied
}

// IsParty is true for the requester and the provider, never for an admin override.
func (d AccessDecision) IsParty() bool {
	return d == AccessRequester || d == AccessProvider
}

func (d AccessDecision) String() string {
	switch d {
	case AccessRequester:
		return "requester"
	case AccessProvider:
		return "provider"
	case AccessAdmin:
		return "admin"
	default:
		return "denied"
	}
}

// AccessGuard decides whether a caller may see or act on a swap.
// Only the two parties and admins get through.
type AccessGuard struct{}

func NewAccessGuard() *AccessGuard {
	return &AccessGuard{}
}

func (g *AccessGuard) Check(swap *entity.SkillSwap, caller Caller) AccessDecision {
	if swap == nil || caller.ID == "" {
		return AccessDenied
	}

	switch caller.ID {
	case swap.RequesterID:
		return AccessRequester
	case swap.ProviderID:
		return AccessProvider
	}

	if caller.IsAdmin() {
		return AccessAdmin
	}
	return AccessDenied
}

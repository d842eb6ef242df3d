package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"swapskillz/internal/domain/entity"
)

func TestAccessGuardCheck(t *testing.T) {
	g := NewAccessGuard()
	swap := &entity.SkillSwap{RequesterID: "req", ProviderID: "prov"}

	tests := []struct {
		name   string
		caller Caller
		want   AccessDecision
	}{
		{"requester", Caller{ID: "req"}, AccessRequester},
		{"provider", Caller{ID: "prov", Role: entity.RoleUser}, AccessProvider},
		{"admin override", Caller{ID: "adm", Role: entity.RoleAdmin}, AccessAdmin},
		{"admin who is a party", Caller{ID: "prov", Role: entity.RoleAdmin}, AccessProvider},
		{"stranger", Caller{ID: "x", Role: entity.RoleUser}, AccessDenied},
		{"anonymous", Caller{}, AccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Check(swap, tt.caller)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != AccessDenied, got.Allowed())
		})
	}
}

func TestAccessGuardNilSwap(t *testing.T) {
	assert.Equal(t, AccessDenied, NewAccessGuard().Check(nil, Caller{ID: "a", Role: entity.RoleAdmin}))
}

func TestAccessDecisionHelpers(t *testing.T) {
	assert.True(t, AccessRequester.IsParty())
	assert.True(t, AccessProvider.IsParty())
	assert.False(t, AccessAdmin.IsParty())
	assert.False(t, AccessDenied.IsParty())
	assert.Equal(t, "admin", AccessAdmin.String())
	assert.Equal(t, "denied", AccessDenied.String())
}

func TestAccessGuardDoesNotMutate(t *testing.T) {
	swap := &entity.SkillSwap{RequesterID: "req", ProviderID: "prov", Status: entity.SwapStatusPending}
	before := *swap
	NewAccessGuard().Check(swap, Caller{ID: "x"})
	assert.Equal(t, before, *swap)
}

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapskillz/internal/domain/entity"
	"swapskillz/pkg/errors"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

var (
	requester = Caller{ID: "req", Role: entity.RoleUser}
	provider  = Caller{ID: "prov", Role: entity.RoleUser}
	admin     = Caller{ID: "adm", Role: entity.RoleAdmin}
	stranger  = Caller{ID: "other", Role: entity.RoleUser}
)

func newLifecycle() *SwapLifecycle {
	return NewSwapLifecycle(NewAccessGuard()).WithClock(func() time.Time { return fixedNow })
}

func newSwap(status entity.SwapStatus) *entity.SkillSwap {
	return &entity.SkillSwap{
		ID:                "swap-1",
		RequesterID:       requester.ID,
		ProviderID:        provider.ID,
		Status:            status,
		ProposedStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ProposedEndDate:   time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransitionRejectsEveryPairOutsideTable(t *testing.T) {
	l := newLifecycle()

	for _, from := range entity.SwapStatuses {
		for _, to := range entity.SwapStatuses {
			if CanTransition(from, to) {
				continue
			}
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				swap := newSwap(from)
				before := *swap

				log, err := l.Transition(swap, to, requester)

				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.CodeInvalidTransition))
				assert.Contains(t, err.Error(), string(from))
				assert.Contains(t, err.Error(), string(to))
				assert.Nil(t, log)
				assert.Equal(t, before, *swap)
			})
		}
	}
}

func TestTransitionAllowsEveryTableEdge(t *testing.T) {
	l := newLifecycle()

	edges := []struct{ from, to entity.SwapStatus }{
		{entity.SwapStatusPending, entity.SwapStatusAccepted},
		{entity.SwapStatusPending, entity.SwapStatusRejected},
		{entity.SwapStatusPending, entity.SwapStatusCancelled},
		{entity.SwapStatusAccepted, entity.SwapStatusInProgress},
		{entity.SwapStatusAccepted, entity.SwapStatusCancelled},
		{entity.SwapStatusInProgress, entity.SwapStatusCompleted},
		{entity.SwapStatusInProgress, entity.SwapStatusCancelled},
	}

	for _, e := range edges {
		for _, caller := range []Caller{requester, provider, admin} {
			swap := newSwap(e.from)

			log, err := l.Transition(swap, e.to, caller)

			require.NoError(t, err)
			assert.Equal(t, e.to, swap.Status)
			assert.Equal(t, fixedNow, swap.LastActivity)
			require.NotNil(t, log)
			assert.Equal(t, e.from, log.FromStatus)
			assert.Equal(t, e.to, log.ToStatus)
			assert.Equal(t, caller.ID, log.ChangedBy)
			assert.Equal(t, entity.SwapTriggerTransition, log.Trigger)
		}
	}
}

func TestTransitionTerminalStatesHaveNoEdges(t *testing.T) {
	for _, status := range entity.SwapStatuses {
		if status.IsTerminal() {
			assert.Empty(t, allowedTransitions[status], status)
		}
	}
}

func TestTransitionStampsActualDates(t *testing.T) {
	l := newLifecycle()
	swap := newSwap(entity.SwapStatusAccepted)

	_, err := l.Transition(swap, entity.SwapStatusInProgress, provider)
	require.NoError(t, err)
	require.NotNil(t, swap.ActualStartDate)
	assert.Equal(t, fixedNow, *swap.ActualStartDate)

	_, err = l.Transition(swap, entity.SwapStatusCompleted, provider)
	require.NoError(t, err)
	require.NotNil(t, swap.ActualEndDate)
	assert.Equal(t, fixedNow, *swap.ActualEndDate)
}

func TestTransitionKeepsExistingActualStartDate(t *testing.T) {
	l := newLifecycle()
	earlier := time.Date(2023, 12, 1, 9, 0, 0, 0, time.UTC)
	swap := newSwap(entity.SwapStatusAccepted)
	swap.ActualStartDate = &earlier

	_, err := l.Transition(swap, entity.SwapStatusInProgress, requester)

	require.NoError(t, err)
	assert.Equal(t, earlier, *swap.ActualStartDate)
}

func TestTransitionRejectsNonParty(t *testing.T) {
	l := newLifecycle()
	swap := newSwap(entity.SwapStatusPending)
	before := *swap

	_, err := l.Transition(swap, entity.SwapStatusAccepted, stranger)

	assert.True(t, errors.Is(err, errors.CodeForbidden))
	assert.Equal(t, before, *swap)
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	l := newLifecycle()
	swap := newSwap(entity.SwapStatusPending)

	_, err := l.Transition(swap, entity.SwapStatus("archived"), requester)

	assert.True(t, errors.Is(err, errors.CodeValidation))
	assert.Equal(t, entity.SwapStatusPending, swap.Status)
}

func TestConfirmCompletionByBothPartiesCompletesFromAccepted(t *testing.T) {
	l := newLifecycle()
	swap := newSwap(entity.SwapStatusAccepted)

	log, err := l.ConfirmCompletion(swap, requester)
	require.NoError(t, err)
	assert.Nil(t, log)
	assert.True(t, swap.Completion.RequesterConfirmed)
	assert.Equal(t, entity.SwapStatusAccepted, swap.Status)

	log, err = l.ConfirmCompletion(swap, provider)
	require.NoError(t, err)
	assert.Equal(t, entity.SwapStatusCompleted, swap.Status)
	require.NotNil(t, swap.Completion.CompletedAt)
	assert.Equal(t, fixedNow, *swap.Completion.CompletedAt)
	require.NotNil(t, swap.ActualEndDate)
	require.NotNil(t, log)
	assert.Equal(t, entity.SwapStatusAccepted, log.FromStatus)
	assert.Equal(t, entity.SwapTriggerConfirmation, log.Trigger)
}

func TestConfirmCompletionFromPending(t *testing.T) {
	l := newLifecycle()
	swap := newSwap(entity.SwapStatusPending)

	_, err := l.ConfirmCompletion(swap, provider)
	require.NoError(t, err)
	_, err = l.ConfirmCompletion(swap, requester)
	require.NoError(t, err)

	assert.Equal(t, entity.SwapStatusCompleted, swap.Status)
}

func TestConfirmCompletionRejectsNonPartyAndAdmin(t *testing.T) {
	l := newLifecycle()

	for _, caller := range []Caller{stranger, admin} {
		swap := newSwap(entity.SwapStatusInProgress)
		before := *swap

		_, err := l.ConfirmCompletion(swap, caller)

		assert.True(t, errors.Is(err, errors.CodeForbidden), caller.ID)
		assert.Equal(t, before, *swap)
	}
}

func TestConfirmCompletionOnClosedSwap(t *testing.T) {
	l := newLifecycle()

	for _, status := range []entity.SwapStatus{entity.SwapStatusRejected, entity.SwapStatusCancelled} {
		swap := newSwap(status)
		_, err := l.ConfirmCompletion(swap, requester)
		assert.True(t, errors.Is(err, errors.CodeInvalidTransition), status)
		assert.False(t, swap.Completion.RequesterConfirmed)
	}
}

func TestConfirmCompletionOnCompletedSwapOnlySetsFlag(t *testing.T) {
	l := newLifecycle()
	swap := newSwap(entity.SwapStatusCompleted)
	swap.Completion.ProviderConfirmed = true
	completedAt := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	swap.Completion.CompletedAt = &completedAt

	log, err := l.ConfirmCompletion(swap, requester)

	require.NoError(t, err)
	assert.Nil(t, log)
	assert.True(t, swap.Completion.RequesterConfirmed)
	assert.Equal(t, completedAt, *swap.Completion.CompletedAt)
}

func TestComputeDerived(t *testing.T) {
	swap := newSwap(entity.SwapStatusInProgress)
	swap.EstimatedHours = entity.EstimatedHours{RequesterTime: 4, ProviderTime: 6.5}
	swap.Milestones = []entity.Milestone{{Completed: true}, {Completed: true}, {}, {}}

	d := ComputeDerived(swap)

	assert.Equal(t, 7, d.DurationDays)
	assert.Equal(t, 10.5, d.TotalEstimatedHours)
	assert.Equal(t, 50, d.CompletionPercentage)
	assert.True(t, d.IsActive)
}

func TestComputeDerivedEdges(t *testing.T) {
	swap := &entity.SkillSwap{Status: entity.SwapStatusPending}
	d := ComputeDerived(swap)
	assert.Equal(t, 0, d.DurationDays)
	assert.Equal(t, 0, d.CompletionPercentage)
	assert.False(t, d.IsActive)

	swap.ProposedStartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	swap.ProposedEndDate = time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC)
	swap.Milestones = []entity.Milestone{{Completed: true}, {}, {}}
	d = ComputeDerived(swap)
	assert.Equal(t, 2, d.DurationDays)
	assert.Equal(t, 33, d.CompletionPercentage)

	swap.Status = entity.SwapStatusAccepted
	assert.True(t, ComputeDerived(swap).IsActive)
	swap.Status = entity.SwapStatusCompleted
	assert.False(t, ComputeDerived(swap).IsActive)
}

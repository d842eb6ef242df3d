package service

import (
	"math"
	"time"

	"swapskillz/internal/domain/entity"
	"swapskillz/pkg/errors"
)

var allowedTransitions = map[entity.SwapStatus][]entity.SwapStatus{
	entity.SwapStatusPending:    {entity.SwapStatusAccepted, entity.SwapStatusRejected, entity.SwapStatusCancelled},
	entity.SwapStatusAccepted:   {entity.SwapStatusInProgress, entity.SwapStatusCancelled},
	entity.SwapStatusInProgress: {entity.SwapStatusCompleted, entity.SwapStatusCancelled},
	entity.SwapStatusRejected:   {},
	entity.SwapStatusCompleted:  {},
	entity.SwapStatusCancelled:  {},
}

// CanTransition reports whether the adjacency table allows from -> to.
func CanTransition(from, to entity.SwapStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SwapLifecycle applies status changes to a swap in memory. Callers
// persist the result. A returned error means the swap was not touched.
type SwapLifecycle struct {
	guard *AccessGuard
	now   func() time.Time
}

func NewSwapLifecycle(guard *AccessGuard) *SwapLifecycle {
	return &SwapLifecycle{
		guard: guard,
		now:   time.Now,
	}
}

// WithClock overrides the time source.
func (l *SwapLifecycle) WithClock(now func() time.Time) *SwapLifecycle {
	l.now = now
	return l
}

func (l *SwapLifecycle) Guard() *AccessGuard {
	return l.guard
}

// Transition moves swap to the requested status through the adjacency
// table. Entering in_progress stamps actualStartDate and entering
// completed stamps actualEndDate, both only when unset.
func (l *SwapLifecycle) Transition(swap *entity.SkillSwap, to entity.SwapStatus, caller Caller) (*entity.SwapLog, error) {
	if !l.guard.Check(swap, caller).Allowed() {
		return nil, errors.Forbidden("Not authorized to access this skill swap", nil)
	}
	if !to.IsValid() {
		return nil, errors.Validation("Invalid status: " + string(to))
	}

	from := swap.Status
	if !CanTransition(from, to) {
		return nil, errors.InvalidTransition(string(from), string(to))
	}

	now := l.now()
	swap.Status = to

	switch to {
	case entity.SwapStatusInProgress:
		if swap.ActualStartDate == nil {
			swap.ActualStartDate = &now
		}
	case entity.SwapStatusCompleted:
		if swap.ActualEndDate == nil {
			swap.ActualEndDate = &now
		}
	}

	touch(swap, now)
	return newSwapLog(swap.ID, from, to, entity.SwapTriggerTransition, caller.ID, now), nil
}

// ConfirmCompletion records the caller's confirmation. Once both parties
// have confirmed, the swap is completed regardless of its current
// non-terminal status. The returned log is nil when the status did not change.
func (l *SwapLifecycle) ConfirmCompletion(swap *entity.SkillSwap, caller Caller) (*entity.SwapLog, error) {
	decision := l.guard.Check(swap, caller)
	if !decision.IsParty() {
		return nil, errors.Forbidden("Only the requester or provider can confirm completion", nil)
	}

	if swap.Status == entity.SwapStatusRejected || swap.Status == entity.SwapStatusCancelled {
		return nil, errors.InvalidTransition(string(swap.Status), string(entity.SwapStatusCompleted))
	}

	now := l.now()
	if decision == AccessRequester {
		swap.Completion.RequesterConfirmed = true
	} else {
		swap.Completion.ProviderConfirmed = true
	}

	var log *entity.SwapLog
	if swap.Completion.RequesterConfirmed && swap.Completion.ProviderConfirmed && swap.Status != entity.SwapStatusCompleted {
		from := swap.Status
		swap.Status = entity.SwapStatusCompleted
		swap.Completion.CompletedAt = &now
		if swap.ActualEndDate == nil {
			swap.ActualEndDate = &now
		}
		log = newSwapLog(swap.ID, from, entity.SwapStatusCompleted, entity.SwapTriggerConfirmation, caller.ID, now)
	}

	touch(swap, now)
	return log, nil
}

// ComputeDerived calculates the values exposed alongside a swap.
func ComputeDerived(swap *entity.SkillSwap) entity.SwapDerived {
	derived := entity.SwapDerived{
		TotalEstimatedHours: swap.EstimatedHours.RequesterTime + swap.EstimatedHours.ProviderTime,
		IsActive:            swap.Status == entity.SwapStatusAccepted || swap.Status == entity.SwapStatusInProgress,
	}

	if !swap.ProposedStartDate.IsZero() && !swap.ProposedEndDate.IsZero() {
		diff := swap.ProposedEndDate.Sub(swap.ProposedStartDate)
		if diff < 0 {
			diff = -diff
		}
		derived.DurationDays = int(math.Ceil(diff.Hours() / 24))
	}

	if total := len(swap.Milestones); total > 0 {
		done := 0
		for _, m := range swap.Milestones {
			if m.Completed {
				done++
			}
		}
		derived.CompletionPercentage = int(math.Round(float64(done) / float64(total) * 100))
	}

	return derived
}

// View pairs a swap with its derived values.
func View(swap *entity.SkillSwap) entity.SwapView {
	return entity.SwapView{SkillSwap: swap, SwapDerived: ComputeDerived(swap)}
}

func touch(swap *entity.SkillSwap, now time.Time) {
	swap.LastActivity = now
	swap.UpdatedAt = now
}

func newSwapLog(swapID string, from, to entity.SwapStatus, trigger, changedBy string, now time.Time) *entity.SwapLog {
	return &entity.SwapLog{
		SwapID:     swapID,
		FromStatus: from,
		ToStatus:   to,
		Trigger:    trigger,
		ChangedBy:  changedBy,
		CreatedAt:  now,
	}
}

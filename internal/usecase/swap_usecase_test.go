package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/service"
	"swapskillz/pkg/errors"
)

type swapFixture struct {
	repos    repos
	uc       *SwapUseCase
	metrics  *recordingMetrics
	notifier *recordingNotifier
}

func newSwapFixture(t *testing.T) *swapFixture {
	t.Helper()
	r := newRepos()
	seedUser(t, r.users, "alice")
	seedUser(t, r.users, "bob")
	seedUser(t, r.users, "carol")
	seedUser(t, r.users, "root", func(u *entity.User) { u.Role = entity.RoleAdmin })

	metrics := &recordingMetrics{}
	notifier := &recordingNotifier{}
	lifecycle := service.NewSwapLifecycle(service.NewAccessGuard())

	return &swapFixture{
		repos:    r,
		uc:       NewSwapUseCase(r.swaps, r.users, lifecycle, metrics, notifier),
		metrics:  metrics,
		notifier: notifier,
	}
}

var (
	alice = service.Caller{ID: "alice", Role: entity.RoleUser}
	bob   = service.Caller{ID: "bob", Role: entity.RoleUser}
	carol = service.Caller{ID: "carol", Role: entity.RoleUser}
	root  = service.Caller{ID: "root", Role: entity.RoleAdmin}
)

func validSwapInput() CreateSwapInput {
	start := time.Now().Add(24 * time.Hour)
	return CreateSwapInput{
		ProviderID:        "bob",
		SkillOffered:      entity.SwapSkill{Name: "Go", Category: "Technology"},
		SkillRequested:    entity.SwapSkill{Name: "Guitar", Category: "Music"},
		Title:             "Go for guitar",
		Description:       "Trade lessons",
		ProposedStartDate: start,
		ProposedEndDate:   start.AddDate(0, 0, 14),
		MeetingType:       entity.MeetingOnline,
		EstimatedHours:    entity.EstimatedHours{RequesterTime: 4, ProviderTime: 6},
		Tags:              []string{" Go ", "go", "Music"},
	}
}

func TestSwapUseCase_Create(t *testing.T) {
	f := newSwapFixture(t)

	swap, err := f.uc.Create(context.Background(), "alice", validSwapInput())
	require.NoError(t, err)

	assert.Equal(t, entity.SwapStatusPending, swap.Status)
	assert.Equal(t, "alice", swap.RequesterID)
	assert.Equal(t, entity.PriorityMedium, swap.Priority)
	assert.Equal(t, []string{"go", "music"}, swap.Tags)
	assert.Equal(t, []notification{{UserID: "bob", Type: EventSwapUpdated}}, f.notifier.sent)

	stored, err := f.repos.swaps.GetByID(context.Background(), swap.ID)
	require.NoError(t, err)
	assert.Equal(t, swap.Title, stored.Title)
}

func TestSwapUseCase_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateSwapInput)
		code   string
	}{
		{"end before start", func(in *CreateSwapInput) { in.ProposedEndDate = in.ProposedStartDate.Add(-time.Hour) }, errors.CodeValidation},
		{"end equals start", func(in *CreateSwapInput) { in.ProposedEndDate = in.ProposedStartDate }, errors.CodeValidation},
		{"bad category", func(in *CreateSwapInput) { in.SkillOffered.Category = "Juggling" }, errors.CodeValidation},
		{"in-person without location", func(in *CreateSwapInput) { in.MeetingType = entity.MeetingInPerson }, errors.CodeValidation},
		{"bad meeting type", func(in *CreateSwapInput) { in.MeetingType = "Carrier pigeon" }, errors.CodeValidation},
		{"too few hours", func(in *CreateSwapInput) { in.EstimatedHours.ProviderTime = 0.25 }, errors.CodeValidation},
		{"missing title", func(in *CreateSwapInput) { in.Title = "  " }, errors.CodeValidation},
		{"bad priority", func(in *CreateSwapInput) { in.Priority = "Urgent" }, errors.CodeValidation},
		{"self swap", func(in *CreateSwapInput) { in.ProviderID = "alice" }, errors.CodeBadRequest},
		{"unknown provider", func(in *CreateSwapInput) { in.ProviderID = "ghost" }, errors.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSwapFixture(t)
			in := validSwapInput()
			tt.mutate(&in)

			_, err := f.uc.Create(context.Background(), "alice", in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestSwapUseCase_CreateLimitsCountCharacters(t *testing.T) {
	f := newSwapFixture(t)
	ctx := context.Background()

	in := validSwapInput()
	in.Title = strings.Repeat("日", maxSwapTitle)
	in.Description = strings.Repeat("語", maxSwapDescription)
	swap, err := f.uc.Create(ctx, "alice", in)
	require.NoError(t, err)
	assert.Equal(t, in.Title, swap.Title)

	in = validSwapInput()
	in.Title = strings.Repeat("日", maxSwapTitle+1)
	_, err = f.uc.Create(ctx, "alice", in)
	assert.True(t, errors.Is(err, errors.CodeValidation), "got %v", err)

	in = validSwapInput()
	in.Description = strings.Repeat("語", maxSwapDescription+1)
	_, err = f.uc.Create(ctx, "alice", in)
	assert.True(t, errors.Is(err, errors.CodeValidation), "got %v", err)
}

func TestSwapUseCase_CreateProviderNotAccepting(t *testing.T) {
	f := newSwapFixture(t)
	seedUser(t, f.repos.users, "dave", func(u *entity.User) { u.Preferences.AllowSkillRequests = false })
	seedUser(t, f.repos.users, "erin", func(u *entity.User) { u.IsActive = false })

	in := validSwapInput()
	in.ProviderID = "dave"
	_, err := f.uc.Create(context.Background(), "alice", in)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	in.ProviderID = "erin"
	_, err = f.uc.Create(context.Background(), "alice", in)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestSwapUseCase_Get(t *testing.T) {
	f := newSwapFixture(t)
	seedSwap(t, f.repos.swaps, "s1", "alice", "bob", entity.SwapStatusPending)
	ctx := context.Background()

	for _, c := range []service.Caller{alice, bob, root} {
		swap, err := f.uc.Get(ctx, c, "s1")
		require.NoError(t, err, c.ID)
		assert.Equal(t, "s1", swap.ID)
	}

	_, err := f.uc.Get(ctx, carol, "s1")
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, err = f.uc.Get(ctx, alice, "missing")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestSwapUseCase_List(t *testing.T) {
	f := newSwapFixture(t)
	seedSwap(t, f.repos.swaps, "s1", "alice", "bob", entity.SwapStatusPending)
	seedSwap(t, f.repos.swaps, "s2", "bob", "alice", entity.SwapStatusAccepted)
	seedSwap(t, f.repos.swaps, "s3", "bob", "carol", entity.SwapStatusPending)
	ctx := context.Background()

	swaps, total, err := f.uc.List(ctx, "alice", "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, swaps, 2)

	swaps, total, err = f.uc.List(ctx, "alice", "accepted", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "s2", swaps[0].ID)

	_, _, err = f.uc.List(ctx, "alice", "bogus", 1, 10)
	assert.True(t, errors.Is(err, errors.CodeValidation))
}

func TestSwapUseCase_UpdateStatusPersistsAndLogs(t *testing.T) {
	f := newSwapFixture(t)
	seedSwap(t, f.repos.swaps, "s1", "alice", "bob", entity.SwapStatusPending)
	ctx := context.Background()

	_, err := f.uc.UpdateStatus(ctx, bob, "s1", "accepted")
	require.NoError(t, err)
	swap, err := f.uc.UpdateStatus(ctx, alice, "s1", "in_progress")
	require.NoError(t, err)
	require.NotNil(t, swap.ActualStartDate)

	stored, err := f.repos.swaps.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SwapStatusInProgress, stored.Status)

	history, err := f.uc.History(ctx, alice, "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.SwapStatusPending, history[0].FromStatus)
	assert.Equal(t, entity.SwapStatusAccepted, history[0].ToStatus)
	assert.Equal(t, "bob", history[0].ChangedBy)
	assert.Equal(t, entity.SwapStatusInProgress, history[1].ToStatus)

	assert.Equal(t, []string{"pending->accepted:transition", "accepted->in_progress:transition"}, f.metrics.transitions)
}

func TestSwapUseCase_UpdateStatusInvalidLeavesStoreUntouched(t *testing.T) {
	f := newSwapFixture(t)
	seedSwap(t, f.repos.swaps, "s1", "alice", "bob", entity.SwapStatusPending)
	ctx := context.Background()

	_, err := f.uc.UpdateStatus(ctx, alice, "s1", "completed")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeInvalidTransition))

	_, err = f.uc.UpdateStatus(ctx, carol, "s1", "accepted")
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	stored, err := f.repos.swaps.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SwapStatusPending, stored.Status)

	history, err := f.uc.History(ctx, alice, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, f.metrics.transitions)
}

func TestSwapUseCase_ConfirmCompletion(t *testing.T) {
	f := newSwapFixture(t)
	seedSwap(t, f.repos.swaps, "s1", "alice", "bob", entity.SwapStatusAccepted)
	ctx := context.Background()

	swap, err := f.uc.ConfirmCompletion(ctx, alice, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SwapStatusAccepted, swap.Status)
	assert.True(t, swap.Completion.RequesterConfirmed)

	swap, err = f.uc.ConfirmCompletion(ctx, bob, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SwapStatusCompleted, swap.Status)
	assert.NotNil(t, swap.Completion.CompletedAt)

	history, err := f.uc.History(ctx, root, "s1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.SwapTriggerConfirmation, history[0].Trigger)
	assert.Equal(t, []string{"accepted->completed:confirmation"}, f.metrics.transitions)

	_, err = f.uc.ConfirmCompletion(ctx, root, "s1")
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestSwapUseCase_Milestones(t *testing.T) {
	f := newSwapFixture(t)
	seedSwap(t, f.repos.swaps, "s1", "alice", "bob", entity.SwapStatusInProgress)
	ctx := context.Background()

	swap, err := f.uc.AddMilestone(ctx, alice, "s1", MilestoneInput{Title: "Scales"})
	require.NoError(t, err)
	swap, err = f.uc.AddMilestone(ctx, bob, "s1", MilestoneInput{Title: "Goroutines"})
	require.NoError(t, err)
	require.Len(t, swap.Milestones, 2)

	swap, err = f.uc.CompleteMilestone(ctx, bob, "s1", swap.Milestones[0].ID)
	require.NoError(t, err)
	assert.True(t, swap.Milestones[0].Completed)
	assert.Equal(t, "bob", swap.Milestones[0].CompletedBy)
	assert.NotNil(t, swap.Milestones[0].CompletedDate)
	assert.Equal(t, 50, service.ComputeDerived(swap).CompletionPercentage)

	_, err = f.uc.CompleteMilestone(ctx, bob, "s1", "nope")
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = f.uc.AddMilestone(ctx, carol, "s1", MilestoneInput{Title: "Sneaky"})
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, err = f.uc.AddMilestone(ctx, alice, "s1", MilestoneInput{Title: " "})
	assert.True(t, errors.Is(err, errors.CodeValidation))
}

func TestSwapUseCase_AddMilestoneClosedSwap(t *testing.T) {
	f := newSwapFixture(t)
	seedSwap(t, f.repos.swaps, "s1", "alice", "bob", entity.SwapStatusCancelled)

	_, err := f.uc.AddMilestone(context.Background(), alice, "s1", MilestoneInput{Title: "Late"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestSwapUseCase_UpdateNotes(t *testing.T) {
	f := newSwapFixture(t)
	seedSwap(t, f.repos.swaps, "s1", "alice", "bob", entity.SwapStatusAccepted)
	ctx := context.Background()

	_, err := f.uc.UpdateNotes(ctx, alice, "s1", "bring laptop")
	require.NoError(t, err)
	_, err = f.uc.UpdateNotes(ctx, bob, "s1", "bring guitar")
	require.NoError(t, err)
	swap, err := f.uc.UpdateNotes(ctx, root, "s1", "looks fine")
	require.NoError(t, err)

	assert.Equal(t, entity.SwapNotes{
		RequesterNotes: "bring laptop",
		ProviderNotes:  "bring guitar",
		AdminNotes:     "looks fine",
	}, swap.Notes)

	_, err = f.uc.UpdateNotes(ctx, carol, "s1", "hi")
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestSwapUseCase_HistoryForbiddenForStranger(t *testing.T) {
	f := newSwapFixture(t)
	seedSwap(t, f.repos.swaps, "s1", "alice", "bob", entity.SwapStatusPending)

	_, err := f.uc.History(context.Background(), carol, "s1")
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

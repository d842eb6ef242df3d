package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/internal/domain/service"
	"swapskillz/pkg/errors"
	"swapskillz/pkg/logger"
)

const (
	maxSwapTitle       = 100
	maxSwapDescription = 1000
	minEstimatedHours  = 0.5

	EventSwapUpdated = "swap_updated"
)

type SwapUseCase struct {
	swapRepo  repository.SwapRepository
	userRepo  repository.UserRepository
	lifecycle *service.SwapLifecycle
	metrics   SwapMetrics
	notifier  Notifier
}

func NewSwapUseCase(
	swapRepo repository.SwapRepository,
	userRepo repository.UserRepository,
	lifecycle *service.SwapLifecycle,
	metrics SwapMetrics,
	notifier Notifier,
) *SwapUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &SwapUseCase{
		swapRepo:  swapRepo,
		userRepo:  userRepo,
		lifecycle: lifecycle,
		metrics:   metrics,
		notifier:  notifier,
	}
}

type CreateSwapInput struct {
	ProviderID        string
	SkillOffered      entity.SwapSkill
	SkillRequested    entity.SwapSkill
	Title             string
	Description       string
	ProposedStartDate time.Time
	ProposedEndDate   time.Time
	MeetingType       string
	Location          entity.Location
	OnlineDetails     entity.OnlineDetails
	EstimatedHours    entity.EstimatedHours
	Schedule          []entity.ScheduleSlot
	Tags              []string
	Priority          string
}

func (in *CreateSwapInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	switch {
	case in.Title == "":
		return errors.Validation("Title is required")
	case utf8.RuneCountInString(in.Title) > maxSwapTitle:
		return errors.Validation("Title cannot be more than 100 characters")
	case in.Description == "":
		return errors.Validation("Description is required")
	case utf8.RuneCountInString(in.Description) > maxSwapDescription:
		return errors.Validation("Description cannot be more than 1000 characters")
	case strings.TrimSpace(in.SkillOffered.Name) == "" || strings.TrimSpace(in.SkillRequested.Name) == "":
		return errors.Validation("Offered and requested skill names are required")
	case !entity.IsValidCategory(in.SkillOffered.Category):
		return errors.Validation("Invalid category for offered skill: " + in.SkillOffered.Category)
	case !entity.IsValidCategory(in.SkillRequested.Category):
		return errors.Validation("Invalid category for requested skill: " + in.SkillRequested.Category)
	case in.ProposedStartDate.IsZero() || in.ProposedEndDate.IsZero():
		return errors.Validation("Proposed start and end dates are required")
	case !in.ProposedEndDate.After(in.ProposedStartDate):
		return errors.Validation("End date must be after start date")
	case in.EstimatedHours.RequesterTime < minEstimatedHours || in.EstimatedHours.ProviderTime < minEstimatedHours:
		return errors.Validation("Estimated hours must be at least 0.5")
	}

	switch in.MeetingType {
	case entity.MeetingInPerson, entity.MeetingOnline, entity.MeetingHybrid:
	default:
		return errors.Validation("Meeting type must be In-person, Online or Hybrid")
	}
	if entity.NeedsLocation(in.MeetingType) && strings.TrimSpace(in.Location.City) == "" {
		return errors.Validation("Location is required for in-person or hybrid meetings")
	}

	switch in.Priority {
	case "":
		in.Priority = entity.PriorityMedium
	case entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh:
	default:
		return errors.Validation("Priority must be Low, Medium or High")
	}
	return nil
}

func (uc *SwapUseCase) Create(ctx context.Context, requesterID string, input CreateSwapInput) (*entity.SkillSwap, error) {
	if input.ProviderID == requesterID {
		return nil, errors.BadRequest("You cannot request a skill swap with yourself", nil)
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	provider, err := uc.userRepo.GetByID(ctx, input.ProviderID)
	if err != nil {
		return nil, err
	}
	if !provider.IsActive {
		return nil, errors.NotFound("Provider", nil)
	}
	if !provider.Preferences.AllowSkillRequests {
		return nil, errors.Forbidden("This user is not accepting skill swap requests", nil)
	}

	now := time.Now()
	swap := &entity.SkillSwap{
		ID:                uuid.New().String(),
		RequesterID:       requesterID,
		ProviderID:        input.ProviderID,
		SkillOffered:      input.SkillOffered,
		SkillRequested:    input.SkillRequested,
		Title:             input.Title,
		Description:       input.Description,
		Status:            entity.SwapStatusPending,
		ProposedStartDate: input.ProposedStartDate,
		ProposedEndDate:   input.ProposedEndDate,
		MeetingType:       input.MeetingType,
		Location:          input.Location,
		OnlineDetails:     input.OnlineDetails,
		EstimatedHours:    input.EstimatedHours,
		Schedule:          input.Schedule,
		Milestones:        []entity.Milestone{},
		Tags:              normalizeTags(input.Tags),
		Priority:          input.Priority,
		LastActivity:      now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := uc.swapRepo.Create(ctx, swap); err != nil {
		return nil, err
	}

	uc.notifier.Notify(swap.ProviderID, EventSwapUpdated, service.View(swap))
	return swap, nil
}

func (uc *SwapUseCase) List(ctx context.Context, userID string, status string, page, limit int) ([]*entity.SkillSwap, int64, error) {
	s := entity.SwapStatus(status)
	if s != "" && !s.IsValid() {
		return nil, 0, errors.Validation("Invalid status: " + status)
	}

	offset := pageOffset(page, limit)
	return uc.swapRepo.ListByUser(ctx, userID, s, limit, offset)
}

// load fetches a swap and runs it past the access guard.
func (uc *SwapUseCase) load(ctx context.Context, caller service.Caller, id string) (*entity.SkillSwap, service.AccessDecision, error) {
	swap, err := uc.swapRepo.GetByID(ctx, id)
	if err != nil {
		return nil, service.AccessDenied, err
	}

	decision := uc.lifecycle.Guard().Check(swap, caller)
	if !decision.Allowed() {
		return nil, decision, errors.Forbidden("Not authorized to access this skill swap", nil)
	}
	return swap, decision, nil
}

func (uc *SwapUseCase) Get(ctx context.Context, caller service.Caller, id string) (*entity.SkillSwap, error) {
	swap, _, err := uc.load(ctx, caller, id)
	return swap, err
}

func (uc *SwapUseCase) UpdateStatus(ctx context.Context, caller service.Caller, id string, status string) (*entity.SkillSwap, error) {
	swap, err := uc.swapRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log, err := uc.lifecycle.Transition(swap, entity.SwapStatus(status), caller)
	if err != nil {
		return nil, err
	}

	if err := uc.swapRepo.Update(ctx, swap); err != nil {
		return nil, err
	}

	uc.recordChange(ctx, swap, log, caller)
	return swap, nil
}

func (uc *SwapUseCase) ConfirmCompletion(ctx context.Context, caller service.Caller, id string) (*entity.SkillSwap, error) {
	swap, err := uc.swapRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log, err := uc.lifecycle.ConfirmCompletion(swap, caller)
	if err != nil {
		return nil, err
	}

	if err := uc.swapRepo.Update(ctx, swap); err != nil {
		return nil, err
	}

	uc.recordChange(ctx, swap, log, caller)
	return swap, nil
}

// recordChange writes history and metrics for a persisted status change.
// log is nil when only a confirmation flag moved.
func (uc *SwapUseCase) recordChange(ctx context.Context, swap *entity.SkillSwap, log *entity.SwapLog, caller service.Caller) {
	if log != nil {
		if err := uc.swapRepo.CreateLog(ctx, log); err != nil {
			logger.LogHistoryError(swap.ID, log.Trigger, err)
		}
		uc.metrics.SwapTransition(string(log.FromStatus), string(log.ToStatus), log.Trigger)
	}
	uc.notifyParties(swap, caller.ID)
}

func (uc *SwapUseCase) notifyParties(swap *entity.SkillSwap, actorID string) {
	view := service.View(swap)
	for _, id := range []string{swap.RequesterID, swap.ProviderID} {
		if id != actorID {
			uc.notifier.Notify(id, EventSwapUpdated, view)
		}
	}
}

type MilestoneInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

func (uc *SwapUseCase) AddMilestone(ctx context.Context, caller service.Caller, id string, input MilestoneInput) (*entity.SkillSwap, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, errors.Validation("Milestone title is required")
	}

	swap, _, err := uc.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if swap.Status.IsTerminal() {
		return nil, errors.BadRequest("Cannot add milestones to a "+string(swap.Status)+" skill swap", nil)
	}

	swap.Milestones = append(swap.Milestones, entity.Milestone{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: strings.TrimSpace(input.Description),
		DueDate:     input.DueDate,
	})
	touchSwap(swap)

	if err := uc.swapRepo.Update(ctx, swap); err != nil {
		return nil, err
	}
	return swap, nil
}

func (uc *SwapUseCase) CompleteMilestone(ctx context.Context, caller service.Caller, id, milestoneID string) (*entity.SkillSwap, error) {
	swap, _, err := uc.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	milestone := swap.FindMilestone(milestoneID)
	if milestone == nil {
		return nil, errors.NotFound("Milestone", nil)
	}

	if !milestone.Completed {
		now := time.Now()
		milestone.Completed = true
		milestone.CompletedDate = &now
		milestone.CompletedBy = caller.ID
	}
	touchSwap(swap)

	if err := uc.swapRepo.Update(ctx, swap); err != nil {
		return nil, err
	}
	return swap, nil
}

// UpdateNotes writes to the note slot that belongs to the caller.
func (uc *SwapUseCase) UpdateNotes(ctx context.Context, caller service.Caller, id, notes string) (*entity.SkillSwap, error) {
	swap, decision, err := uc.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	switch decision {
	case service.AccessRequester:
		swap.Notes.RequesterNotes = notes
	case service.AccessProvider:
		swap.Notes.ProviderNotes = notes
	case service.AccessAdmin:
		swap.Notes.AdminNotes = notes
	}
	touchSwap(swap)

	if err := uc.swapRepo.Update(ctx, swap); err != nil {
		return nil, err
	}
	return swap, nil
}

func (uc *SwapUseCase) History(ctx context.Context, caller service.Caller, id string) ([]*entity.SwapLog, error) {
	if _, _, err := uc.load(ctx, caller, id); err != nil {
		return nil, err
	}
	return uc.swapRepo.ListLogs(ctx, id)
}

func touchSwap(swap *entity.SkillSwap) {
	now := time.Now()
	swap.LastActivity = now
	swap.UpdatedAt = now
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

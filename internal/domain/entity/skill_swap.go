package entity

import (
	"time"
)

type SwapStatus string

const (
	SwapStatusPending    SwapStatus = "pending"
	SwapStatusAccepted   SwapStatus = "accepted"
	SwapStatusRejected   SwapStatus = "rejected"
	SwapStatusInProgress SwapStatus = "in_progress"
	SwapStatusCompleted  SwapStatus = "completed"
	SwapStatusCancelled  SwapStatus = "cancelled"
)

var SwapStatuses = []SwapStatus{
	SwapStatusPending,
	SwapStatusAccepted,
	SwapStatusRejected,
	SwapStatusInProgress,
	SwapStatusCompleted,
	SwapStatusCancelled,
}

func (s SwapStatus) IsValid() bool {
	for _, status := range SwapStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusRejected || s == SwapStatusCompleted || s == SwapStatusCancelled
}

var SkillCategories = []string{
	"Technology",
	"Design",
	"Business",
	"Marketing",
	"Languages",
	"Music",
	"Sports",
	"Cooking",
	"Crafts",
	"Photography",
	"Writing",
	"Teaching",
	"Other",
}

func IsValidCategory(category string) bool {
	for _, c := range SkillCategories {
		if c == category {
			return true
		}
	}
	return false
}

const (
	MeetingInPerson = "In-person"
	MeetingOnline   = "Online"
	MeetingHybrid   = "Hybrid"
)

// NeedsLocation reports whether a meeting type requires a physical location.
func NeedsLocation(meetingType string) bool {
	return meetingType == MeetingInPerson || meetingType == MeetingHybrid
}

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type SwapSkill struct {
	Name        string `json:"name" firestore:"name" bson:"name"`
	Category    string `json:"category" firestore:"category" bson:"category"`
	Description string `json:"description,omitempty" firestore:"description,omitempty" bson:"description,omitempty"`
}

type EstimatedHours struct {
	RequesterTime float64 `json:"requester_time" firestore:"requesterTime" bson:"requesterTime"`
	ProviderTime  float64 `json:"provider_time" firestore:"providerTime" bson:"providerTime"`
}

type OnlineDetails struct {
	Platform string `json:"platform,omitempty" firestore:"platform,omitempty" bson:"platform,omitempty"`
	Link     string `json:"link,omitempty" firestore:"link,omitempty" bson:"link,omitempty"`
}

type ScheduleSlot struct {
	Date        time.Time `json:"date" firestore:"date" bson:"date"`
	StartTime   string    `json:"start_time" firestore:"startTime" bson:"startTime"`
	EndTime     string    `json:"end_time" firestore:"endTime" bson:"endTime"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty" bson:"description,omitempty"`
	Completed   bool      `json:"completed" firestore:"completed" bson:"completed"`
}

type Milestone struct {
	ID            string     `json:"id" firestore:"id" bson:"id"`
	Title         string     `json:"title" firestore:"title" bson:"title"`
	Description   string     `json:"description,omitempty" firestore:"description,omitempty" bson:"description,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty" firestore:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Completed     bool       `json:"completed" firestore:"completed" bson:"completed"`
	CompletedDate *time.Time `json:"completed_date,omitempty" firestore:"completedDate,omitempty" bson:"completedDate,omitempty"`
	CompletedBy   string     `json:"completed_by,omitempty" firestore:"completedBy,omitempty" bson:"completedBy,omitempty"`
}

type SwapNotes struct {
	RequesterNotes string `json:"requester_notes,omitempty" firestore:"requesterNotes,omitempty" bson:"requesterNotes,omitempty"`
	ProviderNotes  string `json:"provider_notes,omitempty" firestore:"providerNotes,omitempty" bson:"providerNotes,omitempty"`
	AdminNotes     string `json:"admin_notes,omitempty" firestore:"adminNotes,omitempty" bson:"adminNotes,omitempty"`
}

type Completion struct {
	RequesterConfirmed bool       `json:"requester_confirmed" firestore:"requesterConfirmed" bson:"requesterConfirmed"`
	ProviderConfirmed  bool       `json:"provider_confirmed" firestore:"providerConfirmed" bson:"providerConfirmed"`
	CompletedAt        *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

type SkillSwap struct {
	ID          string `json:"id" firestore:"id" bson:"id"`
	RequesterID string `json:"requester_id" firestore:"requesterId" bson:"requesterId"`
	ProviderID  string `json:"provider_id" firestore:"providerId" bson:"providerId"`

	SkillOffered   SwapSkill `json:"skill_offered" firestore:"skillOffered" bson:"skillOffered"`
	SkillRequested SwapSkill `json:"skill_requested" firestore:"skillRequested" bson:"skillRequested"`

	Title       string     `json:"title" firestore:"title" bson:"title"`
	Description string     `json:"description" firestore:"description" bson:"description"`
	Status      SwapStatus `json:"status" firestore:"status" bson:"status"`

	ProposedStartDate time.Time  `json:"proposed_start_date" firestore:"proposedStartDate" bson:"proposedStartDate"`
	ProposedEndDate   time.Time  `json:"proposed_end_date" firestore:"proposedEndDate" bson:"proposedEndDate"`
	ActualStartDate   *time.Time `json:"actual_start_date,omitempty" firestore:"actualStartDate,omitempty" bson:"actualStartDate,omitempty"`
	ActualEndDate     *time.Time `json:"actual_end_date,omitempty" firestore:"actualEndDate,omitempty" bson:"actualEndDate,omitempty"`

	MeetingType   string        `json:"meeting_type" firestore:"meetingType" bson:"meetingType"`
	Location      Location      `json:"location" firestore:"location" bson:"location"`
	OnlineDetails OnlineDetails `json:"online_details" firestore:"onlineDetails" bson:"onlineDetails"`

	EstimatedHours EstimatedHours `json:"estimated_hours" firestore:"estimatedHours" bson:"estimatedHours"`
	Schedule       []ScheduleSlot `json:"schedule" firestore:"schedule" bson:"schedule"`
	Milestones     []Milestone    `json:"milestones" firestore:"milestones" bson:"milestones"`
	Notes          SwapNotes      `json:"notes" firestore:"notes" bson:"notes"`
	Completion     Completion     `json:"completion" firestore:"completion" bson:"completion"`

	Tags     []string `json:"tags" firestore:"tags" bson:"tags"`
	Priority string   `json:"priority" firestore:"priority" bson:"priority"`

	LastActivity time.Time `json:"last_activity" firestore:"lastActivity" bson:"lastActivity"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt" bson:"updatedAt"`
}

// IsParty reports whether userID is the requester or the provider.
func (s *SkillSwap) IsParty(userID string) bool {
	return userID != "" && (s.RequesterID == userID || s.ProviderID == userID)
}

// Counterpart returns the other party, or "" when userID is not a party.
func (s *SkillSwap) Counterpart(userID string) string {
	switch userID {
	case s.RequesterID:
		return s.ProviderID
	case s.ProviderID:
		return s.RequesterID
	default:
		return ""
	}
}

func (s *SkillSwap) FindMilestone(id string) *Milestone {
	for i := range s.Milestones {
		if s.Milestones[i].ID == id {
			return &s.Milestones[i]
		}
	}
	return nil
}

// SwapDerived holds values computed from a swap, never stored.
type SwapDerived struct {
	DurationDays         int     `json:"duration_days"`
	TotalEstimatedHours  float64 `json:"total_estimated_hours"`
	CompletionPercentage int     `json:"completion_percentage"`
	IsActive             bool    `json:"is_active"`
}

// SwapView is the API representation of a swap.
type SwapView struct {
	*SkillSwap
	SwapDerived
}

const (
	SwapTriggerTransition   = "transition"
	SwapTriggerConfirmation = "confirmation"
)

// SwapLog records one status change.
type SwapLog struct {
	ID         string     `json:"id" firestore:"id" bson:"id"`
	SwapID     string     `json:"swap_id" firestore:"swapId" bson:"swapId"`
	FromStatus SwapStatus `json:"from_status" firestore:"fromStatus" bson:"fromStatus"`
	ToStatus   SwapStatus `json:"to_status" firestore:"toStatus" bson:"toStatus"`
	Trigger    string     `json:"trigger" firestore:"trigger" bson:"trigger"`
	ChangedBy  string     `json:"changed_by" firestore:"changedBy" bson:"changedBy"`
	CreatedAt  time.Time  `json:"created_at" firestore:"createdAt" bson:"createdAt"`
}

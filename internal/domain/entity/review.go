package entity

import (
	"time"
)

const (
	ReviewTypeSkillProvider = "skill_provider"
	ReviewTypeSkillLearner  = "skill_learner"
)

// ReportHideThreshold is the report count at which a review is hidden automatically.
const ReportHideThreshold = 5

var ReviewTags = []string{
	"excellent_teacher",
	"patient",
	"knowledgeable",
	"well_prepared",
	"punctual",
	"friendly",
	"professional",
	"clear_communication",
	"helpful_resources",
	"practical_examples",
	"good_listener",
	"encouraging",
	"flexible_schedule",
	"exceeded_expectations",
}

type DetailedRating struct {
	Expertise     *int `json:"expertise,omitempty" firestore:"expertise,omitempty" bson:"expertise,omitempty"`
	Communication *int `json:"communication,omitempty" firestore:"communication,omitempty" bson:"communication,omitempty"`
	Reliability   *int `json:"reliability,omitempty" firestore:"reliability,omitempty" bson:"reliability,omitempty"`
	Helpfulness   *int `json:"helpfulness,omitempty" firestore:"helpfulness,omitempty" bson:"helpfulness,omitempty"`
}

func (d DetailedRating) values() []*int {
	return []*int{d.Expertise, d.Communication, d.Reliability, d.Helpfulness}
}

// Complete reports whether all four sub-ratings are present.
func (d DetailedRating) Complete() bool {
	for _, v := range d.values() {
		if v == nil {
			return false
		}
	}
	return true
}

// Present returns the sub-ratings that were given.
func (d DetailedRating) Present() []int {
	var out []int
	for _, v := range d.values() {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

type Vote struct {
	UserID  string `json:"user_id" firestore:"userId" bson:"userId"`
	Helpful bool   `json:"helpful" firestore:"helpful" bson:"helpful"`
}

type ReviewResponse struct {
	Comment   string    `json:"comment" firestore:"comment" bson:"comment"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt" bson:"createdAt"`
}

type Review struct {
	ID          string `json:"id" firestore:"id" bson:"id"`
	SkillSwapID string `json:"skill_swap_id" firestore:"skillSwapId" bson:"skillSwapId"`
	ReviewerID  string `json:"reviewer_id" firestore:"reviewerId" bson:"reviewerId"`
	RevieweeID  string `json:"reviewee_id" firestore:"revieweeId" bson:"revieweeId"`

	Rating      int            `json:"rating" firestore:"rating" bson:"rating"`
	SkillRating DetailedRating `json:"skill_rating" firestore:"skillRating" bson:"skillRating"`
	Title       string         `json:"title,omitempty" firestore:"title,omitempty" bson:"title,omitempty"`
	Comment     string         `json:"comment" firestore:"comment" bson:"comment"`
	Type        string         `json:"type" firestore:"type" bson:"type"`
	Tags        []string       `json:"tags" firestore:"tags" bson:"tags"`

	IsVerified bool       `json:"is_verified" firestore:"isVerified" bson:"isVerified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty" firestore:"verifiedAt,omitempty" bson:"verifiedAt,omitempty"`

	IsReported      bool   `json:"is_reported" firestore:"isReported" bson:"isReported"`
	ReportCount     int    `json:"report_count" firestore:"reportCount" bson:"reportCount"`
	IsHidden        bool   `json:"is_hidden" firestore:"isHidden" bson:"isHidden"`
	ModerationNotes string `json:"moderation_notes,omitempty" firestore:"moderationNotes,omitempty" bson:"moderationNotes,omitempty"`

	HelpfulVotes int             `json:"helpful_votes" firestore:"helpfulVotes" bson:"helpfulVotes"`
	VotedBy      []Vote          `json:"voted_by" firestore:"votedBy" bson:"votedBy"`
	Response     *ReviewResponse `json:"response,omitempty" firestore:"response,omitempty" bson:"response,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt" bson:"updatedAt"`
}

// AverageDetailedRating is the mean of the present sub-ratings rounded to
// one decimal, or nil when none were given.
func (r *Review) AverageDetailedRating() *float64 {
	present := r.SkillRating.Present()
	if len(present) == 0 {
		return nil
	}
	sum := 0
	for _, v := range present {
		sum += v
	}
	avg := RoundOneDecimal(float64(sum) / float64(len(present)))
	return &avg
}

// Verify marks the review verified once all detailed ratings are present.
func (r *Review) Verify(now time.Time) {
	if r.SkillRating.Complete() && !r.IsVerified {
		r.IsVerified = true
		r.VerifiedAt = &now
	}
}

// CastVote replaces any earlier vote by userID and recounts helpful votes.
func (r *Review) CastVote(userID string, helpful bool) {
	votes := r.VotedBy[:0]
	for _, v := range r.VotedBy {
		if v.UserID != userID {
			votes = append(votes, v)
		}
	}
	r.VotedBy = append(votes, Vote{UserID: userID, Helpful: helpful})

	r.HelpfulVotes = 0
	for _, v := range r.VotedBy {
		if v.Helpful {
			r.HelpfulVotes++
		}
	}
}

// ReviewView adds derived values to a review for API responses.
type ReviewView struct {
	*Review
	AverageDetailedRating *float64 `json:"average_detailed_rating"`
}

func (r *Review) View() ReviewView {
	return ReviewView{Review: r, AverageDetailedRating: r.AverageDetailedRating()}
}

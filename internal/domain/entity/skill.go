package entity

import (
	"time"
)

const (
	DefaultSkillCategory = "Other"
	DefaultSkillLevel    = "Intermediate"
)

// Skill is a listing a user publishes to advertise something they can teach.
type Skill struct {
	ID          string        `json:"id" firestore:"id" bson:"id"`
	UserID      string        `json:"user_id" firestore:"userId" bson:"userId"`
	Title       string        `json:"title" firestore:"title" bson:"title"`
	Category    string        `json:"category" firestore:"category" bson:"category"`
	Level       string        `json:"level" firestore:"level" bson:"level"`
	Description string        `json:"description,omitempty" firestore:"description,omitempty" bson:"description,omitempty"`
	Location    SkillLocation `json:"location" firestore:"location" bson:"location"`
	CreatedAt   time.Time     `json:"created_at" firestore:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updated_at" firestore:"updatedAt" bson:"updatedAt"`
}

type SkillLocation struct {
	City    string `json:"city,omitempty" firestore:"city,omitempty" bson:"city,omitempty"`
	Country string `json:"country,omitempty" firestore:"country,omitempty" bson:"country,omitempty"`
}

func IsValidSkillLevel(level string) bool {
	for _, l := range SkillLevels {
		if l == level {
			return true
		}
	}
	return false
}

package entity

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var SkillLevels = []string{"Beginner", "Intermediate", "Advanced", "Expert"}

type Location struct {
	City    string `json:"city,omitempty" firestore:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" firestore:"state,omitempty" bson:"state,omitempty"`
	Country string `json:"country,omitempty" firestore:"country,omitempty" bson:"country,omitempty"`
}

type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty" firestore:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty" firestore:"twitter,omitempty" bson:"twitter,omitempty"`
	Github    string `json:"github,omitempty" firestore:"github,omitempty" bson:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty" firestore:"portfolio,omitempty" bson:"portfolio,omitempty"`
}

type OfferedSkill struct {
	Name              string `json:"name" firestore:"name" bson:"name"`
	Category          string `json:"category" firestore:"category" bson:"category"`
	Level             string `json:"level" firestore:"level" bson:"level"`
	Description       string `json:"description,omitempty" firestore:"description,omitempty" bson:"description,omitempty"`
	YearsOfExperience int    `json:"years_of_experience,omitempty" firestore:"yearsOfExperience,omitempty" bson:"yearsOfExperience,omitempty"`
}

type WantedSkill struct {
	Name        string `json:"name" firestore:"name" bson:"name"`
	Category    string `json:"category" firestore:"category" bson:"category"`
	Level       string `json:"level" firestore:"level" bson:"level"`
	Description string `json:"description,omitempty" firestore:"description,omitempty" bson:"description,omitempty"`
	Priority    string `json:"priority" firestore:"priority" bson:"priority"`
}

// Rating is the aggregate derived from a user's visible reviews.
type Rating struct {
	Average float64 `json:"average" firestore:"average" bson:"average"`
	Count   int     `json:"count" firestore:"count" bson:"count"`
}

type Preferences struct {
	AllowMessages        bool   `json:"allow_messages" firestore:"allowMessages" bson:"allowMessages"`
	AllowSkillRequests   bool   `json:"allow_skill_requests" firestore:"allowSkillRequests" bson:"allowSkillRequests"`
	EmailNotifications   bool   `json:"email_notifications" firestore:"emailNotifications" bson:"emailNotifications"`
	MaxDistance          int    `json:"max_distance" firestore:"maxDistance" bson:"maxDistance"`
	PreferredMeetingType string `json:"preferred_meeting_type" firestore:"preferredMeetingType" bson:"preferredMeetingType"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		AllowMessages:        true,
		AllowSkillRequests:   true,
		EmailNotifications:   true,
		MaxDistance:          50,
		PreferredMeetingType: "Both",
	}
}

type User struct {
	ID           string `json:"id" firestore:"id" bson:"id"`
	FirstName    string `json:"first_name" firestore:"firstName" bson:"firstName"`
	LastName     string `json:"last_name" firestore:"lastName" bson:"lastName"`
	Email        string `json:"email" firestore:"email" bson:"email"`
	PasswordHash string `json:"-" firestore:"passwordHash" bson:"passwordHash"`
	Role         string `json:"role" firestore:"role" bson:"role"`

	Avatar      string      `json:"avatar,omitempty" firestore:"avatar,omitempty" bson:"avatar,omitempty"`
	Bio         string      `json:"bio,omitempty" firestore:"bio,omitempty" bson:"bio,omitempty"`
	Location    Location    `json:"location" firestore:"location" bson:"location"`
	Phone       string      `json:"phone,omitempty" firestore:"phone,omitempty" bson:"phone,omitempty"`
	Website     string      `json:"website,omitempty" firestore:"website,omitempty" bson:"website,omitempty"`
	SocialLinks SocialLinks `json:"social_links" firestore:"socialLinks" bson:"socialLinks"`

	SkillsOffered []OfferedSkill `json:"skills_offered" firestore:"skillsOffered" bson:"skillsOffered"`
	SkillsWanted  []WantedSkill  `json:"skills_wanted" firestore:"skillsWanted" bson:"skillsWanted"`

	Rating      Rating      `json:"rating" firestore:"rating" bson:"rating"`
	Preferences Preferences `json:"preferences" firestore:"preferences" bson:"preferences"`

	IsActive   bool      `json:"is_active" firestore:"isActive" bson:"isActive"`
	LastActive time.Time `json:"last_active" firestore:"lastActive" bson:"lastActive"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt" bson:"updatedAt"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicProfile is what other users see.
type PublicProfile struct {
	ID            string         `json:"id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Avatar        string         `json:"avatar,omitempty"`
	Bio           string         `json:"bio,omitempty"`
	Location      Location       `json:"location"`
	Website       string         `json:"website,omitempty"`
	SocialLinks   SocialLinks    `json:"social_links"`
	SkillsOffered []OfferedSkill `json:"skills_offered"`
	SkillsWanted  []WantedSkill  `json:"skills_wanted"`
	Rating        Rating         `json:"rating"`
	LastActive    time.Time      `json:"last_active"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Avatar:        u.Avatar,
		Bio:           u.Bio,
		Location:      u.Location,
		Website:       u.Website,
		SocialLinks:   u.SocialLinks,
		SkillsOffered: u.SkillsOffered,
		SkillsWanted:  u.SkillsWanted,
		Rating:        u.Rating,
		LastActive:    u.LastActive,
		CreatedAt:     u.CreatedAt,
	}
}

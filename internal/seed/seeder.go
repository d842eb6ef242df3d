// Package seed fills a store with fake members, skills, swaps and reviews for
// local development.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/internal/domain/service"
	"swapskillz/internal/usecase"
	"swapskillz/pkg/logger"
)

const DefaultPassword = "Password123"

var skillTitles = map[string][]string{
	"Technology":  {"Go programming", "React basics", "SQL tuning", "Linux administration"},
	"Design":      {"Figma prototyping", "Logo design", "Typography"},
	"Business":    {"Pitch decks", "Bookkeeping", "Negotiation"},
	"Marketing":   {"SEO audits", "Copywriting for ads", "Newsletter growth"},
	"Languages":   {"Conversational Spanish", "Japanese kana", "French grammar"},
	"Music":       {"Guitar chords", "Music theory", "Home recording"},
	"Sports":      {"Running form", "Bouldering", "Tennis serve"},
	"Cooking":     {"Sourdough baking", "Knife skills", "Thai curries"},
	"Crafts":      {"Pottery wheel", "Knitting", "Woodworking joints"},
	"Photography": {"Portrait lighting", "Lightroom editing"},
	"Writing":     {"Short fiction", "Technical writing"},
	"Teaching":    {"Lesson planning", "Public speaking"},
}

type Options struct {
	Users int
	// Swaps per user; roughly half of them are driven to completion.
	Swaps    int
	Password string
	Admin    bool
}

type Result struct {
	Users   int
	Skills  int
	Swaps   int
	Reviews int
}

type Seeder struct {
	auth    *usecase.AuthUseCase
	skills  *usecase.SkillUseCase
	swaps   *usecase.SwapUseCase
	reviews *usecase.ReviewUseCase
	users   repository.UserRepository
	faker   *gofakeit.Faker
}

func NewSeeder(
	auth *usecase.AuthUseCase,
	skills *usecase.SkillUseCase,
	swaps *usecase.SwapUseCase,
	reviews *usecase.ReviewUseCase,
	users repository.UserRepository,
	faker *gofakeit.Faker,
) *Seeder {
	return &Seeder{
		auth:    auth,
		skills:  skills,
		swaps:   swaps,
		reviews: reviews,
		users:   users,
		faker:   faker,
	}
}

type member struct {
	user   *entity.User
	skills []*entity.Skill
}

func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	var result Result
	if opts.Users < 2 {
		return result, fmt.Errorf("need at least 2 users, got %d", opts.Users)
	}
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}

	members := make([]*member, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		m, err := s.createMember(ctx, i, opts.Password)
		if err != nil {
			return result, err
		}
		members = append(members, m)
		result.Users++
		result.Skills += len(m.skills)
	}

	if opts.Admin {
		if err := s.promote(ctx, members[0].user); err != nil {
			return result, err
		}
	}

	for i, requester := range members {
		for n := 0; n < opts.Swaps; n++ {
			provider := members[(i+1+n)%len(members)]
			if provider == requester {
				continue
			}

			swap, err := s.createSwap(ctx, requester, provider)
			if err != nil {
				return result, err
			}
			result.Swaps++

			if n%2 != 0 {
				continue
			}
			written, err := s.complete(ctx, swap)
			if err != nil {
				return result, err
			}
			result.Reviews += written
		}
	}

	logger.Info("Seeded %d users, %d skills, %d swaps, %d reviews", result.Users, result.Skills, result.Swaps, result.Reviews)
	return result, nil
}

func (s *Seeder) createMember(ctx context.Context, i int, password string) (*member, error) {
	first, last := s.faker.FirstName(), s.faker.LastName()
	email := fmt.Sprintf("%s.%s.%d@swapskillz.dev", strings.ToLower(first), strings.ToLower(last), i)

	registered, err := s.auth.Register(ctx, usecase.RegisterInput{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", email, err)
	}

	m := &member{user: registered.User}
	for n := s.faker.IntRange(1, 3); n > 0; n-- {
		category := s.faker.RandomString(categories())
		skill, err := s.skills.Create(ctx, m.user.ID, usecase.SkillInput{
			Title:       s.faker.RandomString(skillTitles[category]),
			Category:    category,
			Level:       s.faker.RandomString(entity.SkillLevels),
			Description: s.faker.Sentence(12),
			Location: entity.SkillLocation{
				City:    s.faker.City(),
				Country: s.faker.Country(),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("create skill for %s: %w", email, err)
		}
		m.skills = append(m.skills, skill)
	}
	return m, nil
}

func (s *Seeder) promote(ctx context.Context, registered *entity.User) error {
	user, err := s.users.GetByID(ctx, registered.ID)
	if err != nil {
		return err
	}
	user.Role = entity.RoleAdmin
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("promote %s: %w", user.Email, err)
	}
	logger.Info("Seeded admin %s", user.Email)
	return nil
}

func (s *Seeder) createSwap(ctx context.Context, requester, provider *member) (*entity.SkillSwap, error) {
	offered, requested := requester.skills[0], provider.skills[0]
	start := time.Now().AddDate(0, 0, s.faker.IntRange(1, 14))

	input := usecase.CreateSwapInput{
		ProviderID:        provider.user.ID,
		SkillOffered:      entity.SwapSkill{Name: offered.Title, Category: offered.Category},
		SkillRequested:    entity.SwapSkill{Name: requested.Title, Category: requested.Category},
		Title:             fmt.Sprintf("%s for %s", offered.Title, requested.Title),
		Description:       s.faker.Sentence(20),
		ProposedStartDate: start,
		ProposedEndDate:   start.AddDate(0, 0, s.faker.IntRange(7, 30)),
		MeetingType:       entity.MeetingOnline,
		OnlineDetails:     entity.OnlineDetails{Platform: "Zoom"},
		EstimatedHours: entity.EstimatedHours{
			RequesterTime: float64(s.faker.IntRange(1, 10)),
			ProviderTime:  float64(s.faker.IntRange(1, 10)),
		},
		Priority: s.faker.RandomString([]string{entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh}),
	}

	swap, err := s.swaps.Create(ctx, requester.user.ID, input)
	if err != nil {
		return nil, fmt.Errorf("create swap: %w", err)
	}
	return swap, nil
}

// complete walks a pending swap to completed and has both parties review it.
func (s *Seeder) complete(ctx context.Context, swap *entity.SkillSwap) (int, error) {
	requester := service.Caller{ID: swap.RequesterID, Role: entity.RoleUser}
	provider := service.Caller{ID: swap.ProviderID, Role: entity.RoleUser}

	steps := []func() (*entity.SkillSwap, error){
		func() (*entity.SkillSwap, error) {
			return s.swaps.UpdateStatus(ctx, provider, swap.ID, string(entity.SwapStatusAccepted))
		},
		func() (*entity.SkillSwap, error) {
			return s.swaps.UpdateStatus(ctx, requester, swap.ID, string(entity.SwapStatusInProgress))
		},
		func() (*entity.SkillSwap, error) { return s.swaps.ConfirmCompletion(ctx, requester, swap.ID) },
		func() (*entity.SkillSwap, error) { return s.swaps.ConfirmCompletion(ctx, provider, swap.ID) },
	}
	for _, step := range steps {
		if _, err := step(); err != nil {
			return 0, fmt.Errorf("advance swap %s: %w", swap.ID, err)
		}
	}

	written := 0
	for _, reviewerID := range []string{swap.RequesterID, swap.ProviderID} {
		if _, err := s.reviews.Create(ctx, reviewerID, swap.ID, s.reviewInput()); err != nil {
			return written, fmt.Errorf("review swap %s: %w", swap.ID, err)
		}
		written++
	}
	return written, nil
}

func (s *Seeder) reviewInput() usecase.ReviewInput {
	score := func() *int {
		v := s.faker.IntRange(3, 5)
		return &v
	}
	return usecase.ReviewInput{
		Rating: s.faker.IntRange(3, 5),
		SkillRating: entity.DetailedRating{
			Expertise:     score(),
			Communication: score(),
		},
		Title:   s.faker.Sentence(4),
		Comment: s.faker.Sentence(16),
		Tags: []string{
			s.faker.RandomString(entity.ReviewTags),
		},
	}
}

func categories() []string {
	out := make([]string, 0, len(skillTitles))
	for _, c := range entity.SkillCategories {
		if _, ok := skillTitles[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

package usecase

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"swapskillz/internal/adapter/repository"
	"swapskillz/internal/domain/entity"
	domainrepo "swapskillz/internal/domain/repository"
)

type recordingMetrics struct {
	mu             sync.Mutex
	transitions    []string
	ratingFailures int
}

func (m *recordingMetrics) SwapTransition(from, to, trigger string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, from+"->"+to+":"+trigger)
}

func (m *recordingMetrics) RatingRecomputeFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratingFailures++
}

type notification struct {
	UserID string
	Type   string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(userID, eventType string, _ interface{}) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{UserID: userID, Type: eventType})
	return true
}

type fakeStorage struct {
	uploaded []string
	deleted  []string
	fail     error
}

func (s *fakeStorage) UploadImage(_ context.Context, file io.Reader, contentType, folder string) (string, error) {
	if s.fail != nil {
		return "", s.fail
	}
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	url := "https://storage.googleapis.com/test/public/" + folder + "/" + contentType
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}

// failingRatingUserRepo wraps a user repository and fails rating writes.
type failingRatingUserRepo struct {
	domainrepo.UserRepository
	err error
}

func (r *failingRatingUserRepo) UpdateRating(context.Context, string, entity.Rating) error {
	return r.err
}

func seedUser(t *testing.T, repo domainrepo.UserRepository, id string, mutate ...func(*entity.User)) *entity.User {
	t.Helper()
	u := &entity.User{
		ID:          id,
		FirstName:   "First" + id,
		LastName:    "Last",
		Email:       id + "@example.com",
		Role:        entity.RoleUser,
		Preferences: entity.DefaultPreferences(),
		IsActive:    true,
	}
	for _, m := range mutate {
		m(u)
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func seedSwap(t *testing.T, repo domainrepo.SwapRepository, id, requester, provider string, status entity.SwapStatus) *entity.SkillSwap {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &entity.SkillSwap{
		ID:                id,
		RequesterID:       requester,
		ProviderID:        provider,
		SkillOffered:      entity.SwapSkill{Name: "Go", Category: "Technology"},
		SkillRequested:    entity.SwapSkill{Name: "Guitar", Category: "Music"},
		Title:             "Go for guitar",
		Description:       "Weekly sessions",
		Status:            status,
		ProposedStartDate: start,
		ProposedEndDate:   start.AddDate(0, 0, 7),
		MeetingType:       entity.MeetingOnline,
		EstimatedHours:    entity.EstimatedHours{RequesterTime: 5, ProviderTime: 5},
		Priority:          entity.PriorityMedium,
	}
	require.NoError(t, repo.Create(context.Background(), s))
	return s
}

type repos struct {
	users    domainrepo.UserRepository
	swaps    domainrepo.SwapRepository
	reviews  domainrepo.ReviewRepository
	skills   domainrepo.SkillRepository
	messages domainrepo.MessageRepository
}

func newRepos() repos {
	return repos{
		users:    repository.NewMemoryUserRepository(),
		swaps:    repository.NewMemorySwapRepository(),
		reviews:  repository.NewMemoryReviewRepository(),
		skills:   repository.NewMemorySkillRepository(),
		messages: repository.NewMemoryMessageRepository(),
	}
}

package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/pkg/errors"
	"swapskillz/pkg/utils"
)

type memoryUserRepository struct {
	mu      sync.RWMutex
	users   map[string]entity.User
	byEmail map[string]string
}

func NewMemoryUserRepository() repository.UserRepository {
	return &memoryUserRepository{
		users:   map[string]entity.User{},
		byEmail: map[string]string{},
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, ok := r.byEmail[email]; ok {
		return errors.Conflict("User already exists with this email")
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	r.users[user.ID] = cloneUser(*user)
	r.byEmail[email] = user.ID
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	out := cloneUser(u)
	return &out, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	out := cloneUser(r.users[id])
	return &out, nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return errors.NotFound("User", nil)
	}

	oldEmail := strings.ToLower(existing.Email)
	newEmail := strings.ToLower(user.Email)
	if oldEmail != newEmail {
		if _, taken := r.byEmail[newEmail]; taken {
			return errors.Conflict("User already exists with this email")
		}
		delete(r.byEmail, oldEmail)
		r.byEmail[newEmail] = user.ID
	}

	user.UpdatedAt = time.Now()
	r.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *memoryUserRepository) UpdateRating(ctx context.Context, id string, rating entity.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	u.Rating = rating
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}

func (r *memoryUserRepository) List(ctx context.Context, filter repository.UserFilter, limit, offset int) ([]*entity.User, int64, error) {
	r.mu.RLock()
	var matched []*entity.User
	for _, u := range r.users {
		if MatchUser(&u, filter) {
			out := cloneUser(u)
			matched = append(matched, &out)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return newerFirst(matched[i].CreatedAt, matched[j].CreatedAt, matched[i].ID, matched[j].ID)
	})

	start, end := utils.Window(len(matched), offset, limit)
	return matched[start:end], int64(len(matched)), nil
}

// MatchUser applies a UserFilter in process. Backends without text
// search use it after fetching candidates.
func MatchUser(u *entity.User, filter repository.UserFilter) bool {
	if filter.ActiveOnly && !u.IsActive {
		return false
	}

	if filter.Category != "" {
		found := false
		for _, s := range u.SkillsOffered {
			if s.Category == filter.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		if strings.Contains(strings.ToLower(u.FirstName), q) || strings.Contains(strings.ToLower(u.LastName), q) {
			return true
		}
		for _, s := range u.SkillsOffered {
			if strings.Contains(strings.ToLower(s.Name), q) {
				return true
			}
		}
		return false
	}

	return true
}

func cloneUser(u entity.User) entity.User {
	u.SkillsOffered = append([]entity.OfferedSkill(nil), u.SkillsOffered...)
	u.SkillsWanted = append([]entity.WantedSkill(nil), u.SkillsWanted...)
	return u
}

func newerFirst(a, b time.Time, idA, idB string) bool {
	if a.Equal(b) {
		return idA > idB
	}
	return a.After(b)
}

package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/pkg/errors"
	"swapskillz/pkg/utils"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) users() *firestore.CollectionRef {
	return r.client.Collection(usersCollection)
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	user.Email = strings.ToLower(user.Email)
	if _, err := r.GetByEmail(ctx, user.Email); err == nil {
		return errors.Conflict("User already exists with this email")
	} else if !errors.Is(err, errors.CodeNotFound) {
		return err
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	if _, err := r.users().Doc(user.ID).Create(ctx, user); err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return getDoc[entity.User](ctx, r.users().Doc(id), "User")
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	iter := r.users().Where("email", "==", strings.ToLower(email)).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("User", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.Email = strings.ToLower(user.Email)
	user.UpdatedAt = time.Now()

	if _, err := r.users().Doc(user.ID).Set(ctx, user); err != nil {
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

func (r *firestoreUserRepository) UpdateRating(ctx context.Context, id string, rating entity.Rating) error {
	_, err := r.users().Doc(id).Update(ctx, []firestore.Update{
		{Path: "rating", Value: rating},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if isFirestoreNotFound(err) {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to update user rating", err)
	}
	return nil
}

// List filters active state in the query and matches names and skills in
// process, since Firestore has no substring search.
func (r *firestoreUserRepository) List(ctx context.Context, filter repository.UserFilter, limit, offset int) ([]*entity.User, int64, error) {
	query := r.users().Query
	if filter.ActiveOnly {
		query = query.Where("isActive", "==", true)
	}

	all, err := collectDocs[entity.User](query.Documents(ctx))
	if err != nil {
		return nil, 0, errors.Internal("Failed to list users", err)
	}

	var matched []*entity.User
	for _, u := range all {
		if MatchUser(u, filter) {
			matched = append(matched, u)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return newerFirst(matched[i].CreatedAt, matched[j].CreatedAt, matched[i].ID, matched[j].ID)
	})

	start, end := utils.Window(len(matched), offset, limit)
	return matched[start:end], int64(len(matched)), nil
}

package usecase

import (
	"context"
	"io"
	"time"

	"swapskillz/internal/infrastructure/auth"
	"swapskillz/internal/infrastructure/firebase"
)

type TokenService interface {
	Generate(userID, role string) (*auth.Token, error)
	Validate(token string) (*auth.Claims, error)
	RemainingTTL(claims *auth.Claims) time.Duration
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// FirebaseVerifier accepts Firebase ID tokens as an alternative to local JWTs.
type FirebaseVerifier interface {
	VerifyToken(ctx context.Context, token string) (*firebase.Identity, error)
}

type FileStorage interface {
	UploadImage(ctx context.Context, file io.Reader, contentType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}

// Notifier pushes realtime events to connected users.
type Notifier interface {
	Notify(userID, eventType string, data interface{}) bool
}

type SwapMetrics interface {
	SwapTransition(from, to, trigger string)
}

type RatingMetrics interface {
	RatingRecomputeFailed()
}

type nopMetrics struct{}

func (nopMetrics) SwapTransition(string, string, string) {}
func (nopMetrics) RatingRecomputeFailed()                 {}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string, interface{}) bool { return false }

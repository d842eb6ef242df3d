package usecase

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/domain/repository"
	"swapskillz/internal/infrastructure/auth"
	"swapskillz/pkg/errors"
	"swapskillz/pkg/logger"
	"swapskillz/pkg/utils"
)

type AuthUseCase struct {
	userRepo  repository.UserRepository
	tokens    TokenService
	hasher    PasswordHasher
	blacklist auth.TokenBlacklist
	firebase  FirebaseVerifier
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	tokens TokenService,
	hasher PasswordHasher,
	blacklist auth.TokenBlacklist,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		tokens:    tokens,
		hasher:    hasher,
		blacklist: blacklist,
	}
}

// WithFirebase lets Authenticate fall back to Firebase ID tokens.
func (uc *AuthUseCase) WithFirebase(verifier FirebaseVerifier) *AuthUseCase {
	uc.firebase = verifier
	return uc
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// Principal is the authenticated caller of a request.
type Principal struct {
	User *entity.User
	// TokenID is the jti of a local JWT; empty for Firebase tokens.
	TokenID string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if len(input.Password) < utils.MinPasswordLength || len(input.Password) > utils.MaxPasswordLength {
		return nil, errors.Validation("Password must be between 6 and 128 characters")
	}

	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, errors.Conflict("User already exists with this email")
	} else if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:            uuid.New().String(),
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		Email:         email,
		PasswordHash:  hash,
		Role:          entity.RoleUser,
		SkillsOffered: []entity.OfferedSkill{},
		SkillsWanted:  []entity.WantedSkill{},
		Preferences:   entity.DefaultPreferences(),
		IsActive:      true,
		LastActive:    now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return uc.issue(user)
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.Unauthorized("Invalid credentials", nil)
		}
		return nil, err
	}

	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, errors.Unauthorized("Invalid credentials", nil)
	}
	if !user.IsActive {
		return nil, errors.Unauthorized("User account is deactivated", nil)
	}

	user.LastActive = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Warn("Failed to update last active for user %s: %v", user.ID, err)
	}

	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*AuthResult, error) {
	token, err := uc.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}
	return &AuthResult{User: user, Token: token.Value, ExpiresAt: token.ExpiresAt}, nil
}

// Authenticate resolves a bearer token to an active user.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := uc.tokens.Validate(token)
	if err != nil {
		if uc.firebase != nil {
			if principal, ferr := uc.authenticateFirebase(ctx, token); ferr == nil {
				return principal, nil
			}
		}
		if stderrors.Is(err, auth.ErrExpiredToken) {
			return nil, errors.Unauthorized("Token has expired", err)
		}
		return nil, errors.Unauthorized("Invalid token", err)
	}

	revoked, err := uc.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, errors.Internal("Failed to check token status", err)
	}
	if revoked {
		return nil, errors.Unauthorized("Token has been revoked", auth.ErrTokenBlacklisted)
	}

	user, err := uc.activeUser(uc.userRepo.GetByID(ctx, claims.Subject))
	if err != nil {
		return nil, err
	}
	return &Principal{User: user, TokenID: claims.ID}, nil
}

func (uc *AuthUseCase) authenticateFirebase(ctx context.Context, token string) (*Principal, error) {
	identity, err := uc.firebase.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if identity.Email == "" {
		return nil, errors.Unauthorized("Firebase token has no email", nil)
	}

	user, err := uc.activeUser(uc.userRepo.GetByEmail(ctx, strings.ToLower(identity.Email)))
	if err != nil {
		return nil, err
	}
	return &Principal{User: user}, nil
}

func (uc *AuthUseCase) activeUser(user *entity.User, err error) (*entity.User, error) {
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.Unauthorized("User not found", err)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.Unauthorized("User account is deactivated", nil)
	}
	return user, nil
}

// Logout revokes a local JWT until it expires. Firebase tokens are left
// to Firebase.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	claims, err := uc.tokens.Validate(token)
	if err != nil {
		if uc.firebase != nil {
			return nil
		}
		return errors.Unauthorized("Invalid token", err)
	}

	if err := uc.blacklist.AddToBlacklist(ctx, claims.ID, uc.tokens.RemainingTTL(claims)); err != nil {
		return errors.Internal("Failed to revoke token", err)
	}
	return nil
}

func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// UpdateDetailsInput is a partial update; nil fields are left alone.
type UpdateDetailsInput struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Bio           *string
	Phone         *string
	Website       *string
	Location      *entity.Location
	SocialLinks   *entity.SocialLinks
	SkillsOffered []entity.OfferedSkill
	SkillsWanted  []entity.WantedSkill
	Preferences   *entity.Preferences
}

func (uc *AuthUseCase) UpdateDetails(ctx context.Context, userID string, input UpdateDetailsInput) (*entity.User, error) {
	if err := validateSkills(input.SkillsOffered, input.SkillsWanted); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != user.Email {
			if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
				return nil, errors.Conflict("Email is already in use")
			} else if !errors.Is(err, errors.CodeNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}

	setString(&user.FirstName, input.FirstName)
	setString(&user.LastName, input.LastName)
	setString(&user.Bio, input.Bio)
	setString(&user.Phone, input.Phone)
	setString(&user.Website, input.Website)
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.SocialLinks != nil {
		user.SocialLinks = *input.SocialLinks
	}
	if input.SkillsOffered != nil {
		user.SkillsOffered = input.SkillsOffered
	}
	if input.SkillsWanted != nil {
		user.SkillsWanted = input.SkillsWanted
	}
	if input.Preferences != nil {
		user.Preferences = *input.Preferences
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword changes the password and returns a fresh token.
func (uc *AuthUseCase) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*AuthResult, error) {
	if !utils.IsStrongPassword(newPassword) {
		return nil, errors.Validation("New password must be 6 to 128 characters and contain a lowercase letter, an uppercase letter and a number")
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		return nil, errors.Unauthorized("Current password is incorrect", nil)
	}

	hash, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}
	user.PasswordHash = hash

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.issue(user)
}

func validateSkills(offered []entity.OfferedSkill, wanted []entity.WantedSkill) error {
	for _, s := range offered {
		if strings.TrimSpace(s.Name) == "" || !entity.IsValidCategory(s.Category) || !entity.IsValidSkillLevel(s.Level) {
			return errors.Validation("Each offered skill needs a name, a valid category and a valid level")
		}
	}
	for _, s := range wanted {
		if strings.TrimSpace(s.Name) == "" || !entity.IsValidCategory(s.Category) || !entity.IsValidSkillLevel(s.Level) {
			return errors.Validation("Each wanted skill needs a name, a valid category and a valid level")
		}
		switch s.Priority {
		case "", entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh:
		default:
			return errors.Validation("Skill priority must be Low, Medium or High")
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"swapskillz/internal/domain/entity"
	"swapskillz/internal/usecase"
	"swapskillz/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *entity.User `json:"user"`
}

func newAuthResponse(result *usecase.AuthResult) authResponse {
	return authResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, newAuthResponse(result))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, newAuthResponse(result))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	if err := h.authUseCase.Logout(c.Request().Context(), token); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authUseCase.Me(c.Request().Context(), currentUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

type updateDetailsRequest struct {
	FirstName     *string               `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName      *string               `json:"last_name" validate:"omitempty,min=1,max=50"`
	Email         *string               `json:"email" validate:"omitempty,email"`
	Bio           *string               `json:"bio" validate:"omitempty,max=500"`
	Phone         *string               `json:"phone" validate:"omitempty,max=20"`
	Website       *string               `json:"website" validate:"omitempty,url"`
	Location      *entity.Location      `json:"location"`
	SocialLinks   *entity.SocialLinks   `json:"social_links"`
	SkillsOffered []entity.OfferedSkill `json:"skills_offered" validate:"omitempty,dive"`
	SkillsWanted  []entity.WantedSkill  `json:"skills_wanted" validate:"omitempty,dive"`
	Preferences   *entity.Preferences   `json:"preferences"`
}

func (h *AuthHandler) UpdateDetails(c echo.Context) error {
	var req updateDetailsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.authUseCase.UpdateDetails(c.Request().Context(), currentUserID(c), usecase.UpdateDetailsInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Bio:           req.Bio,
		Phone:         req.Phone,
		Website:       req.Website,
		Location:      req.Location,
		SocialLinks:   req.SocialLinks,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
		Preferences:   req.Preferences,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,password"`
}

func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.UpdatePassword(c.Request().Context(), currentUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, newAuthResponse(result))
}

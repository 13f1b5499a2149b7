package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/chaisthra/vibetrack/internal"
	"github.com/chaisthra/vibetrack/internal/auth"
	"github.com/chaisthra/vibetrack/internal/storage"
)

var validate = validator.New()

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName      *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=100"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	ElevenLabsKey *string `json:"elevenlabs_key,omitempty"`
	Password      *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

func ValidateSignupRequest(req *SignupRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	for _, r := range req.Username {
		if !isUsernameRune(r) {
			return errors.New("username may only contain letters, digits, '_' and '-'")
		}
	}
	return nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		return true
	}
	return false
}

func ValidateLoginRequest(req *LoginRequest) error {
	return validate.Struct(req)
}

func ValidateUpdateProfileRequest(req *UpdateProfileRequest) error {
	return validate.Struct(req)
}

// Signup hashes the password and creates the user. Username uniqueness is
// enforced by the repository before any write.
func Signup(ctx context.Context, users storage.UserRepository, req *SignupRequest) (*internal.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &internal.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		FullName:       req.FullName,
		HashedPassword: hash,
		CreatedAt:      internal.FormatTime(time.Now()),
		Settings:       internal.DefaultSettings(),
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and touches the last-login timestamp. A missing
// user and a wrong password are indistinguishable to the caller.
func Login(ctx context.Context, users storage.UserRepository, req *LoginRequest) (*internal.User, error) {
	user, err := users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(req.Password, user.HashedPassword) {
		return nil, internal.ErrNotFound
	}
	now := internal.NowString()
	updated, err := users.UpdateUser(ctx, user.Username, internal.UserUpdate{LastLogin: &now})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func UpdateProfile(ctx context.Context, users storage.UserRepository, username string, req *UpdateProfileRequest) (*internal.User, error) {
	update := internal.UserUpdate{
		Email:         req.Email,
		FullName:      req.FullName,
		ElevenLabsKey: req.ElevenLabsKey,
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		update.HashedPassword = &hash
	}
	return users.UpdateUser(ctx, username, update)
}

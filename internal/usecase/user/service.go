package user

import (
	"context"
	"errors"
	"strings"

	"github.com/postmodernjester/rolodex/internal/domain/user"
	"github.com/postmodernjester/rolodex/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already in use")
	ErrUserNotFound = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)

type UpdateMeInput struct {
	Email    *string
	Password *string
}

type Service struct {
	users repository.UserRepository
}

func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateMeInput) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return user.User{}, ErrInvalidInput
		}
		if email != usr.Email {
			taken, err := s.users.ExistsByEmail(ctx, email)
			if err != nil {
				return user.User{}, ErrInternal
			}
			if taken {
				return user.User{}, ErrEmailTaken
			}
		}
		usr.Email = email
	}

	if in.Password != nil {
		pw := strings.TrimSpace(*in.Password)
		if !isValidPassword(pw) {
			return user.User{}, ErrInvalidInput
		}
		hash, err := hashPassword(pw)
		if err != nil {
			return user.User{}, ErrInternal
		}
		usr.PasswordHash = hash
	}

	if err := s.users.Update(ctx, usr); err != nil {
		return user.User{}, ErrInternal
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(updated), nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	pw = strings.TrimSpace(pw)
	if len(pw) < 8 {
		return false
	}
	return true
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}

func hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrInternal
	}
	return string(hash), nil
}

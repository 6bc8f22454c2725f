package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/postmodernjester/rolodex/internal/domain/user"
	"github.com/postmodernjester/rolodex/internal/repository"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	byID      map[uuid.UUID]user.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[uuid.UUID]user.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return false, nil
	}
	return false, err
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) error {
	f.byID[u.ID] = u
	return nil
}

func TestRegisterNormalizesEmailAndSanitizes(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Jane@Example.COM ",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("expected password hash stripped from result")
	}
	if u.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	_, err := svc.Register(context.Background(), RegisterInput{Email: "jane@example.com", Password: "short"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "jane@example.com", Password: "supersecret"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), RegisterInput{Email: "JANE@example.com", Password: "othersecret"})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "jane@example.com", Password: "supersecret"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := svc.Login(context.Background(), LoginInput{Email: "Jane@Example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "jane@example.com" {
		t.Fatalf("expected login to resolve user, got %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("expected password hash stripped from result")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "jane@example.com", Password: "supersecret"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "wrongsecret"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "supersecret"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/amankharwar575/kodJobs/internal/store"
	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
	pkgerrors "github.com/pkg/errors"
	"github.com/segmentio/ksuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	TestUsername = "test"
	TestPassword = "test123"
	TestEmail    = "test@example.com"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
)

var humanizeTime = func(t time.Time) string { return humanize.Time(t.UTC()) }

type Repository struct {
	store     *store.Store
	sanitizer *bluemonday.Policy
}

func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s, sanitizer: bluemonday.StrictPolicy()}
}

// Sanitize strips any markup from user supplied text.
func (r *Repository) Sanitize(s string) string {
	return strings.TrimSpace(r.sanitizer.Sanitize(strings.TrimSpace(s)))
}

// CreateUser registers a new user. The email is unique, the username is
// unique ignoring case.
func (r *Repository) CreateUser(ctx context.Context, username, email, password, dob string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, pkgerrors.Wrap(err, "unable to hash password")
	}
	userID, err := ksuid.NewRandom()
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:        userID.String(),
		Username:  r.Sanitize(username),
		Email:     strings.TrimSpace(email),
		Password:  string(hash),
		Dob:       r.Sanitize(dob),
		CreatedAt: time.Now().UTC(),
	}
	var users []User
	err = r.store.Update(ctx, CollectionName, &users, func() (bool, error) {
		for _, existing := range users {
			if strings.EqualFold(existing.Email, u.Email) {
				return false, ErrEmailTaken
			}
			if strings.EqualFold(existing.Username, u.Username) {
				return false, ErrUsernameTaken
			}
		}
		users = append(users, u)
		return true, nil
	})
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// SeedTestUser creates the test/test123 account when no user exists yet.
// It reports whether the account was created.
func (r *Repository) SeedTestUser(ctx context.Context) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, pkgerrors.Wrap(err, "unable to hash password")
	}
	userID, err := ksuid.NewRandom()
	if err != nil {
		return false, err
	}
	created := false
	var users []User
	err = r.store.Update(ctx, CollectionName, &users, func() (bool, error) {
		if len(users) > 0 {
			return false, nil
		}
		users = append(users, User{
			ID:        userID.String(),
			Username:  TestUsername,
			Email:     TestEmail,
			Password:  string(hash),
			CreatedAt: time.Now().UTC(),
		})
		created = true
		return true, nil
	})
	return created, err
}

// Authenticate looks the user up by username, ignoring case, and checks the
// password.
func (r *Repository) Authenticate(username, password string) (User, error) {
	var users []User
	if err := r.store.Load(CollectionName, &users); err != nil {
		return User{}, err
	}
	for _, u := range users {
		if !strings.EqualFold(u.Username, strings.TrimSpace(username)) {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
			return User{}, ErrInvalidCredentials
		}
		return u, nil
	}
	return User{}, ErrInvalidCredentials
}

func (r *Repository) GetUser(id string) (User, error) {
	var users []User
	if err := r.store.Load(CollectionName, &users); err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *Repository) Count() (int, error) {
	var users []User
	if err := r.store.Load(CollectionName, &users); err != nil {
		return 0, err
	}
	return len(users), nil
}

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"vidgate/internal/apperr"
	"vidgate/pkg/models"
)

// memStore is an in-memory UserStore for tests
type memStore struct {
	byEmail map[string]*models.User
}

func newMemStore() *memStore {
	return &memStore{byEmail: make(map[string]*models.User)}
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return ErrDuplicateEmail
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (m *memStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

func TestSignupAndLogin(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	user, err := svc.Signup(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, user.ID)

	// The stored hash must not be the plaintext password
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))

	got, err := svc.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestSignupValidation(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "pass"},
		{"missing password", "a@b.com", ""},
		{"missing both", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestSignupDuplicateIsGeneric(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	first, err := svc.Signup(ctx, "bob@example.com", "original")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "bob@example.com", "different")
	assert.ErrorIs(t, err, apperr.ErrAccountExists)

	// First user's data is unchanged
	stored, err := store.GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("original")))
}

func TestSignupDuplicateRace(t *testing.T) {
	// The store reports no user on lookup but rejects the insert, as a
	// concurrent signup would. The caller still sees the generic conflict.
	store := &racingStore{memStore: newMemStore()}
	svc := NewService(store)

	_, err := svc.Signup(context.Background(), "carol@example.com", "pass")
	assert.ErrorIs(t, err, apperr.ErrAccountExists)
}

type racingStore struct {
	*memStore
}

func (r *racingStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, ErrUserNotFound
}

func (r *racingStore) CreateUser(ctx context.Context, user *models.User) error {
	return ErrDuplicateEmail
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	_, err := svc.Signup(ctx, "dave@example.com", "correct")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "dave@example.com", "incorrect")
	_, noSuchUser := svc.Login(ctx, "nobody@example.com", "whatever")

	assert.ErrorIs(t, wrongPassword, apperr.ErrInvalidCredentials)
	assert.ErrorIs(t, noSuchUser, apperr.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), noSuchUser.Error())
}

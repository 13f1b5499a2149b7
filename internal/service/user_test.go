package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chaisthra/vibetrack/internal"
	"github.com/chaisthra/vibetrack/internal/storage"
)

func newUserStore(t *testing.T) *storage.FileStorage {
	t.Helper()
	store, err := storage.NewFileStorage(t.TempDir(), internal.NopLogger{})
	assert.NoError(t, err)
	return store
}

func TestValidateSignupRequest(t *testing.T) {
	ok := &SignupRequest{Username: "alice_01", Email: "a@example.com", FullName: "Alice", Password: "password1"}
	assert.NoError(t, ValidateSignupRequest(ok))

	bad := &SignupRequest{Username: "alice 01", Email: "a@example.com", FullName: "Alice", Password: "password1"}
	assert.Error(t, ValidateSignupRequest(bad))

	short := &SignupRequest{Username: "al", Email: "a@example.com", FullName: "Alice", Password: "password1"}
	assert.Error(t, ValidateSignupRequest(short))
}

func TestSignupAndLogin(t *testing.T) {
	store := newUserStore(t)
	ctx := context.Background()

	user, err := Signup(ctx, store, &SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice",
		Password: "password1",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password1", user.HashedPassword)
	assert.Empty(t, user.LastLogin)

	logged, err := Login(ctx, store, &LoginRequest{Username: "alice", Password: "password1"})
	assert.NoError(t, err)
	assert.NotEmpty(t, logged.LastLogin)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store := newUserStore(t)
	ctx := context.Background()

	_, err := Signup(ctx, store, &SignupRequest{
		Username: "alice", Email: "alice@example.com", FullName: "Alice", Password: "password1",
	})
	assert.NoError(t, err)

	_, err = Login(ctx, store, &LoginRequest{Username: "alice", Password: "wrong-pass"})
	assert.ErrorIs(t, err, internal.ErrNotFound)

	_, err = Login(ctx, store, &LoginRequest{Username: "nobody", Password: "password1"})
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestSignupDuplicateUsername(t *testing.T) {
	store := newUserStore(t)
	ctx := context.Background()

	req := &SignupRequest{Username: "alice", Email: "alice@example.com", FullName: "Alice", Password: "password1"}
	_, err := Signup(ctx, store, req)
	assert.NoError(t, err)

	_, err = Signup(ctx, store, req)
	assert.ErrorIs(t, err, internal.ErrDuplicateUsername)
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	store := newUserStore(t)
	ctx := context.Background()

	user, err := Signup(ctx, store, &SignupRequest{
		Username: "alice", Email: "alice@example.com", FullName: "Alice", Password: "password1",
	})
	assert.NoError(t, err)

	newPass := "password2"
	key := "el-key"
	updated, err := UpdateProfile(ctx, store, "alice", &UpdateProfileRequest{
		Password:      &newPass,
		ElevenLabsKey: &key,
	})
	assert.NoError(t, err)
	assert.NotEqual(t, user.HashedPassword, updated.HashedPassword)
	assert.Equal(t, "el-key", updated.ElevenLabsKey)

	_, err = Login(ctx, store, &LoginRequest{Username: "alice", Password: "password2"})
	assert.NoError(t, err)
}

package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/pickles-ecom/internal/storage/dynamotest"
)

func TestDynamoRepo_CreateAndGet(t *testing.T) {
	fake := dynamotest.New("username")
	repo := NewDynamoRepo(fake, "users")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &User{Username: "asha", Email: "asha@example.com", PasswordHash: "h"}))

	u, err := repo.GetByUsername(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Equal(t, "h", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDynamoRepo_CreateDuplicate(t *testing.T) {
	fake := dynamotest.New("username")
	repo := NewDynamoRepo(fake, "users")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &User{Username: "asha", Email: "a@example.com", PasswordHash: "h1"}))
	err := repo.Create(ctx, &User{Username: "asha", Email: "b@example.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, ErrAlreadyExist)

	u, err := repo.GetByUsername(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, "h1", u.PasswordHash)
}

func TestDynamoRepo_ClientError(t *testing.T) {
	fake := dynamotest.New("username")
	fake.Err = errors.New("throttled")
	repo := NewDynamoRepo(fake, "users")

	err := repo.Create(context.Background(), &User{Username: "asha"})
	assert.ErrorContains(t, err, "throttled")
	_, err = repo.GetByUsername(context.Background(), "asha")
	assert.ErrorContains(t, err, "throttled")
}

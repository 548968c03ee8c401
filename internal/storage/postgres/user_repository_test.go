package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votelab/evote-api/internal/apperror"
	"github.com/votelab/evote-api/internal/domain/user"
)

func TestUserRepositoryCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	u := user.NewUser("Alice", "alice@example.com", "hash")
	require.NoError(t, repo.Create(u))

	byID, err := repo.GetByID(u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.Name)
	assert.Equal(t, user.RoleDefaultUser, byID.Role)

	byEmail, err := repo.GetByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	require.NoError(t, repo.Create(user.NewUser("Alice", "alice@example.com", "hash")))

	err := repo.Create(user.NewUser("Impostor", "alice@example.com", "hash"))
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestUserRepositoryGetNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	_, err := repo.GetByID(uuid.NewString())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = repo.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserRepositoryUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	u := user.NewUser("Alice", "alice@example.com", "hash")
	require.NoError(t, repo.Create(u))

	u.Name = "Alice Updated"
	u.Role = user.RoleSuperAdmin
	require.NoError(t, repo.Update(u))

	got, err := repo.GetByID(u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", got.Name)
	assert.Equal(t, user.RoleSuperAdmin, got.Role)
}

func TestUserRepositoryList(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	require.NoError(t, repo.Create(user.NewUser("Alice", "alice@example.com", "hash")))
	require.NoError(t, repo.Create(user.NewUser("Bob", "bob@example.com", "hash")))

	admin := user.NewUser("Root", "root@example.com", "hash")
	admin.Role = user.RoleSuperAdmin
	require.NoError(t, repo.Create(admin))

	list, err := repo.List(UserListFilter{Keyword: "ALICE"})
	require.NoError(t, err)
	require.Len(t, list.Results, 1)
	assert.Equal(t, "Alice", list.Results[0].Name)

	byRole, err := repo.List(UserListFilter{Role: "SUPER_ADMIN"})
	require.NoError(t, err)
	require.Len(t, byRole.Results, 1)
	assert.Equal(t, "Root", byRole.Results[0].Name)

	_, err = repo.List(UserListFilter{Role: "NOT_A_ROLE"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

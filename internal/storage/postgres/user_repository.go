package postgres

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/votelab/evote-api/internal/apperror"
	"github.com/votelab/evote-api/internal/domain/user"
	"github.com/votelab/evote-api/internal/logger"
)

// PostgresUserRepository implements UserRepository using GORM
type PostgresUserRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresUserRepository creates a new user repository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db:  db,
		log: logger.Repository("user"),
	}
}

// Create inserts the user. The unique index on email is the source of truth
// for duplicate accounts.
func (r *PostgresUserRepository) Create(u *user.User) error {
	r.log.Debug("creating user", "email", u.Email, "name", u.Name)

	if err := u.Validate(); err != nil {
		r.log.Error("user validation failed", "error", err)
		return err
	}

	if err := r.db.Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return apperror.ConflictWrap("A user with this email already exists", err)
		}
		r.log.Error("failed to create user", "error", err, "email", u.Email)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created", "user_id", u.ID, "email", u.Email)
	return nil
}

// GetByID returns the user with the given id
func (r *PostgresUserRepository) GetByID(id string) (*user.User, error) {
	r.log.Debug("retrieving user by ID", "user_id", id)

	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("user id must be a valid UUID")
	}

	var u user.User
	if err := r.db.First(&u, "id = ?", userID).Error; err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("User not found")
		}
		r.log.Error("failed to retrieve user", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return &u, nil
}

// GetByEmail returns the user with the given email
func (r *PostgresUserRepository) GetByEmail(email string) (*user.User, error) {
	r.log.Debug("retrieving user by email", "email", email)

	var u user.User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("User not found")
		}
		r.log.Error("failed to retrieve user", "email", email, "error", err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return &u, nil
}

// Update persists changes to the user
func (r *PostgresUserRepository) Update(u *user.User) error {
	r.log.Debug("updating user", "user_id", u.ID)

	if err := u.Validate(); err != nil {
		return err
	}

	result := r.db.Model(&user.User{}).Where("id = ?", u.ID).Updates(map[string]any{
		"name":     u.Name,
		"email":    u.Email,
		"password": u.Password,
		"role":     u.Role,
	})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return apperror.ConflictWrap("A user with this email already exists", result.Error)
		}
		r.log.Error("failed to update user", "user_id", u.ID, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("User not found")
	}

	return nil
}

// List returns a page of users, optionally narrowed by a case-insensitive
// keyword on name or email and by role.
func (r *PostgresUserRepository) List(filter UserListFilter) (*UserList, error) {
	params := filter.Pagination.Normalize()
	r.log.Debug("listing users", "keyword", filter.Keyword, "role", filter.Role, "page", params.Page)

	query := r.db.Model(&user.User{})
	if filter.Keyword != "" {
		kw := "%" + strings.ToLower(filter.Keyword) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", kw, kw)
	}
	if filter.Role != "" {
		if _, ok := user.RoleFromString(filter.Role); !ok {
			return nil, apperror.Validation("invalid role filter")
		}
		query = query.Where("role = ?", filter.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.log.Error("failed to count users", "error", err)
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var users []*user.User
	if err := query.
		Order("created_at DESC").
		Offset(params.Skip()).Limit(params.Limit).
		Find(&users).Error; err != nil {
		r.log.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserList{
		Results:   users,
		Paginator: NewPaginator(params, total),
	}, nil
}

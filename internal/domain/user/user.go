package user

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/votelab/evote-api/internal/apperror"
)

// User represents an account that can authenticate and cast votes
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"type:varchar(32);not null;default:'DEFAULT_USER'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate sets a UUID before creating the record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// NewUser creates a new user with the default role
func NewUser(name, email, passwordHash string) *User {
	return &User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: passwordHash,
		Role:     RoleDefaultUser,
	}
}

// Validate checks if the user data is valid
func (u *User) Validate() error {
	if u.Name == "" {
		return apperror.Validation("name is required")
	}
	if u.Email == "" {
		return apperror.Validation("email is required")
	}
	if u.Password == "" {
		return apperror.Validation("password is required")
	}
	return nil
}

// IsAdmin reports whether the user holds the SUPER_ADMIN role
func (u *User) IsAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// Role represents the authorization role of a user
type Role byte

const (
	RoleDefaultUser Role = iota
	RoleSuperAdmin
)

func (r Role) String() string {
	switch r {
	case RoleDefaultUser:
		return "DEFAULT_USER"
	case RoleSuperAdmin:
		return "SUPER_ADMIN"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaler interface
func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (r *Role) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	role, valid := RoleFromString(str)
	if !valid {
		return fmt.Errorf("invalid role: %s", str)
	}
	*r = role
	return nil
}

// RoleFromString converts a string to a Role
func RoleFromString(s string) (Role, bool) {
	switch s {
	case "DEFAULT_USER":
		return RoleDefaultUser, true
	case "SUPER_ADMIN":
		return RoleSuperAdmin, true
	default:
		return RoleDefaultUser, false
	}
}

// Scan implements the sql.Scanner interface for database deserialization
func (r *Role) Scan(value interface{}) error {
	if value == nil {
		*r = RoleDefaultUser
		return nil
	}

	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Role", value)
	}

	role, valid := RoleFromString(str)
	if !valid {
		return fmt.Errorf("invalid role value: %s", str)
	}
	*r = role
	return nil
}

// Value implements the driver.Valuer interface for database serialization
func (r Role) Value() (driver.Value, error) {
	return r.String(), nil
}

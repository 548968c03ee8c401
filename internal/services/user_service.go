package services

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/votelab/evote-api/internal/apperror"
	"github.com/votelab/evote-api/internal/auth"
	"github.com/votelab/evote-api/internal/domain/user"
	"github.com/votelab/evote-api/internal/logger"
	"github.com/votelab/evote-api/internal/storage/postgres"
	"github.com/votelab/evote-api/internal/validation"
)

// UserService handles account registration, login and lookup
type UserService struct {
	userRepo  postgres.UserRepository
	tokens    *auth.TokenIssuer
	validator validation.UserValidation
	log       *log.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo postgres.UserRepository, tokens *auth.TokenIssuer) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokens:    tokens,
		validator: validation.UserValidation{},
		log:       logger.Service("user"),
	}
}

// AuthResult is a user together with a freshly minted access token
type AuthResult struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// Register creates a new account with the default role and returns a token
func (s *UserService) Register(name, email, password string) (*AuthResult, error) {
	if err := s.validator.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := s.validator.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.log.Error("password hashing failed", "error", err)
		return nil, err
	}

	u := user.NewUser(name, email, hash)
	if err := s.userRepo.Create(u); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		s.log.Error("token issuance failed", "user_id", u.ID, "error", err)
		return nil, err
	}

	s.log.Info("user registered", "user_id", u.ID, "email", email)
	return &AuthResult{User: u, Token: token}, nil
}

// Login verifies credentials and returns a token. Wrong email and wrong
// password produce the same error so accounts cannot be enumerated.
func (s *UserService) Login(email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, apperror.Validation("email and password are required")
	}

	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Validation("invalid email or password")
		}
		return nil, err
	}

	if !auth.CheckPassword(u.Password, password) {
		s.log.Debug("login rejected", "email", email)
		return nil, apperror.Validation("invalid email or password")
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		s.log.Error("token issuance failed", "user_id", u.ID, "error", err)
		return nil, err
	}

	s.log.Info("user logged in", "user_id", u.ID)
	return &AuthResult{User: u, Token: token}, nil
}

// GetByID returns the user with the given id
func (s *UserService) GetByID(id string) (*user.User, error) {
	return s.userRepo.GetByID(id)
}

// List returns a page of users, admin only at the handler layer
func (s *UserService) List(keyword, role string, pagination postgres.PaginationParams) (*postgres.UserList, error) {
	return s.userRepo.List(postgres.UserListFilter{
		Keyword:    keyword,
		Role:       role,
		Pagination: pagination,
	})
}

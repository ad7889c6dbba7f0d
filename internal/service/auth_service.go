package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/hillcrest/activities-backend/internal/config"
	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unknown teacher")
)

// AuthService validates teacher credentials. Authentication here is
// deliberately stateless: no token is issued, and every privileged call
// re-validates the supplied username against the store via CheckSession.
type AuthService struct {
	cfg      *config.Config
	teachers repository.TeacherRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, teachers repository.TeacherRepository) *AuthService {
	return &AuthService{cfg: cfg, teachers: teachers}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login validates a username/password pair and returns the teacher identity.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Teacher, error) {
	teacher, err := s.teachers.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.CheckPassword(teacher.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return teacher, nil
}

// CheckSession confirms that a username belongs to a stored teacher.
// With no token or expiry in the model this is the entire session check,
// and it runs again on every privileged call.
func (s *AuthService) CheckSession(ctx context.Context, username string) (*model.Teacher, error) {
	teacher, err := s.teachers.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return teacher, nil
}

package user

import (
	"regexp"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{9,11}$`)
)

// ServiceInterface is implemented by *Service; other handlers depend on it.
type ServiceInterface interface {
	GetByID(id string) (User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(f ListFilter) ([]User, int, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	return s.repo.List(f)
}

func (s *Service) GetByID(id string) (User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return User{}, ErrInvalidID
	}
	return s.repo.GetByID(id)
}

func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return s.repo.Create(u)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) UpdateProfile(id string, u User) (User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return User{}, ErrInvalidID
	}
	if u.Email != "" && !ValidEmail(u.Email) {
		return User{}, ErrInvalidCredentials
	}
	return s.repo.Update(id, u)
}

// UpdatePassword verifies the old password before storing a new bcrypt hash.
func (s *Service) UpdatePassword(id, oldPassword, newPassword string) error {
	u, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	_, err = s.repo.Update(id, u)
	return err
}

// StoreRefreshToken persists the latest refresh token issued to a user.
// An empty token logs the user out.
func (s *Service) StoreRefreshToken(id, token string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return s.repo.SetRefreshToken(id, token)
}

func (s *Service) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return s.repo.Delete(id)
}

func ValidEmail(email string) bool { return emailPattern.MatchString(email) }

func ValidPhone(phone string) bool { return phonePattern.MatchString(phone) }

func ValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

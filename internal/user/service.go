package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ServiceInterface is implemented by *Service and by test doubles in
// packages that depend on user accounts.
type ServiceInterface interface {
	List() []User
	GetByID(id int) (User, error)
	Register(u User) (User, error)
	Authenticate(email, password string) (User, error)
	SetRole(id int, role string) (User, error)
	SetBanned(id int, banned bool) (User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var _ ServiceInterface = (*Service)(nil)

func (s *Service) List() []User {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (User, error) {
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
		u.Role = RoleUser
	}
	return s.repo.Create(u)
}

// Authenticate verifies credentials and rejects banned accounts.
func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	if u.Banned {
		return User{}, ErrBanned
	}

	return u, nil
}

func (s *Service) SetRole(id int, role string) (User, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.SetRole(id, role, now)
}

func (s *Service) SetBanned(id int, banned bool) (User, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.SetBanned(id, banned, now)
}

package services

import (
	"errors"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/app/repositories"
	"github.com/mcreations/storefront/pkg/auth"
)

var (
	// ErrInvalidCredentials covers both unknown phone and wrong password,
	// so responses never reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid phone or password")

	// ErrPhoneTaken rejects registration with an already-registered phone.
	ErrPhoneTaken = errors.New("phone number already registered")

	// ErrNotStaff rejects staff login for accounts without the staff role.
	ErrNotStaff = errors.New("account is not staff")
)

// RegisterInput is the registration form.
type RegisterInput struct {
	Name                 string `json:"name"                  validate:"required,min=2,max=255"`
	Email                string `json:"email"                 validate:"required,email"`
	Phone                string `json:"phone"                 validate:"required,numeric,min=7,max=15"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
}

// AuthService handles registration and phone-number login.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates an account and returns it with a fresh JWT, so the
// caller can log the user straight in.
func (s *AuthService) Register(input RegisterInput) (models.User, string, error) {
	if _, err := s.users.FindByPhone(input.Phone); err == nil {
		return models.User{}, "", ErrPhoneTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	return user, token, err
}

// Login authenticates by phone number and password.
func (s *AuthService) Login(phone, password string) (models.User, string, error) {
	user, err := s.users.FindByPhone(phone)
	if err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	return user, token, err
}

// StaffLogin authenticates like Login but additionally requires the staff
// role to already be on the account. Roles are never granted here.
func (s *AuthService) StaffLogin(phone, password string) (models.User, string, error) {
	user, token, err := s.Login(phone, password)
	if err != nil {
		return models.User{}, "", err
	}
	if !user.IsStaff() {
		return models.User{}, "", ErrNotStaff
	}
	return user, token, nil
}

package services

import (
	"errors"
	"fmt"
	"time"

	"pos_manager/internal/models"
	"pos_manager/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user account is deactivated")
)

// SessionInfo carries the client details recorded on the login history row.
type SessionInfo struct {
	IPAddress   string
	UserAgent   string
	DeviceLabel string
}

type UserService interface {
	Register(name, email, phone, password, role string) (*models.User, error)
	Login(email, password string, session SessionInfo) (string, *models.User, error)
	Logout(userID uint) error
	ParseToken(token string) (uint, string, error)
	ServiceToken() (string, error)
	GetUserByID(id uint) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	LoginHistory(userID uint) ([]models.LoginHistory, error)
}

type userService struct {
	userRepo    repository.UserRepository
	historyRepo repository.LoginHistoryRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
}

func NewUserService(userRepo repository.UserRepository, historyRepo repository.LoginHistoryRepository, jwtSecret string, tokenTTL time.Duration) UserService {
	return &userService{
		userRepo:    userRepo,
		historyRepo: historyRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
	}
}

func (s *userService) Register(name, email, phone, password, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if role == "" {
		role = string(models.RoleWaiter)
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials, opens a login-history row with a denormalized
// snapshot of the user, and returns a signed bearer token.
func (s *userService) Login(email, password string, session SessionInfo) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrInactiveUser
	}

	record := &models.LoginHistory{
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		LoginAt:     time.Now(),
		IPAddress:   session.IPAddress,
		UserAgent:   session.UserAgent,
		DeviceLabel: session.DeviceLabel,
		Status:      string(models.SessionActive),
	}
	if err := s.historyRepo.Create(record); err != nil {
		return "", nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, err := s.signToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout stamps the logout time on the most recent active session. A logout
// without an active session is a no-op.
func (s *userService) Logout(userID uint) error {
	record, err := s.historyRepo.GetActiveByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.historyRepo.CloseSession(record.ID, time.Now())
}

func (s *userService) signToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  fmt.Sprint(user.ID),
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ServiceToken mints a token for internal API consumers such as the
// collection poller. The subject is the synthetic user 0 carrying the Admin
// role so the token passes every route gate.
func (s *userService) ServiceToken() (string, error) {
	return s.signToken(&models.User{Role: string(models.RoleAdmin)})
}

// ParseToken validates a bearer token and returns the user id and role.
func (s *userService) ParseToken(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidCredentials
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	var id uint
	if _, err := fmt.Sscanf(sub, "%d", &id); err != nil {
		return 0, "", ErrInvalidCredentials
	}
	return id, role, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *userService) UpdateUser(user *models.User) error {
	return s.userRepo.Update(user)
}

func (s *userService) DeleteUser(id uint) error {
	return s.userRepo.Delete(id)
}

func (s *userService) LoginHistory(userID uint) ([]models.LoginHistory, error) {
	return s.historyRepo.GetByUserID(userID)
}

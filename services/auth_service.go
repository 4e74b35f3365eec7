package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kitchen-api/dtos"
	"kitchen-api/models"
	"kitchen-api/utils/apperr"
)

type AuthService struct {
	db     *gorm.DB
	log    *zap.Logger
	secret string
}

func NewAuthService(db *gorm.DB, log *zap.Logger, secret string) *AuthService {
	return &AuthService{db: db, log: log, secret: secret}
}

func (s *AuthService) Register(input dtos.RegisterInput) (*models.User, error) {
	var existing models.User
	err := s.db.Where("phone_number = ?", input.PhoneNumber).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflictf("phone number already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internalf(err, "failed to look up user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internalf(err, "failed to hash password")
	}

	user := models.User{
		Name:         input.Name,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to create user")
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return &user, nil
}

func (s *AuthService) Login(input dtos.LoginInput) (*dtos.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("phone_number = ?", input.PhoneNumber).First(&user).Error; err != nil {
		return nil, apperr.NotFoundf("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperr.Validationf("incorrect password")
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, apperr.Internalf(err, "failed to generate token")
	}

	return &dtos.AuthResponse{Token: token, Role: user.Role, Name: user.Name}, nil
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"name": user.Name,
		"exp":  time.Now().Add(30 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"storefront-backend/models"
	"storefront-backend/repository"
	"storefront-backend/sender"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const verificationCodeTTL = 15 * time.Minute

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required,len=6"`
}

// AuthService handles registration with OTP email verification and login.
type AuthService struct {
	users     repository.UserRepository
	email     sender.EmailSender
	jwtSecret []byte
	logger    *zap.Logger
}

func NewAuthService(users repository.UserRepository, email sender.EmailSender, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		email:     email,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

// Register creates an unverified account and emails a 6-digit code.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, *ServiceError) {
	email := strings.ToLower(req.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, &ServiceError{StatusCode: 409, Message: "Email already exists"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}

	user := &models.User{
		Email:              email,
		Password:           string(hashed),
		Name:               req.Name,
		Role:               "user",
		VerificationCode:   generateRandomCode(6),
		VerificationExpiry: time.Now().Add(verificationCodeTTL),
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("user insert failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}

	subject := "Email Verification — Kaveri Looms"
	body := buildVerificationEmailHTML(user.VerificationCode)
	if _, err := s.email.SendEmail(ctx, user.Email, subject, body); err != nil {
		// The account exists; the shopper can request a fresh code.
		s.logger.Warn("verification email failed", zap.String("email", user.Email), zap.Error(err))
	}

	return user, nil
}

// VerifyEmail checks the submitted OTP against the stored code and expiry.
func (s *AuthService) VerifyEmail(ctx context.Context, req *VerifyEmailRequest) *ServiceError {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		return &ServiceError{StatusCode: 500, Message: "Failed to verify email"}
	}

	if user.EmailVerified {
		return nil
	}
	if user.VerificationCode == "" || user.VerificationCode != req.Code {
		return &ServiceError{StatusCode: 400, Message: "Invalid verification code"}
	}
	if time.Now().After(user.VerificationExpiry) {
		return &ServiceError{StatusCode: 400, Message: "Verification code expired"}
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		s.logger.Error("mark verified failed", zap.String("email", user.Email), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to verify email"}
	}
	return nil
}

// Login checks credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (string, *models.User, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		return "", nil, &ServiceError{StatusCode: 500, Message: "Failed to log in"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, &ServiceError{StatusCode: 401, Message: "Invalid password"}
	}

	if !user.EmailVerified {
		return "", nil, &ServiceError{StatusCode: 403, Message: "Email not verified"}
	}

	token, err := s.generateJWT(user)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return "", nil, &ServiceError{StatusCode: 500, Message: "Failed to generate token"}
	}

	return token, user, nil
}

func (s *AuthService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func generateRandomCode(length int) string {
	code := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			code += "0"
			continue
		}
		code += n.String()
	}
	return code
}

func buildVerificationEmailHTML(code string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Georgia, 'Times New Roman', serif; background-color: #faf7f2; margin: 0; }
        .container { max-width: 600px; margin: 40px auto; background: #ffffff; padding: 30px; }
        .header { text-align: center; border-bottom: 1px solid #e0d8c8; padding-bottom: 20px; }
        .header h1 { margin: 0; letter-spacing: 2px; color: #5b4636; }
        .code { font-size: 32px; letter-spacing: 6px; text-align: center; color: #5b4636; padding: 20px; font-family: 'Courier New', monospace; }
        .footer { text-align: center; font-size: 12px; color: #999; padding-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Kaveri Looms</h1></div>
        <p>Hello,</p>
        <p>Use the code below to verify your email address. It expires in 15 minutes.</p>
        <div class="code">%s</div>
        <p>If you did not create this account, please ignore this email.</p>
        <div class="footer"><p>Handwoven with care · Kaveri Looms</p></div>
    </div>
</body>
</html>
`, code)
}

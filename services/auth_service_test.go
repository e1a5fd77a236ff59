package services

import (
	"context"
	"testing"
	"time"

	"storefront-backend/models"
	"storefront-backend/sender"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func hashedPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - unverified account created and code emailed", func(t *testing.T) {
		// Arrange
		mockUsers := new(MockUserRepository)
		mockEmail := new(MockEmailSender)
		svc := NewAuthService(mockUsers, mockEmail, "jwt-secret", zap.NewNop())

		mockUsers.On("FindByEmail", mock.Anything, "meera@example.com").
			Return(nil, gorm.ErrRecordNotFound).Once()
		mockUsers.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "meera@example.com" &&
				!u.EmailVerified &&
				len(u.VerificationCode) == 6 &&
				u.Role == "user"
		})).Return(nil).Once()

		var sentBody string
		mockEmail.On("SendEmail", mock.Anything, "meera@example.com", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sentBody = args.String(3) }).
			Return(sender.SendResult{MessageID: "msg-1"}, nil).Once()

		// Act
		user, svcErr := svc.Register(ctx, &RegisterRequest{
			Email:    "Meera@Example.com",
			Password: "sufficiently-long",
			Name:     "Meera Iyer",
		})

		// Assert
		assert.Nil(t, svcErr)
		assert.Contains(t, sentBody, user.VerificationCode)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Failure - duplicate email is a 409", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockEmail := new(MockEmailSender)
		svc := NewAuthService(mockUsers, mockEmail, "jwt-secret", zap.NewNop())

		mockUsers.On("FindByEmail", mock.Anything, "meera@example.com").
			Return(&models.User{Email: "meera@example.com"}, nil).Once()

		_, svcErr := svc.Register(ctx, &RegisterRequest{
			Email:    "meera@example.com",
			Password: "sufficiently-long",
			Name:     "Meera Iyer",
		})

		assert.NotNil(t, svcErr)
		assert.Equal(t, 409, svcErr.StatusCode)
		mockUsers.AssertNotCalled(t, "Create")
	})

	t.Run("Success - registration survives an email outage", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockEmail := new(MockEmailSender)
		svc := NewAuthService(mockUsers, mockEmail, "jwt-secret", zap.NewNop())

		mockUsers.On("FindByEmail", mock.Anything, mock.Anything).
			Return(nil, gorm.ErrRecordNotFound).Once()
		mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		mockEmail.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(sender.SendResult{}, assert.AnError).Once()

		user, svcErr := svc.Register(ctx, &RegisterRequest{
			Email:    "meera@example.com",
			Password: "sufficiently-long",
			Name:     "Meera Iyer",
		})

		assert.Nil(t, svcErr)
		assert.NotNil(t, user)
	})
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()

	baseUser := func() *models.User {
		return &models.User{
			ID:                 uuid.New(),
			Email:              "meera@example.com",
			VerificationCode:   "123456",
			VerificationExpiry: time.Now().Add(10 * time.Minute),
		}
	}

	t.Run("Success - matching code marks the account verified", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		svc := NewAuthService(mockUsers, new(MockEmailSender), "jwt-secret", zap.NewNop())

		user := baseUser()
		mockUsers.On("FindByEmail", mock.Anything, "meera@example.com").Return(user, nil).Once()
		mockUsers.On("MarkVerified", mock.Anything, user.ID).Return(nil).Once()

		svcErr := svc.VerifyEmail(ctx, &VerifyEmailRequest{Email: "meera@example.com", Code: "123456"})

		assert.Nil(t, svcErr)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Failure - wrong code is a 400", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		svc := NewAuthService(mockUsers, new(MockEmailSender), "jwt-secret", zap.NewNop())

		mockUsers.On("FindByEmail", mock.Anything, mock.Anything).Return(baseUser(), nil).Once()

		svcErr := svc.VerifyEmail(ctx, &VerifyEmailRequest{Email: "meera@example.com", Code: "654321"})

		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
		mockUsers.AssertNotCalled(t, "MarkVerified")
	})

	t.Run("Failure - expired code is a 400", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		svc := NewAuthService(mockUsers, new(MockEmailSender), "jwt-secret", zap.NewNop())

		user := baseUser()
		user.VerificationExpiry = time.Now().Add(-time.Minute)
		mockUsers.On("FindByEmail", mock.Anything, mock.Anything).Return(user, nil).Once()

		svcErr := svc.VerifyEmail(ctx, &VerifyEmailRequest{Email: "meera@example.com", Code: "123456"})

		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
		assert.Contains(t, svcErr.Message, "expired")
	})

	t.Run("Success - already verified account is a no-op", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		svc := NewAuthService(mockUsers, new(MockEmailSender), "jwt-secret", zap.NewNop())

		user := baseUser()
		user.EmailVerified = true
		mockUsers.On("FindByEmail", mock.Anything, mock.Anything).Return(user, nil).Once()

		svcErr := svc.VerifyEmail(ctx, &VerifyEmailRequest{Email: "meera@example.com", Code: "000000"})

		assert.Nil(t, svcErr)
		mockUsers.AssertNotCalled(t, "MarkVerified")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	verifiedUser := func(t *testing.T) *models.User {
		return &models.User{
			ID:            uuid.New(),
			Email:         "meera@example.com",
			Password:      hashedPassword(t, "correct horse"),
			Role:          "user",
			EmailVerified: true,
		}
	}

	t.Run("Success - token carries user id and role", func(t *testing.T) {
		// Arrange
		mockUsers := new(MockUserRepository)
		svc := NewAuthService(mockUsers, new(MockEmailSender), "jwt-secret", zap.NewNop())

		user := verifiedUser(t)
		mockUsers.On("FindByEmail", mock.Anything, "meera@example.com").Return(user, nil).Once()

		// Act
		token, gotUser, svcErr := svc.Login(ctx, &LoginRequest{Email: "meera@example.com", Password: "correct horse"})

		// Assert
		assert.Nil(t, svcErr)
		assert.Equal(t, user.Email, gotUser.Email)

		parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
			return []byte("jwt-secret"), nil
		})
		assert.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, user.ID.String(), claims["user_id"])
		assert.Equal(t, "user", claims["role"])
	})

	t.Run("Failure - wrong password is a 401", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		svc := NewAuthService(mockUsers, new(MockEmailSender), "jwt-secret", zap.NewNop())

		mockUsers.On("FindByEmail", mock.Anything, mock.Anything).Return(verifiedUser(t), nil).Once()

		_, _, svcErr := svc.Login(ctx, &LoginRequest{Email: "meera@example.com", Password: "wrong"})

		assert.NotNil(t, svcErr)
		assert.Equal(t, 401, svcErr.StatusCode)
	})

	t.Run("Failure - unverified email is a 403", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		svc := NewAuthService(mockUsers, new(MockEmailSender), "jwt-secret", zap.NewNop())

		user := verifiedUser(t)
		user.EmailVerified = false
		mockUsers.On("FindByEmail", mock.Anything, mock.Anything).Return(user, nil).Once()

		_, _, svcErr := svc.Login(ctx, &LoginRequest{Email: "meera@example.com", Password: "correct horse"})

		assert.NotNil(t, svcErr)
		assert.Equal(t, 403, svcErr.StatusCode)
	})

	t.Run("Failure - unknown email is a 404", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		svc := NewAuthService(mockUsers, new(MockEmailSender), "jwt-secret", zap.NewNop())

		mockUsers.On("FindByEmail", mock.Anything, mock.Anything).
			Return(nil, gorm.ErrRecordNotFound).Once()

		_, _, svcErr := svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "whatever"})

		assert.NotNil(t, svcErr)
		assert.Equal(t, 404, svcErr.StatusCode)
	})
}

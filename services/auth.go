package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/harborview-realty/estate_api/dto"
	"github.com/harborview-realty/estate_api/services/repositories"
	"github.com/harborview-realty/estate_api/shared"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	jwtSvc   *JWTService
	emailSvc *EmailService

	userRepo *repositories.UserRepository

	resetCodeTTL time.Duration
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	svc.resetCodeTTL = time.Hour
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.emailSvc = svc.Service(EMAIL_SVC).(*EmailService)

	svc.userRepo = repositories.NewUserRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.userRepo.GetByEmail(req.Email)
	if err != nil {
		// Same response for unknown account and bad password.
		return nil, shared.ErrUnauthorized("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.ErrUnauthorized("Invalid email or password")
	}

	tokens, err := svc.jwtSvc.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, err
	}

	user.LastLogin = time.Now()
	if err := svc.userRepo.Update(user); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	}

	return &dto.LoginResponse{
		AccessToken: tokens.AccessToken,
		ExpiresIn:   tokens.ExpiresIn,
		User: dto.UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	}, nil
}

// ForgotPassword issues a reset code. It completes silently for unknown
// emails so the endpoint cannot be used to probe accounts.
func (svc *AuthService) ForgotPassword(email string) error {
	user, err := svc.userRepo.GetByEmail(email)
	if err != nil {
		log.WithField("email", email).Info("Password reset requested for unknown email")
		return nil
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}

	if _, err := svc.userRepo.CreateResetCode(user.ID, code, svc.resetCodeTTL); err != nil {
		return err
	}

	if err := svc.emailSvc.SendPasswordResetEmail(user.Email, user.Name, code); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Failed to send password reset email")
		return err
	}

	return nil
}

func (svc *AuthService) ResetPassword(req dto.ResetPasswordRequest) error {
	user, err := svc.userRepo.GetByEmail(req.Email)
	if err != nil {
		return shared.ErrBadRequest("Invalid or expired reset code")
	}

	if err := svc.userRepo.ConsumeResetCode(user.ID, req.Code); err != nil {
		return shared.ErrBadRequest("Invalid or expired reset code")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	if err := svc.userRepo.Update(user); err != nil {
		return err
	}

	log.WithField("user_id", user.ID).Info("Password reset completed")
	return nil
}

func (svc *AuthService) ChangePassword(userID string, req dto.ChangePasswordRequest) error {
	user, err := svc.userRepo.GetByID(userID)
	if err != nil {
		return shared.ErrNotFound("User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return shared.ErrUnauthorized("Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	return svc.userRepo.Update(user)
}

// RequiredAuth protects admin routes.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		}

		userID, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", "Invalid JWT token")
		}

		if userID == "" {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", "Invalid user ID in token")
		}

		c.Locals(shared.UserID, userID)
		return c.Next()
	}
}

// RequireRole additionally checks the authenticated user's role.
func (svc *AuthService) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(shared.UserID).(string)
		if userID == "" {
			return shared.ResponseUnauthorized(c)
		}

		user, err := svc.userRepo.GetByID(userID)
		if err != nil {
			return shared.ResponseUnauthorized(c)
		}

		if user.Role != role {
			return shared.ResponseForbidden(c)
		}

		return c.Next()
	}
}

func generateResetCode() (string, error) {
	code := ""
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += fmt.Sprintf("%d", n.Int64())
	}
	return code, nil
}

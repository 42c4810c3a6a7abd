package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/eventhub/internal/helpers"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/policy"
)

// AuthSettings carries the account-related configuration.
type AuthSettings struct {
	AdminInviteKey string
	JWTSecret      string
	TokenTTL       time.Duration
}

type UserService struct {
	userRepo models.UserRepo
	settings AuthSettings
	logger   *slog.Logger
}

func NewUserService(userRepo models.UserRepo, settings AuthSettings, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if settings.TokenTTL <= 0 {
		settings.TokenTTL = 24 * time.Hour
	}
	return &UserService{
		userRepo: userRepo,
		settings: settings,
		logger:   logger,
	}
}

// SignInResult is everything a client needs after authenticating.
type SignInResult struct {
	User      *models.User    `json:"user"`
	Session   helpers.Session `json:"session"`
	Token     string          `json:"token,omitempty"`
	ExpiresAt *time.Time      `json:"expiresAt,omitempty"`
}

func (us *UserService) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.User, error) {
	req.Username = models.StringTrim(req.Username)
	req.Email = models.NormalizeEmail(req.Email)
	if msgs := models.ValidateRequest(req); len(msgs) > 0 {
		return nil, models.ValidationError(msgs)
	}

	role := policy.RoleUser
	if policy.ParseRole(req.Role) == policy.RoleAdmin {
		if us.settings.AdminInviteKey == "" {
			return nil, models.Unavailable("admin registration is not enabled on this server")
		}
		if !helpers.SecretsEqual(strings.TrimSpace(req.AdminInviteKey), us.settings.AdminInviteKey) {
			return nil, models.Forbidden("invalid admin invite key")
		}
		role = policy.RoleAdmin
	}
	if role != policy.RoleAdmin && policy.IsReservedUsername(req.Username) {
		return nil, models.Conflict("username is reserved")
	}

	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		return nil, models.Internal("failed to secure password", err)
	}

	user, err := us.userRepo.CreateUser(ctx, &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Role:     string(role),
	})
	if err != nil {
		return nil, err
	}

	us.logger.Info("User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (us *UserService) SignIn(ctx context.Context, req *models.SignInRequest) (*SignInResult, error) {
	req.Username = models.StringTrim(req.Username)
	if msgs := models.ValidateRequest(req); len(msgs) > 0 {
		return nil, models.ValidationError(msgs)
	}

	user, err := us.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if !helpers.CheckPassword(user.Password, req.Password) {
		return nil, models.Unauthenticated("incorrect password")
	}

	role := policy.EffectiveRole(user.Username, user.Role)
	result := &SignInResult{
		User:    user,
		Session: helpers.NewSession(user.ID, user.Username, role),
	}

	if us.settings.JWTSecret != "" {
		token, err := helpers.GenerateToken(us.settings.JWTSecret, user.ID, user.Username, string(role), us.settings.TokenTTL)
		if err != nil {
			return nil, models.Internal("failed to issue token", err)
		}
		expires := time.Now().Add(us.settings.TokenTTL).UTC()
		result.Token = token
		result.ExpiresAt = &expires
	}

	return result, nil
}

func (us *UserService) RecoverPassword(ctx context.Context, req *models.RecoverPasswordRequest) error {
	req.Username = models.StringTrim(req.Username)
	req.Email = models.NormalizeEmail(req.Email)
	if msgs := models.ValidateRequest(req); len(msgs) > 0 {
		return models.ValidationError(msgs)
	}

	user, err := us.userRepo.GetUserByUsernameAndEmail(ctx, req.Username, req.Email)
	if err != nil {
		return err
	}

	hash, err := helpers.HashPassword(req.NewPassword)
	if err != nil {
		return models.Internal("failed to secure password", err)
	}
	if err := us.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	us.logger.Info("Password reset", "user_id", user.ID)
	return nil
}

// Authenticate resolves a bearer token to its claims. It fails when tokens
// are not enabled on this server.
func (us *UserService) Authenticate(token string) (*helpers.CustomClaims, error) {
	if us.settings.JWTSecret == "" {
		return nil, models.Unauthenticated("bearer tokens are not enabled")
	}
	claims, err := helpers.ValidateToken(us.settings.JWTSecret, token)
	if err != nil {
		return nil, &models.Error{Kind: models.ErrUnauthenticated, Message: "invalid or expired token", Err: err}
	}
	return claims, nil
}

package service

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/repository"
)

const otpLength = 6

// PasswordResetPolicy - ограничения одноразовых кодов сброса пароля
type PasswordResetPolicy struct {
	// TTL - срок действия кода с момента выдачи
	TTL time.Duration
	// MaxAttempts - число неверных вводов, после которого код уничтожается
	MaxAttempts int
}

func (p PasswordResetPolicy) withDefaults() PasswordResetPolicy {
	if p.TTL <= 0 {
		p.TTL = 15 * time.Minute
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 5
	}
	return p
}

// AuthService определяет регистрацию, вход и сброс пароля
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Me(ctx context.Context) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, req *dto.ResetPasswordRequest) error
	ConfirmPasswordReset(ctx context.Context, req *dto.ResetPasswordConfirm) error
	CreateUser(ctx context.Context, req *dto.RegisterRequest, role domain.Role) (*domain.User, error)
}

type authService struct {
	engine *Engine
	tokens *auth.TokenIssuer
	resets PasswordResetPolicy
}

// NewAuthService создаёт новый экземпляр сервиса. Нулевые поля policy заменяются значениями по умолчанию.
func NewAuthService(engine *Engine, tokens *auth.TokenIssuer, policy PasswordResetPolicy) AuthService {
	return &authService{engine: engine, tokens: tokens, resets: policy.withDefaults()}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	return s.CreateUser(ctx, req, domain.RoleEmployee)
}

// CreateUser заводит учётную запись с заданной ролью. Используется регистрацией и CLI.
func (s *authService) CreateUser(ctx context.Context, req *dto.RegisterRequest, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.InvalidField("user", "role", string(role))
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         role,
	}
	err = s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		existing, err := tx.Users.GetByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Duplicate("user", "username")
		}
		existing, err = tx.Users.GetByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Duplicate("user", "email")
		}
		return tx.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.engine.repos.Users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *authService) Me(ctx context.Context) (*domain.User, error) {
	p, err := auth.Require(ctx, domain.AnyRole...)
	if err != nil {
		return nil, err
	}
	return s.engine.repos.Users.GetByID(ctx, p.UserID)
}

// RequestPasswordReset выпускает одноразовый код. Для неизвестного email ничего не делает,
// чтобы не раскрывать наличие учётной записи.
func (s *authService) RequestPasswordReset(ctx context.Context, req *dto.ResetPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.engine.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	otp, err := auth.GenerateOTP(otpLength)
	if err != nil {
		return err
	}
	err = s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		if err := tx.PasswordResets.DeleteByEmail(ctx, email); err != nil {
			return err
		}
		return tx.PasswordResets.Create(ctx, &domain.PasswordReset{
			Email:     email,
			OTP:       otp,
			CreatedAt: s.engine.now().UTC(),
		})
	})
	if err != nil {
		return err
	}

	s.engine.logger.Info("password reset code issued",
		slog.String("email", email),
		slog.Duration("ttl", s.resets.TTL),
	)
	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, req *dto.ResetPasswordConfirm) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	// Неверный ввод должен зафиксироваться в БД, поэтому отказ возвращается после фиксации транзакции
	var rejected error
	err = s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		reset, err := tx.PasswordResets.Latest(ctx, email)
		if err != nil {
			return err
		}
		if reset == nil || s.expired(reset) {
			rejected = domain.InvalidField("password reset", "otp", "")
			return nil
		}
		if subtle.ConstantTimeCompare([]byte(reset.OTP), []byte(req.OTP)) != 1 {
			rejected = domain.InvalidField("password reset", "otp", "")
			if reset.Attempts+1 >= s.resets.MaxAttempts {
				s.engine.logger.Warn("password reset code revoked after failed attempts", slog.String("email", email))
				return tx.PasswordResets.DeleteByEmail(ctx, email)
			}
			return tx.PasswordResets.RecordFailure(ctx, reset.ID)
		}

		user, err := tx.Users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.InvalidField("password reset", "email", email)
		}
		if _, err := tx.Users.Update(ctx, user.ID, repository.Patch{"password_hash": hash}); err != nil {
			return err
		}
		return tx.PasswordResets.DeleteByEmail(ctx, email)
	})
	if err != nil {
		return err
	}
	return rejected
}

func (s *authService) expired(reset *domain.PasswordReset) bool {
	return reset.Attempts >= s.resets.MaxAttempts ||
		reset.CreatedAt.Before(s.engine.now().Add(-s.resets.TTL))
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/petermanchester1987/actor-connect/internal/domain"
	"github.com/petermanchester1987/actor-connect/internal/email"
	"github.com/petermanchester1987/actor-connect/internal/repository"
)

// UserService coordina registro, login y baja de usuarios.
type UserService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	emailSender email.Sender
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, emailSender email.Sender) *UserService {
	if emailSender == nil {
		emailSender = email.NewDisabledSender("email sender not configured")
	}
	return &UserService{
		logger:      logger,
		users:       users,
		emailSender: emailSender,
	}
}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("invalid email")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register da de alta al usuario: avatar determinístico desde el email,
// hash bcrypt de la contraseña y alta en el repositorio. La contraseña
// en claro no se guarda ni se loguea.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	emailAddr := normalizeEmail(input.Email)
	if emailAddr == "" {
		return domain.User{}, ErrInvalidEmail
	}

	_, err := s.users.GetByEmail(ctx, emailAddr)
	if err == nil {
		return domain.User{}, ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        emailAddr,
		PasswordHash: string(hashBytes),
		Avatar:       gravatarURL(emailAddr),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}

	// El correo de bienvenida es de cortesía: nunca frena el alta.
	if err := s.emailSender.SendWelcome(ctx, user.Email, user.Name); err != nil {
		if s.logger != nil {
			s.logger.Warn("send welcome email failed", zap.Error(err), zap.String("email", user.Email))
		}
	}

	return user, nil
}

// Authenticate valida credenciales devolviendo siempre el mismo error
// ante email desconocido o contraseña incorrecta.
func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetCurrent devuelve el usuario detrás de un token válido.
func (s *UserService) GetCurrent(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// DeleteAccount elimina usuario, perfil y posts en cascada, incluidos
// los likes y comentarios del usuario en posts ajenos.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

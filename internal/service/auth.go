package service

import (
	"context"
	"errors"
	"storefront-service/internal/model"
	"storefront-service/internal/validation"
	"storefront-service/pkg/jwtutil"
	"storefront-service/pkg/logger"
	"storefront-service/pkg/metrics"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput is the sign-up form
type RegisterInput struct {
	Name     string `json:"nome" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=8"`
}

func (RegisterInput) ValidationMessages() map[string]string {
	return map[string]string{
		"nome.required":  "Nome é obrigatório",
		"nome.min":       "Nome deve ter pelo menos 2 caracteres",
		"email.required": "E-mail é obrigatório",
		"email.email":    "E-mail inválido",
		"senha.required": "Senha é obrigatória",
		"senha.min":      "A senha deve ter pelo menos 8 caracteres",
	}
}

// LoginInput is the sign-in form
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"senha" validate:"required"`
}

func (LoginInput) ValidationMessages() map[string]string {
	return map[string]string{
		"email.required": "E-mail é obrigatório",
		"senha.required": "Senha é obrigatória",
	}
}

// Session is the result of a successful login
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiraEm"`
	User      *model.User `json:"usuario"`
}

const invalidCredentials = "Credenciais inválidas"

// Auth registers users and issues tokens
type Auth struct {
	db       *gorm.DB
	jwt      *jwtutil.JWTUtil
	hashCost int
	now      func() time.Time
}

func NewAuth(db *gorm.DB, jwt *jwtutil.JWTUtil) *Auth {
	return &Auth{db: db, jwt: jwt, hashCost: bcrypt.DefaultCost, now: time.Now}
}

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost
func (s *Auth) WithHashCost(cost int) *Auth {
	s.hashCost = cost
	return s
}

// Register creates an account. The first account ever created is an admin.
func (s *Auth) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	return s.create(ctx, in, "")
}

// CreateUser creates an account with an explicit role
func (s *Auth) CreateUser(ctx context.Context, in RegisterInput, role string) (*model.User, error) {
	if role != model.RoleAdmin && role != model.RoleCustomer {
		return nil, validation.New("role", "Perfil inválido")
	}
	return s.create(ctx, in, role)
}

func (s *Auth) create(ctx context.Context, in RegisterInput, role string) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, err
	}

	user := model.User{Name: in.Name, Email: in.Email, Password: string(hashed), Role: role}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.User{}).Where("email = ?", in.Email).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return conflict("E-mail já cadastrado")
		}
		if user.Role == "" {
			var total int64
			if err := tx.Model(&model.User{}).Count(&total).Error; err != nil {
				return err
			}
			user.Role = model.RoleCustomer
			if total == 0 {
				user.Role = model.RoleAdmin
			}
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("User registered",
		zap.String("email", user.Email),
		zap.String("role", user.Role))
	return &user, nil
}

// Login checks the credentials and issues a signed token
func (s *Auth) Login(ctx context.Context, in LoginInput) (*Session, error) {
	log := logger.FromContext(ctx)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", in.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("Login for unknown email", zap.String("email", in.Email))
		metrics.AuthAttemptsCounter.WithLabelValues("user_not_found").Inc()
		return nil, unauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", in.Email))
		metrics.AuthAttemptsCounter.WithLabelValues("invalid_password").Inc()
		return nil, unauthorized(invalidCredentials)
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, err
	}
	metrics.AuthAttemptsCounter.WithLabelValues("success").Inc()
	log.Info("User logged in", zap.String("email", user.Email))

	return &Session{
		Token:     token,
		ExpiresAt: s.now().Add(s.jwt.Expiration()),
		User:      &user,
	}, nil
}

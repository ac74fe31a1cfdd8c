package services

import (
	"context"
	"fmt"
	"strings"

	"donerci/internal/apperr"
	"donerci/internal/models"
	"donerci/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UserService interface {
	CreateUser(ctx context.Context, in *UserInput, actor string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	// DeleteUser removes a customer account. Administrators cannot be
	// deleted.
	DeleteUser(ctx context.Context, id uint, actor string) error
}

type userService struct {
	userRepo   repository.UserRepository
	activities ActivityService
	logger     *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, activities ActivityService, logger *zap.Logger) UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userService{userRepo: userRepo, activities: activities, logger: logger}
}

func (s *userService) CreateUser(ctx context.Context, in *UserInput, actor string) (*models.User, error) {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation(missing...)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !strings.Contains(email, "@") {
		return nil, apperr.Validationf("email", "email address is invalid")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperr.Validationf("password", "password must be at least %d characters", minPasswordLength)
	}
	role := models.UserRole(in.Role)
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleAdmin && role != models.RoleCustomer {
		return nil, apperr.Validationf("role", "unknown role %q", in.Role)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Validationf("email", "email %s is already registered", email)
	} else if !apperr.IsNotFound(err) {
		return nil, apperr.Persistence("look up user", err)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         string(role),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperr.Persistence("create user", err)
	}

	if _, err := s.activities.Record(ctx, models.ActivityCreate, actor, fmt.Sprintf("Added new user: %s", user.Name)); err != nil {
		s.logger.Error("user created but activity not recorded", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		return nil, apperr.Persistence("get user", err)
	}
	return user, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Persistence("list users", err)
	}
	return users, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint, actor string) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return apperr.Permission("delete user", "administrator accounts cannot be deleted")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		return apperr.Persistence("delete user", err)
	}

	if _, err := s.activities.Record(ctx, models.ActivityDelete, actor, fmt.Sprintf("Deleted user with ID: %d", id)); err != nil {
		s.logger.Error("user deleted but activity not recorded", zap.Uint("user_id", id), zap.Error(err))
	}
	return nil
}

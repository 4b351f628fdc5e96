package services

import (
	"context"
	"errors"

	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/logger"

	"gorm.io/gorm"
)

type UserServiceInterface interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Get(ctx context.Context, principal *models.User, id uint) (*models.User, error)
	List(ctx context.Context, principal *models.User, page, limit int) ([]models.User, int64, error)
	ToggleActive(ctx context.Context, principal *models.User, id uint) (*models.User, error)
	ToggleTheme(ctx context.Context, principal *models.User, id uint) (*models.User, error)
}

type UserService struct {
	db     *gorm.DB
	logger logger.Logger
}

type UserServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewUserService(opts UserServiceOptions) *UserService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &UserService{
		db:     opts.DB,
		logger: opts.Logger,
	}
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBNotFound, "User not found", apperrors.ErrUserNotFound)
		}
		return nil, apperrors.Internal("Failed to load user", err)
	}
	return &user, nil
}

// List chỉ dành cho admin
func (s *UserService) List(ctx context.Context, principal *models.User, page, limit int) ([]models.User, int64, error) {
	if !IsAdmin(principal) {
		return nil, 0, apperrors.Permission("Only administrators can list users")
	}
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("Failed to count users", err)
	}
	var users []models.User
	err := s.db.WithContext(ctx).Order("id").Offset((page - 1) * limit).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to load users", err)
	}
	return users, total, nil
}

// Get returns a user to an admin.
func (s *UserService) Get(ctx context.Context, principal *models.User, id uint) (*models.User, error) {
	if !IsAdmin(principal) {
		return nil, apperrors.Permission("Only administrators can view users")
	}
	return s.GetByID(ctx, id)
}

// ToggleActive khóa hoặc mở khóa tài khoản user
func (s *UserService) ToggleActive(ctx context.Context, principal *models.User, id uint) (*models.User, error) {
	if !IsAdmin(principal) {
		return nil, apperrors.Permission("Only administrators can block users")
	}
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsBlocked = !user.IsBlocked
	if err := s.db.WithContext(ctx).Model(user).Update("is_blocked", user.IsBlocked).Error; err != nil {
		return nil, apperrors.Internal("Failed to update user", err)
	}
	s.logger.Info("admin %d set user %d blocked=%t", principal.ID, user.ID, user.IsBlocked)
	return user, nil
}

// ToggleTheme đổi theme sáng/tối, chỉ chính user được đổi
func (s *UserService) ToggleTheme(ctx context.Context, principal *models.User, id uint) (*models.User, error) {
	if !IsSelf(principal, id) {
		return nil, apperrors.Permission("You can only change your own theme")
	}
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.ToggleTheme()
	if err := s.db.WithContext(ctx).Model(user).Update("theme", user.Theme).Error; err != nil {
		return nil, apperrors.Internal("Failed to update user", err)
	}
	return user, nil
}

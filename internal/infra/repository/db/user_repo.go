package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"gorm.io/gorm"
)

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)
	GetUserByName(ctx context.Context, username string) (*model.User, error)
	GetUserByCredentials(ctx context.Context, username, password string, isAdmin bool) (*model.User, error)
	CountRegisteredUsers(ctx context.Context) (int64, error)
	DeleteUser(ctx context.Context, id int) error
}

type UserRepo struct {
	db *DbDao
}

func NewUserRepo(db *DbDao) *UserRepo {
	return &UserRepo{db: db}
}

// Create - 創建用戶
func (s *UserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Read - 根據ID查詢用戶
func (s *UserRepo) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Read - 根據帳號查詢用戶
func (s *UserRepo) GetUserByName(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("user_name = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Read - 帳號密碼比對，is_admin需一致
func (s *UserRepo) GetUserByCredentials(ctx context.Context, username, password string, isAdmin bool) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Where("user_name = ? AND password = ? AND is_admin = ?", username, password, isAdmin).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Read - 註冊用戶數(不含管理員)，insights 用
func (s *UserRepo) CountRegisteredUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("is_admin = ?", false).Count(&count).Error
	return count, err
}

// Delete - 軟刪除用戶
func (s *UserRepo) DeleteUser(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

var _ IUserRepository = (*UserRepo)(nil)

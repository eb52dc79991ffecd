package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"github.com/RoyceAzure/lab/grocery/internal/infra/repository/db"
)

var (
	ErrUserNotExist      = errors.New("user is not exist")
	ErrUserAlreadyExists = errors.New("username already exists")
)

type UserService struct {
	userRepo db.IUserRepository
}

func NewUserService(userRepo db.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (u *UserService) GetUser(ctx context.Context, userID int) (*model.User, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotExist
	}
	return user, nil
}

// Register 註冊新用戶，帳號需唯一
// 錯誤:
//   - ErrUserAlreadyExists: 帳號已存在
func (u *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	existing, err := u.userRepo.GetUserByName(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}
	return u.userRepo.CreateUser(ctx, &model.User{
		UserName: username,
		Password: password,
	})
}

// Authenticate 帳號密碼驗證，管理員與一般用戶分開比對
// 錯誤:
//   - ErrUserNotExist: 帳號密碼不符
func (u *UserService) Authenticate(ctx context.Context, username, password string, isAdmin bool) (*model.User, error) {
	user, err := u.userRepo.GetUserByCredentials(ctx, username, password, isAdmin)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotExist
	}
	return user, nil
}

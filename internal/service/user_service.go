package service

import (
	"context"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/google/uuid"
)

type UpdateProfileParams struct {
	Name     string
	Password string
	Phone    string
	Address  string
}

type IUserService interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	CreateUser(ctx context.Context, arg *model.User) (*model.User, error)
	// UpdateProfile 局部更新個人資料, 空欄位保留原值
	//
	// 錯誤:
	//   - er.NotFoundCode: 用戶不存在
	//   - er.InvalidArgumentCode: 密碼長度不足
	UpdateProfile(ctx context.Context, id uuid.UUID, arg UpdateProfileParams) (*model.User, error)
}

type UserService struct {
	userRepo *db.UserRepo
}

func NewUserService(userRepo *db.UserRepo) IUserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (u *UserService) CreateUser(ctx context.Context, arg *model.User) (*model.User, error) {
	if arg.UserID == uuid.Nil {
		arg.UserID = uuid.New()
	}
	if err := u.userRepo.CreateUser(ctx, arg); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return arg, nil
}

func (u *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return user, nil
}

func (u *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := u.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return user, nil
}

func (u *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, arg UpdateProfileParams) (*model.User, error) {
	user, err := u.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if user == nil {
		return nil, er.New(er.NotFoundCode, "user not found")
	}

	if arg.Password != "" {
		if err := util.ValidatePassword(arg.Password); err != nil {
			return nil, er.New(er.InvalidArgumentCode, err.Error())
		}
		hashPassword, err := util.HashPassword(arg.Password)
		if err != nil {
			return nil, er.New(er.InternalErrorCode, err.Error())
		}
		user.PasswordHash = hashPassword
	}
	if arg.Name != "" {
		user.Name = arg.Name
	}
	if arg.Phone != "" {
		user.Phone = arg.Phone
	}
	if arg.Address != "" {
		user.Address = arg.Address
	}

	if err := u.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return user, nil
}

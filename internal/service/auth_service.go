package service

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/token"
	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
)

type RegisterParams struct {
	Name           string
	Email          string
	Password       string
	Phone          string
	Address        string
	SecurityAnswer string
}

type LoginResult struct {
	User        *model.User
	AccessToken string
}

type IAuthService interface {
	// Register 註冊新用戶
	// email已存在視為冪等成功, 回傳既有用戶與created=false, 不建立新資料
	//
	// 錯誤:
	//   - er.InvalidArgumentCode: 缺少必填欄位或密碼長度不足
	Register(ctx context.Context, arg RegisterParams) (*model.User, bool, error)
	// Login 帳號密碼登入
	//
	// 錯誤:
	//   - er.InvalidArgumentCode: email或密碼為空
	//   - er.NotFoundCode: email未註冊
	//   - er.UnauthenticatedCode: 密碼錯誤
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// ForgotPassword 以安全問題答案重設密碼
	//
	// 錯誤:
	//   - er.InvalidArgumentCode: 缺少必填欄位或密碼長度不足
	//   - er.NotFoundCode: email或答案不符
	ForgotPassword(ctx context.Context, email, answer, newPassword string) error
	// Me 取得當前登入user資訊
	//
	// 錯誤:
	//   - er.UnauthenticatedCode: ctx無token payload
	//   - er.NotFoundCode: 用戶不存在
	Me(ctx context.Context) (*model.User, error)
}

type AuthService struct {
	userService IUserService
	tokenMaker  token.Maker
}

func NewAuthService(userService IUserService, tokenMaker token.Maker) IAuthService {
	return &AuthService{
		userService: userService,
		tokenMaker:  tokenMaker,
	}
}

func (a *AuthService) Register(ctx context.Context, arg RegisterParams) (*model.User, bool, error) {
	switch {
	case arg.Name == "":
		return nil, false, er.New(er.InvalidArgumentCode, "name is required")
	case arg.Email == "":
		return nil, false, er.New(er.InvalidArgumentCode, "email is required")
	case arg.Password == "":
		return nil, false, er.New(er.InvalidArgumentCode, "password is required")
	case arg.Phone == "":
		return nil, false, er.New(er.InvalidArgumentCode, "phone is required")
	case arg.Address == "":
		return nil, false, er.New(er.InvalidArgumentCode, "address is required")
	case arg.SecurityAnswer == "":
		return nil, false, er.New(er.InvalidArgumentCode, "answer is required")
	}

	if err := util.ValidatePassword(arg.Password); err != nil {
		return nil, false, er.New(er.InvalidArgumentCode, err.Error())
	}

	existing, err := a.userService.GetUserByEmail(ctx, arg.Email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	hashPassword, err := util.HashPassword(arg.Password)
	if err != nil {
		return nil, false, er.New(er.InternalErrorCode, err.Error())
	}

	user, err := a.userService.CreateUser(ctx, &model.User{
		Name:           arg.Name,
		Email:          arg.Email,
		PasswordHash:   hashPassword,
		Phone:          arg.Phone,
		Address:        arg.Address,
		SecurityAnswer: arg.SecurityAnswer,
	})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, er.New(er.InvalidArgumentCode, "invalid email or password")
	}

	user, err := a.userService.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, er.New(er.NotFoundCode, "email is not registered")
	}

	if err := util.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, er.New(er.UnauthenticatedCode, "invalid password")
	}

	accessToken, _, err := a.tokenMaker.CreateToken(
		user.UserID,
		user.Email,
		user.IsAdmin,
		time.Duration(constants.AccessTokenDuration)*time.Hour,
	)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	return &LoginResult{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

func (a *AuthService) ForgotPassword(ctx context.Context, email, answer, newPassword string) error {
	switch {
	case email == "":
		return er.New(er.InvalidArgumentCode, "email is required")
	case answer == "":
		return er.New(er.InvalidArgumentCode, "answer is required")
	case newPassword == "":
		return er.New(er.InvalidArgumentCode, "new password is required")
	}

	if err := util.ValidatePassword(newPassword); err != nil {
		return er.New(er.InvalidArgumentCode, err.Error())
	}

	user, err := a.userService.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil || user.SecurityAnswer != answer {
		return er.New(er.NotFoundCode, "wrong email or answer")
	}

	_, err = a.userService.UpdateProfile(ctx, user.UserID, UpdateProfileParams{Password: newPassword})
	return err
}

func (a *AuthService) Me(ctx context.Context) (*model.User, error) {
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		return nil, er.New(er.UnauthenticatedCode, "unauthenticated")
	}

	user, err := a.userService.GetUserByID(ctx, payload.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, er.New(er.NotFoundCode, "user not found")
	}
	return user, nil
}

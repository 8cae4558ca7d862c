package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
)

type AuthHandler struct {
	authService service.IAuthService
	userService service.IUserService
}

func NewAuthHandler(authService service.IAuthService, userService service.IUserService) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// convertUserModelToDTO 將 User 轉換為 UserDTO
func convertUserModelToDTO(user *model.User) dto.UserDTO {
	return dto.UserDTO{
		ID:      user.UserID.String(),
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Address: user.Address,
		IsAdmin: user.IsAdmin,
	}
}

// @Summary register new user
// @Tags auth
// @Accept json
// @Produce json
// @Param userInfo body dto.RegisterDTO true "user info"
// @Success 200 {object} api.Response{data=dto.UserDTO} "success"
// @Failure 400 {object} api.Response "InvalidArgumentCode"
// @Failure 500 {object} api.Response "Internal server error"
// @Router /auth/register [post]
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var registerDTO dto.RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&registerDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	user, created, err := a.authService.Register(ctx, service.RegisterParams{
		Name:           registerDTO.Name,
		Email:          registerDTO.Email,
		Password:       registerDTO.Password,
		Phone:          registerDTO.Phone,
		Address:        registerDTO.Address,
		SecurityAnswer: registerDTO.Answer,
	})
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	// email已註冊視為冪等成功
	if !created {
		api.SuccessJSON(w, convertUserModelToDTO(user), "already registered, please login")
		return
	}

	api.SuccessJSON(w, convertUserModelToDTO(user), "user registered successfully")
}

// @Summary email and password login
// @Tags auth
// @Accept json
// @Produce json
// @Param loginInfo body dto.LoginDTO true "email and password"
// @Success 200 {object} api.Response{data=dto.LoginResponse} "success"
// @Failure 401 {object} api.Response "UnauthenticatedCode"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Failure 500 {object} api.Response "Internal server error"
// @Router /auth/login [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginDTO dto.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&loginDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	loginRes, err := a.authService.Login(ctx, loginDTO.Email, loginDTO.Password)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, dto.LoginResponse{
		AccessToken: dto.TokenInfo{
			Value:     loginRes.AccessToken,
			ExpiresIn: int(constants.AccessTokenDuration) * 3600,
		},
		User: convertUserModelToDTO(loginRes.User),
	}, "login successfully")
}

// @Summary reset password with security answer
// @Tags auth
// @Accept json
// @Produce json
// @Param resetInfo body dto.ForgotPasswordDTO true "email, answer and new password"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Failure 500 {object} api.Response "Internal server error"
// @Router /auth/forgot-password [post]
func (a *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var forgotPasswordDTO dto.ForgotPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&forgotPasswordDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	err := a.authService.ForgotPassword(ctx, forgotPasswordDTO.Email, forgotPasswordDTO.Answer, forgotPasswordDTO.NewPassword)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, nil, "password reset successfully")
}

// @Summary update current user profile
// @Tags auth
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileDTO true "fields to update"
// @Success 200 {object} api.Response{data=dto.UserDTO} "success"
// @Failure 401 {object} api.Response "UnauthenticatedCode"
// @Failure 500 {object} api.Response "Internal server error"
// @Security     ApiKeyAuth
// @Router /auth/profile [put]
func (a *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var updateProfileDTO dto.UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&updateProfileDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		api.ErrorJSON(w, int(er.UnauthenticatedCode), nil, er.ErrStrMap[er.UnauthenticatedCode])
		return
	}

	user, err := a.userService.UpdateProfile(ctx, payload.UserID, service.UpdateProfileParams{
		Name:     updateProfileDTO.Name,
		Password: updateProfileDTO.Password,
		Phone:    updateProfileDTO.Phone,
		Address:  updateProfileDTO.Address,
	})
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertUserModelToDTO(user), "profile updated successfully")
}

// @Summary get current login user info
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=dto.UserDTO} "success"
// @Failure 401 {object} api.Response "UnauthenticatedCode"
// @Failure 500 {object} api.Response "Internal server error"
// @Security     ApiKeyAuth
// @Router /auth/me [get]
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := a.authService.Me(ctx)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertUserModelToDTO(user), "")
}

// @Summary user auth probe
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthProbeResponse "success"
// @Security     ApiKeyAuth
// @Router /auth/user-auth [get]
func (a *AuthHandler) UserAuthProbe(w http.ResponseWriter, r *http.Request) {
	api.SuccessJSON(w, dto.AuthProbeResponse{Ok: true}, "")
}

// @Summary admin auth probe
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthProbeResponse "success"
// @Security     ApiKeyAuth
// @Router /auth/admin-auth [get]
func (a *AuthHandler) AdminAuthProbe(w http.ResponseWriter, r *http.Request) {
	api.SuccessJSON(w, dto.AuthProbeResponse{Ok: true}, "")
}

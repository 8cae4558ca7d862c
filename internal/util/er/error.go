package er

import "fmt"

type Code int

const (
	BadRequestCode      Code = 400
	UnauthenticatedCode Code = 401
	PaymentFailedCode   Code = 402
	UnauthorizedCode    Code = 403
	NotFoundCode        Code = 404
	ConflictCode        Code = 409
	InvalidArgumentCode Code = 460
	InternalErrorCode   Code = 500
)

var ErrStrMap = map[Code]string{
	BadRequestCode:      "bad request",
	UnauthenticatedCode: "unauthenticated",
	PaymentFailedCode:   "payment failed",
	UnauthorizedCode:    "unauthorized",
	NotFoundCode:        "not found",
	ConflictCode:        "conflict",
	InvalidArgumentCode: "invalid argument",
	InternalErrorCode:   "internal server error",
}

// AppError 帶有錯誤碼的應用層錯誤
// handler 依據 Code 決定 http status
type AppError struct {
	Code    Code
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func New(code Code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// HttpStatus 將錯誤碼轉換為http status
// InvalidArgumentCode 460 為自訂code, 對外統一用400
func (e *AppError) HttpStatus() int {
	if e.Code == InvalidArgumentCode {
		return 400
	}
	return int(e.Code)
}

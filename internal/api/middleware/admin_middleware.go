package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/token"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
)

// AdminMiddleware 驗證當前登入者的admin角色
// token宣稱不可信, 以db的role為準
// 未登入401, 非admin一律403
func AdminMiddleware(userService service.IUserService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, ok := r.Context().Value(constants.AuthorizationPayloadKey).(*token.Payload)
			if !ok {
				api.ErrorJSON(w, int(er.UnauthenticatedCode), nil, er.ErrStrMap[er.UnauthenticatedCode])
				return
			}

			user, err := userService.GetUserByID(r.Context(), payload.UserID)
			if err != nil {
				api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
				return
			}
			if user == nil || !user.IsAdmin {
				api.ErrorJSON(w, int(er.UnauthorizedCode), nil, er.ErrStrMap[er.UnauthorizedCode])
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

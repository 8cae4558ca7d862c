package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/token"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
)

// 驗證是ctx是否有token payload
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Context().Value(constants.AuthorizationPayloadKey).(*token.Payload)
		if !ok {
			api.ErrorJSON(w, int(er.UnauthenticatedCode), er.New(er.UnauthenticatedCode, "unauthenticated"), er.ErrStrMap[er.UnauthenticatedCode])
			return
		}
		next.ServeHTTP(w, r)
	})
}

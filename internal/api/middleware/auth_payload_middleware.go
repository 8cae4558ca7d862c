package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/token"
)

// AuthPayloadMiddleware 嘗試解析Authorization header並把payload放進ctx
// header缺失或token無效時不擋請求, 由AuthMiddleware決定是否要求登入
func AuthPayloadMiddleware(tokenMaker token.Maker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get(string(constants.AuthorizationHeaderKey))
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			fields := strings.Fields(authHeader)
			if len(fields) != 2 || strings.ToLower(fields[0]) != string(constants.AuthorizationTypeBearer) {
				next.ServeHTTP(w, r)
				return
			}

			payload, err := tokenMaker.VerifyToken(fields[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), constants.AuthorizationPayloadKey, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

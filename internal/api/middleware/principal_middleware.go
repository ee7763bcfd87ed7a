package middleware

import (
	"context"
	"net/http"

	"github.com/SecretJA/Badminton-eweb/internal/api/response"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	requestIDKey contextKey = "request_id"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Principal 認證閘道驗證完token後塞進header的使用者身份，這裡直接信任不再驗證
type Principal struct {
	UserID string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// GetPrincipal 從上下文取出使用者身份，不存在時回傳零值
func GetPrincipal(ctx context.Context) Principal {
	if v := ctx.Value(principalKey); v != nil {
		return v.(Principal)
	}
	return Principal{}
}

// RequireAuth 讀取閘道提供的身份header，缺少就擋下
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-Id")
		if userID == "" {
			response.Error(w, http.StatusUnauthorized, "Vui lòng đăng nhập")
			return
		}

		role := r.Header.Get("X-User-Role")
		if role == "" {
			role = RoleCustomer
		}

		ctx := context.WithValue(r.Context(), principalKey, Principal{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin 要掛在RequireAuth之後
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetPrincipal(r.Context()).IsAdmin() {
			response.Error(w, http.StatusForbidden, "Không có quyền truy cập")
			return
		}
		next.ServeHTTP(w, r)
	})
}

package middlewares

import (
	"errors"
	"net/http"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/fsdevblog/promo-ledger/internal/transport/api/tokens"
	"github.com/gin-gonic/gin"
)

var ErrSessionNotExist = errors.New("session not exist")

const (
	// SessionCookieName кука с подписанной сессией (user_id, user_name, user_type).
	SessionCookieName = "session"
	// CurrentSessionKey ключ контекста gin с *tokens.SessionClaims текущей сессии.
	CurrentSessionKey = "currentSession"

	// loginPath сюда редиректим при отсутствии сессии или несовпадении роли.
	loginPath = "/login"
)

// checkSession извлекает сессионную куку и проверяет подпись. Если куки нет, вернется
// ошибка ErrSessionNotExist.
func checkSession(c *gin.Context, jwtSecret []byte) (*tokens.SessionClaims, error) {
	cookie, cookieErr := c.Cookie(SessionCookieName)
	if cookieErr != nil {
		return nil, ErrSessionNotExist
	}
	return tokens.ValidateSessionJWT(cookie, jwtSecret) //nolint:wrapcheck
}

// RoleRequired пропускает только сессии с точно совпадающим user_type. Отсутствие сессии,
// битая подпись или чужая роль - редирект на страницу логина, мягкий отказ без жесткой ошибки.
func RoleRequired(jwtSecret []byte, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := checkSession(c, jwtSecret)
		if err != nil {
			if !errors.Is(err, ErrSessionNotExist) {
				_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			}
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		if claims.UserType != string(role) {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Set(CurrentSessionKey, claims)
		c.Next()
	}
}

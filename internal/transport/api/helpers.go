package api

import (
	"strings"

	"github.com/fsdevblog/promo-ledger/internal/transport/api/middlewares"
	"github.com/fsdevblog/promo-ledger/internal/transport/api/tokens"
	"github.com/gin-gonic/gin"
)

// currentSession берет из контекста gin сессию текущего юзера. Сессия устанавливается в
// middlewares.RoleRequired. В случае, если значения в контексте нет или ошибка утверждения
// типа - вернется пустая сессия.
func currentSession(c *gin.Context) *tokens.SessionClaims {
	value, exist := c.Get(middlewares.CurrentSessionKey)
	if !exist {
		return &tokens.SessionClaims{}
	}
	claims, ok := value.(*tokens.SessionClaims)
	if !ok {
		return &tokens.SessionClaims{}
	}
	return claims
}

type requiredField struct {
	name  string
	value string
}

// firstBlankField возвращает имя первого поля, пустого после обрезки пробелов.
// Обязательные поля должны быть непустыми именно после trim, а не до.
func firstBlankField(fields []requiredField) string {
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return field.name
		}
	}
	return ""
}

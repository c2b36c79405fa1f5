package middleware

import (
	"net/http"
	"strings"

	"shop/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleが要求された役割と一致するかを確認します。
//階層は無いので、管理者でも販売者用ルートには入れない

func RequireRole(required model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if !model.Role(role).Can(required) {
				return c.JSON(http.StatusForbidden, errorJSON(strings.ToLower(string(required))+" only"))
			}

			return next(c)
		}
	}
}

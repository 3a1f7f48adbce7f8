package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// StaffOnlyMiddleware admits any staff role.
func StaffOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	switch claims.Role {
	case "staff", "admin", "super_admin":
		ctx.Values().Set("staffID", claims.ID)
		ctx.Next()
	default:
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "staff access required"})
	}
}

// AdminOnlyMiddleware restricts room-inventory mutations to admins.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != "admin" && claims.Role != "super_admin" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "admin access required"})
		return
	}
	ctx.Values().Set("staffID", claims.ID)
	ctx.Next()
}

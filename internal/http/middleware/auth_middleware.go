package middleware

import (
	"github.com/labstack/echo/v4"

	"leadqualify/internal/domain/entity"
	"leadqualify/internal/utils"
	"leadqualify/internal/utils/apierror"
)

type IdentityGate interface {
	Authorize(credential string) (*entity.User, apierror.ErrorResponse)
}

// NewAuthMiddleware resolves the Authorization-header credential through the
// identity gate and stores the caller on the request context. Routes that
// also accept a body-embedded token bypass this and call the gate directly.
func NewAuthMiddleware(gate IdentityGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, aerr := gate.Authorize(utils.BearerFromHeader(c))
			if aerr != nil {
				return c.JSON(aerr.Code(), aerr)
			}

			c.Set("user", user)
			c.Set("sub", user.SubUUID)
			return next(c)
		}
	}
}

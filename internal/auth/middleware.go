package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// ContextUserKey is the echo context key under which LoadUser stores the
// authenticated *model.User.
const ContextUserKey = "current_user"

// MsgCouldNotValidate is the single message returned for every authentication
// failure: missing token, bad signature, expired token, unknown or inactive
// user. Keeping it uniform prevents probing which check failed.
const MsgCouldNotValidate = "could not validate credentials"

func unauthenticated() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: MsgCouldNotValidate,
		Code:  "UNAUTHENTICATED",
	})
}

// Middleware returns the JWT extraction/verification middleware for protected
// route groups. Verification is delegated to echo-jwt with the claims type and
// error shape pinned here.
func Middleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthenticated()
		},
	})
}

// LoadUser resolves the verified token into a live user row and stores it in
// the request context. The lookup deliberately goes to the repository rather
// than any cache so deactivation and role changes take effect on the next
// request even while the token is unexpired.
func LoadUser(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthenticated()
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return unauthenticated()
			}

			id, err := claims.UserID()
			if err != nil {
				return unauthenticated()
			}

			user, err := users.FindByID(c.Request().Context(), id)
			if err != nil || !user.IsActive {
				return unauthenticated()
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by LoadUser.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok
}

// RequireRoles gates a route group on the caller's current role. The role is
// taken from the freshly loaded user, never from token claims, so a demoted
// user loses access immediately.
func RequireRoles(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return unauthenticated()
			}
			if !user.Role.In(allowed...) {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "insufficient permissions",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

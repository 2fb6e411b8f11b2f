package router

import (
	"net/http"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogapi/internal/auth"
	"blogapi/internal/config"
	"blogapi/internal/handler"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewValidator()

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Welcome to Blog API"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes: token verification, then user load + active check
	secured := api.Group("", auth.Middleware(cfg.JWTSecret), auth.LoadUser(userRepo))

	secured.GET("/auth/me", authHandler.Me)

	// Admin-only routes
	admin := secured.Group("/users", auth.RequireRoles(model.RoleSuperAdmin))
	admin.GET("", userHandler.ListUsers)
	admin.GET("/:id", userHandler.GetUser)
	admin.PATCH("/:id", userHandler.UpdateUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the password-strength rule
// registered.
func NewValidator() *CustomValidator {
	v := validator.New()
	// Registration never fails for a well-formed tag name.
	_ = v.RegisterValidation("password", validatePassword)
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// validatePassword enforces 8-128 characters with at least one uppercase
// letter, one lowercase letter, one digit and one symbol. Underscores and
// whitespace do not count as symbols.
func validatePassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len(pw) < 8 || len(pw) > 128 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case r == '_' || unicode.IsSpace(r):
			// neither letter class nor symbol
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

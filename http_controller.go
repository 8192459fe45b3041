package auth

import (
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/avatargamer/go-auth/middleware/tokenauth"
)

// AuthController serves the authentication HTTP surface: POST /auth/login
// and GET /auth/me.
type AuthController struct {
	Logger     Logger
	Auth       Authenticator
	Accounts   CredentialStore
	ContextKey string
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:     defLogger{},
		ContextKey: "claims",
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auth == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.Accounts == nil {
		panic("Missing CredentialStore in auth controller...")
	}

	return c
}

func WithAuthenticator(auth Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auth = auth
		return c
	}
}

func WithCredentialStore(store CredentialStore) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Accounts = store
		return c
	}
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithContextKey(key string) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if key != "" {
			c.ContextKey = key
		}
		return c
	}
}

// RegisterAuthRoutes mounts the controller. The login route is public; /me
// sits behind the authenticated-request guard.
func RegisterAuthRoutes(app fiber.Router, controller *AuthController) {
	app.Post("/auth/login", controller.LoginPost)
	app.Get("/auth/me", tokenauth.RequireAuthenticated(controller.ContextKey), controller.Me)
}

// LoginRequest payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
			validation.Length(1, 100),
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Info("Login payload bind error", "error", err)
		return badRequest(c, []string{"body: malformed request body"})
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, validationMessages(err))
	}

	result, err := a.Auth.Login(c.UserContext(), payload.Username, payload.Password, ClientInfoFromRequest(c))
	if err != nil {
		if IsUnauthorizedError(err) {
			return unauthorized(c, errorMessage(err))
		}
		a.Logger.Error("Login unexpected failure", "error", err)
		return internalError(c)
	}

	return c.JSON(result)
}

// Me returns the identity behind the presented bearer token. The token
// guard has already run, so missing claims here mean a stale token whose
// account vanished.
func (a *AuthController) Me(c *fiber.Ctx) error {
	claims, ok := tokenauth.FromContext(c, a.ContextKey)
	if !ok {
		return unauthorized(c, "authentication required")
	}

	account, err := a.Accounts.FindByUsername(c.UserContext(), claims.Subject())
	if err != nil || account == nil {
		a.Logger.Info("Me lookup failed for token subject", "subject", claims.Subject())
		return unauthorized(c, "authentication required")
	}

	return c.JSON(account.Summary())
}

// validationMessages flattens ozzo validation errors into the documented
// "field: reason" list, sorted for stable output.
func validationMessages(err error) []string {
	verrs, ok := err.(validation.Errors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(verrs))
	for field, ferr := range verrs {
		messages = append(messages, field+": "+ferr.Error())
	}
	sort.Strings(messages)
	return messages
}

func errorMessage(err error) string {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Message
	}
	return "unauthorized"
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    fiber.StatusUnauthorized,
		"error":     "Unauthorized",
		"message":   message,
	})
}

func badRequest(c *fiber.Ctx, messages []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    fiber.StatusBadRequest,
		"error":     "Bad Request",
		"message":   messages,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    fiber.StatusInternalServerError,
		"error":     "Internal Server Error",
		"message":   "unexpected error",
	})
}

package main

import (
	"context"
	"database/sql"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	auth "github.com/avatargamer/go-auth"
	"github.com/avatargamer/go-auth/middleware/tokenauth"
)

// App wires the authentication service: config, persistence, token service,
// authenticator, and the fiber HTTP surface.
type App struct {
	config *auth.AuthConfig
	bunDB  *bun.DB
	repo   auth.RepositoryManager
	auth   *auth.Auther
	tokens *auth.TokenServiceImpl
	srv    *fiber.App
}

// persistenceConfig feeds go-persistence-bun; the DSN defaults to a local
// sqlite file for development.
type persistenceConfig struct {
	dsn   string
	debug bool
}

func (p persistenceConfig) GetDSN() string                    { return p.dsn }
func (p persistenceConfig) GetServer() string                 { return p.dsn }
func (p persistenceConfig) GetOtelIdentifier() string         { return "" }
func (p persistenceConfig) GetDebug() bool                    { return p.debug }
func (p persistenceConfig) GetDriver() string                 { return sqliteshim.ShimName }
func (p persistenceConfig) GetPingTimeout() time.Duration     { return 5 * time.Second }
func (p persistenceConfig) GetMaxOpenConns() int              { return 10 }
func (p persistenceConfig) GetMaxIdleConns() int              { return 5 }
func (p persistenceConfig) GetConnMaxLifetime() time.Duration { return time.Hour }

func main() {
	cfg := auth.NewConfigFromEnv()
	if cfg.SigningKey == "" {
		log.Fatal("AUTH_SIGNING_KEY is required")
	}

	ctx := context.Background()

	app := &App{config: cfg}

	if err := WithPersistence(ctx, app); err != nil {
		log.Fatal(err)
	}

	WithAuthentication(app)
	WithHTTPServer(app)

	addr := os.Getenv("AUTH_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	go func() {
		if err := app.srv.Listen(addr); err != nil {
			log.Fatal(err)
		}
	}()

	WaitExitSignal()

	if err := app.srv.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func WithPersistence(ctx context.Context, app *App) error {
	dsn := os.Getenv("AUTH_DB_DSN")
	if dsn == "" {
		dsn = "file:authd.db?cache=shared"
	}

	db, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return err
	}

	persistence.RegisterModel((*auth.Account)(nil))
	persistence.RegisterModel((*auth.SecurityLog)(nil))

	client, err := persistence.New(persistenceConfig{dsn: dsn}, db, sqlitedialect.New())
	if err != nil {
		return err
	}

	migrationsFS, err := fs.Sub(auth.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}
	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	app.bunDB = client.DB()
	app.repo = auth.NewRepositoryManager(client.DB())
	app.repo.MustValidate()

	return nil
}

func WithAuthentication(app *App) {
	app.tokens = auth.NewTokenService(
		auth.DecodeSigningKey(app.config.GetSigningKey()),
		time.Duration(app.config.GetTokenTTL())*time.Second,
		app.config.GetIssuer(),
		nil,
	)

	app.auth = auth.NewAuthenticator(app.repo.Accounts(), app.tokens).
		WithAuditSink(auth.NewSecurityLogSink(app.repo.SecurityLogs()))
}

func WithHTTPServer(app *App) {
	srv := fiber.New(fiber.Config{
		AppName:               "authd",
		DisableStartupMessage: true,
	})

	srv.Use(tokenauth.New(tokenauth.Config{
		Filter: func(c *fiber.Ctx) bool {
			// Public authentication endpoints bypass token handling.
			return c.Path() == "/auth/login"
		},
		Validator: tokenauth.ValidatorFunc(func(token string) (tokenauth.AuthClaims, error) {
			return app.tokens.Validate(token)
		}),
		ContextKey: app.config.GetContextKey(),
		AuthScheme: app.config.GetAuthScheme(),
		ContextEnricher: func(ctx context.Context, claims tokenauth.AuthClaims) context.Context {
			return auth.WithClaimsContext(ctx, claims)
		},
	}))

	controller := auth.NewAuthController(
		auth.WithAuthenticator(app.auth),
		auth.WithCredentialStore(app.repo.Accounts()),
		auth.WithContextKey(app.config.GetContextKey()),
	)
	auth.RegisterAuthRoutes(srv, controller)

	app.srv = srv
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 2)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	return <-ch
}

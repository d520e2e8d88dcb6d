package app

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	appconfig "chargeops/internal/config"
	"chargeops/internal/credentials"
	"chargeops/internal/db"
	httpserver "chargeops/internal/http"
	"chargeops/internal/http/handlers"
	"chargeops/internal/http/middleware"
	"chargeops/internal/password"
	redisstore "chargeops/internal/redis"
	"chargeops/internal/repository"
	"chargeops/internal/service"
	"chargeops/internal/ws"
)

const activeSessionTTL = 12 * time.Hour

// App wires dependencies for the chargeops service.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	logger *zap.Logger
}

// New builds application graph. Redis is optional; without it the service
// runs with the durable store only.
func New(cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgresDB(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	var activeStore *redisstore.Store
	if cfg.Redis.Addr != "" {
		client, err := redisstore.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			logger.Warn("redis unavailable, continuing without active session cache", zap.Error(err))
		} else {
			activeStore = redisstore.NewStore(client, activeSessionTTL)
		}
	}

	sessionRepo := repository.NewSessionRepository(sqlDB)
	employeeRepo := repository.NewEmployeeRepository(sqlDB)

	hasher := password.NewBcryptHasher(0)
	gen := credentials.NewGenerator()
	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiration())

	hub := ws.NewHub(logger)
	sessionsSvc := service.NewSessionsService(sessionRepo, activeStore, hub, logger)
	employeesSvc := service.NewEmployeesService(employeeRepo, hasher, gen, logger)
	authSvc := service.NewAuthService(employeeRepo, hasher, tokenSvc, logger)

	deps := httpserver.RouterDeps{
		SessionsHandler:  handlers.NewSessionsHandler(sessionsSvc, logger),
		EmployeesHandler: handlers.NewEmployeesHandler(employeesSvc, logger),
		LoginHandler:     handlers.NewLoginHandler(authSvc, logger),
		ReportsHandler:   handlers.NewReportsHandler(sessionsSvc, logger),
		EventsHandler:    hub.HandleWS,
		HealthHandler:    handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(deps, middleware.Auth(tokenSvc))
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		db:     sqlDB,
		logger: logger,
	}, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}

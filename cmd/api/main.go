package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	appaccess "github.com/tu-usuario/gestion-pro/internal/application/access"
	"github.com/tu-usuario/gestion-pro/internal/application/auth"
	"github.com/tu-usuario/gestion-pro/internal/application/provision"
	"github.com/tu-usuario/gestion-pro/internal/application/usecase"
	"github.com/tu-usuario/gestion-pro/internal/domain/access"
	"github.com/tu-usuario/gestion-pro/internal/infrastructure/cache"
	"github.com/tu-usuario/gestion-pro/internal/infrastructure/metrics"
	"github.com/tu-usuario/gestion-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/gestion-pro/internal/interfaces/http"
	"github.com/tu-usuario/gestion-pro/pkg/config"
	"github.com/tu-usuario/gestion-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	entrepriseRepo := postgres.NewEntrepriseRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	roleDirectory := postgres.NewRoleDirectory(pool)
	txRunner := postgres.NewTxRunner(pool)

	reg := metrics.NewRegistry()
	engineMetrics := metrics.NewEngineMetrics(reg)

	classifier := access.NewClassifier(
		roleDirectory, membershipRepo, roleDirectory, roleDirectory, roleDirectory,
		log, engineMetrics,
	)

	// Resincronización deshabilitada por config: el guard de escasez acepta
	// el conjunto mínimo sin pedir nada.
	var resync access.ResyncRequester
	if cfg.Entitlement.ResyncEnabled {
		resync = entrepriseRepo
	}
	engine := access.NewEngine(classifier, entrepriseRepo, resync, access.DefaultCatalog(), log, engineMetrics)

	// Cache de proyección del acceso resuelto (opcional).
	var accessCache cache.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, se resuelve sin cache")
		} else {
			defer redisCache.Close()
			accessCache = redisCache
		}
	}

	accessUC := appaccess.NewAccessUseCase(engine, accessCache, cfg.Entitlement.CacheTTL, log)
	moduleSvc := usecase.NewModuleService(accessUC)
	navigationUC := usecase.NewNavigationUseCase(accessUC)
	tenantAdminUC := usecase.NewTenantAdminUseCase(entrepriseRepo, entrepriseRepo, membershipRepo, subscriptionRepo, accessUC)
	provisionUC := provision.NewProvisionUseCase(txRunner, userRepo, entrepriseRepo, entrepriseRepo)
	authUC := auth.NewAuthUseCase(userRepo, accessUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestion Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		AccessUC:      accessUC,
		NavigationUC:  navigationUC,
		ModuleService: moduleSvc,
		TenantAdminUC: tenantAdminUC,
		ProvisionUC:   provisionUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

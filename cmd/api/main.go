package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/jhoicas/Turnos-api/docs"
	"github.com/jhoicas/Turnos-api/internal/application/analytics"
	"github.com/jhoicas/Turnos-api/internal/application/auth"
	"github.com/jhoicas/Turnos-api/internal/application/task"
	"github.com/jhoicas/Turnos-api/internal/application/usecase"
	"github.com/jhoicas/Turnos-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Turnos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Turnos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Turnos-api/internal/interfaces/http"
	"github.com/jhoicas/Turnos-api/pkg/config"
	"github.com/jhoicas/Turnos-api/pkg/logger"
)

// @title                       Turnos API
// @version                     1.0
// @description                 Tareas por turno, tarjetas de fidelización y cierres de caja de la estación de servicio.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	loc := cfg.App.Location()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.NewSchema(pool, log.Named("schema")).EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}
	if cfg.Bootstrap.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Bootstrap.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash del admin inicial")
		}
		created, err := postgres.SeedBootstrapAdmin(ctx, pool, cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminEmail, string(hash))
		if err != nil {
			log.Fatal().Err(err).Msg("admin inicial")
		}
		if created {
			log.Info().Str("email", cfg.Bootstrap.AdminEmail).Msg("admin inicial creado")
		}
	} else {
		log.Warn().Msg("BOOTSTRAP_ADMIN_PASSWORD vacío: no se crea admin inicial")
	}

	userRepo := postgres.NewUserRepository(pool)
	positionRepo := postgres.NewPositionRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	cardRepo := postgres.NewCardRecordRepository(pool)
	closureRepo := postgres.NewClosureRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Named("auth"))
	taskSvc := task.NewService(taskRepo, userRepo, positionRepo, loc, log.Named("tasks"))
	userUC := usecase.NewUserUseCase(userRepo, positionRepo, log.Named("users"))
	cardUC := usecase.NewCardRecordUseCase(txRunner, cardRepo, log.Named("cards"))
	closureUC := usecase.NewClosureUseCase(closureRepo, positionRepo, userRepo, infrapdf.NewClosureReceipt(cfg.App.Name), loc, log.Named("closures"))
	analyticsUC := analytics.NewUseCase(reportRepo, taskRepo, positionRepo, loc)

	app := httpRouter.NewApp(cfg.App.Name, log.Named("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Turnos API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		TaskSvc:     taskSvc,
		Exporter:    export.NewTaskWorkbook(),
		UserUC:      userUC,
		CardUC:      cardUC,
		ClosureUC:   closureUC,
		AnalyticsUC: analyticsUC,
		DB:          pool,
		ServiceName: cfg.App.Name,
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

package main

import (
	"context"
	"time"

	"carrental-server/config"
	"carrental-server/notifications"
	"carrental-server/routes"
	"carrental-server/services"
	"carrental-server/storage"
	"carrental-server/utils"

	"github.com/kataras/golog"
	"github.com/kataras/iris/v12"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		golog.Fatalf("config: %v", err)
	}

	db, err := storage.InitializeDB(cfg.DatabaseURL, cfg.IsProduction())
	if err != nil {
		golog.Fatalf("database: %v", err)
	}
	defer storage.Close(db)

	cache, err := storage.InitializeCache(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		// the catalog works without its cache
		golog.Warnf("cache disabled: %v", err)
	}
	if cache != nil {
		defer cache.Close()
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if cfg.JWKSURL != "" {
		if err := tokens.UseJWKS(cfg.JWKSURL); err != nil {
			golog.Fatalf("jwks: %v", err)
		}
	}
	defer tokens.Close()

	var notifier services.Notifier = services.NopNotifier{}
	if cfg.MailjetAPIKey != "" && cfg.MailjetSecretKey != "" {
		notifier = notifications.NewMailjetNotifier(cfg.MailjetAPIKey, cfg.MailjetSecretKey, cfg.MailFromEmail, cfg.MailFromName)
	} else {
		golog.Info("mailjet keys not set, status notifications disabled")
	}

	accounts := services.NewAccounts(db)
	accounts.AllowAdminSignup = cfg.AllowAdminSignup
	if cfg.AllowAdminSignup && cfg.IsProduction() {
		golog.Warn("ALLOW_ADMIN_SIGNUP is on in production")
	}

	app := routes.NewApplication(&routes.App{
		DB:           db,
		Accounts:     accounts,
		Cars:         services.NewCarCatalog(db, cache, cfg.CarCacheTTL),
		Reservations: services.NewReservations(db, notifier),
		Tokens:       tokens,
		CORSOrigins:  cfg.CORSOrigins,
		RequestLog:   true,
	})

	iris.RegisterOnInterrupt(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Shutdown(ctx); err != nil {
			golog.Errorf("shutdown: %v", err)
		}
	})

	golog.Infof("server listening on port %s", cfg.Port)
	if err := app.Listen(":"+cfg.Port, iris.WithoutInterruptHandler, iris.WithoutServerError(iris.ErrServerClosed)); err != nil {
		golog.Errorf("server: %v", err)
	}
}

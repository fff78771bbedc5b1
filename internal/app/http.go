package app

import (
	"context"

	"github.com/gla-dpsingh/Animal-Care/internal/auth/credentials"
	"github.com/gla-dpsingh/Animal-Care/internal/auth/handler"
	"github.com/gla-dpsingh/Animal-Care/internal/auth/otp"
	"github.com/gla-dpsingh/Animal-Care/internal/chat"
	"github.com/gla-dpsingh/Animal-Care/internal/config"
	"github.com/gla-dpsingh/Animal-Care/internal/mail"
	"github.com/gla-dpsingh/Animal-Care/internal/middleware"
	"github.com/gla-dpsingh/Animal-Care/internal/portal"
	"github.com/gla-dpsingh/Animal-Care/internal/rtc"
	"github.com/gla-dpsingh/Animal-Care/internal/session"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	credentialService := credentials.NewService(infra.DB)

	mailer := mail.NewMailer(
		cfg.MailHost,
		cfg.MailPort,
		cfg.MailUsername,
		cfg.MailPassword,
	)

	challengeManager := otp.NewManager(sessionStore, credentialService, mailer)

	tokenIssuer, err := rtc.NewIssuer(cfg.AgoraAppID, cfg.AgoraAppCertificate)
	if err != nil {
		return nil, nil, err
	}

	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	authHandler := handler.NewHandler(
		credentialService,
		challengeManager,
		tokenIssuer,
		sessionStore,
	)

	portalHandler := portal.NewHandler(portal.NewRepository(infra.DB))

	chatService := chat.NewService(
		chat.NewHTTPCompleter(cfg.ChatAPIURL, cfg.ChatAPIKey),
		chat.NewRedisCache(infra.Redis.Client),
	)
	chatHandler := chat.NewHandler(chatService)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	authHandler.RegisterRoutes(router, authMiddleware)
	portalHandler.RegisterRoutes(router)
	chatHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}, nil
}

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cawebsite-backend/internal/auth"
	"cawebsite-backend/internal/cache"
	"cawebsite-backend/internal/careers"
	"cawebsite-backend/internal/config"
	"cawebsite-backend/internal/db"
	"cawebsite-backend/internal/handlers"
	"cawebsite-backend/internal/middleware"
	"cawebsite-backend/internal/newsroom"
	"cawebsite-backend/internal/notifications"
	"cawebsite-backend/internal/publications"
	"cawebsite-backend/internal/services"
	"cawebsite-backend/internal/storage"
	"cawebsite-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}
	jwtManager := &auth.Manager{
		Secret: []byte(cfg.JWTSecret),
		TTL:    time.Duration(cfg.TokenTTLHours) * time.Hour,
		Issuer: "cawebsite-backend",
	}

	mailer := notifications.NewMailer(cfg)
	if mailer == nil {
		logger.Info("mail notifications disabled")
	} else {
		logger.Info("mail notifications enabled", slog.String("notify_email", cfg.NotifyEmail))
	}
	chat := notifications.NewChatWebhook(cfg.ChatWebhookURL)
	notifySvc := notifications.NewService(mailer, chat, cfg.NotifyEmail)

	files, err := storage.New(cfg)
	if err != nil {
		logger.Error("object storage init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if files == nil {
		logger.Info("object storage disabled, uploads unavailable")
	} else {
		logger.Info("object storage ready", slog.String("bucket", cfg.MinioBucket))
	}

	val := validation.New()
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	server := &handlers.Server{
		Cfg:    cfg,
		Cols:   cols,
		Val:    val,
		Log:    logger,
		Cache:  cacheStore,
		Mailer: notifySvc,
		JWT:    jwtManager,
		Files:  files,
	}

	servicesManager := services.NewManager(services.NewRepository(cols.Services), cfg.Timezone)
	servicesHandler := services.NewHandler(servicesManager, val, logger, cacheStore, cacheTTL, files)

	publicationsService := publications.NewService(publications.NewRepository(cols.Publications), cfg.Timezone)
	publicationsHandler := publications.NewHandler(publicationsService, val, logger, cacheStore, cacheTTL, files)

	newsroomService := newsroom.NewService(newsroom.NewRepository(cols.Newsroom), cfg.Timezone)
	newsroomHandler := newsroom.NewHandler(newsroomService, val, logger, cacheStore, cacheTTL, files)

	var careerNotifier careers.Notifier
	if notifySvc.MailEnabled() {
		careerNotifier = notifySvc
	}
	careersService := careers.NewService(
		careers.NewRepository(cols.Careers),
		careers.NewApplicationRepository(cols.CareerApplications),
		cfg.Timezone,
		careerNotifier,
	)
	careersHandler := careers.NewHandler(careersService, val, logger, cacheStore, cacheTTL, files)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	contactLimiter := middleware.NewRateLimiter(cfg.RateLimitContact, time.Duration(cfg.RateLimitWindowSec)*time.Second)
	applicationsLimiter := middleware.NewRateLimiter(cfg.RateLimitApplications, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Get("/sitemap.xml", server.Sitemap)

	r.Route("/api", func(api chi.Router) {
		api.Get("/services", servicesHandler.List)
		api.Get("/services/{slug}", servicesHandler.GetBySlug)
		api.Get("/publications", publicationsHandler.List)
		api.Get("/publications/{slug}", publicationsHandler.GetBySlug)
		api.Get("/newsroom", newsroomHandler.List)
		api.Get("/newsroom/{slug}", newsroomHandler.GetBySlug)
		api.With(middleware.OptionalAuth(jwtManager)).Get("/careers", careersHandler.List)
		api.Get("/careers/{slug}", careersHandler.GetBySlug)
		api.With(applicationsLimiter.Middleware).Post("/careers/apply", careersHandler.Apply)
		api.Get("/sectors", server.ListSectors)
		api.Get("/homepage-files", server.ListHomepageFiles)
		api.Get("/search", server.Search)
		api.With(contactLimiter.Middleware).Post("/contact", server.CreateContact)
		api.With(contactLimiter.Middleware).Post("/contact/chat", server.ContactChat)

		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/register", server.AdminRegister)
			admin.Post("/login", server.AdminLogin)

			// chi requires middlewares before routes, so the protected
			// surface lives in its own sub-router.
			admin.Group(func(protected chi.Router) {
				protected.Use(middleware.Auth(jwtManager))

				protected.Get("/me", server.AdminMe)
				protected.Post("/change-password", server.AdminChangePassword)

				protected.Post("/services", servicesHandler.AdminCreate)
				protected.Put("/services/{id}", servicesHandler.AdminUpdate)
				protected.Delete("/services/{id}", servicesHandler.AdminDelete)

				protected.Post("/publications", publicationsHandler.AdminCreate)
				protected.Put("/publications/{id}", publicationsHandler.AdminUpdate)
				protected.Delete("/publications/{id}", publicationsHandler.AdminDelete)

				protected.Post("/newsroom", newsroomHandler.AdminCreate)
				protected.Put("/newsroom/{id}", newsroomHandler.AdminUpdate)
				protected.Delete("/newsroom/{id}", newsroomHandler.AdminDelete)

				protected.Post("/careers", careersHandler.AdminCreate)
				protected.Put("/careers/{id}", careersHandler.AdminUpdate)
				protected.Delete("/careers/{id}", careersHandler.AdminDelete)
				protected.Get("/applications", careersHandler.AdminListApplications)
				protected.Patch("/applications/{id}/status", careersHandler.AdminUpdateApplicationStatus)

				protected.Post("/sectors", server.CreateSector)
				protected.Put("/sectors/{id}", server.UpdateSector)
				protected.Delete("/sectors/{id}", server.DeleteSector)

				protected.Post("/homepage-files", server.CreateHomepageFile)
				protected.Put("/homepage-files/{id}", server.UpdateHomepageFile)
				protected.Delete("/homepage-files/{id}", server.DeleteHomepageFile)

				protected.Get("/contacts", server.ListContactMessages)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}

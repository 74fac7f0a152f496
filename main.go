package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"hostelhub/auth"
	"hostelhub/booking"
	"hostelhub/chats"
	"hostelhub/config"
	"hostelhub/db"
	"hostelhub/hostels"
	"hostelhub/kv"
	"hostelhub/logging"
	"hostelhub/middleware"
	"hostelhub/mq"
	"hostelhub/places"
	"hostelhub/profile"
	"hostelhub/ratelim"
	"hostelhub/rdx"
	"hostelhub/routes"
	"hostelhub/settings"
	"hostelhub/tracing"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs each request method, path, status and duration.
func loggingMiddleware(log logrus.FieldLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"remote":   r.RemoteAddr,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// backend is the storage selected by STORE_BACKEND.
type backend struct {
	kv       kv.Store
	bookings booking.Repository
	users    auth.UserRepository
	redis    *redis.Client
	closers  []func(context.Context) error
}

func openBackend(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*backend, error) {
	b := &backend{}
	switch cfg.StoreBackend {
	case config.BackendMongo:
		database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		b.kv = db.NewKV(database.KVCollection)
		b.bookings = booking.NewMongoRepository(database.BookingsCollection)
		b.users = auth.NewMongoUsers(database.UserCollection)
		b.closers = append(b.closers, database.Close)
		log.Info("✅ Connected to MongoDB")
	case config.BackendRedis:
		conn, err := rdx.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		b.kv = rdx.NewKV(conn, "hostelhub:")
		b.bookings = booking.NewMemoryRepository()
		b.users = auth.NewMemoryUsers()
		b.redis = conn
		b.closers = append(b.closers, func(context.Context) error { return conn.Close() })
		log.Info("✅ Connected to Redis")
	case config.BackendMemory, "":
		b.kv = kv.NewMemory()
		b.bookings = booking.NewMemoryRepository()
		b.users = auth.NewMemoryUsers()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return b, nil
}

func (b *backend) Close(ctx context.Context) {
	for _, c := range b.closers {
		_ = c(ctx)
	}
}

func main() {
	cfg := config.Load()

	logger, logCloser := logging.New(cfg.LogLevel, cfg.LogFile)
	defer logCloser.Close()
	log := logger.WithField("component", "main")

	shutdownTracing, err := tracing.NewTracerProvider("hostelhub", cfg.JaegerEndpoint)
	if err != nil {
		log.WithError(err).Fatal("❌ tracing setup failed")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	be, err := openBackend(ctx, cfg, logger)
	if err != nil {
		log.WithError(err).Fatal("❌ storage setup failed")
	}

	var emitter mq.Emitter = mq.NewLogEmitter(logger)
	if be.redis != nil {
		emitter = mq.NewRedisEmitter(be.redis, mq.BookingChannel, logger)
		go mq.StartWorker(ctx, be.redis, mq.BookingChannel, logger, func(e mq.Event) {
			log.WithFields(logrus.Fields{"event": e.Name, "booking": e.EntityId, "status": e.ItemType}).Debug("booking event")
		})
	}

	catalog := hostels.NewCatalog()
	bookings := booking.NewStore(be.bookings,
		booking.WithLogger(logger),
		booking.WithEmitter(emitter),
		booking.WithCatalog(catalog),
	)
	go bookings.RunRefresher(ctx, cfg.RefreshInterval)

	profiles := profile.NewDirectory(be.kv, logger)
	secret := []byte(cfg.JWTSecret)

	deps := routes.Deps{
		Auth:      middleware.NewAuth(secret),
		Login:     auth.NewHandler(auth.NewLocalProvider(be.users, secret, cfg.JWTTTL), profiles, logger),
		Bookings:  booking.NewHandler(bookings, logger),
		Profiles:  profile.NewHandler(profiles, filepath.Join(cfg.StaticDir, "userpic"), logger),
		Catalog:   catalog,
		Nearby:    places.NewNearby(places.NewGoogleClient(cfg.PlacesAPIKey, cfg.PlacesBaseURL, nil, logger), logger),
		Chats:     chats.NewStore(catalog),
		Settings:  settings.NewStore(be.kv, logger),
		StaticDir: cfg.StaticDir,
	}

	rateLimiter := ratelim.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rateLimiter.Cleanup(ctx)

	router := httprouter.New()
	routes.RoutesWrapper(router, deps, rateLimiter)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(logger.WithField("component", "http"), securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		ErrorLog:          stdlog.New(logger.WriterLevel(logrus.WarnLevel), "", 0),
	}

	server.RegisterOnShutdown(func() {
		log.Info("🛑 Stopping background workers...")
		stop()
	})

	go func() {
		log.Infof("🚀 Server listening on %s (store=%s)", cfg.Port, cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("❌ ListenAndServe error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("🛑 Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("❌ Graceful shutdown failed")
	}
	be.Close(shutdownCtx)
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.WithError(err).Warn("tracer shutdown failed")
	}

	log.Info("✅ Server stopped cleanly")
}

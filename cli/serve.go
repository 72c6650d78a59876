package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/supakorn-kn/peponi-admin/apis"
	"github.com/supakorn-kn/peponi-admin/backend"
	"github.com/supakorn-kn/peponi-admin/cache"
	"github.com/supakorn-kn/peponi-admin/catalog"
	"github.com/supakorn-kn/peponi-admin/dashboard"
	"github.com/supakorn-kn/peponi-admin/env"
	"github.com/supakorn-kn/peponi-admin/idmask"
	"github.com/supakorn-kn/peponi-admin/metrics"
	"github.com/supakorn-kn/peponi-admin/middlewares"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/mongodb"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/supakorn-kn/peponi-admin/session"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

const shutdownTimeout = 10 * time.Second

func ServeCmd() *cobra.Command {

	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard and the JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {

			config, err := env.GetEnv()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if port > 0 {
				config.Server.Port = port
			}

			slog.SetDefault(newLogger(config.Log))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, config)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port, overrides server.port")
	return cmd
}

// server holds what every entity route is built from.
type server struct {
	config    *env.Env
	metrics   *metrics.Metrics
	client    *backend.Client
	conn      *mongodb.MongoDBConn
	dashboard *dashboard.Dashboard
	api       *gin.RouterGroup
	pages     *gin.RouterGroup
}

func serve(ctx context.Context, config *env.Env) error {

	m := metrics.New()
	client := backend.NewClient(config.Backend, m)

	var conn *mongodb.MongoDBConn
	if config.Source == env.SourceMongo {

		var err error
		conn, err = mongodb.InitConnection(ctx, config.MongoDB)
		if err != nil {
			return fmt.Errorf("connect MongoDB: %w", err)
		}

		defer func() {
			if err := conn.Disconnect(context.Background()); err != nil {
				slog.Warn("disconnect MongoDB failed", "error", err)
			}
		}()
	}

	var redisClient *redis.Client
	if config.Redis.Enabled {

		var err error
		redisClient, err = idmask.NewRedisClient(ctx, config.Redis)
		if err != nil {
			return fmt.Errorf("connect Redis: %w", err)
		}

		defer redisClient.Close()
	}

	masker, err := newMasker(config, redisClient, m)
	if err != nil {
		return err
	}

	loginLimiter, err := newLoginLimiter(config.Auth, redisClient)
	if err != nil {
		return err
	}

	var verifier middlewares.Verifier = client
	if config.Auth.Secret != "" {
		verifier = middlewares.NewJWTVerifier(config.Auth.Secret)
	}

	sessions := session.NewManager(config.Server.Sessions, config.Server.SessionTTL, config.Auth.Secure, m)
	authAPI := apis.NewAuthAPI(client, loginLimiter, config.Auth, sessions.Destroy)

	templates, err := dashboard.Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	gin.SetMode(config.Server.Mode)

	router := gin.New()
	router.Use(middlewares.Recovery(), middlewares.RequestLogger(m))
	router.SetHTMLTemplate(templates)

	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, apis.OKResponse) })

	api := router.Group("/api")
	apis.RegisterAuthAPI(authAPI, api)

	protectedAPI := api.Group("", middlewares.Auth(verifier, middlewares.AuthOptions{
		CookieName: config.Auth.CookieName,
		CacheTTL:   config.Auth.VerifyTTL,
	}))
	apis.RegisterIDMaskAPI(masker, protectedAPI.Group("generate-id"))

	d := dashboard.New(sessions, masker, authAPI, dashboard.Options{
		PageSize: config.Search.PageSize,
		Debounce: config.Search.Debounce,
		Metrics:  m,
	})
	d.RegisterLogin(router)

	pages := router.Group(dashboard.BasePath,
		middlewares.Auth(verifier, middlewares.AuthOptions{
			CookieName:     config.Auth.CookieName,
			CacheTTL:       config.Auth.VerifyTTL,
			OnUnauthorized: middlewares.RedirectToLogin,
		}),
		sessions.Middleware(),
	)

	var stats dashboard.StatsSource = client
	if conn != nil {
		stats = models.NewStoreStats(conn)
	}

	d.Home(pages, stats)
	d.Account(pages, client)
	d.Featured(pages, client)

	s := &server{
		config:    config,
		metrics:   m,
		client:    client,
		conn:      conn,
		dashboard: d,
		api:       protectedAPI,
		pages:     pages,
	}

	if err := s.mountAll(ctx); err != nil {
		return err
	}

	return run(ctx, router, config.Server.Port)
}

func (s *server) mountAll(ctx context.Context) error {

	if _, err := mount(ctx, s, catalog.Products); err != nil {
		return err
	}

	categories, err := mount(ctx, s, catalog.Categories)
	if err != nil {
		return err
	}

	dashboard.RegisterCategoryCheck(s.pages, categories)

	if _, err := mount(ctx, s, catalog.SubCategories); err != nil {
		return err
	}

	if _, err := mount(ctx, s, catalog.Attributes); err != nil {
		return err
	}

	if _, err := mount(ctx, s, catalog.Blogs); err != nil {
		return err
	}

	if _, err := mount(ctx, s, catalog.Banners); err != nil {
		return err
	}

	if _, err := mount(ctx, s, catalog.FAQs); err != nil {
		return err
	}

	if _, err := mount(ctx, s, catalog.Newsletters); err != nil {
		return err
	}

	if _, err := mount(ctx, s, catalog.Contacts); err != nil {
		return err
	}

	if _, err := mount(ctx, s, catalog.Reviews); err != nil {
		return err
	}

	if _, err := mount(ctx, s, catalog.Orders); err != nil {
		return err
	}

	_, err = mount(ctx, s, catalog.Users)
	return err
}

// mount builds the data source of entity, wraps it in the list cache and serves it on both the JSON API
// and the dashboard.
func mount[R objects.Record](ctx context.Context, s *server, entity catalog.Entity[R]) (models.Model[R], error) {

	var source models.Model[R]

	switch s.config.Source {

	case env.SourceMongo:
		collection, err := models.NewCollection[R](ctx, s.conn, entity.Collection)
		if err != nil {
			return nil, fmt.Errorf("prepare %s collection: %w", entity.Name, err)
		}
		source = collection

	case env.SourceREST:
		source = backend.NewResource[R](s.client, entity.Endpoint)

	default:
		return nil, fmt.Errorf("unknown source %q", s.config.Source)
	}

	model := cache.New(entity.Name, source, s.config.Cache.Size, s.config.Cache.TTL, s.metrics)

	apis.RegisterCrudAPI[R](apis.NewModelAPI[R](model, s.config.Search.PageSize, entity.FilterKeys()...), s.api.Group(entity.Name))
	dashboard.Mount(s.dashboard, s.pages, entity, model)

	return model, nil
}

func newMasker(config *env.Env, redisClient *redis.Client, m *metrics.Metrics) (*idmask.Masker, error) {

	if redisClient != nil {
		return idmask.New(idmask.NewRedisStore(redisClient), config.Mask.TTL, m), nil
	}

	if config.Mask.Size < 1 {
		return nil, errors.New("mask.size must be positive without Redis")
	}

	return idmask.New(idmask.NewMemoryStore(config.Mask.Size, config.Mask.TTL), config.Mask.TTL, m), nil
}

func newLoginLimiter(config env.AuthConfig, redisClient *redis.Client) (*limiter.Limiter, error) {

	rate, err := limiter.NewRateFromFormatted(config.LoginRate)
	if err != nil {
		return nil, fmt.Errorf("parse auth.login_rate: %w", err)
	}

	if redisClient == nil {
		return limiter.New(memorystore.NewStore(), rate), nil
	}

	store, err := redisstore.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: "peponi:login"})
	if err != nil {
		return nil, fmt.Errorf("create login limiter store: %w", err)
	}

	return limiter.New(store, rate), nil
}

func run(ctx context.Context, handler http.Handler, port int) error {

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {

		slog.Info("server listening", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("run server: %w", err)

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/imrishuroy/go-storefront/internal/admin"
	"github.com/imrishuroy/go-storefront/internal/auth"
	"github.com/imrishuroy/go-storefront/internal/aws"
	"github.com/imrishuroy/go-storefront/internal/catalog"
	"github.com/imrishuroy/go-storefront/internal/checkout"
	"github.com/imrishuroy/go-storefront/internal/config"
	"github.com/imrishuroy/go-storefront/internal/handlers"
	"github.com/imrishuroy/go-storefront/internal/idempotency"
	"github.com/imrishuroy/go-storefront/internal/orders"
	"github.com/imrishuroy/go-storefront/internal/ratelimit"
	"github.com/imrishuroy/go-storefront/internal/session"
	"github.com/imrishuroy/go-storefront/internal/validation"
)

func main() {
	cfg := config.Load()
	config.InitLogger(cfg)
	if !cfg.RunLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clients, err := aws.NewAWSClients(ctx, cfg.AWSConfig.Region, cfg.AWSConfig.EndpointOverride)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init aws clients")
	}

	api := catalog.NewClient(cfg.CatalogConfig.BaseURL, &http.Client{Timeout: cfg.CatalogConfig.HTTPTimeout})
	cat := catalog.NewCatalog(cfg.CatalogConfig.CategoryLimit)
	loader := &catalog.Loader{Source: api, Catalog: cat, Limit: cfg.CatalogConfig.Limit}
	if err := loader.Refresh(ctx); err != nil {
		// the first storefront read retries the load
		log.Warn().Err(err).Msg("initial catalog load failed")
	}

	var sessionStore auth.SessionStore = auth.NewMemorySessionStore()
	if cfg.AWSConfig.SessionsTable != "" {
		sessionStore = auth.NewDynamoSessionStore(clients.DynamoDB, cfg.AWSConfig.SessionsTable)
	}
	sessions := session.NewRegistry(api, sessionStore, cfg.SessionIdleTTL)

	scheduler, err := startJobs(ctx, cfg, sessions, loader)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer func() { _ = scheduler.Shutdown() }()

	v := validation.New()
	orderStore := orders.NewStore(clients.DynamoDB, cfg.AWSConfig.OrdersTable)
	checkoutSvc := checkout.NewService(
		orderStore,
		idempotency.NewStore(clients.DynamoDB, cfg.AWSConfig.IdempotencyTable, cfg.IdempotencyTTL),
		aws.NewPublisher(clients.SQS, cfg.AWSConfig.OrdersQueueURL),
		v,
	)

	hc := handlers.HandlerConfig{
		Catalog:        cat,
		Loader:         loader,
		Sessions:       sessions,
		Admin:          admin.NewService(api, cat),
		Checkout:       checkoutSvc,
		Orders:         orderStore,
		LoginLimiter:   ratelimit.PerMinute(cfg.LoginRatePerMin),
		Validate:       v,
		TrustedProxies: cfg.TrustedProxies,
	}
	if !cfg.RunLocal {
		hc.TrustedPlatform = sourceIPHeader
	}
	r := handlers.NewRouter(hc)

	if cfg.RunLocal {
		runLocal(ctx, cfg, r)
		return
	}

	adapter := ginadapter.New(r)
	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		stampSourceIP(&req)
		return adapter.ProxyWithContext(ctx, req)
	})
}

// sourceIPHeader carries the API Gateway source address into the router.
const sourceIPHeader = "X-Storefront-Source-Ip"

// stampSourceIP replaces any client-sent sourceIPHeader, in any casing, with
// the address API Gateway saw.
func stampSourceIP(req *events.APIGatewayProxyRequest) {
	for k := range req.Headers {
		if strings.EqualFold(k, sourceIPHeader) {
			delete(req.Headers, k)
		}
	}
	for k := range req.MultiValueHeaders {
		if strings.EqualFold(k, sourceIPHeader) {
			delete(req.MultiValueHeaders, k)
		}
	}
	ip := req.RequestContext.Identity.SourceIP
	if ip == "" {
		return
	}
	if req.Headers == nil {
		req.Headers = map[string]string{}
	}
	req.Headers[sourceIPHeader] = ip
	if req.MultiValueHeaders != nil {
		req.MultiValueHeaders[sourceIPHeader] = []string{ip}
	}
}

// startJobs schedules the idle session sweep and the periodic catalog refresh.
func startJobs(ctx context.Context, cfg *config.Config, sessions *session.Registry, loader *catalog.Loader) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(func() {
			if n := sessions.Sweep(); n > 0 {
				log.Debug().Str("component", "session").Int("evicted", n).Msg("idle sessions evicted")
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(cfg.CatalogConfig.RefreshInterval),
		gocron.NewTask(func() {
			if err := loader.Refresh(ctx); err != nil {
				log.Warn().Err(err).Msg("scheduled catalog refresh failed")
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}

// runLocal serves the router over plain HTTP with CORS for the browser app
// and shuts down when ctx is cancelled.
func runLocal(ctx context.Context, cfg *config.Config, r *gin.Engine) {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", session.Header, "Idempotency-Key", "X-Request-Id"},
		ExposedHeaders:   []string{session.Header, "X-Request-Id", "Location"},
		AllowCredentials: false,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServicePort,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("running local server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to run local server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

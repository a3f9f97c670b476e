package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	esdex "github.com/datapult/esdex"
	"github.com/datapult/esdex/internal/config"
	"github.com/datapult/esdex/internal/generate"
	logpkg "github.com/datapult/esdex/internal/logger"
	"github.com/datapult/esdex/internal/metrics"
	"github.com/datapult/esdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting esdex pipeline",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("es_addresses", cfg.Elasticsearch.Addresses),
		zap.String("index", cfg.Index.Name),
	)

	// Register client metrics explicitly (no init())
	metrics.RegisterClientMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []esdex.Option{
		esdex.WithAddresses(cfg.Elasticsearch.Addresses...),
		esdex.WithBasicAuth(cfg.Elasticsearch.Username, cfg.Elasticsearch.Password),
		esdex.WithMaxBatchSize(cfg.Ingest.MaxBatchSize),
		esdex.WithLogger(logger),
	}
	if cfg.Elasticsearch.InsecureSkipVerify {
		opts = append(opts, esdex.WithInsecureSkipTLSVerify())
	}

	client, err := esdex.New(ctx, opts...)
	if err != nil {
		logger.Fatal("Failed to connect to engine", zap.Error(err))
	}
	defer client.Close()
	logger.Info("Connected to engine")

	srv := startObservabilityServer(cfg, client, logger)
	defer shutdownServer(srv, cfg, logger)

	if err := runPipeline(ctx, client, cfg, logger); err != nil {
		logger.Fatal("Pipeline failed", zap.Error(err))
	}

	logger.Info("Pipeline completed")
}

// runPipeline provisions the index, seeds activity logs, and runs the demo
// searches and aggregations.
func runPipeline(ctx context.Context, client *esdex.Client, cfg config.Config, logger *zap.Logger) error {
	created, err := client.Indices().Ensure(ctx, activitySchema(cfg))
	if err != nil {
		return fmt.Errorf("provision index: %w", err)
	}
	logger.Info("Index ready", zap.String("index", cfg.Index.Name), zap.Bool("created", created))

	logs, err := generate.New(cfg.Ingest.Seed).ActivityLogs(cfg.Ingest.Records)
	if err != nil {
		return fmt.Errorf("generate activity logs: %w", err)
	}
	docs := make([]esdex.Document, 0, len(logs))
	for _, l := range logs {
		docs = append(docs, esdex.Document(l.Fields()))
	}

	outcome, err := client.Documents(cfg.Index.Name).BulkInsert(ctx, docs)
	if err != nil {
		return fmt.Errorf("bulk insert: %w", err)
	}
	logger.Info("Documents ingested",
		zap.Int("submitted", len(docs)),
		zap.Int("accepted", outcome.Accepted()),
		zap.Bool("had_errors", outcome.HadErrors),
	)

	if err := runSearches(ctx, client, cfg.Index.Name, logger); err != nil {
		return err
	}
	return runAggregations(ctx, client, cfg.Index.Name, logger)
}

func runSearches(ctx context.Context, client *esdex.Client, index string, logger *zap.Logger) error {
	recent, err := client.Search(index).NewQuery().
		SortBy("timestamp", true).
		Limit(5).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("search recent activity: %w", err)
	}
	logger.Info("Recent activity", zap.Int64("total", recent.Total), zap.Int("returned", len(recent.Hits)))

	logins, err := client.Search(index).NewQuery().
		Where("action", "login").
		Limit(5).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("search logins: %w", err)
	}
	logger.Info("Login events", zap.Int64("total", logins.Total), zap.Int("returned", len(logins.Hits)))

	failures, err := client.Search(index).NewQuery().
		Where("status", "failed").
		Limit(10).
		SortBy("timestamp", true).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("search failures: %w", err)
	}
	logger.Info("Recent failures", zap.Int64("total", failures.Total))
	for _, hit := range failures.Hits {
		logger.Debug("Failure",
			zap.String("id", hit.ID),
			zap.Any("user_id", hit.Source["user_id"]),
			zap.Any("action", hit.Source["action"]),
		)
	}
	return nil
}

func runAggregations(ctx context.Context, client *esdex.Client, index string, logger *zap.Logger) error {
	res, err := client.Search(index).NewQuery().
		Limit(0).
		WithAggregation(esdex.TermsAgg{
			Name:   "by_action",
			Field:  "action",
			Size:   10,
			Metric: &esdex.MetricAgg{Name: "avg_response", Kind: esdex.MetricAvg, Field: "response_time"},
		}).
		WithAggregation(esdex.TermsAgg{
			Name:   "by_department",
			Field:  "department",
			Size:   10,
			Metric: &esdex.MetricAgg{Name: "total_session", Kind: esdex.MetricSum, Field: "session_duration"},
		}).
		WithAggregation(esdex.TermsAgg{Name: "by_status", Field: "status", Size: 5}).
		WithAggregation(esdex.MetricAgg{Name: "max_response", Kind: esdex.MetricMax, Field: "response_time"}).
		WithAggregation(esdex.DateHistogramAgg{Name: "per_day", Field: "timestamp", Interval: esdex.IntervalDay}).
		DoAggregations(ctx)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	for _, bucket := range res.Terms["by_action"] {
		avg, ok := bucket.Metrics["avg_response"].Value()
		if !ok {
			logger.Info("Action volume", zap.String("action", bucket.Key), zap.Int64("count", bucket.DocCount))
			continue
		}
		logger.Info("Action volume",
			zap.String("action", bucket.Key),
			zap.Int64("count", bucket.DocCount),
			zap.Float64("avg_response", avg),
		)
	}

	for _, bucket := range res.Terms["by_department"] {
		total, _ := bucket.Metrics["total_session"].Value()
		logger.Info("Department sessions",
			zap.String("department", bucket.Key),
			zap.Int64("count", bucket.DocCount),
			zap.Float64("total_session_seconds", total),
		)
	}

	for _, bucket := range res.Terms["by_status"] {
		logger.Info("Status distribution", zap.String("status", bucket.Key), zap.Int64("count", bucket.DocCount))
	}

	if maxResp, ok := res.Metrics["max_response"].Value(); ok {
		logger.Info("Slowest response", zap.Float64("seconds", maxResp))
	}

	for _, bucket := range res.Histograms["per_day"] {
		logger.Info("Daily activity", zap.String("day", bucket.Label), zap.Int64("count", bucket.DocCount))
	}
	return nil
}

// activitySchema declares the user activity log index.
func activitySchema(cfg config.Config) esdex.Schema {
	return esdex.Schema{
		Name: cfg.Index.Name,
		Fields: []esdex.Field{
			{Name: "user_id", Type: esdex.FieldKeyword},
			{Name: "username", Type: esdex.FieldText, KeywordSubfield: true},
			{Name: "department", Type: esdex.FieldKeyword},
			{Name: "action", Type: esdex.FieldKeyword},
			{Name: "status", Type: esdex.FieldKeyword},
			{Name: "response_time", Type: esdex.FieldFloat},
			{Name: "session_duration", Type: esdex.FieldInteger},
			{Name: "ip_address", Type: esdex.FieldIP},
			{Name: "location", Type: esdex.FieldGeoPoint},
			{Name: "timestamp", Type: esdex.FieldDate},
		},
		Shards:   cfg.Index.Shards,
		Replicas: cfg.Index.Replicas,
	}
}

// startObservabilityServer exposes /metrics and /healthz while the pipeline runs.
func startObservabilityServer(cfg config.Config, client *esdex.Client, logger *zap.Logger) *http.Server {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLoggerMiddleware(logger))
	r.Use(metrics.Middleware())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := client.Ping(req.Context()); err != nil {
			logpkg.FromContext(req.Context()).Warn("Health check failed", zap.Error(err))
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:     r,
		ReadTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Starting observability server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Observability server error", zap.Error(err))
		}
	}()
	return srv
}

// requestLoggerMiddleware attaches a request-scoped logger carrying the
// request id and propagates X-Request-ID to the response.
func requestLoggerMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func shutdownServer(srv *http.Server, cfg config.Config, logger *zap.Logger) {
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/staxpay/gateway/docs"
	"github.com/staxpay/gateway/internal/app/api/handlers"
	"github.com/staxpay/gateway/internal/app/service/payment"
	"github.com/staxpay/gateway/internal/app/service/refund"
	"github.com/staxpay/gateway/internal/app/service/statistics"
	"github.com/staxpay/gateway/internal/app/service/webhook"
	cfgpkg "github.com/staxpay/gateway/pkg/config"

	mw "github.com/staxpay/gateway/internal/app/api/middleware"

	metrics "github.com/staxpay/gateway/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

func registerRoutes(r *gin.Engine, log *zap.SugaredLogger, payMgr payment.Manager, refundMgr refund.Manager, subs webhook.Subscriptions, stats *statistics.Service, cfg *cfgpkg.Config) {
	// Prometheus metrics
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)
		metrics.RegisterDomain("", log)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}
	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Merchant-facing APIs: merchant identity comes from the X-Merchant-ID
	// header so the request logger can tag entries with it.
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.MerchantMiddleware(), mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())

	payments := apiV1.Group("/payments")
	handlers.RegisterPaymentRoutes(payments, payMgr)
	handlers.RegisterStatisticsRoutes(payments, stats)
	handlers.RegisterRefundRoutes(apiV1.Group("/refunds"), refundMgr)
	handlers.RegisterWebhookRoutes(apiV1.Group("/webhooks"), subs)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)

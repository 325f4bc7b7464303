package webhook

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module exposes the webhook dispatcher and subscription service via Fx.
var Module = fx.Options(
	fx.Provide(NewStore),
	fx.Provide(NewService),
	fx.Provide(func(s *Service) Dispatcher { return s }),
	fx.Provide(NewSubscriptions),
	fx.Invoke(registerWorkers),
)

func registerWorkers(lc fx.Lifecycle, log *zap.SugaredLogger, s *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting webhook delivery workers",
				"workers", s.cfg.Webhooks.Workers, "queue_size", s.cfg.Webhooks.QueueSize)
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping webhook delivery workers")
			s.Stop()
			return nil
		},
	})
}

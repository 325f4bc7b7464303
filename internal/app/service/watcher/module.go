package watcher

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/staxpay/gateway/internal/app/service/payment"
)

// Module wires the watcher loop into the app lifecycle.
var Module = fx.Options(
	fx.Provide(
		func(m payment.Manager) PaymentSource { return m },
		New,
	),
	fx.Invoke(registerWatcher),
)

func registerWatcher(lc fx.Lifecycle, log *zap.SugaredLogger, w *Watcher) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			w.Start()
			log.Infow("transaction watcher started", "interval", w.cfg.Watcher.Interval)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			w.Stop()
			log.Infow("transaction watcher stopped")
			return nil
		},
	})
}

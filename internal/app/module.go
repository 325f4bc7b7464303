package app

import (
    "github.com/staxpay/gateway/internal/app/api/server"
    "github.com/staxpay/gateway/internal/app/service/payment"
    "github.com/staxpay/gateway/internal/app/service/refund"
    "github.com/staxpay/gateway/internal/app/service/statistics"
    "github.com/staxpay/gateway/internal/app/service/watcher"
    "github.com/staxpay/gateway/internal/app/service/webhook"
    "github.com/staxpay/gateway/internal/platform/chain"
    "github.com/staxpay/gateway/internal/platform/db"
    "github.com/staxpay/gateway/pkg/config"
    "github.com/staxpay/gateway/pkg/logger"
	"time"

	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
    logger.Module,
    config.Module,
    db.Module,
    chain.Module,
    server.Module,
    webhook.Module,
    payment.Module,
    refund.Module,
    statistics.Module,
    watcher.Module,
)

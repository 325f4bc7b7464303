package logger

import (
    "go.uber.org/fx"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"

    "github.com/staxpay/gateway/pkg/config"
)

func New(cfg *config.Config) (*zap.SugaredLogger, error) {
    zc := zap.NewProductionConfig()
    if cfg.Env == config.EnvDev {
        zc = zap.NewDevelopmentConfig()
    }
    // payment and delivery transitions are audit records, keep every line
    zc.Sampling = nil
    zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
    zc.EncoderConfig.TimeKey = "time"
    l, err := zc.Build()
    if err != nil {
        return nil, err
    }
    return l.Sugar(), nil
}

var Module = fx.Options(
    fx.Provide(New),
)

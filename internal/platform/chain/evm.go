package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/staxpay/gateway/pkg/config"
)

// EVMClient implements Client over any EVM-compatible JSON-RPC endpoint.
type EVMClient struct {
	rpc           *ethclient.Client
	explorerTxURL string
	log           *zap.SugaredLogger
}

func NewEVMClient(l *zap.SugaredLogger, cfg *cfgpkg.Config) (Client, error) {
	if cfg.Chain.RPCURL == "" {
		l.Error("chain RPC URL is empty")
		return nil, errors.New("chain rpc url is empty")
	}
	rpc, err := ethclient.Dial(cfg.Chain.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial chain rpc: %w", err)
	}
	l.Infow("chain client ready", "rpc_url", cfg.Chain.RPCURL)
	return &EVMClient{rpc: rpc, explorerTxURL: cfg.Chain.ExplorerTxURL, log: l}, nil
}

func (c *EVMClient) TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error) {
	r, err := c.rpc.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return &Receipt{}, nil
		}
		return nil, fmt.Errorf("failed to fetch receipt: %w", err)
	}
	out := &Receipt{
		BlockNumber: r.BlockNumber.Uint64(),
		BlockHash:   r.BlockHash.Hex(),
	}
	if r.Status == ethtypes.ReceiptStatusSuccessful {
		out.Confirmed = true
	} else {
		out.Failed = true
	}
	return out, nil
}

func (c *EVMClient) TransactionByHash(ctx context.Context, txHash string) (bool, bool, error) {
	_, pending, err := c.rpc.TransactionByHash(ctx, common.HexToHash(txHash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return true, pending, nil
}

func (c *EVMClient) BlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	h, err := c.rpc.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch block header: %w", err)
	}
	return time.Unix(int64(h.Time), 0).UTC(), nil
}

func (c *EVMClient) ExplorerLink(txHash string) string {
	return FormatExplorerLink(c.explorerTxURL, txHash)
}

// registerClose shuts the RPC connection down with the app.
func registerClose(lc fx.Lifecycle, l *zap.SugaredLogger, client Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if evm, ok := client.(*EVMClient); ok {
				l.Infow("closing chain rpc connection")
				evm.rpc.Close()
			}
			return nil
		},
	})
}

var Module = fx.Options(
	fx.Provide(NewEVMClient),
	fx.Invoke(registerClose),
)

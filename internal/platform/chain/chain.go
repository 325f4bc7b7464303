package chain

import (
	"context"
	"strings"
	"time"
)

// Receipt is the settled view of a transaction lookup. Confirmed and Failed
// are mutually exclusive; both false means the transaction is not mined yet.
type Receipt struct {
	Confirmed   bool   `json:"confirmed"`
	Failed      bool   `json:"failed"`
	BlockNumber uint64 `json:"block_number"`
	BlockHash   string `json:"block_hash"`
}

// Client is the read-only chain access the gateway needs. Lookups return an
// error only for transport or RPC faults; a transaction that is simply not
// mined yet yields a zero Receipt and no error.
type Client interface {
	TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error)
	// TransactionByHash reports whether the node knows the transaction at
	// all and whether it is still waiting in the mempool.
	TransactionByHash(ctx context.Context, txHash string) (found bool, pending bool, err error)
	BlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
	// ExplorerLink renders a human-facing URL for the transaction. Pure
	// string work, never a network call.
	ExplorerLink(txHash string) string
}

// FormatExplorerLink fills txHash into template. A template containing
// {hash} gets it substituted, otherwise the hash is appended.
func FormatExplorerLink(template, txHash string) string {
	if strings.Contains(template, "{hash}") {
		return strings.ReplaceAll(template, "{hash}", txHash)
	}
	return template + txHash
}

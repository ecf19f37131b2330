package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// RPC is the transport surface the decoder pipeline depends on. It is
// satisfied by *Client; tests satisfy it with an in-memory fake so the
// pipeline never needs a live node.
type RPC interface {
	GetTransactionByHash(ctx context.Context, txHash common.Hash) (*ethtypes.Transaction, bool, error)
	GetTransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

var _ RPC = (*Client)(nil)

// Package eth wraps go-ethereum's client with the retry policy and the
// eth_call memoization the decoder pipeline needs, while exposing only
// the three-method surface (tx by hash, receipt, call) spec §6 names as
// the decoder's RPC collaborator.
package eth

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog/log"

	"github.com/ethdecode/v3swap/internal/config"
)

// Client wraps the Ethereum client with retry logic and an eth_call cache.
type Client struct {
	client *ethclient.Client
	cfg    config.RPCConfig

	callCacheMu sync.Mutex
	callCache   map[callCacheKey][]byte
}

type callCacheKey struct {
	to    common.Address
	input string
	block string
}

// NewClient creates a new Ethereum client.
func NewClient(cfg config.RPCConfig) (*Client, error) {
	client, err := ethclient.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum node: %w", err)
	}

	return &Client{
		client:    client,
		cfg:       cfg,
		callCache: make(map[callCacheKey][]byte),
	}, nil
}

// Close closes the client connection.
func (c *Client) Close() {
	c.client.Close()
}

// GetTransactionByHash returns a transaction by hash, with retry. A nil
// transaction with a nil error means it was not found.
func (c *Client) GetTransactionByHash(ctx context.Context, txHash common.Hash) (*ethtypes.Transaction, bool, error) {
	var tx *ethtypes.Transaction
	var isPending bool
	var err error

	for i := 0; i < c.cfg.RetryAttempts; i++ {
		tx, isPending, err = c.client.TransactionByHash(ctx, txHash)
		if err == nil {
			return tx, isPending, nil
		}
		if err == ethereum.NotFound {
			return nil, false, nil
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("Failed to get transaction, retrying...")
		time.Sleep(c.cfg.RetryDelay)
	}

	return nil, false, fmt.Errorf("failed to get transaction after %d attempts: %w", c.cfg.RetryAttempts, err)
}

// GetTransactionReceipt returns the receipt of a transaction, with retry.
// A nil receipt with a nil error means the transaction is still pending.
func (c *Client) GetTransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	var receipt *ethtypes.Receipt
	var err error

	for i := 0; i < c.cfg.RetryAttempts; i++ {
		receipt, err = c.client.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if err == ethereum.NotFound {
			return nil, nil
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("Failed to get receipt, retrying...")
		time.Sleep(c.cfg.RetryDelay)
	}

	return nil, fmt.Errorf("failed to get receipt after %d attempts: %w", c.cfg.RetryAttempts, err)
}

// CallContract executes a contract call with retry, memoizing results by
// (to, input, block) for the lifetime of the Client.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	key := callCacheKey{input: string(msg.Data)}
	if msg.To != nil {
		key.to = *msg.To
	}
	if blockNumber != nil {
		key.block = blockNumber.String()
	} else {
		key.block = "latest"
	}

	c.callCacheMu.Lock()
	if cached, ok := c.callCache[key]; ok {
		c.callCacheMu.Unlock()
		return cached, nil
	}
	c.callCacheMu.Unlock()

	var result []byte
	var err error

	for i := 0; i < c.cfg.RetryAttempts; i++ {
		result, err = c.client.CallContract(ctx, msg, blockNumber)
		if err == nil {
			c.callCacheMu.Lock()
			c.callCache[key] = result
			c.callCacheMu.Unlock()
			return result, nil
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("Failed to call contract, retrying...")
		time.Sleep(c.cfg.RetryDelay)
	}

	return nil, fmt.Errorf("failed to call contract after %d attempts: %w", c.cfg.RetryAttempts, err)
}

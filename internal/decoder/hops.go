package decoder

import (
	"context"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ethdecode/v3swap/internal/eth"
	"github.com/ethdecode/v3swap/internal/output"
	"github.com/ethdecode/v3swap/pkg/types"
)

// swapEventSignature is event Swap(address indexed sender, address
// indexed recipient, int256 amount0, int256 amount1, uint160
// sqrtPriceX96, uint128 liquidity, int24 tick), computed rather than
// hardcoded to guarantee it matches go-ethereum's own Keccak256.
var swapEventSignature = crypto.Keccak256Hash([]byte(
	"Swap(address,address,int256,int256,uint160,uint128,int24)"))

const swapEventDataLen = 160 // amount0, amount1, sqrtPriceX96, liquidity, tick, 32 bytes each

// poolInfo is the cached token0/token1 pair of a V3 pool, fetched once
// per pool per decode.
type poolInfo struct {
	token0 common.Address
	token1 common.Address
}

// hopExtractor pulls Hops out of a receipt's logs, caching per-pool
// token0()/token1() lookups for the lifetime of a single decode.
type hopExtractor struct {
	rpc    eth.RPC
	cache  map[common.Address]poolInfo
	logger *output.Logger
}

func newHopExtractor(rpc eth.RPC, logger *output.Logger) *hopExtractor {
	return &hopExtractor{rpc: rpc, cache: make(map[common.Address]poolInfo), logger: logger}
}

// extractHops returns every Uniswap V3 Swap log in receipt as a Hop,
// sorted by log index. A log whose amount0/amount1 signs don't form a
// valid "exactly one token in, one token out" configuration is dropped
// rather than guessed at.
func (h *hopExtractor) extractHops(ctx context.Context, receipt *ethtypes.Receipt) ([]types.Hop, error) {
	var hops []types.Hop

	for _, lg := range receipt.Logs {
		if lg == nil || len(lg.Topics) == 0 || lg.Topics[0] != swapEventSignature {
			continue
		}
		hop, ok, err := h.decodeSwapLog(ctx, lg)
		if err != nil {
			return nil, err
		}
		if ok {
			hops = append(hops, hop)
		}
	}

	sort.Slice(hops, func(i, j int) bool { return hops[i].LogIndex < hops[j].LogIndex })

	return hops, nil
}

func (h *hopExtractor) decodeSwapLog(ctx context.Context, lg *ethtypes.Log) (types.Hop, bool, error) {
	if len(lg.Topics) < 3 || len(lg.Data) < swapEventDataLen {
		h.logger.LogDecodeWarning("dropped Swap log: malformed topics or data", nil)
		return types.Hop{}, false, nil
	}

	amount0 := signedFromWord(lg.Data[0:32])
	amount1 := signedFromWord(lg.Data[32:64])

	pool, err := h.poolInfo(ctx, lg.Address)
	if err != nil {
		return types.Hop{}, false, err
	}

	tokenIn, tokenOut, amountIn, amountOut, ok := swapDirection(amount0, amount1, pool)
	if !ok {
		h.logger.LogDecodeWarning("dropped Swap log: ambiguous amount0/amount1 signs", nil)
		return types.Hop{}, false, nil
	}

	return types.Hop{
		LogIndex:     lg.Index,
		Pool:         lg.Address,
		TokenIn:      tokenIn,
		TokenOut:     tokenOut,
		AmountInInt:  amountIn,
		AmountOutInt: amountOut,
	}, true, nil
}

// swapDirection converts the pool's signed amount0/amount1 (positive:
// token flowed into the pool; negative: token flowed out) into a single
// tokenIn/tokenOut/amountIn/amountOut hop. Exactly one of amount0,
// amount1 must be positive and the other negative; any other
// combination (both positive, both negative, either zero) isn't a
// sellable single-direction swap and is rejected.
func swapDirection(amount0, amount1 *big.Int, pool poolInfo) (tokenIn, tokenOut common.Address, amountIn, amountOut *big.Int, ok bool) {
	switch {
	case amount0.Sign() > 0 && amount1.Sign() < 0:
		return pool.token0, pool.token1, new(big.Int).Set(amount0), new(big.Int).Neg(amount1), true
	case amount1.Sign() > 0 && amount0.Sign() < 0:
		return pool.token1, pool.token0, new(big.Int).Set(amount1), new(big.Int).Neg(amount0), true
	default:
		return common.Address{}, common.Address{}, nil, nil, false
	}
}

func signedFromWord(word []byte) *big.Int {
	n := new(big.Int).SetBytes(word)
	if word[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), 256))
	}
	return n
}

func (h *hopExtractor) poolInfo(ctx context.Context, pool common.Address) (poolInfo, error) {
	if info, ok := h.cache[pool]; ok {
		h.logger.LogCacheHit("pool", pool)
		return info, nil
	}

	var token0, token1 common.Address
	err := eth.RunBounded(ctx, 2, 2, func(ctx context.Context, i int) error {
		var selector string
		if i == 0 {
			selector = "0dfe1681" // token0()
		} else {
			selector = "d21220a7" // token1()
		}
		result, err := h.rpc.CallContract(ctx, ethereum.CallMsg{
			To:   &pool,
			Data: common.Hex2Bytes(selector),
		}, nil)
		if err != nil {
			return err
		}
		if len(result) < 32 {
			return errRPC("pool token lookup", errShortResult)
		}
		addr := common.BytesToAddress(result[12:32])
		if i == 0 {
			token0 = addr
		} else {
			token1 = addr
		}
		return nil
	})
	if err != nil {
		return poolInfo{}, errRPC("failed to resolve pool tokens", err)
	}

	info := poolInfo{token0: token0, token1: token1}
	h.cache[pool] = info
	return info, nil
}

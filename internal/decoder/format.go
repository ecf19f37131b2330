package decoder

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/ethdecode/v3swap/internal/eth"
	"github.com/ethdecode/v3swap/internal/output"
)

const defaultDecimals = 18

// decimalsSelector is the function selector for decimals(), called on
// tokenIn/tokenOut to render their amounts at the right scale.
const decimalsSelector = "313ce567"

// formatter resolves and caches each token's decimals() once per
// decode, then renders raw integer amounts as trimmed decimal strings.
type formatter struct {
	rpc    eth.RPC
	cache  map[common.Address]uint8
	logger *output.Logger
}

func newFormatter(rpc eth.RPC, logger *output.Logger) *formatter {
	return &formatter{rpc: rpc, cache: make(map[common.Address]uint8), logger: logger}
}

func (f *formatter) decimals(ctx context.Context, token common.Address) uint8 {
	if d, ok := f.cache[token]; ok {
		f.logger.LogCacheHit("decimals", token)
		return d
	}

	result, err := f.rpc.CallContract(ctx, ethereum.CallMsg{
		To:   &token,
		Data: common.Hex2Bytes(decimalsSelector),
	}, nil)
	if err != nil || len(result) < 32 {
		f.cache[token] = defaultDecimals
		return defaultDecimals
	}

	d := uint8(new(big.Int).SetBytes(result).Uint64())
	f.cache[token] = d
	return d
}

// render converts amount, a non-negative integer in the token's
// smallest unit, into a decimal string at the given scale with
// trailing zeros and any trailing decimal point trimmed. Uses exact
// big.Int division/modulo rather than a floating type, since amounts
// can exceed float64's ~15 significant digits of precision long before
// they exceed big.Int's range.
func render(amount *big.Int, decimals uint8) string {
	if decimals == 0 {
		return amount.String()
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole := new(big.Int)
	frac := new(big.Int)
	whole.QuoRem(amount, scale, frac)

	fracStr := frac.String()
	if neg := frac.Sign() < 0; neg {
		fracStr = fracStr[1:]
	}
	for len(fracStr) < int(decimals) {
		fracStr = "0" + fracStr
	}

	end := len(fracStr)
	for end > 0 && fracStr[end-1] == '0' {
		end--
	}
	fracStr = fracStr[:end]

	if fracStr == "" {
		return whole.String()
	}
	return whole.String() + "." + fracStr
}

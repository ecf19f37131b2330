package decoder

import "github.com/ethereum/go-ethereum/common"

const (
	addressLen = common.AddressLength // 20
	feeLen     = 3
	hopLen     = feeLen + addressLen
)

// decodePath parses a Uniswap V3 packed path: token(20) || (fee(3) ||
// token(20))*, returning the token sequence with fee tiers discarded.
// A path shorter than one token, or with a malformed trailing hop, is
// truncated at the last complete token rather than rejected outright —
// callers treat fewer than 2 tokens as "no usable path".
func decodePath(path []byte) []common.Address {
	if len(path) < addressLen {
		return nil
	}

	tokens := []common.Address{common.BytesToAddress(path[:addressLen])}
	rest := path[addressLen:]

	for len(rest) >= hopLen {
		tok := common.BytesToAddress(rest[feeLen : feeLen+addressLen])
		tokens = append(tokens, tok)
		rest = rest[hopLen:]
	}

	return tokens
}

package decoder

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/ethdecode/v3swap/pkg/types"
)

// Universal Router command codes relevant to V3 swap reconstruction.
// The low 5 bits of a command byte select the command; the top 3 bits
// are flags (e.g. "allow revert") this decoder doesn't need.
const (
	urCmdV3SwapExactIn  = 0x00
	urCmdV3SwapExactOut = 0x01
	urCmdMask           = 0x1F
)

var urSwapArgs = flatArgs("address", "uint256", "uint256", "bytes", "bool")

// urSwap is one Universal Router V3 swap sub-command decoded out of the
// execute() command/input streams.
type urSwap struct {
	callType  types.CallType
	recipient common.Address
	path      []common.Address
}

// decodeUniversalRouterSwaps walks a Universal Router execute()
// command byte string alongside its parallel input array, returning one
// urSwap per V3 swap sub-command it can decode. A sub-command that
// isn't a V3 swap, or whose input fails to decode, is skipped — spec's
// "skipped silently" policy — rather than failing the whole call.
func decodeUniversalRouterSwaps(commands []byte, inputs [][]byte) []urSwap {
	var out []urSwap

	for i, cmdByte := range commands {
		if i >= len(inputs) {
			break
		}
		cmd := cmdByte & urCmdMask

		var callType types.CallType
		switch cmd {
		case urCmdV3SwapExactIn:
			callType = types.CallURExactIn
		case urCmdV3SwapExactOut:
			callType = types.CallURExactOut
		default:
			continue
		}

		swap, ok := decodeURSwapInput(inputs[i], callType)
		if !ok {
			continue
		}
		out = append(out, swap)
	}

	return out
}

func decodeURSwapInput(input []byte, callType types.CallType) (urSwap, bool) {
	values, err := urSwapArgs.UnpackValues(input)
	if err != nil {
		return urSwap{}, false
	}
	if len(values) != 5 {
		return urSwap{}, false
	}

	recipient, ok := values[0].(common.Address)
	if !ok {
		return urSwap{}, false
	}
	rawPath, ok := values[3].([]byte)
	if !ok {
		return urSwap{}, false
	}

	path := decodePath(rawPath)
	if len(path) < 2 {
		return urSwap{}, false
	}
	if callType == types.CallURExactOut {
		// V3_SWAP_EXACT_OUT encodes path output->input, same as the plain
		// exactOutput selector; reverse it so tokenIn/tokenOut and
		// PathTokens always read input-to-output.
		path = reverseAddresses(path)
	}

	return urSwap{callType: callType, recipient: recipient, path: path}, true
}

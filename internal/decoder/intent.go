package decoder

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/ethdecode/v3swap/pkg/types"
)

// urIdxMultiplier spaces a Universal Router sub-command's idx away from
// its parent execute() call's idx: parentIdx*urIdxMultiplier + i keeps
// sub-commands ordered relative to each other. For a parent at idx 0
// (execute() as the top-level call) the values are 0, 1, 2, ..., the
// same range top-level call idx values use.
const urIdxMultiplier = 10000

// buildIntents turns a flattened calldata walk into the ordered list of
// swap intents it declares, including Universal Router sub-commands.
func buildIntents(calls []*types.DecodedCall) []types.Intent {
	var intents []types.Intent

	for idx, call := range calls {
		switch call.Name {
		case "exactInputSingle", "exactOutputSingle":
			if in, ok := singleIntent(call, idx); ok {
				intents = append(intents, in)
			}
		case "exactInput", "exactOutput":
			if in, ok := pathIntent(call, idx); ok {
				intents = append(intents, in)
			}
		case "execute":
			intents = append(intents, executeIntents(call, idx)...)
		}
	}

	return intents
}

func singleIntent(call *types.DecodedCall, idx int) (types.Intent, bool) {
	tokenIn, ok := addressArg(call.Args, 0)
	if !ok {
		return types.Intent{}, false
	}
	tokenOut, ok := addressArg(call.Args, 1)
	if !ok {
		return types.Intent{}, false
	}
	recipient, ok := addressArg(call.Args, 3)
	if !ok {
		return types.Intent{}, false
	}

	callType := types.CallExactInputSingle
	if call.Name == "exactOutputSingle" {
		callType = types.CallExactOutputSingle
	}

	return types.Intent{
		Idx:        idx,
		CallType:   callType,
		TokenIn:    &tokenIn,
		TokenOut:   &tokenOut,
		Recipient:  &recipient,
		PathTokens: []common.Address{tokenIn, tokenOut},
	}, true
}

func pathIntent(call *types.DecodedCall, idx int) (types.Intent, bool) {
	rawPath, ok := bytesArg(call.Args, 0)
	if !ok {
		return types.Intent{}, false
	}
	recipient, ok := addressArg(call.Args, 1)
	if !ok {
		return types.Intent{}, false
	}

	path := decodePath(rawPath)
	if len(path) < 2 {
		return types.Intent{}, false
	}

	callType := types.CallExactInput
	tokenIn, tokenOut := path[0], path[len(path)-1]
	if call.Name == "exactOutput" {
		callType = types.CallExactOutput
		// exactOutput's path is encoded output->input; reverse it so
		// PathTokens always reads input-to-output like every other intent.
		path = reverseAddresses(path)
		tokenIn, tokenOut = path[0], path[len(path)-1]
	}

	return types.Intent{
		Idx:        idx,
		CallType:   callType,
		TokenIn:    &tokenIn,
		TokenOut:   &tokenOut,
		Recipient:  &recipient,
		PathTokens: path,
	}, true
}

func executeIntents(call *types.DecodedCall, parentIdx int) []types.Intent {
	commands, ok := bytesArg(call.Args, 0)
	if !ok {
		return nil
	}
	inputs, ok := bytesSliceArg(call.Args, 1)
	if !ok {
		return nil
	}

	swaps := decodeUniversalRouterSwaps(commands, inputs)
	intents := make([]types.Intent, 0, len(swaps))

	for i, s := range swaps {
		tokenIn, tokenOut := s.path[0], s.path[len(s.path)-1]
		recipient := s.recipient
		intents = append(intents, types.Intent{
			Idx:        parentIdx*urIdxMultiplier + i,
			CallType:   s.callType,
			TokenIn:    &tokenIn,
			TokenOut:   &tokenOut,
			Recipient:  &recipient,
			PathTokens: s.path,
		})
	}

	return intents
}

func reverseAddresses(in []common.Address) []common.Address {
	out := make([]common.Address, len(in))
	for i, a := range in {
		out[len(in)-1-i] = a
	}
	return out
}

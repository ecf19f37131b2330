package decoder

import "github.com/ethdecode/v3swap/pkg/types"

// maxWalkDepth bounds multicall recursion (spec §4.3): a well-formed
// router call is never nested this deep, so hitting the limit means
// either pathological calldata or a decode loop, and the walker simply
// stops descending rather than erroring the whole decode.
const maxWalkDepth = 6

// walkCalldata decodes top-level router calldata and recurses into any
// multicall batches it finds, returning every decoded call flattened
// parent-before-children in encounter order.
func walkCalldata(data []byte) []*types.DecodedCall {
	var out []*types.DecodedCall
	walk(data, 0, &out)
	return out
}

func walk(data []byte, depth int, out *[]*types.DecodedCall) {
	call, ok := decodeCall(data)
	if !ok {
		return
	}
	*out = append(*out, call)

	if depth >= maxWalkDepth {
		return
	}

	if batch, isBatch := multicallBatch(call); isBatch {
		for _, sub := range batch {
			walk(sub, depth+1, out)
		}
	}
}

// multicallBatch returns the inner calldata items of a multicall
// DecodedCall, in either of its two overload shapes.
func multicallBatch(call *types.DecodedCall) ([][]byte, bool) {
	if call.Name != "multicall" {
		return nil, false
	}
	switch len(call.Args) {
	case 1:
		batch, ok := bytesSliceArg(call.Args, 0)
		return batch, ok
	case 2:
		batch, ok := bytesSliceArg(call.Args, 1)
		return batch, ok
	default:
		return nil, false
	}
}

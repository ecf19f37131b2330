package decoder

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ethdecode/v3swap/pkg/types"
)

// decodeFunc turns raw ABI-encoded argument bytes (selector already
// stripped) into the flat argument list a DecodedCall carries.
type decodeFunc func(data []byte) ([]interface{}, error)

// candidate is one entry in the Selector Registry: a known function
// signature, its 4-byte selector, and how to decode its arguments.
type candidate struct {
	name     string
	sig      string
	selector [4]byte
	decode   decodeFunc
}

// registry maps a 4-byte selector to the candidates that could produce
// it. Collisions are vanishingly unlikely for the signatures here, but
// the registry still tries every candidate in order and keeps the first
// one whose decode succeeds, per spec's strict-decode guidance.
var registry = map[[4]byte][]*candidate{}

func mustSelector(sig string) [4]byte {
	hash := crypto.Keccak256Hash([]byte(sig))
	var sel [4]byte
	copy(sel[:], hash[:4])
	return sel
}

func register(name, sig string, decode decodeFunc) {
	c := &candidate{name: name, sig: sig, selector: mustSelector(sig), decode: decode}
	registry[c.selector] = append(registry[c.selector], c)
}

// flatArgs builds a plain (non-tuple) abi.Arguments value from a list of
// Solidity type strings, for calls whose top-level arguments are already
// flattened or are fully static structs, which ABI-encode identically to
// a flattened top-level argument list.
func flatArgs(solTypes ...string) abi.Arguments {
	args := make(abi.Arguments, len(solTypes))
	for i, t := range solTypes {
		typ, err := abi.NewType(t, "", nil)
		if err != nil {
			panic(fmt.Sprintf("selectors: bad type %q: %v", t, err))
		}
		args[i] = abi.Argument{Type: typ}
	}
	return args
}

func unpackFlat(args abi.Arguments) decodeFunc {
	return func(data []byte) ([]interface{}, error) {
		if err := checkExactLength(args, data); err != nil {
			return nil, err
		}
		return args.UnpackValues(data)
	}
}

// checkExactLength rejects inputs whose length doesn't match what a
// fully-static argument list expects, guarding against accepting
// calldata that only coincidentally decodes (spec's strict-decode
// requirement). Dynamic argument lists are left to UnpackValues, which
// already validates offsets and lengths.
func checkExactLength(args abi.Arguments, data []byte) error {
	for _, a := range args {
		if a.Type.T == abi.BytesTy || a.Type.T == abi.StringTy ||
			a.Type.T == abi.SliceTy || a.Type.T == abi.TupleTy {
			return nil // has a dynamic member; let UnpackValues validate
		}
	}
	expected := len(args) * 32
	if len(data) != expected {
		return fmt.Errorf("static arg list expects %d bytes, got %d", expected, len(data))
	}
	return nil
}

// tupleDecoder builds a decoder for a call whose single top-level
// argument is a struct containing a dynamic member (here always a
// "bytes path"), which must be decoded as a genuine ABI tuple rather
// than flattened: a struct with a dynamic member gets an extra leading
// offset word that a flattened decode would misinterpret as a field.
func tupleDecoder(fields ...abi.ArgumentMarshaling) decodeFunc {
	tupleType, err := abi.NewType("tuple", "", fields)
	if err != nil {
		panic(fmt.Sprintf("selectors: bad tuple type: %v", err))
	}
	args := abi.Arguments{{Type: tupleType}}

	return func(data []byte) ([]interface{}, error) {
		values, err := args.UnpackValues(data)
		if err != nil {
			return nil, err
		}
		if len(values) != 1 {
			return nil, fmt.Errorf("expected 1 tuple value, got %d", len(values))
		}
		return tupleFieldsInOrder(values[0], fields)
	}
}

// tupleFieldsInOrder extracts a decoded tuple's fields, in declaration
// order, from the anonymous struct go-ethereum's abi package generates
// for tuple types.
func tupleFieldsInOrder(tuple interface{}, fields []abi.ArgumentMarshaling) ([]interface{}, error) {
	v := reflect.ValueOf(tuple)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("decoded tuple is not a struct: %T", tuple)
	}

	out := make([]interface{}, len(fields))
	for i, f := range fields {
		fv := v.FieldByName(abiToCamel(f.Name))
		if !fv.IsValid() {
			return nil, fmt.Errorf("tuple missing field %q", f.Name)
		}
		out[i] = fv.Interface()
	}
	return out, nil
}

// abiToCamel mirrors go-ethereum's exported-field naming for generated
// tuple structs: capitalize the first letter, leave the rest untouched.
func abiToCamel(name string) string {
	if name == "" {
		return name
	}
	b := []byte(name)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] = b[0] - 'a' + 'A'
	}
	return string(b)
}

func tm(name, typ string) abi.ArgumentMarshaling {
	return abi.ArgumentMarshaling{Name: name, Type: typ}
}

func init() {
	// --- exactInputSingle / exactOutputSingle ---
	// Fully-static struct params: encode byte-identically to a flattened
	// top-level argument list, so a plain abi.Arguments decode works.

	register("exactInputSingle",
		"exactInputSingle((address,address,uint24,address,uint256,uint256,uint256,uint160))",
		unpackFlat(flatArgs("address", "address", "uint24", "address", "uint256", "uint256", "uint256", "uint160")))

	register("exactInputSingle", // SwapRouter02: no deadline field
		"exactInputSingle((address,address,uint24,address,uint256,uint256,uint160))",
		unpackFlat(flatArgs("address", "address", "uint24", "address", "uint256", "uint256", "uint160")))

	register("exactOutputSingle",
		"exactOutputSingle((address,address,uint24,address,uint256,uint256,uint256,uint160))",
		unpackFlat(flatArgs("address", "address", "uint24", "address", "uint256", "uint256", "uint256", "uint160")))

	register("exactOutputSingle", // SwapRouter02: no deadline field
		"exactOutputSingle((address,address,uint24,address,uint256,uint256,uint160))",
		unpackFlat(flatArgs("address", "address", "uint24", "address", "uint256", "uint256", "uint160")))

	// --- exactInput / exactOutput ---
	// Struct params with a "bytes path" member are dynamic: must decode
	// as a real ABI tuple.

	register("exactInput",
		"exactInput((bytes,address,uint256,uint256,uint256))",
		tupleDecoder(tm("path", "bytes"), tm("recipient", "address"), tm("deadline", "uint256"),
			tm("amountIn", "uint256"), tm("amountOutMinimum", "uint256")))

	register("exactInput", // SwapRouter02: no deadline field
		"exactInput((bytes,address,uint256,uint256))",
		tupleDecoder(tm("path", "bytes"), tm("recipient", "address"),
			tm("amountIn", "uint256"), tm("amountOutMinimum", "uint256")))

	register("exactOutput",
		"exactOutput((bytes,address,uint256,uint256,uint256))",
		tupleDecoder(tm("path", "bytes"), tm("recipient", "address"), tm("deadline", "uint256"),
			tm("amountOut", "uint256"), tm("amountInMaximum", "uint256")))

	register("exactOutput", // SwapRouter02: no deadline field
		"exactOutput((bytes,address,uint256,uint256))",
		tupleDecoder(tm("path", "bytes"), tm("recipient", "address"),
			tm("amountOut", "uint256"), tm("amountInMaximum", "uint256")))

	// --- multicall ---
	register("multicall", "multicall(bytes[])", unpackFlat(flatArgs("bytes[]")))
	register("multicall", "multicall(uint256,bytes[])", unpackFlat(flatArgs("uint256", "bytes[]")))

	// --- cleanup calls, relevant only to recipient resolution ---
	register("sweepToken", "sweepToken(address,uint256,address)",
		unpackFlat(flatArgs("address", "uint256", "address")))
	register("unwrapWETH9", "unwrapWETH9(uint256,address)",
		unpackFlat(flatArgs("uint256", "address")))
	register("refundETH", "refundETH()", unpackFlat(flatArgs()))

	// --- Universal Router entrypoint; command bytes decoded separately
	// in router.go ---
	register("execute", "execute(bytes,bytes[])", unpackFlat(flatArgs("bytes", "bytes[]")))
	register("execute", "execute(bytes,bytes[],uint256)", unpackFlat(flatArgs("bytes", "bytes[]", "uint256")))
}

// decodeCall looks up data's 4-byte selector in the registry and returns
// the first candidate whose decode succeeds. ok is false when the
// selector is unknown or every candidate for it fails to decode.
func decodeCall(data []byte) (*types.DecodedCall, bool) {
	if len(data) < 4 {
		return nil, false
	}
	var sel [4]byte
	copy(sel[:], data[:4])

	candidates, known := registry[sel]
	if !known {
		return nil, false
	}

	body := data[4:]
	for _, c := range candidates {
		args, err := c.decode(body)
		if err != nil {
			continue
		}
		return &types.DecodedCall{Name: c.name, Args: args, Raw: data}, true
	}
	return nil, false
}

// addressArg reads arg i out of a decoded call's Args as a common.Address.
func addressArg(args []interface{}, i int) (common.Address, bool) {
	if i < 0 || i >= len(args) {
		return common.Address{}, false
	}
	a, ok := args[i].(common.Address)
	return a, ok
}

// bigIntArg reads arg i out of a decoded call's Args as a *big.Int.
func bigIntArg(args []interface{}, i int) (*big.Int, bool) {
	if i < 0 || i >= len(args) {
		return nil, false
	}
	n, ok := args[i].(*big.Int)
	return n, ok
}

// bytesArg reads arg i out of a decoded call's Args as a []byte.
func bytesArg(args []interface{}, i int) ([]byte, bool) {
	if i < 0 || i >= len(args) {
		return nil, false
	}
	b, ok := args[i].([]byte)
	return b, ok
}

// bytesSliceArg reads arg i out of a decoded call's Args as a [][]byte
// (the multicall/execute "bytes[]" argument).
func bytesSliceArg(args []interface{}, i int) ([][]byte, bool) {
	if i < 0 || i >= len(args) {
		return nil, false
	}
	b, ok := args[i].([][]byte)
	return b, ok
}

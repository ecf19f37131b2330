package decoder

import (
	"errors"
	"fmt"
)

// errShortResult marks an eth_call response too short to contain the
// word-aligned value the caller expected.
var errShortResult = errors.New("response too short")

// ErrKind classifies why a Decode call failed, so callers (and the CLI's
// exit-code mapping) can distinguish "nothing to find" from "something
// broke".
type ErrKind int

const (
	// KindNotFound means the transaction or its receipt was not returned
	// (unknown hash, or a transaction still pending).
	KindNotFound ErrKind = iota
	// KindReverted means the transaction exists but its receipt status is 0.
	KindReverted
	// KindNotUniswapV3 means the receipt has no Uniswap V3 Swap logs.
	KindNotUniswapV3
	// KindUnselectable means Swap logs exist but no candidate sequence
	// could be built from them.
	KindUnselectable
	// KindRPCError wraps a transport/node failure (after retries).
	KindRPCError
	// KindInvalidInput means the caller supplied a malformed tx hash.
	KindInvalidInput
)

func (k ErrKind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindReverted:
		return "Reverted"
	case KindNotUniswapV3:
		return "NotUniswapV3"
	case KindUnselectable:
		return "Unselectable"
	case KindRPCError:
		return "RpcError"
	case KindInvalidInput:
		return "InvalidInput"
	default:
		return "Unknown"
	}
}

// Error is the typed error every exported decoder function returns on
// failure. Wrap an underlying cause with %w so errors.Is/errors.As over
// the cause still works.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func errNotFound(msg string) *Error {
	return newError(KindNotFound, msg, nil)
}

func errReverted(msg string) *Error {
	return newError(KindReverted, msg, nil)
}

func errNotUniswapV3(msg string) *Error {
	return newError(KindNotUniswapV3, msg, nil)
}

func errUnselectable(msg string) *Error {
	return newError(KindUnselectable, msg, nil)
}

func errRPC(msg string, err error) *Error {
	return newError(KindRPCError, msg, err)
}

func errInvalidInput(msg string) *Error {
	return newError(KindInvalidInput, msg, nil)
}

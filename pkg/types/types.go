// Package types holds the public data model shared across the decoder
// pipeline: the records produced while reconstructing a Uniswap V3 swap
// from a transaction's calldata and receipt logs.
package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CallType labels how an Intent was derived from calldata.
type CallType string

const (
	CallExactInputSingle  CallType = "exactInputSingle"
	CallExactOutputSingle CallType = "exactOutputSingle"
	CallExactInput        CallType = "exactInput"
	CallExactOutput       CallType = "exactOutput"
	CallURExactIn         CallType = "urExactIn"
	CallURExactOut        CallType = "urExactOut"
)

// DecodedCall is one decoded entry from the calldata walk: a top-level
// call or a multicall child, flattened parent-before-children.
type DecodedCall struct {
	Name string
	Args []interface{}
	Raw  []byte
}

// Intent is a swap declaration extracted from calldata. Idx orders
// intents within a transaction; Universal Router sub-commands use
// parentIdx*10000 + i, which orders sub-commands of one parent among
// themselves (for parentIdx 0 this is simply i).
type Intent struct {
	Idx        int
	CallType   CallType
	TokenIn    *common.Address
	TokenOut   *common.Address
	Recipient  *common.Address
	PathTokens []common.Address
}

// HasPath reports whether the intent carries a path of at least two
// tokens (one hop or more).
func (in *Intent) HasPath() bool {
	return in != nil && len(in.PathTokens) >= 2
}

// Empty reports whether the intent declares nothing usable for scoring.
func (in *Intent) Empty() bool {
	return in == nil || (in.TokenIn == nil && in.TokenOut == nil && len(in.PathTokens) == 0)
}

// Hop is one atomic pool swap reconstructed from a single Swap log.
// Amounts are non-negative integers in the token's smallest unit.
type Hop struct {
	LogIndex     uint
	Pool         common.Address
	TokenIn      common.Address
	TokenOut     common.Address
	AmountInInt  *big.Int
	AmountOutInt *big.Int
}

// CandidateSequence is a non-empty ordered list of hops satisfying the
// chain invariant: for i > 0, Hops[i].TokenIn == Hops[i-1].TokenOut.
type CandidateSequence struct {
	Hops []Hop
}

// TokenIn is the candidate's reported input token (its first hop's).
func (c CandidateSequence) TokenIn() common.Address {
	return c.Hops[0].TokenIn
}

// TokenOut is the candidate's reported output token (its last hop's).
func (c CandidateSequence) TokenOut() common.Address {
	return c.Hops[len(c.Hops)-1].TokenOut
}

// AmountIn is the candidate's reported input amount (its first hop's).
func (c CandidateSequence) AmountIn() *big.Int {
	return c.Hops[0].AmountInInt
}

// AmountOut is the candidate's reported output amount (its last hop's).
func (c CandidateSequence) AmountOut() *big.Int {
	return c.Hops[len(c.Hops)-1].AmountOutInt
}

// PathTokens returns the candidate's token sequence: tokenIn of every
// hop plus the final hop's tokenOut.
func (c CandidateSequence) PathTokens() []common.Address {
	tokens := make([]common.Address, 0, len(c.Hops)+1)
	for _, h := range c.Hops {
		tokens = append(tokens, h.TokenIn)
	}
	tokens = append(tokens, c.Hops[len(c.Hops)-1].TokenOut)
	return tokens
}

// Result is the canonical six-field swap record, plus optional debug data.
type Result struct {
	Sender    common.Address `json:"sender"`
	Recipient common.Address `json:"recipient"`
	TokenIn   common.Address `json:"tokenIn"`
	TokenOut  common.Address `json:"tokenOut"`
	AmountIn  string         `json:"amountIn"`
	AmountOut string         `json:"amountOut"`

	AllCandidates []CandidateSequence `json:"_allSwapCandidates,omitempty"`
	Selected      *SelectionDebug     `json:"_selected,omitempty"`
}

// SelectionDebug records why a particular (candidate, intent) pair won,
// surfaced only when the caller asks for return_all.
type SelectionDebug struct {
	Score                 int     `json:"score"`
	TieBreakerAmountInInt *big.Int `json:"tieBreakerAmountInInt"`
	IntentUsed            *Intent  `json:"intentUsed,omitempty"`
}

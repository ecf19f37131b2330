package decoder

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Hand-rolled ABI encoding helpers for building calldata fixtures
// without depending on abi.Pack (which this package otherwise never
// imports for encoding, only decoding).

func word32(b []byte) []byte {
	w := make([]byte, 32)
	copy(w[32-len(b):], b)
	return w
}

func wordUint(n int64) []byte {
	return word32(big.NewInt(n).Bytes())
}

func wordBigInt(n *big.Int) []byte {
	return word32(n.Bytes())
}

func wordAddress(a common.Address) []byte {
	return word32(a.Bytes())
}

// wordInt256 encodes a signed big.Int as a 32-byte two's-complement word.
func wordInt256(n *big.Int) []byte {
	if n.Sign() >= 0 {
		return word32(n.Bytes())
	}
	mod := new(big.Int).Lsh(big.NewInt(1), 256)
	twos := new(big.Int).Add(mod, n)
	return word32(twos.Bytes())
}

func wordBool(v bool) []byte {
	if v {
		return wordUint(1)
	}
	return wordUint(0)
}

func concatWords(words ...[]byte) []byte {
	var out []byte
	for _, w := range words {
		out = append(out, w...)
	}
	return out
}

// encodeBytes ABI-encodes a single dynamic "bytes" value's tail
// section: a length word followed by the data, right-padded to a
// 32-byte boundary.
func encodeBytes(b []byte) []byte {
	out := wordUint(int64(len(b)))
	padded := make([]byte, ((len(b)+31)/32)*32)
	copy(padded, b)
	return append(out, padded...)
}

// encodeBytesArray ABI-encodes a "bytes[]" value: a length word, one
// offset word per element (relative to the start of the offset
// section, just after the length word), then each element's
// encodeBytes tail in order.
func encodeBytesArray(items [][]byte) []byte {
	n := len(items)
	parts := make([][]byte, n)
	for i, it := range items {
		parts[i] = encodeBytes(it)
	}

	out := wordUint(int64(n))
	base := int64(n * 32)
	cum := int64(0)
	for i := 0; i < n; i++ {
		out = append(out, wordUint(base+cum)...)
		cum += int64(len(parts[i]))
	}
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// encodeTupleBytesFirst ABI-encodes a tuple whose first field is a
// dynamic "bytes" value and whose remaining fields are all static
// 32-byte words, matching exactInput/exactOutput's (path, ...) shape.
func encodeTupleBytesFirst(dyn []byte, staticWords ...[]byte) []byte {
	numFields := int64(1 + len(staticWords))
	head := wordUint(numFields * 32)
	for _, w := range staticWords {
		head = append(head, w...)
	}
	return append(head, encodeBytes(dyn)...)
}

// selectorOf returns the registered 4-byte selector for a signature
// registered in selectors.go, so tests can build calldata without
// duplicating keccak literals.
func selectorOf(sig string) []byte {
	sel := mustSelector(sig)
	return sel[:]
}

func packPath(tokens ...common.Address) []byte {
	fee := []byte{0x00, 0x0b, 0xb8} // 3000, arbitrary for tests
	var out []byte
	out = append(out, tokens[0].Bytes()...)
	for _, t := range tokens[1:] {
		out = append(out, fee...)
		out = append(out, t.Bytes()...)
	}
	return out
}

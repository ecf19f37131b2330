package decoder

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestDecodeCallExactInputSingleWithDeadline(t *testing.T) {
	tokenIn := common.HexToAddress("0x1111111111111111111111111111111111111111")
	tokenOut := common.HexToAddress("0x2222222222222222222222222222222222222222")
	recipient := common.HexToAddress("0x3333333333333333333333333333333333333333")

	body := concatWords(
		wordAddress(tokenIn),
		wordAddress(tokenOut),
		wordUint(3000),
		wordAddress(recipient),
		wordUint(1700000000),
		wordUint(1_000_000),
		wordUint(900_000),
		wordUint(0),
	)
	data := append(selectorOf("exactInputSingle((address,address,uint24,address,uint256,uint256,uint256,uint160))"), body...)

	call, ok := decodeCall(data)
	if !ok {
		t.Fatal("decodeCall failed to decode exactInputSingle")
	}
	if call.Name != "exactInputSingle" {
		t.Fatalf("call.Name = %q, want exactInputSingle", call.Name)
	}

	gotIn, ok := addressArg(call.Args, 0)
	if !ok || gotIn != tokenIn {
		t.Errorf("tokenIn = %v, want %v", gotIn, tokenIn)
	}
	gotOut, ok := addressArg(call.Args, 1)
	if !ok || gotOut != tokenOut {
		t.Errorf("tokenOut = %v, want %v", gotOut, tokenOut)
	}
	gotRecipient, ok := addressArg(call.Args, 3)
	if !ok || gotRecipient != recipient {
		t.Errorf("recipient = %v, want %v", gotRecipient, recipient)
	}
	amountIn, ok := bigIntArg(call.Args, 5)
	if !ok || amountIn.Cmp(big.NewInt(1_000_000)) != 0 {
		t.Errorf("amountIn = %v, want 1000000", amountIn)
	}
}

func TestDecodeCallExactInputSingleNoDeadlineVariant(t *testing.T) {
	tokenIn := common.HexToAddress("0x1111111111111111111111111111111111111111")
	tokenOut := common.HexToAddress("0x2222222222222222222222222222222222222222")
	recipient := common.HexToAddress("0x3333333333333333333333333333333333333333")

	body := concatWords(
		wordAddress(tokenIn),
		wordAddress(tokenOut),
		wordUint(500),
		wordAddress(recipient),
		wordUint(1_000_000),
		wordUint(900_000),
		wordUint(0),
	)
	data := append(selectorOf("exactInputSingle((address,address,uint24,address,uint256,uint256,uint160))"), body...)

	call, ok := decodeCall(data)
	if !ok {
		t.Fatal("decodeCall failed to decode no-deadline exactInputSingle")
	}
	recipientGot, ok := addressArg(call.Args, 3)
	if !ok || recipientGot != recipient {
		t.Errorf("recipient = %v, want %v", recipientGot, recipient)
	}
}

func TestDecodeCallExactInputDynamicPath(t *testing.T) {
	tokenA := common.HexToAddress("0x1111111111111111111111111111111111111111")
	tokenB := common.HexToAddress("0x2222222222222222222222222222222222222222")
	recipient := common.HexToAddress("0x3333333333333333333333333333333333333333")
	path := packPath(tokenA, tokenB)

	// The single dynamic tuple argument is reached through a leading
	// offset word (0x20) ahead of the tuple's own encoding.
	body := concatWords(wordUint(32), encodeTupleBytesFirst(path,
		wordAddress(recipient),
		wordUint(1700000000),
		wordUint(1_000_000),
		wordUint(900_000),
	))
	data := append(selectorOf("exactInput((bytes,address,uint256,uint256,uint256))"), body...)

	call, ok := decodeCall(data)
	if !ok {
		t.Fatal("decodeCall failed to decode exactInput")
	}
	if call.Name != "exactInput" {
		t.Fatalf("call.Name = %q, want exactInput", call.Name)
	}

	gotPath, ok := bytesArg(call.Args, 0)
	if !ok {
		t.Fatal("path arg missing or wrong type")
	}
	decoded := decodePath(gotPath)
	if len(decoded) != 2 || decoded[0] != tokenA || decoded[1] != tokenB {
		t.Fatalf("decoded path = %v, want [%v %v]", decoded, tokenA, tokenB)
	}

	gotRecipient, ok := addressArg(call.Args, 1)
	if !ok || gotRecipient != recipient {
		t.Errorf("recipient = %v, want %v", gotRecipient, recipient)
	}
}

func TestDecodeCallUnknownSelector(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02}
	if _, ok := decodeCall(data); ok {
		t.Fatal("decodeCall matched an unregistered selector")
	}
}

func TestDecodeCallRejectsWrongLengthStaticArgs(t *testing.T) {
	tokenIn := common.HexToAddress("0x1111111111111111111111111111111111111111")
	tokenOut := common.HexToAddress("0x2222222222222222222222222222222222222222")

	// Only 2 words of body where exactInputSingle (no-deadline) expects 7.
	body := concatWords(wordAddress(tokenIn), wordAddress(tokenOut))
	data := append(selectorOf("exactInputSingle((address,address,uint24,address,uint256,uint256,uint160))"), body...)

	if _, ok := decodeCall(data); ok {
		t.Fatal("decodeCall accepted undersized static argument list")
	}
}

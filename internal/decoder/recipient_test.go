package decoder

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethdecode/v3swap/pkg/types"
)

func TestResolveRecipientNoDeclared(t *testing.T) {
	sender := common.HexToAddress("0xAAAA111111111111111111111111111111111111")
	got := resolveRecipient(sender, nil, tokenB, nil)
	if got != sender {
		t.Fatalf("resolveRecipient(nil declared) = %v, want sender %v", got, sender)
	}
}

func TestResolveRecipientNonRouterIsFinalRegardlessOfHelpers(t *testing.T) {
	sender := common.HexToAddress("0xAAAA111111111111111111111111111111111111")
	declared := common.HexToAddress("0xBEEF111111111111111111111111111111111111")

	// A sweepToken call is present but must be ignored: the declared
	// recipient isn't a router, so it's used as-is (spec property 6).
	sweepRecipient := common.HexToAddress("0xC0FFEE1111111111111111111111111111111111")
	calls := []*types.DecodedCall{
		{Name: "sweepToken", Args: []interface{}{tokenB, nil, sweepRecipient}},
	}

	got := resolveRecipient(sender, &declared, tokenB, calls)
	if got != declared {
		t.Fatalf("resolveRecipient(non-router declared) = %v, want declared %v", got, declared)
	}
}

func TestResolveRecipientRouterWalksSweepToken(t *testing.T) {
	sender := common.HexToAddress("0xAAAA111111111111111111111111111111111111")
	router := common.HexToAddress("0xE592427A0AEce92De3Edee1F18E0157C05861564") // SwapRouter
	finalRecipient := common.HexToAddress("0xC0FFEE1111111111111111111111111111111111")

	calls := []*types.DecodedCall{
		{Name: "sweepToken", Args: []interface{}{tokenB, nil, finalRecipient}},
	}

	got := resolveRecipient(sender, &router, tokenB, calls)
	if got != finalRecipient {
		t.Fatalf("resolveRecipient(router + sweepToken) = %v, want %v", got, finalRecipient)
	}
}

func TestResolveRecipientSweepTokenIgnoredWhenTokenMismatch(t *testing.T) {
	sender := common.HexToAddress("0xAAAA111111111111111111111111111111111111")
	router := common.HexToAddress("0xE592427A0AEce92De3Edee1F18E0157C05861564")
	otherRecipient := common.HexToAddress("0xC0FFEE1111111111111111111111111111111111")

	calls := []*types.DecodedCall{
		{Name: "sweepToken", Args: []interface{}{tokenC, nil, otherRecipient}}, // sweeps a different token
	}

	got := resolveRecipient(sender, &router, tokenB, calls)
	if got != router {
		t.Fatalf("resolveRecipient(mismatched sweepToken) = %v, want unchanged %v", got, router)
	}
}

func TestResolveRecipientLastWriteWins(t *testing.T) {
	sender := common.HexToAddress("0xAAAA111111111111111111111111111111111111")
	router := common.HexToAddress("0xE592427A0AEce92De3Edee1F18E0157C05861564")
	first := common.HexToAddress("0x1111111111111111111111111111111111111199")
	second := common.HexToAddress("0x2222222222222222222222222222222222222288")

	calls := []*types.DecodedCall{
		{Name: "unwrapWETH9", Args: []interface{}{nil, first}},
		{Name: "unwrapWETH9", Args: []interface{}{nil, second}},
	}

	got := resolveRecipient(sender, &router, tokenB, calls)
	if got != second {
		t.Fatalf("resolveRecipient(last write wins) = %v, want %v", got, second)
	}
}

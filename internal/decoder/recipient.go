package decoder

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/ethdecode/v3swap/pkg/types"
)

// Known router contract addresses (mainnet) whose calldata may declare
// themselves as the swap recipient, pending a payout helper naming the
// real final destination.
var routerAddresses = map[common.Address]struct{}{
	common.HexToAddress("0xE592427A0AEce92De3Edee1F18E0157C05861564"): {}, // SwapRouter
	common.HexToAddress("0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45"): {}, // SwapRouter02
	common.HexToAddress("0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD"): {}, // Universal Router v1
	common.HexToAddress("0xEf1c6E67703c7BD7107eed8303Fbe6EC2554BF6B"): {}, // Universal Router v1.2/v2
	common.HexToAddress("0x66a9893cC07D91D95644AEDD05D03f95e1dBA8Af"): {}, // Universal Router v2 (02)
}

// resolveRecipient implements the recipient resolution algorithm: a
// declared recipient that names a known router is a placeholder, not
// the user, so any sweepToken call for the winning tokenOut, and any
// unwrapWETH9 call regardless of token, overrides it, last write wins.
// A non-router recipient is used as-is; an unset one falls back to
// sender.
func resolveRecipient(sender common.Address, declared *common.Address, tokenOut common.Address, calls []*types.DecodedCall) common.Address {
	if declared == nil {
		return sender
	}
	if !isRouterAddress(*declared) {
		return *declared
	}

	final := *declared
	for _, call := range calls {
		switch call.Name {
		case "sweepToken":
			token, ok := addressArg(call.Args, 0)
			if !ok {
				continue
			}
			rec, ok := addressArg(call.Args, 2)
			if !ok {
				continue
			}
			if token == tokenOut {
				final = rec
			}
		case "unwrapWETH9":
			rec, ok := addressArg(call.Args, 1)
			if !ok {
				continue
			}
			final = rec
		}
	}

	return final
}

func isRouterAddress(addr common.Address) bool {
	_, ok := routerAddresses[addr]
	return ok
}

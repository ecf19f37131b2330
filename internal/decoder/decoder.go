// Package decoder reconstructs the logical Uniswap V3 swap a
// transaction performed: which token moved in, which moved out, how
// much of each, and who ultimately received the output.
package decoder

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/sync/errgroup"

	"github.com/ethdecode/v3swap/internal/config"
	"github.com/ethdecode/v3swap/internal/eth"
	"github.com/ethdecode/v3swap/internal/output"
	"github.com/ethdecode/v3swap/pkg/types"
)

// Decoder wires the pipeline stages together behind one entrypoint.
type Decoder struct {
	cfg    config.DecodeConfig
	logger *output.Logger
}

// New constructs a Decoder whose candidate chains are bounded by
// cfg.MaxChainLength; cfg's other fields are not read. Diagnostics go through a Logger writing to
// whatever global zerolog sink output.NewLogger configured; a decoder
// constructed before that call still logs safely, just unconfigured.
func New(cfg config.DecodeConfig) *Decoder {
	return &Decoder{cfg: cfg, logger: &output.Logger{}}
}

// Decode reconstructs the swap performed by txHash. With returnAll,
// the Result additionally carries every candidate sequence considered
// and which one was selected and why.
func (d *Decoder) Decode(ctx context.Context, rpc eth.RPC, txHash string, returnAll bool) (*types.Result, error) {
	hash, err := parseTxHash(txHash)
	if err != nil {
		return nil, err
	}

	tx, receipt, err := fetchTxAndReceipt(ctx, rpc, hash)
	if err != nil {
		return nil, err
	}
	if tx == nil || receipt == nil {
		return nil, errNotFound("transaction not found")
	}
	if receipt.Status == ethtypes.ReceiptStatusFailed {
		return nil, errReverted("transaction reverted")
	}

	sender, err := txSender(tx)
	if err != nil {
		return nil, errRPC("failed to recover sender", err)
	}

	calls := walkCalldata(tx.Data())
	intents := buildIntents(calls)

	hops, err := newHopExtractor(rpc, d.logger).extractHops(ctx, receipt)
	if err != nil {
		return nil, err
	}
	if len(hops) == 0 {
		return nil, errNotUniswapV3("no Uniswap V3 Swap logs in receipt")
	}

	candidates := enumerateCandidates(hops, d.cfg.MaxChainLength)
	d.logger.LogCandidates(hash, len(candidates), len(intents))

	sel, ok := selectBest(candidates, intents)
	if !ok {
		return nil, errUnselectable("no viable swap candidate")
	}
	d.logger.LogSelection(hash, sel.score)

	var declaredRecipient *common.Address
	if sel.intent != nil {
		declaredRecipient = sel.intent.Recipient
	}
	recipient := resolveRecipient(sender, declaredRecipient, sel.candidate.TokenOut(), calls)

	fmtr := newFormatter(rpc, d.logger)
	amountIn := render(sel.candidate.AmountIn(), fmtr.decimals(ctx, sel.candidate.TokenIn()))
	amountOut := render(sel.candidate.AmountOut(), fmtr.decimals(ctx, sel.candidate.TokenOut()))

	result := &types.Result{
		Sender:    sender,
		Recipient: recipient,
		TokenIn:   sel.candidate.TokenIn(),
		TokenOut:  sel.candidate.TokenOut(),
		AmountIn:  amountIn,
		AmountOut: amountOut,
	}

	if returnAll {
		result.AllCandidates = candidates
		result.Selected = &types.SelectionDebug{
			Score:                 sel.score,
			TieBreakerAmountInInt: sel.candidate.AmountIn(),
			IntentUsed:            sel.intent,
		}
	}

	return result, nil
}

func parseTxHash(s string) (common.Hash, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	if len(trimmed) != 64 {
		return common.Hash{}, errInvalidInput("transaction hash must be 32 bytes hex-encoded")
	}
	for _, c := range trimmed {
		if !isHexDigit(c) {
			return common.Hash{}, errInvalidInput("transaction hash is not valid hex")
		}
	}
	return common.HexToHash(s), nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// fetchTxAndReceipt issues the transaction and receipt lookups
// concurrently, per the concurrency model.
func fetchTxAndReceipt(ctx context.Context, rpc eth.RPC, hash common.Hash) (*ethtypes.Transaction, *ethtypes.Receipt, error) {
	var tx *ethtypes.Transaction
	var receipt *ethtypes.Receipt

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, _, err := rpc.GetTransactionByHash(gctx, hash)
		tx = t
		return err
	})
	g.Go(func() error {
		r, err := rpc.GetTransactionReceipt(gctx, hash)
		receipt = r
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, errRPC("failed to fetch transaction", err)
	}

	return tx, receipt, nil
}

func txSender(tx *ethtypes.Transaction) (common.Address, error) {
	signer := ethtypes.LatestSignerForChainID(tx.ChainId())
	return ethtypes.Sender(signer, tx)
}

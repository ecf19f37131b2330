package decoder

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethdecode/v3swap/pkg/types"
)

// selection is the winning (intent, candidate) pair plus the score that
// won it, carried through to recipient resolution and the debug output.
type selection struct {
	candidate types.CandidateSequence
	intent    *types.Intent // nil when no intent was used
	score     int
}

// selectBest maximizes (score, amountIn) over the intent × candidate
// product; with no usable intents, it maximizes candidates alone
// against the null intent. Ties break on the larger amountInInt, which
// favors the primary trade over dust/rounding hops.
func selectBest(candidates []types.CandidateSequence, intents []types.Intent) (selection, bool) {
	if len(candidates) == 0 {
		return selection{}, false
	}

	var best selection
	haveBest := false

	consider := func(cand types.CandidateSequence, intent *types.Intent) {
		s := scorePair(cand, intent)
		if !haveBest || betterThan(s, cand.AmountIn(), best.score, best.candidate.AmountIn()) {
			best = selection{candidate: cand, intent: intent, score: s}
			haveBest = true
		}
	}

	if len(intents) == 0 {
		for _, cand := range candidates {
			consider(cand, nil)
		}
		return best, haveBest
	}

	for _, cand := range candidates {
		for i := range intents {
			consider(cand, &intents[i])
		}
	}

	return best, haveBest
}

func betterThan(score int, amountIn *big.Int, bestScore int, bestAmountIn *big.Int) bool {
	if score != bestScore {
		return score > bestScore
	}
	return amountIn.Cmp(bestAmountIn) > 0
}

// scorePair scores one (candidate, intent) pair per the spec's
// lexicographic rules. intent == nil means "no intent", scoring 0.
func scorePair(cand types.CandidateSequence, intent *types.Intent) int {
	if intent.Empty() {
		return 0
	}

	score := 0

	if intent.TokenIn != nil && addrEqual(*intent.TokenIn, cand.TokenIn()) {
		score += 10
	}
	if intent.TokenOut != nil && addrEqual(*intent.TokenOut, cand.TokenOut()) {
		score += 10
	}

	if intent.HasPath() {
		path := cand.PathTokens()
		switch {
		case addrSliceEqual(path, intent.PathTokens):
			score += 100
		case addrSliceEqual(path, reverseAddresses(intent.PathTokens)):
			score += 80
		}

		if len(cand.Hops) == len(intent.PathTokens)-1 {
			score += 15
		} else {
			score -= 5
		}
	}

	return score
}

func addrEqual(a, b common.Address) bool {
	return a == b
}

func addrSliceEqual(a, b []common.Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package decoder

import "github.com/ethdecode/v3swap/pkg/types"

// maxChainLen bounds candidate chain extension (spec §4.6 / §3's
// MAX_CHAIN): a legitimate multi-hop V3 route rarely exceeds a handful
// of pools, so a longer chain is treated as a decode anomaly rather
// than followed indefinitely. Overridable via config.DecodeConfig.
const maxChainLen = 8

// enumerateCandidates builds every candidate swap sequence out of a
// transaction's hops: starting from each hop, greedily extend forward
// while the next hop's tokenIn matches the current chain's tokenOut,
// emitting every prefix (not just the maximal chain) since an intent
// may legitimately describe a shorter sub-route. The first non-matching
// hop ends the chain, so parallel independent swaps in the same
// transaction fall out as separate candidates. Adapted from the token-flow continuity check used
// to detect cyclic arbitrage routes, repurposed from cycle detection
// into forward chain enumeration.
func enumerateCandidates(hops []types.Hop, maxChain int) []types.CandidateSequence {
	if maxChain <= 0 {
		maxChain = maxChainLen
	}

	var candidates []types.CandidateSequence

	for start := range hops {
		chain := []types.Hop{hops[start]}
		candidates = append(candidates, types.CandidateSequence{Hops: append([]types.Hop(nil), chain...)})

		for next := start + 1; next < len(hops) && len(chain) < maxChain; next++ {
			if hops[next].TokenIn != chain[len(chain)-1].TokenOut {
				break
			}
			chain = append(chain, hops[next])
			candidates = append(candidates, types.CandidateSequence{Hops: append([]types.Hop(nil), chain...)})
		}
	}

	return candidates
}

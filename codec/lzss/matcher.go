/*
DESCRIPTION
  matcher.go implements the Matcher (spec.md §4.4): a pure function of
  (ring, source window) to an optional (offset, length), driven by an
  explicit Config. The safety predicate — the only correctness-
  guaranteeing check — lives in Ring.ApplyReference via Ring.Clone, kept
  deliberately as the single place that simulates the interleaved copy.
*/

package lzss

import "math"

// Config is the Matcher's tunable configuration surface (spec.md §4.4.2).
type Config struct {
	// SearchCap bounds how many dictionary offsets are probed per
	// position. Default/zero value means "probe all of RingSize".
	SearchCap int

	// MinMatch is the minimum safe length a candidate must reach before
	// it is preferred over literals. The wire format cannot represent
	// lengths below WireMinMatch regardless of this setting; MinMatch is
	// clamped up to WireMinMatch if set lower.
	MinMatch int

	// LiteralBias, in [0,1]: if > 0, a best match whose length is at
	// most ceil(LiteralBias * MaxMatch) is rejected in favour of a
	// literal: a fidelity-for-size tradeoff.
	LiteralBias float64

	// SafetyStrict, if true, rejects any candidate with circular
	// distance d < length (no self-extending runs at all). If false
	// (default), self-extending runs are allowed provided the simulated
	// copy verifies equal to the source window.
	SafetyStrict bool

	// AllLiteral forces every op to a literal, disabling the matcher
	// entirely. This is the historical "emergency mode" of spec.md §9,
	// kept as an explicit option so a known-correct baseline exists for
	// bisecting a matcher regression.
	AllLiteral bool
}

// DefaultConfig returns the safe defaults of spec.md §4.4.2's table.
func DefaultConfig() Config {
	return Config{
		SearchCap:    RingSize,
		MinMatch:     WireMinMatch,
		LiteralBias:  0,
		SafetyStrict: false,
	}
}

func (c Config) normalized() Config {
	if c.SearchCap <= 0 || c.SearchCap > RingSize {
		c.SearchCap = RingSize
	}
	if c.MinMatch < WireMinMatch {
		c.MinMatch = WireMinMatch
	}
	if c.LiteralBias < 0 {
		c.LiteralBias = 0
	}
	if c.LiteralBias > 1 {
		c.LiteralBias = 1
	}
	return c
}

// Matcher chooses between literal and reference emission for a greedy
// LZSS encoder (no lazy one-step lookahead; spec.md §4.4.2 explicitly
// does not require it).
type Matcher struct {
	cfg Config
}

// NewMatcher returns a Matcher with cfg's defaults filled in and clamped
// to wire-legal ranges.
func NewMatcher(cfg Config) *Matcher {
	return &Matcher{cfg: cfg.normalized()}
}

// Find returns the best safe (offset, length) match for src against
// ring's current state, or found=false if no safe candidate reaches the
// configured minimum length (the caller should emit a literal instead).
//
// Tie-break rules (spec.md §4.4.2): prefer the longest safe length;
// among equal lengths, prefer the smallest circular distance.
func (m *Matcher) Find(ring *Ring, src []byte) (offset, length int, found bool) {
	if len(src) < m.cfg.MinMatch {
		return 0, 0, false
	}

	bestLen, bestOffset, bestDist := 0, 0, RingSize

	for o := 0; o < m.cfg.SearchCap; o++ {
		d := ring.Distance(o)
		if d == 0 {
			continue // forbidden: the self-reference hazard of §4.4.1.
		}

		maxLen := MaxMatch
		if m.cfg.SafetyStrict && d < maxLen {
			maxLen = d
		}
		if maxLen > len(src) {
			maxLen = len(src)
		}
		if maxLen < m.cfg.MinMatch {
			continue
		}

		produced, err := ring.Clone().ApplyReference(o, maxLen)
		if err != nil {
			continue // shouldn't happen given the d==0 check above; be defensive.
		}

		l := 0
		for l < maxLen && produced[l] == src[l] {
			l++
		}
		if l < m.cfg.MinMatch {
			continue
		}
		if l > bestLen || (l == bestLen && d < bestDist) {
			bestLen, bestOffset, bestDist = l, o, d
		}
	}

	if bestLen < m.cfg.MinMatch {
		return 0, 0, false
	}
	if m.cfg.LiteralBias > 0 {
		threshold := int(math.Ceil(m.cfg.LiteralBias * float64(MaxMatch)))
		if bestLen <= threshold {
			return 0, 0, false
		}
	}
	return bestOffset, bestLen, true
}

// Package detect estimates how machine-like a text reads by asking the model
// itself. Its answers are heuristic.
package detect

import "strings"

const (
	VerdictHuman = "Human"
	VerdictMixed = "Mixed"
	VerdictAI    = "AI-Generated"
)

// Result is the outcome of a check. Score runs from 0 (human) to 100 (AI).
type Result struct {
	Score    int    `json:"score"`
	Verdict  string `json:"verdict"`
	Analysis string `json:"analysis"`
}

var (
	inconclusive = Result{Score: 50, Verdict: VerdictMixed, Analysis: "Analysis inconclusive."}
	unavailable  = Result{Score: 0, Verdict: VerdictHuman, Analysis: "Service unavailable."}
)

// Band groups scores for display.
type Band int

const (
	BandHuman Band = iota
	BandMixed
	BandAI
)

// BandFor maps a score to its band: below 30 human, below 70 mixed.
func BandFor(score int) Band {
	switch {
	case score < 30:
		return BandHuman
	case score < 70:
		return BandMixed
	default:
		return BandAI
	}
}

func (b Band) String() string {
	switch b {
	case BandHuman:
		return VerdictHuman
	case BandMixed:
		return VerdictMixed
	default:
		return VerdictAI
	}
}

// Band returns the band of r.Score.
func (r Result) Band() Band {
	return BandFor(r.Score)
}

func normalizeVerdict(v string, score int) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "human":
		return VerdictHuman
	case "mixed":
		return VerdictMixed
	case "ai", "ai-generated", "ai generated":
		return VerdictAI
	case "":
		return VerdictHuman
	default:
		return BandFor(score).String()
	}
}

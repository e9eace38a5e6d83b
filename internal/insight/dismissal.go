package insight

import "github.com/avandermeer/wellspring/internal/model"

const (
	// HighDismissalRateThreshold is the rolling dismissal rate above which
	// (strictly) a burnout-risk flag is raised.
	HighDismissalRateThreshold = 0.6

	// MinDismissalsForFlag keeps tiny samples from flagging: three
	// dismissals out of four sessions is a signal, two out of three is
	// noise.
	MinDismissalsForFlag = 3
)

// DismissalSummary is the rolling dismissal picture for one owner.
type DismissalSummary struct {
	TotalSessions int     `json:"total_sessions"`
	Dismissed     int     `json:"dismissed"`
	Rate          float64 `json:"rate"`
	Flagged       bool    `json:"flagged"`
}

// AnalyzeDismissals computes the dismissal rate over the given responded
// sessions (callers pass the last seven days) and decides whether the
// high-dismissal flag should be active. The rate boundary is exclusive:
// exactly 0.6 does not flag.
func AnalyzeDismissals(sessions []model.AdviceSession) DismissalSummary {
	var total, dismissed int
	for _, s := range sessions {
		if s.Response == nil {
			continue
		}
		total++
		if s.Response.Action == model.ActionDismissed {
			dismissed++
		}
	}

	rate := 0.0
	if total > 0 {
		rate = float64(dismissed) / float64(total)
	}

	return DismissalSummary{
		TotalSessions: total,
		Dismissed:     dismissed,
		Rate:          rate,
		Flagged:       rate > HighDismissalRateThreshold && dismissed >= MinDismissalsForFlag,
	}
}

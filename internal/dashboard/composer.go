// Package dashboard composes the individual analyzers into the read model
// served to clients and applies their side effects (streak recompute, flag
// raise/clear, analysis append) when sessions are responded to.
package dashboard

import (
	"log/slog"
	"time"

	"github.com/avandermeer/wellspring/internal/hub"
	"github.com/avandermeer/wellspring/internal/insight"
	"github.com/avandermeer/wellspring/internal/model"
	"github.com/avandermeer/wellspring/internal/store"
)

const (
	// profileMaxAge is how long a stored circadian profile is reused
	// before the next read regenerates it.
	profileMaxAge = 7 * 24 * time.Hour

	// trendHistoryDays is how many life scores feed the dashboard's
	// wellness trend.
	trendHistoryDays = 14

	// metricHistoryDays is how many metric samples feed the circadian and
	// emotional analyzers.
	metricHistoryDays = 30

	dismissalWindow = 7 * 24 * time.Hour
)

// Stores bundles the per-record stores the composer reads and writes.
type Stores struct {
	Metrics  *store.MetricStore
	Scores   *store.LifeScoreStore
	Sessions *store.SessionStore
	Streaks  *store.StreakStore
	Profiles *store.ProfileStore
	Analyses *store.AnalysisStore
	Flags    *store.FlagStore
}

// Dashboard is the composed read model. Degraded is set when any analyzer
// fell back to defaults because its inputs were missing or unreadable.
type Dashboard struct {
	OwnerID     int64                       `json:"owner_id"`
	GeneratedAt time.Time                   `json:"generated_at"`
	LifeScore   model.LifeScore             `json:"life_score"`
	Trend       insight.Direction           `json:"wellness_trend"`
	Completions insight.CompletionStats     `json:"completion_stats"`
	Streak      insight.StreakCounts        `json:"streak"`
	Profile     model.CircadianProfile      `json:"circadian_profile"`
	Emotional   insight.EmotionalAssessment `json:"emotional_state"`
	Flags       []model.WellnessFlag        `json:"active_flags"`
	Degraded    bool                        `json:"degraded"`
}

type Composer struct {
	stores   Stores
	hub      *hub.Hub
	classify insight.Classifier
	logger   *slog.Logger
}

func NewComposer(stores Stores, h *hub.Hub, classify insight.Classifier, logger *slog.Logger) *Composer {
	if classify == nil {
		classify = insight.RuleClassifier
	}
	return &Composer{
		stores:   stores,
		hub:      h,
		classify: classify,
		logger:   logger.With("component", "dashboard"),
	}
}

// RecordMetric stores the day's metrics and derives the day's life score.
func (c *Composer) RecordMetric(m model.DailyMetric) (*model.DailyMetric, *model.LifeScore, error) {
	saved, err := c.stores.Metrics.Upsert(m)
	if err != nil {
		return nil, nil, err
	}

	score, err := c.stores.Scores.Upsert(insight.ComputeLifeScore(*saved))
	if err != nil {
		return nil, nil, err
	}
	return saved, score, nil
}

// RecordResponse applies a session response and its downstream effects:
// streak recompute on completion, dismissal re-evaluation on every applied
// response. Replaying a response is a no-op past the store write, so the
// derived records cannot drift.
func (c *Composer) RecordResponse(ownerID int64, sessionID string, resp model.SessionResponse) (*model.AdviceSession, error) {
	session, applied, err := c.stores.Sessions.SetResponse(ownerID, sessionID, resp)
	if err != nil {
		return nil, err
	}
	if session == nil || !applied {
		return session, nil
	}

	now := resp.RespondedAt
	if resp.Action == model.ActionCompleted {
		if err := c.recomputeStreak(ownerID, now); err != nil {
			c.logger.Error("recompute streak", "owner", ownerID, "error", err)
		}
	}
	if err := c.evaluateDismissals(ownerID, now); err != nil {
		c.logger.Error("evaluate dismissals", "owner", ownerID, "error", err)
	}
	return session, nil
}

// recomputeStreak rebuilds the completion streak from the full completion
// history and stores it.
func (c *Composer) recomputeStreak(ownerID int64, now time.Time) error {
	times, err := c.stores.Sessions.CompletionTimes(ownerID)
	if err != nil {
		return err
	}
	counts := insight.Streaks(times, now)

	streak, err := c.stores.Streaks.Upsert(model.Streak{
		OwnerID:      ownerID,
		Type:         model.StreakTypeDailyCompletions,
		Current:      counts.Current,
		Best:         counts.Best,
		LastActivity: now,
	})
	if err != nil {
		return err
	}

	c.hub.Broadcast(hub.NewSignal(hub.KindStreakUpdated, ownerID, map[string]any{
		"current": streak.Current,
		"best":    streak.Best,
	}))
	return nil
}

// evaluateDismissals recomputes the 7-day dismissal rate and raises or
// clears the high-dismissal flag accordingly.
func (c *Composer) evaluateDismissals(ownerID int64, now time.Time) error {
	sessions, err := c.stores.Sessions.ListRespondedSince(ownerID, now.Add(-dismissalWindow))
	if err != nil {
		return err
	}
	summary := insight.AnalyzeDismissals(sessions)

	if summary.Flagged {
		flag, err := c.stores.Flags.Upsert(model.WellnessFlag{
			OwnerID: ownerID,
			Type:    model.FlagTypeHighDismissalRate,
			Value:   summary.Rate,
			Metadata: map[string]any{
				"total_sessions": summary.TotalSessions,
				"dismissed":      summary.Dismissed,
			},
		})
		if err != nil {
			return err
		}
		c.hub.Broadcast(hub.NewSignal(hub.KindFlagRaised, ownerID, map[string]any{
			"flag_type": flag.Type,
			"value":     flag.Value,
		}))
		return nil
	}

	removed, err := c.stores.Flags.Delete(ownerID, model.FlagTypeHighDismissalRate)
	if err != nil {
		return err
	}
	if removed {
		c.hub.Broadcast(hub.NewSignal(hub.KindFlagCleared, ownerID, map[string]any{
			"flag_type": model.FlagTypeHighDismissalRate,
		}))
	}
	return nil
}

// CircadianProfile returns the owner's profile, regenerating it when the
// stored one is older than seven days or force is set. Force goes through
// the same generation path as a stale read.
func (c *Composer) CircadianProfile(ownerID int64, now time.Time, force bool) (*model.CircadianProfile, error) {
	if force {
		if err := c.stores.Profiles.MarkStale(ownerID, now.Add(-profileMaxAge)); err != nil {
			return nil, err
		}
	}

	existing, err := c.stores.Profiles.Get(ownerID)
	if err != nil {
		return nil, err
	}
	if existing != nil && now.Sub(existing.UpdatedAt) < profileMaxAge {
		return existing, nil
	}

	metrics, err := c.stores.Metrics.ListRecent(ownerID, metricHistoryDays)
	if err != nil {
		return nil, err
	}
	built := insight.BuildProfile(ownerID, metrics, now)

	saved, err := c.stores.Profiles.Upsert(built)
	if err != nil {
		return nil, err
	}

	c.hub.Broadcast(hub.NewSignal(hub.KindProfileRegenerated, ownerID, map[string]any{
		"chronotype": saved.Chronotype,
		"confidence": saved.Confidence,
	}))
	return saved, nil
}

// Dashboard composes the full read model for one owner. A failing analyzer
// never fails the request: its slot gets defaults and Degraded is set.
func (c *Composer) Dashboard(ownerID int64, now time.Time) (*Dashboard, error) {
	d := &Dashboard{OwnerID: ownerID, GeneratedAt: now}

	score, err := c.stores.Scores.Latest(ownerID)
	hasScore := err == nil && score != nil
	if hasScore {
		d.LifeScore = *score
	} else {
		if err != nil {
			c.logger.Error("latest life score", "owner", ownerID, "error", err)
		}
		d.LifeScore = insight.DefaultLifeScore(ownerID, now)
		d.Degraded = true
	}

	d.Trend = c.wellnessTrend(ownerID)

	times, err := c.stores.Sessions.CompletionTimes(ownerID)
	if err != nil {
		c.logger.Error("completion times", "owner", ownerID, "error", err)
		d.Degraded = true
	}
	d.Completions = insight.AggregateCompletions(times, now)

	if streak, err := c.stores.Streaks.Get(ownerID, model.StreakTypeDailyCompletions); err != nil {
		c.logger.Error("get streak", "owner", ownerID, "error", err)
		d.Degraded = true
	} else if streak != nil {
		d.Streak = insight.StreakCounts{Current: streak.Current, Best: streak.Best}
	}

	profile, err := c.CircadianProfile(ownerID, now, false)
	if err != nil {
		c.logger.Error("circadian profile", "owner", ownerID, "error", err)
		p := insight.DefaultProfile(ownerID, now)
		profile = &p
		d.Degraded = true
	}
	d.Profile = *profile
	if profile.Confidence <= insight.DefaultProfileConfidence {
		d.Degraded = true
	}

	metrics, err := c.stores.Metrics.ListRecent(ownerID, 7)
	if err != nil {
		c.logger.Error("list metrics", "owner", ownerID, "error", err)
		d.Degraded = true
	}
	if len(metrics) == 0 {
		d.Degraded = true
	}
	d.Emotional = insight.ClassifyEmotionalState(metrics, d.LifeScore, hasScore, c.classify, now)
	c.appendAnalysis(ownerID, d.Emotional, now)

	if flags, err := c.stores.Flags.ListByOwner(ownerID); err != nil {
		c.logger.Error("list flags", "owner", ownerID, "error", err)
		d.Degraded = true
	} else {
		d.Flags = flags
	}

	return d, nil
}

// wellnessTrend derives the long-term trend from the life-score history,
// oldest first.
func (c *Composer) wellnessTrend(ownerID int64) insight.Direction {
	scores, err := c.stores.Scores.ListRecent(ownerID, trendHistoryDays)
	if err != nil {
		c.logger.Error("list life scores", "owner", ownerID, "error", err)
		return insight.Stable
	}

	points := make([]insight.Point, 0, len(scores))
	for i := len(scores) - 1; i >= 0; i-- {
		points = append(points, insight.Point{At: scores[i].Date, Value: scores[i].Overall})
	}
	return insight.Trend(points, insight.WellnessTrendThreshold)
}

// appendAnalysis records the classification as an audit row and announces
// it. Persistence failures are logged, not surfaced; the dashboard already
// holds the assessment.
func (c *Composer) appendAnalysis(ownerID int64, a insight.EmotionalAssessment, now time.Time) {
	_, err := c.stores.Analyses.Append(model.EmotionalAnalysis{
		OwnerID:    ownerID,
		State:      a.State,
		Confidence: a.Confidence,
		Factors:    a.Factors,
		Trend:      string(a.Trend),
		Immediate:  a.Immediate,
		Preventive: a.Preventive,
		AnalyzedAt: now,
	})
	if err != nil {
		c.logger.Error("append analysis", "owner", ownerID, "error", err)
		return
	}
	c.hub.Broadcast(hub.NewSignal(hub.KindAnalysisRecorded, ownerID, map[string]any{
		"state": a.State,
	}))
}

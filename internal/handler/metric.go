package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/avandermeer/wellspring/internal/dashboard"
	"github.com/avandermeer/wellspring/internal/model"
	"github.com/avandermeer/wellspring/internal/store"
)

const (
	defaultMetricDays = 30
	maxMetricDays     = 365
)

type MetricHandler struct {
	composer *dashboard.Composer
	metrics  *store.MetricStore
	logger   *slog.Logger
}

func NewMetricHandler(c *dashboard.Composer, ms *store.MetricStore, logger *slog.Logger) *MetricHandler {
	return &MetricHandler{composer: c, metrics: ms, logger: logger}
}

type metricRequest struct {
	OwnerID        int64   `json:"owner_id"`
	Date           string  `json:"date"`
	SleepHours     float64 `json:"sleep_hours"`
	Steps          int     `json:"steps"`
	Mood           int     `json:"mood"`
	Stress         int     `json:"stress"`
	Energy         int     `json:"energy"`
	HeartRate      int     `json:"heart_rate"`
	BedtimeMinutes *int    `json:"bedtime_minutes"`
	Source         string  `json:"source"`
}

func (req *metricRequest) validate() string {
	if req.OwnerID <= 0 {
		return "owner_id is required"
	}
	if req.Mood < 1 || req.Mood > 5 {
		return "mood must be 1-5"
	}
	if req.Stress < 1 || req.Stress > 5 {
		return "stress must be 1-5"
	}
	if req.Energy < 1 || req.Energy > 5 {
		return "energy must be 1-5"
	}
	if req.SleepHours < 0 || req.SleepHours > 24 {
		return "sleep_hours must be 0-24"
	}
	if req.Steps < 0 {
		return "steps must be >= 0"
	}
	if req.HeartRate < 0 {
		return "heart_rate must be >= 0"
	}
	if req.BedtimeMinutes != nil && (*req.BedtimeMinutes < 0 || *req.BedtimeMinutes >= 24*60) {
		return "bedtime_minutes must be 0-1439"
	}
	return ""
}

// Create upserts the day's metrics and returns the derived life score
// alongside the stored record.
func (h *MetricHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req metricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	source := req.Source
	if source == "" {
		source = "manual"
	}

	metric, score, err := h.composer.RecordMetric(model.DailyMetric{
		OwnerID:        req.OwnerID,
		Date:           date,
		SleepHours:     req.SleepHours,
		Steps:          req.Steps,
		Mood:           req.Mood,
		Stress:         req.Stress,
		Energy:         req.Energy,
		HeartRate:      req.HeartRate,
		BedtimeMinutes: req.BedtimeMinutes,
		Source:         source,
	})
	if err != nil {
		h.logger.Error("record metric", "owner", req.OwnerID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record metric")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"metric":     metric,
		"life_score": score,
	})
}

// List returns the owner's recent metrics, newest first.
func (h *MetricHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerParam(r)
	if err != nil || ownerID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid owner")
		return
	}

	days := defaultMetricDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		if n > maxMetricDays {
			n = maxMetricDays
		}
		days = n
	}

	metrics, err := h.metrics.ListRecent(ownerID, days)
	if err != nil {
		h.logger.Error("list metrics", "owner", ownerID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list metrics")
		return
	}
	if metrics == nil {
		metrics = []model.DailyMetric{}
	}
	writeJSON(w, http.StatusOK, metrics)
}

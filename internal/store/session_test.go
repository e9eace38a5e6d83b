package store

import (
	"testing"
	"time"

	"github.com/avandermeer/wellspring/internal/model"
)

func TestSessionCreateAndGet(t *testing.T) {
	ss := NewSessionStore(setupTestDB(t))

	sess, err := ss.Create(1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected generated id")
	}
	if sess.Response != nil {
		t.Errorf("new session has response: %+v", sess.Response)
	}

	got, err := ss.GetByID(1, sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != sess.ID {
		t.Fatalf("get returned %+v", got)
	}

	// Wrong owner cannot see the session.
	got, err = ss.GetByID(2, sess.ID)
	if err != nil {
		t.Fatalf("get wrong owner: %v", err)
	}
	if got != nil {
		t.Errorf("session leaked across owners: %+v", got)
	}
}

func TestSessionFirstResponseWins(t *testing.T) {
	ss := NewSessionStore(setupTestDB(t))
	sess, err := ss.Create(1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)
	rating := 4
	first := model.SessionResponse{Action: model.ActionCompleted, RespondedAt: now, Rating: &rating}

	got, applied, err := ss.SetResponse(1, sess.ID, first)
	if err != nil {
		t.Fatalf("set response: %v", err)
	}
	if !applied {
		t.Fatal("first response not applied")
	}
	if got.Response == nil || got.Response.Action != model.ActionCompleted {
		t.Fatalf("response not stored: %+v", got.Response)
	}
	if got.Response.Rating == nil || *got.Response.Rating != 4 {
		t.Errorf("rating = %v, want 4", got.Response.Rating)
	}

	// A second response must not overwrite the first.
	second := model.SessionResponse{Action: model.ActionDismissed, RespondedAt: now.Add(time.Minute)}
	got, applied, err = ss.SetResponse(1, sess.ID, second)
	if err != nil {
		t.Fatalf("second set response: %v", err)
	}
	if applied {
		t.Error("second response reported as applied")
	}
	if got.Response.Action != model.ActionCompleted {
		t.Errorf("response overwritten: %q", got.Response.Action)
	}
}

func TestSessionReplayedResponseIsIdempotent(t *testing.T) {
	ss := NewSessionStore(setupTestDB(t))
	sess, err := ss.Create(1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)
	resp := model.SessionResponse{Action: model.ActionCompleted, RespondedAt: now, CompletedAt: &now}

	first, _, err := ss.SetResponse(1, sess.ID, resp)
	if err != nil {
		t.Fatalf("set response: %v", err)
	}
	replay, applied, err := ss.SetResponse(1, sess.ID, resp)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if applied {
		t.Error("replay reported as applied")
	}
	if !replay.Response.RespondedAt.Equal(first.Response.RespondedAt) {
		t.Errorf("replay changed responded_at: %v != %v", replay.Response.RespondedAt, first.Response.RespondedAt)
	}
}

func TestSessionCompletionTimes(t *testing.T) {
	ss := NewSessionStore(setupTestDB(t))
	now := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)
	completedAt := now.Add(-2 * time.Hour)

	// Completed with explicit completion time.
	a, _ := ss.Create(1)
	if _, _, err := ss.SetResponse(1, a.ID, model.SessionResponse{
		Action: model.ActionCompleted, RespondedAt: now, CompletedAt: &completedAt,
	}); err != nil {
		t.Fatalf("respond a: %v", err)
	}
	// Completed without one; falls back to responded_at.
	b, _ := ss.Create(1)
	if _, _, err := ss.SetResponse(1, b.ID, model.SessionResponse{
		Action: model.ActionCompleted, RespondedAt: now.Add(time.Minute),
	}); err != nil {
		t.Fatalf("respond b: %v", err)
	}
	// Dismissed sessions are excluded.
	c, _ := ss.Create(1)
	if _, _, err := ss.SetResponse(1, c.ID, model.SessionResponse{
		Action: model.ActionDismissed, RespondedAt: now,
	}); err != nil {
		t.Fatalf("respond c: %v", err)
	}

	times, err := ss.CompletionTimes(1)
	if err != nil {
		t.Fatalf("completion times: %v", err)
	}
	if len(times) != 2 {
		t.Fatalf("expected 2 completion times, got %d", len(times))
	}
	found := false
	for _, tm := range times {
		if tm.Equal(completedAt) {
			found = true
		}
	}
	if !found {
		t.Errorf("explicit completed_at not preferred: %v", times)
	}
}

func TestSessionListRespondedSince(t *testing.T) {
	ss := NewSessionStore(setupTestDB(t))
	now := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)

	old, _ := ss.Create(1)
	if _, _, err := ss.SetResponse(1, old.ID, model.SessionResponse{
		Action: model.ActionDismissed, RespondedAt: now.AddDate(0, 0, -40),
	}); err != nil {
		t.Fatalf("respond old: %v", err)
	}
	recent, _ := ss.Create(1)
	if _, _, err := ss.SetResponse(1, recent.ID, model.SessionResponse{
		Action: model.ActionSnoozed, RespondedAt: now.AddDate(0, 0, -1),
	}); err != nil {
		t.Fatalf("respond recent: %v", err)
	}
	// Unanswered sessions never appear.
	if _, err := ss.Create(1); err != nil {
		t.Fatalf("create unanswered: %v", err)
	}

	list, err := ss.ListRespondedSince(1, now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != recent.ID {
		t.Fatalf("expected only the recent session, got %d rows", len(list))
	}
}

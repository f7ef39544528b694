package summaries_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/handler/http/summaries"
	"newsbrief/internal/repository"
	summaryUC "newsbrief/internal/usecase/summary"
)

type stubLogRepo struct {
	total      int64
	bySource   []repository.SummarySourceCount
	err        error
	lastWindow time.Duration
}

func (s *stubLogRepo) Insert(_ context.Context, _ *entity.SummaryLog) error { return nil }

func (s *stubLogRepo) CountBySource(_ context.Context, since time.Time) ([]repository.SummarySourceCount, error) {
	s.lastWindow = time.Since(since).Round(time.Hour)
	return s.bySource, s.err
}

func (s *stubLogRepo) CountSince(_ context.Context, _ time.Time) (int64, error) {
	return s.total, s.err
}

func statsService(repo *stubLogRepo) *summaryUC.Service {
	return summaryUC.NewService(nil, nil, nil, repo, summaryUC.DefaultConfig())
}

func TestStatsHandler_Success(t *testing.T) {
	repo := &stubLogRepo{
		total: 12,
		bySource: []repository.SummarySourceCount{
			{Source: entity.SummaryGenerated, Count: 8},
			{Source: entity.SummaryDescription, Count: 3},
			{Source: entity.SummaryPlaceholder, Count: 1},
		},
	}
	handler := summaries.StatsHandler{Svc: statsService(repo)}

	req := httptest.NewRequest(http.MethodGet, "/summaries/stats", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		WindowHours int   `json:"window_hours"`
		Total       int64 `json:"total"`
		BySource    []struct {
			Source string `json:"source"`
			Count  int64  `json:"count"`
		} `json:"by_source"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.WindowHours != 24 {
		t.Errorf("WindowHours = %d, want 24", resp.WindowHours)
	}
	if resp.Total != 12 {
		t.Errorf("Total = %d, want 12", resp.Total)
	}
	if len(resp.BySource) != 3 {
		t.Fatalf("BySource count = %d, want 3", len(resp.BySource))
	}
	if resp.BySource[0].Source != "generated" || resp.BySource[0].Count != 8 {
		t.Errorf("BySource[0] = %+v", resp.BySource[0])
	}
}

func TestStatsHandler_CustomWindow(t *testing.T) {
	repo := &stubLogRepo{total: 3}
	handler := summaries.StatsHandler{Svc: statsService(repo)}

	req := httptest.NewRequest(http.MethodGet, "/summaries/stats?hours=72", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		WindowHours int `json:"window_hours"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.WindowHours != 72 {
		t.Errorf("WindowHours = %d, want 72", resp.WindowHours)
	}
}

func TestStatsHandler_WindowCap(t *testing.T) {
	repo := &stubLogRepo{}
	handler := summaries.StatsHandler{Svc: statsService(repo)}

	// 10000 hours is beyond the 30 day cap.
	req := httptest.NewRequest(http.MethodGet, "/summaries/stats?hours=10000", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		WindowHours int `json:"window_hours"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.WindowHours != 720 {
		t.Errorf("WindowHours = %d, want 720", resp.WindowHours)
	}
}

func TestStatsHandler_InvalidHours(t *testing.T) {
	tests := []string{"abc", "-5", "0"}

	for _, hours := range tests {
		t.Run(hours, func(t *testing.T) {
			handler := summaries.StatsHandler{Svc: statsService(&stubLogRepo{})}

			req := httptest.NewRequest(http.MethodGet, "/summaries/stats?hours="+hours, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestStatsHandler_RepoError(t *testing.T) {
	handler := summaries.StatsHandler{Svc: statsService(&stubLogRepo{err: errors.New("db down")})}

	req := httptest.NewRequest(http.MethodGet, "/summaries/stats", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

package summaries

import (
	"time"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/repository"
	summaryUC "newsbrief/internal/usecase/summary"
)

type summaryRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
}

type summaryResponse struct {
	URLHash    string `json:"url_hash"`
	Summary    string `json:"summary"`
	Source     string `json:"source"`
	IsFallback bool   `json:"is_fallback"`
}

type sourceCountDTO struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

type statsResponse struct {
	WindowHours int              `json:"window_hours"`
	Total       int64            `json:"total"`
	BySource    []sourceCountDTO `json:"by_source"`
	GeneratedAt string           `json:"generated_at"`
}

func toSummaryResponse(urlHash string, s *entity.Summary) summaryResponse {
	return summaryResponse{
		URLHash:    urlHash,
		Summary:    s.Text,
		Source:     string(s.Source),
		IsFallback: s.IsFallback,
	}
}

func toStatsResponse(window time.Duration, total int64, bySource []repository.SummarySourceCount) statsResponse {
	counts := make([]sourceCountDTO, 0, len(bySource))
	for _, c := range bySource {
		counts = append(counts, sourceCountDTO{
			Source: string(c.Source),
			Count:  c.Count,
		})
	}
	return statsResponse{
		WindowHours: int(window.Hours()),
		Total:       total,
		BySource:    counts,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func toRequest(req summaryRequest, userID string) summaryUC.Request {
	return summaryUC.Request{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		UserID:      userID,
	}
}

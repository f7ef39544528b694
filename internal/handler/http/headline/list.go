// Package headline provides handlers for browsing provider headlines.
package headline

import (
	"errors"
	"net/http"
	"time"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/handler/http/respond"
	"newsbrief/internal/infra/provider"
	headlinesUC "newsbrief/internal/usecase/headlines"
)

type articleDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Source      string `json:"source,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
	Category    string `json:"category,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

type listResponse struct {
	Articles []articleDTO `json:"articles"`
	Count    int          `json:"count"`
}

func toListResponse(articles []entity.Article) listResponse {
	dtos := make([]articleDTO, 0, len(articles))
	for _, a := range articles {
		dto := articleDTO{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			ImageURL:    a.ImageURL,
			Source:      a.Source,
			SourceURL:   a.SourceURL,
			Category:    a.Category,
		}
		if !a.PublishedAt.IsZero() {
			dto.PublishedAt = a.PublishedAt.UTC().Format(time.RFC3339)
		}
		dtos = append(dtos, dto)
	}
	return listResponse{Articles: dtos, Count: len(dtos)}
}

// ListHandler serves GET /headlines.
//
// Without parameters it lists top headlines in the default category. A
// ?category= parameter selects a provider category, and a ?q= parameter
// switches to keyword search. Responses come from the headline cache when
// fresh, so repeated reads do not spend provider quota.
type ListHandler struct{ Svc *headlinesUC.Service }

// ServeHTTP lists current headlines.
//
// @Summary      List headlines
// @Description  Top headlines by category, or keyword search results when q is given.
// @Tags         headlines
// @Produce      json
// @Param        category query string false "Provider category (default: general)"
// @Param        q query string false "Search keywords"
// @Success      200 {object} listResponse
// @Failure      400 {string} string "Bad request - unknown category"
// @Failure      503 {string} string "Provider daily quota exhausted"
// @Router       /headlines [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var (
		articles []entity.Article
		err      error
	)

	if query := r.URL.Query().Get("q"); query != "" {
		articles, err = h.Svc.Search(r.Context(), query)
	} else {
		category := r.URL.Query().Get("category")
		if category == "" {
			category = "general"
		}
		articles, err = h.Svc.Top(r.Context(), category)
	}

	if err != nil {
		switch {
		case errors.Is(err, headlinesUC.ErrInvalidCategory), errors.Is(err, headlinesUC.ErrEmptyQuery):
			respond.SafeError(w, http.StatusBadRequest, err)
		case errors.Is(err, provider.ErrQuotaExceeded):
			respond.SafeError(w, http.StatusServiceUnavailable, err)
		default:
			respond.SafeError(w, http.StatusBadGateway, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, toListResponse(articles))
}

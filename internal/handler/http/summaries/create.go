package summaries

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsbrief/internal/handler/http/auth"
	"newsbrief/internal/handler/http/respond"
	summaryUC "newsbrief/internal/usecase/summary"
)

// CreateHandler serves POST /summaries.
//
// It accepts an article reference (URL plus whatever metadata the client has)
// and responds with a summary. The response always carries a summary text:
// when extraction is not possible the service degrades to the provider
// description or a static placeholder instead of failing.
type CreateHandler struct{ Svc *summaryUC.Service }

// ServeHTTP summarizes the referenced article.
//
// @Summary      Summarize an article
// @Description  Returns an extractive summary for the given article URL.
// @Tags         summaries
// @Accept       json
// @Produce      json
// @Param        article body summaryRequest true "Article reference"
// @Success      200 {object} summaryResponse
// @Failure      400 {string} string "Bad request - missing or invalid article URL"
// @Router       /summaries [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.URL == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("url is required"))
		return
	}

	result, err := h.Svc.Summarize(r.Context(), toRequest(req, auth.UserFromContext(r.Context())))
	if err != nil {
		if errors.Is(err, summaryUC.ErrInvalidArticleURL) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSummaryResponse(summaryUC.Fingerprint(req.URL), result))
}

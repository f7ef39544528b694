package summaries

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"newsbrief/internal/handler/http/respond"
	summaryUC "newsbrief/internal/usecase/summary"
)

const (
	defaultStatsWindow = 24 * time.Hour
	maxStatsWindow     = 30 * 24 * time.Hour
)

// StatsHandler serves GET /summaries/stats.
//
// It reports how many summaries were served in the requested window, broken
// down by how each one was produced. The window defaults to 24 hours and is
// adjustable with the ?hours= query parameter.
type StatsHandler struct{ Svc *summaryUC.Service }

// ServeHTTP reports summary serving statistics.
//
// @Summary      Summary statistics
// @Description  Counts of served summaries per production source over a time window.
// @Tags         summaries
// @Produce      json
// @Param        hours query int false "Window size in hours (default 24, max 720)"
// @Success      200 {object} statsResponse
// @Failure      400 {string} string "Bad request - invalid hours parameter"
// @Router       /summaries/stats [get]
func (h StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	window := defaultStatsWindow
	if hoursParam := r.URL.Query().Get("hours"); hoursParam != "" {
		hours, err := strconv.Atoi(hoursParam)
		if err != nil || hours <= 0 {
			respond.SafeError(w, http.StatusBadRequest, errors.New("hours must be a positive integer"))
			return
		}
		window = time.Duration(hours) * time.Hour
		if window > maxStatsWindow {
			window = maxStatsWindow
		}
	}

	total, bySource, err := h.Svc.Stats(r.Context(), window)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, toStatsResponse(window, total, bySource))
}

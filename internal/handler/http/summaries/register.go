package summaries

import (
	"net/http"

	"newsbrief/internal/handler/http/auth"
	summaryUC "newsbrief/internal/usecase/summary"
)

// Register registers the summary HTTP handlers with the given mux.
// The create route goes through the identity middleware so logged-in readers
// get their summary activity attributed; anonymous requests pass through.
// Stats expose usage data and therefore require a valid token.
func Register(mux *http.ServeMux, svc *summaryUC.Service) {
	mux.Handle("POST /summaries", auth.Identify(CreateHandler{svc}))
	mux.Handle("GET  /summaries/stats", auth.Identify(auth.RequireUser(StatsHandler{svc})))
}

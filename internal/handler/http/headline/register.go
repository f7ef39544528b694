package headline

import (
	"net/http"

	headlinesUC "newsbrief/internal/usecase/headlines"
)

// Register registers the headline HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *headlinesUC.Service) {
	mux.Handle("GET /headlines", ListHandler{svc})
}

package dashboard

import (
	"net/http"

	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Dashboard+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.Dashboard+routepath.RestPattern, h.WriteNotFound)
}

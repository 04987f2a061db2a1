package ubicaciones

import (
	"net/http"

	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodGet+" "+routepath.Ubicaciones+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.MunicipioOptions, h.handleMunicipioOptions)
	mux.HandleFunc(http.MethodGet+" "+routepath.Ubicaciones+routepath.RestPattern, h.WriteNotFound)
}

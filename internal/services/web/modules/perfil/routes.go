package perfil

import (
	"net/http"

	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodGet+" "+routepath.Perfil+"{$}", h.handleShow)
	mux.HandleFunc(http.MethodGet+" "+routepath.PerfilEdit, h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.PerfilEdit, h.handleUpdate)
	mux.HandleFunc(routepath.Perfil+routepath.RestPattern, h.WriteNotFound)
}

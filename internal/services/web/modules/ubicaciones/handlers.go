package ubicaciones

import (
	"bytes"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/platform/listing"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/httpx"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	municipios crud.Lister[domain.Municipio]
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	httpx.WriteRedirect(w, r, routepath.Departamentos)
}

// handleMunicipioOptions renders the option elements of the municipios in
// the requested departamento. No departamento yields only the placeholder.
func (h handlers) handleMunicipioOptions(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(w, r)
	departamento, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get("departamento")), 10, 64)
	if err != nil || departamento <= 0 {
		departamento = 0
	}
	options := []webtemplates.SelectOption{}
	if departamento > 0 && h.municipios != nil {
		items, err := h.municipios.List(r.Context())
		if err != nil {
			h.WriteError(w, r, err)
			return
		}
		sort.SliceStable(items, func(i, j int) bool {
			return listing.Fold(items[i].Nombre) < listing.Fold(items[j].Nombre)
		})
		for _, item := range items {
			if item.Departamento == departamento {
				options = append(options, webtemplates.SelectOption{Value: strconv.FormatInt(item.ID, 10), Label: item.Nombre})
			}
		}
	}
	var buf bytes.Buffer
	if err := webtemplates.Options(webtemplates.T(loc, "core.form.choose"), options).Render(r.Context(), &buf); err != nil {
		h.WriteError(w, r, err)
		return
	}
	_ = httpx.WriteHTML(w, http.StatusOK, buf.String())
}

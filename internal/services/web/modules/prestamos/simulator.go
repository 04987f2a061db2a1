package prestamos

import (
	"bytes"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/nominaweb/nominaweb/internal/domain"
	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/httpx"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/weberror"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

// simulator computes loan schedules without touching the backend.
type simulator struct {
	modulehandler.Base
}

type simulation struct {
	monto float64
	tasa  float64
	plazo int
}

func (s simulator) show(w http.ResponseWriter, r *http.Request) {
	loc, _ := s.PageLocalizer(w, r)
	s.render(w, r, loc, http.StatusOK, simulatorFields(loc, simulation{}), nil, nil)
}

func (s simulator) run(w http.ResponseWriter, r *http.Request) {
	loc, _ := s.PageLocalizer(w, r)
	if err := r.ParseForm(); err != nil {
		s.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "core.error.invalid_input", "failed to parse form"))
		return
	}
	form := crud.NewFormReader(r.PostForm)
	input := simulation{
		monto: form.Decimal("monto").Float(),
		tasa:  form.Decimal("tasa_interes").Float(),
		plazo: form.Int("plazo_meses"),
	}
	sim, err := domain.Simular(input.monto, input.tasa, input.plazo)
	if err = crud.Check(form, err); err != nil {
		fields := crud.Resubmit(loc, simulatorFields(loc, input), form, err)
		s.render(w, r, loc, apperrors.HTTPStatus(err), fields, webtemplates.ErrorAlert(weberror.PublicMessage(loc, err)), nil)
		return
	}
	s.Logger().Debug("loan simulated", zap.Float64("monto", sim.Monto), zap.Int("plazo_meses", sim.PlazoMeses))
	s.render(w, r, loc, http.StatusOK, simulatorFields(loc, input), nil, &sim)
}

func (s simulator) render(
	w http.ResponseWriter,
	r *http.Request,
	loc webtemplates.Localizer,
	status int,
	fields []webtemplates.FormField,
	alert *webtemplates.AlertView,
	result *domain.Simulacion,
) {
	view := webtemplates.Simulator(loc, webtemplates.SimulatorView{
		Action: routepath.PrestamosSimulador,
		Alert:  alert,
		Fields: fields,
		Result: result,
	})
	if httpx.HTMXTarget(r) == webtemplates.SimulatorID {
		var buf bytes.Buffer
		if err := view.Render(r.Context(), &buf); err != nil {
			s.WriteError(w, r, err)
			return
		}
		_ = httpx.WriteHTML(w, status, buf.String())
		return
	}
	title := webtemplates.T(loc, "prestamos.simular.title")
	s.WritePage(w, r, title, status, &webtemplates.AppMainHeader{Title: title}, view)
}

func simulatorFields(loc webtemplates.Localizer, input simulation) []webtemplates.FormField {
	label := func(name string) string { return webtemplates.T(loc, "prestamos.field."+name) }
	plazo := ""
	if input.plazo > 0 {
		plazo = strconv.Itoa(input.plazo)
	}
	return []webtemplates.FormField{
		{Name: "monto", Label: label("monto"), Kind: webtemplates.FieldMoney, Value: webtemplates.InputAmount(domain.Decimal(input.monto)), Required: true},
		{Name: "tasa_interes", Label: label("tasa_interes"), Kind: webtemplates.FieldMoney, Value: webtemplates.InputAmount(domain.Decimal(input.tasa)),
			Hint: webtemplates.T(loc, "prestamos.hint.tasa_interes", domain.TasaMaximaMensual)},
		{Name: "plazo_meses", Label: label("plazo_meses"), Kind: webtemplates.FieldNumber, Value: plazo, Required: true,
			Hint: webtemplates.T(loc, "prestamos.hint.plazo_meses", domain.PlazoMaximoMeses)},
	}
}

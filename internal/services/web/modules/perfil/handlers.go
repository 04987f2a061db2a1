package perfil

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nominaweb/nominaweb/internal/domain"
	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/auditlog"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	flashnotice "github.com/nominaweb/nominaweb/internal/services/web/platform/flash"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/httpx"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/pagerender"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/requestmeta"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/weberror"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webstorage "github.com/nominaweb/nominaweb/internal/services/web/storage"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

// auditEntity names profile changes in the audit log.
const auditEntity = "perfil"

type handlers struct {
	modulehandler.Base
	service Service
	audit   *auditlog.Recorder
	policy  requestmeta.SchemePolicy
}

func (h handlers) handleShow(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(w, r)
	perfil, err := h.service.Get(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	title := webtemplates.T(loc, "perfil.title")
	header := &webtemplates.AppMainHeader{
		Title:       title,
		ActionURL:   routepath.PerfilEdit,
		ActionLabel: webtemplates.T(loc, "core.action.edit"),
		ActionModal: true,
	}
	h.WritePage(w, r, title, http.StatusOK, header, webtemplates.Wrap(webtemplates.PageCard(), webtemplates.DetailList(detailFields(loc, perfil))))
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(w, r)
	perfil, err := h.service.Get(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderForm(w, r, loc, http.StatusOK, formFields(loc, perfil), nil)
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	loc, _ := h.PageLocalizer(w, r)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "core.error.invalid_input", "failed to parse form"))
		return
	}
	current, err := h.service.Get(ctx)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	form := crud.NewFormReader(r.PostForm)
	perfil := current
	perfil.Email = form.String("email")
	perfil.FirstName = form.String("first_name")
	perfil.LastName = form.String("last_name")
	perfil.Telefono = form.String("telefono")
	perfil.Normalize()
	if err := crud.Check(form, perfil.Validate()); err != nil {
		h.renderForm(w, r, loc, apperrors.HTTPStatus(err), crud.Resubmit(loc, formFields(loc, perfil), form, err), err)
		return
	}

	saved, err := h.service.Update(ctx, perfil)
	if err != nil {
		h.Logger().Warn("profile update failed", zap.Error(err))
		h.renderForm(w, r, loc, apperrors.HTTPStatus(err), crud.Resubmit(loc, formFields(loc, perfil), form, err), err)
		return
	}
	label := saved.NombreCompleto()
	if label == "" {
		label = perfil.NombreCompleto()
	}
	h.Logger().Info("profile updated", zap.String("username", current.Username))
	h.audit.Record(ctx, webstorage.ActionUpdate, auditEntity, 0, label)
	flashnotice.WriteWithPolicy(w, r, flashnotice.NoticeSuccess(crud.NoticeUpdated, label), h.policy)
	httpx.WriteRedirect(w, r, routepath.Perfil)
}

func (h handlers) renderForm(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, status int, fields []webtemplates.FormField, err error) {
	title := webtemplates.T(loc, "perfil.edit")
	view := webtemplates.FormView{
		ID:          "perfil-form",
		Title:       title,
		Action:      routepath.PerfilEdit,
		SubmitLabel: webtemplates.T(loc, "core.action.save"),
		CancelURL:   routepath.Perfil,
		Fields:      fields,
	}
	if err != nil {
		view.Alert = webtemplates.ErrorAlert(weberror.PublicMessage(loc, err))
	}
	h.WriteModal(w, r, pagerender.ModalPage{
		Title:      title,
		StatusCode: status,
		CloseURL:   routepath.Perfil,
		Body:       webtemplates.Form(loc, view),
	})
}

func detailFields(loc webtemplates.Localizer, p domain.Perfil) []webtemplates.DetailField {
	label := func(name string) string { return webtemplates.T(loc, "perfil.field."+name) }
	return []webtemplates.DetailField{
		{Label: label("username"), Value: p.Username},
		{Label: label("nombre"), Value: p.NombreCompleto()},
		{Label: label("email"), Value: p.Email},
		{Label: label("telefono"), Value: p.Telefono},
	}
}

func formFields(loc webtemplates.Localizer, p domain.Perfil) []webtemplates.FormField {
	label := func(name string) string { return webtemplates.T(loc, "perfil.field."+name) }
	return []webtemplates.FormField{
		{Name: "first_name", Label: label("first_name"), Kind: webtemplates.FieldText, Value: p.FirstName},
		{Name: "last_name", Label: label("last_name"), Kind: webtemplates.FieldText, Value: p.LastName},
		{Name: "email", Label: label("email"), Kind: webtemplates.FieldEmail, Value: p.Email, Required: true},
		{Name: "telefono", Label: label("telefono"), Kind: webtemplates.FieldTel, Value: p.Telefono},
	}
}

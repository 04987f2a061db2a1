package crud

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nominaweb/nominaweb/internal/backend"
	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
	"github.com/nominaweb/nominaweb/internal/platform/filestore"
	"github.com/nominaweb/nominaweb/internal/platform/listing"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/auditlog"
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

// Notice keys written after successful mutations.
const (
	NoticeCreated  = "core.notice.created"
	NoticeUpdated  = "core.notice.updated"
	NoticeDeleted  = "core.notice.deleted"
	NoticeUploaded = "core.notice.uploaded"
)

// maxMultipartMemory bounds the in-memory part of upload parsing.
const maxMultipartMemory = 1 << 20

const pageWindow = 5

type handler[T any] struct {
	modulehandler.Base
	def    Definition[T]
	audit  *auditlog.Recorder
	files  filestore.Store
	policy requestmeta.SchemePolicy
}

func (h *handler[T]) key(suffix string) string {
	return h.def.Area + "." + suffix
}

func (h *handler[T]) listHeader(loc webtemplates.Localizer) *webtemplates.AppMainHeader {
	return &webtemplates.AppMainHeader{
		Title:       webtemplates.T(loc, h.key("title")),
		ActionURL:   routepath.New(h.def.Prefix),
		ActionLabel: webtemplates.T(loc, h.key("new")),
		ActionModal: true,
	}
}

func (h *handler[T]) list(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(w, r)
	ctx := r.Context()
	values := r.URL.Query()
	query := listing.QueryFromValues(values)
	selected, terms := h.selectTerms(values)
	effective := query.AndFilter(terms...)

	lookups, err := LoadLookups(ctx, h.def.Lookups)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	items, err := h.def.Gateway.List(ctx)
	if err != nil {
		h.Logger().Warn("list failed", zap.String("entity", h.def.Area), zap.Error(err))
		h.renderList(w, r, loc, apperrors.HTTPStatus(err), h.listView(loc, query, selected, lookups, nil, listing.Paginate([]T{}, 1, 1), err))
		return
	}
	matches, err := listing.Select(h.def.Schema, items, effective)
	if err != nil {
		h.renderList(w, r, loc, apperrors.HTTPStatus(err), h.listView(loc, query, selected, lookups, nil, listing.Paginate([]T{}, 1, 1), err))
		return
	}
	page := listing.Paginate(matches, query.Page, listing.ClampPageSize(query.PageSize, h.def.Schema.PageSize))
	h.renderList(w, r, loc, http.StatusOK, h.listView(loc, query, selected, lookups, matches, page, nil))
}

func (h *handler[T]) renderList(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, status int, view webtemplates.ListView) {
	header := h.listHeader(loc)
	h.WritePage(w, r, header.Title, status, header, webtemplates.ListPage(loc, view))
}

// selectTerms turns toolbar select values into filter terms and returns the
// values to carry on sort and page links.
func (h *handler[T]) selectTerms(values url.Values) (url.Values, []string) {
	selected := url.Values{}
	terms := make([]string, 0, len(h.def.Selects))
	for _, sel := range h.def.Selects {
		value := strings.TrimSpace(values.Get(sel.Name))
		if value == "" {
			continue
		}
		if !sel.Quote && !literal(value) {
			continue
		}
		selected.Set(sel.Name, value)
		terms = append(terms, listing.EqualsTerm(sel.Name, value, sel.Quote))
	}
	return selected, terms
}

// literal reports whether an unquoted select value is a number or a boolean.
func literal(value string) bool {
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return true
	}
	return value == "true" || value == "false"
}

func (h *handler[T]) listURL(query listing.Query, selected url.Values) string {
	values := query.Values()
	for name, vals := range selected {
		values[name] = vals
	}
	return routepath.WithQuery(h.def.Prefix, values)
}

func (h *handler[T]) listView(
	loc webtemplates.Localizer,
	query listing.Query,
	selected url.Values,
	lookups Lookups,
	matches []T,
	page listing.Page[T],
	err error,
) webtemplates.ListView {
	view := webtemplates.ListView{
		Area:     h.def.Area,
		BaseURL:  h.def.Prefix,
		Search:   query.Search,
		Filter:   query.Filter,
		OrderBy:  query.OrderBy,
		PageSize: query.PageSize,
	}
	if err != nil {
		view.Alert = webtemplates.ErrorAlert(weberror.PublicMessage(loc, err))
	}
	for _, sel := range h.def.Selects {
		var options []webtemplates.SelectOption
		if sel.Lookup != "" {
			options = lookups[sel.Lookup]
		} else {
			options = sel.Options(loc)
		}
		view.Selects = append(view.Selects, webtemplates.FilterSelect{
			Name:    sel.Name,
			Label:   webtemplates.T(loc, sel.Label),
			Options: webtemplates.MarkSelected(options, selected.Get(sel.Name)),
		})
	}

	sortField, sortDesc := "", false
	if specs, specErr := listing.ParseOrderBy(h.def.Schema, query.OrderBy); specErr == nil && len(specs) > 0 {
		sortField, sortDesc = specs[0].Field, specs[0].Desc
	}
	for _, column := range h.def.Columns {
		header := webtemplates.ColumnHeader{Label: webtemplates.T(loc, column.Label), Class: column.Class}
		if column.Sort != "" {
			next := column.Sort
			if column.Sort == sortField {
				header.SortDir = "asc"
				if sortDesc {
					header.SortDir = "desc"
				} else {
					next += " desc"
				}
			}
			sorted := query
			sorted.OrderBy = next
			sorted.Page = 0
			header.SortURL = h.listURL(sorted, selected)
		}
		view.Headers = append(view.Headers, header)
	}

	for _, item := range page.Items {
		id := h.def.ID(item)
		row := webtemplates.TableRow{
			ID:        strconv.FormatInt(id, 10),
			DetailURL: routepath.Item(h.def.Prefix, id),
			EditURL:   routepath.Edit(h.def.Prefix, id),
			DeleteURL: routepath.Delete(h.def.Prefix, id),
		}
		for _, column := range h.def.Columns {
			row.Cells = append(row.Cells, webtemplates.TableCell{Text: column.Value(loc, item, lookups), Class: column.Class})
		}
		view.Rows = append(view.Rows, row)
	}

	if err == nil {
		view.Pagination = h.pagination(loc, query, selected, page)
		if h.def.Summary != nil {
			view.Summary = h.def.Summary(loc, matches)
		}
	}
	return view
}

func (h *handler[T]) pagination(loc webtemplates.Localizer, query listing.Query, selected url.Values, page listing.Page[T]) webtemplates.PaginationView {
	view := webtemplates.PaginationView{
		Summary: webtemplates.T(loc, "core.pagination.summary", page.First(), page.Last(), page.Total),
	}
	if page.HasPrev() {
		view.PrevURL = h.listURL(query.WithPage(page.Page-1), selected)
	}
	if page.HasNext() {
		view.NextURL = h.listURL(query.WithPage(page.Page+1), selected)
	}
	for _, number := range page.Window(pageWindow) {
		view.Pages = append(view.Pages, webtemplates.PageLink{
			Number:  number,
			URL:     h.listURL(query.WithPage(number), selected),
			Current: number == page.Page,
		})
	}
	return view
}

func (h *handler[T]) newForm(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(w, r)
	lookups, err := LoadLookups(r.Context(), h.def.Lookups)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	var item T
	h.renderForm(w, r, loc, http.StatusOK, formState[T]{item: item, lookups: lookups})
}

func (h *handler[T]) editForm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	item, lookups, err := h.load(r.Context(), id)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderForm(w, r, loc, http.StatusOK, formState[T]{id: id, item: item, lookups: lookups})
}

func (h *handler[T]) create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

func (h *handler[T]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	h.save(w, r, id)
}

func (h *handler[T]) save(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()
	loc, _ := h.PageLocalizer(w, r)
	creating := id == 0
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "core.error.invalid_input", "failed to parse form"))
		return
	}

	var (
		item    T
		lookups Lookups
		err     error
	)
	if creating {
		lookups, err = LoadLookups(ctx, h.def.Lookups)
	} else {
		item, lookups, err = h.load(ctx, id)
	}
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	form := NewFormReader(r.PostForm)
	h.def.Decode(form, &item)
	if err := mergeProblems(form.Problems(), h.def.Prepare(&item, creating)); err != nil {
		h.renderForm(w, r, loc, apperrors.HTTPStatus(err), formState[T]{id: id, item: item, lookups: lookups, form: form, err: err})
		return
	}

	var saved T
	if creating {
		saved, err = h.def.Gateway.Create(ctx, item)
	} else {
		saved, err = h.def.Gateway.Update(ctx, id, item)
	}
	if err != nil {
		h.Logger().Warn("save failed", zap.String("entity", h.def.Area), zap.Int64("id", id), zap.Error(err))
		h.renderForm(w, r, loc, apperrors.HTTPStatus(err), formState[T]{id: id, item: item, lookups: lookups, form: form, err: err})
		return
	}

	savedID := h.def.ID(saved)
	if savedID == 0 {
		savedID = id
	}
	label := h.def.Label(saved)
	if label == "" {
		label = h.def.Label(item)
	}
	action, notice, message := webstorage.ActionUpdate, NoticeUpdated, "record updated"
	if creating {
		action, notice, message = webstorage.ActionCreate, NoticeCreated, "record created"
	}
	h.Logger().Info(message, zap.String("entity", h.def.Area), zap.Int64("id", savedID))
	h.audit.Record(ctx, action, h.def.Area, savedID, label)
	h.succeed(w, r, notice, label)
}

type formState[T any] struct {
	id      int64
	item    T
	lookups Lookups
	form    *FormReader
	err     error
}

func (h *handler[T]) renderForm(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, status int, state formState[T]) {
	fieldErrors := apperrors.FieldErrors(state.err)
	title := webtemplates.T(loc, h.key("new"))
	action := h.def.Prefix
	submit := webtemplates.T(loc, "core.action.create")
	if state.id > 0 {
		title = webtemplates.T(loc, h.key("edit"))
		action = routepath.Edit(h.def.Prefix, state.id)
		submit = webtemplates.T(loc, "core.action.save")
	}
	view := webtemplates.FormView{
		ID:          h.def.Area + "-form",
		Title:       title,
		Action:      action,
		SubmitLabel: submit,
		CancelURL:   h.def.Prefix,
		Fields:      applySubmitted(loc, h.def.Fields(loc, state.item, state.lookups), state.form, fieldErrors),
	}
	if state.err != nil {
		view.Alert = webtemplates.ErrorAlert(weberror.PublicMessage(loc, state.err))
	}
	if h.def.FormExtra != nil {
		view.Extra = h.def.FormExtra(loc, state.item, state.lookups, state.form, fieldErrors)
	}
	h.WriteModal(w, r, pagerender.ModalPage{
		Title:      title,
		StatusCode: status,
		CloseURL:   h.def.Prefix,
		Body:       webtemplates.Form(loc, view),
	})
}

func (h *handler[T]) detail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	item, lookups, err := h.load(r.Context(), id)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderDetail(w, r, loc, http.StatusOK, id, item, lookups, nil)
}

func (h *handler[T]) renderDetail(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, status int, id int64, item T, lookups Lookups, err error) {
	view := webtemplates.DetailView{
		Title:     webtemplates.T(loc, h.key("detail")),
		Fields:    h.def.Detail(loc, item, lookups),
		EditURL:   routepath.Edit(h.def.Prefix, id),
		DeleteURL: routepath.Delete(h.def.Prefix, id),
		CloseURL:  h.def.Prefix,
	}
	if h.def.Sections != nil {
		view.Sections = h.def.Sections(loc, item, lookups)
	}
	for _, upload := range h.def.Uploads {
		current := ""
		if upload.Current != nil {
			current = upload.Current(item)
		}
		view.Uploads = append(view.Uploads, webtemplates.UploadView{
			Label:      webtemplates.T(loc, upload.Label),
			Action:     routepath.Field(h.def.Prefix, id, upload.Field),
			Hint:       upload.Policy.Describe(),
			CurrentURL: current,
			Accept:     strings.Join(upload.Policy.Allowed, ","),
		})
	}
	if err != nil {
		view.Alert = webtemplates.ErrorAlert(weberror.PublicMessage(loc, err))
	}
	h.WriteModal(w, r, pagerender.ModalPage{
		Title:      view.Title,
		StatusCode: status,
		CloseURL:   h.def.Prefix,
		Body:       webtemplates.Detail(loc, view),
	})
}

func (h *handler[T]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	item, err := h.def.Gateway.Get(r.Context(), id)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderConfirm(w, r, loc, http.StatusOK, id, h.def.Label(item), nil)
}

func (h *handler[T]) renderConfirm(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, status int, id int64, label string, err error) {
	title := webtemplates.T(loc, h.key("delete"))
	view := webtemplates.ConfirmView{
		Title:     title,
		Message:   webtemplates.T(loc, "core.confirm.delete", label),
		Action:    routepath.Delete(h.def.Prefix, id),
		CancelURL: h.def.Prefix,
	}
	if err != nil {
		view.Alert = webtemplates.ErrorAlert(weberror.PublicMessage(loc, err))
	}
	h.WriteModal(w, r, pagerender.ModalPage{
		Title:      title,
		StatusCode: status,
		CloseURL:   h.def.Prefix,
		Body:       webtemplates.Confirm(loc, view),
	})
}

func (h *handler[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	loc, _ := h.PageLocalizer(w, r)
	item, err := h.def.Gateway.Get(ctx, id)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	label := h.def.Label(item)
	if err := h.def.Gateway.Delete(ctx, id); err != nil {
		h.Logger().Warn("delete failed", zap.String("entity", h.def.Area), zap.Int64("id", id), zap.Error(err))
		h.renderConfirm(w, r, loc, apperrors.HTTPStatus(err), id, label, err)
		return
	}
	h.Logger().Info("record deleted", zap.String("entity", h.def.Area), zap.Int64("id", id))
	h.audit.Record(ctx, webstorage.ActionDelete, h.def.Area, id, label)
	h.succeed(w, r, NoticeDeleted, label)
}

func (h *handler[T]) upload(upload Upload[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		ctx := r.Context()
		loc, _ := h.PageLocalizer(w, r)
		item, lookups, err := h.load(ctx, id)
		if err != nil {
			h.WriteError(w, r, err)
			return
		}
		stored, err := h.storeUpload(w, r, id, upload)
		if err != nil {
			if apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
				h.Logger().Warn("upload failed", zap.String("entity", h.def.Area), zap.Int64("id", id), zap.String("field", upload.Field), zap.Error(err))
			}
			h.renderDetail(w, r, loc, apperrors.HTTPStatus(err), id, item, lookups, err)
			return
		}
		label := h.def.Label(item)
		h.Logger().Info("file uploaded", zap.String("entity", h.def.Area), zap.Int64("id", id), zap.String("field", upload.Field), zap.String("url", stored))
		h.audit.Record(ctx, webstorage.ActionUpload, h.def.Area, id, upload.Field+": "+label)
		h.succeed(w, r, NoticeUploaded, label)
	}
}

func (h *handler[T]) storeUpload(w http.ResponseWriter, r *http.Request, id int64, upload Upload[T]) (string, error) {
	if h.files == nil {
		return "", apperrors.EK(apperrors.KindUnavailable, "core.error.unavailable", "file store is not configured")
	}
	limit := upload.Policy.MaxBytes
	if limit <= 0 {
		limit = filestore.PolicySoporte.MaxBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+maxMultipartMemory)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", apperrors.EK(apperrors.KindInvalidInput, "core.upload.too_large", "file is too large")
		}
		return "", apperrors.EK(apperrors.KindInvalidInput, "core.upload.missing", "file is required")
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()
	file, header, err := r.FormFile(backend.UploadField)
	if err != nil {
		return "", apperrors.EK(apperrors.KindInvalidInput, "core.upload.missing", "file is required")
	}
	defer file.Close()
	obj, err := filestore.Read(file, header.Filename, upload.Policy)
	if err != nil {
		return "", err
	}
	obj.Resource = h.def.Resource
	obj.ID = id
	obj.Field = upload.Field
	return h.files.Put(r.Context(), obj)
}

func (h *handler[T]) succeed(w http.ResponseWriter, r *http.Request, noticeKey, label string) {
	flashnotice.WriteWithPolicy(w, r, flashnotice.NoticeSuccess(noticeKey, label), h.policy)
	httpx.WriteRedirect(w, r, h.def.Prefix)
}

func (h *handler[T]) load(ctx context.Context, id int64) (T, Lookups, error) {
	item, err := h.def.Gateway.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, nil, err
	}
	lookups, err := LoadLookups(ctx, h.def.Lookups)
	if err != nil {
		return item, nil, err
	}
	return item, lookups, nil
}

func (h *handler[T]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.WriteNotFound(w, r)
		return 0, false
	}
	return id, true
}

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
)

// maxListPages stops a misbehaving backend from paging forever.
const maxListPages = 1000

// Resource is the CRUD surface of one REST collection at /api/<name>/.
type Resource[T any] struct {
	client *Client
	name   string
}

// NewResource binds a collection name to a client.
func NewResource[T any](client *Client, name string) Resource[T] {
	return Resource[T]{client: client, name: strings.Trim(strings.TrimSpace(name), "/")}
}

// Name returns the collection name.
func (r Resource[T]) Name() string {
	return r.name
}

// CollectionPath returns /api/<name>/.
func (r Resource[T]) CollectionPath() string {
	return "/api/" + r.name + "/"
}

// ItemPath returns /api/<name>/<id>/.
func (r Resource[T]) ItemPath(id int64) string {
	return r.CollectionPath() + strconv.FormatInt(id, 10) + "/"
}

// FieldPath returns /api/<name>/<id>/<field>/.
func (r Resource[T]) FieldPath(id int64, field string) string {
	return r.ItemPath(id) + strings.Trim(field, "/") + "/"
}

type pageEnvelope[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}

// List fetches the whole collection, following DRF "next" links.
func (r Resource[T]) List(ctx context.Context) ([]T, error) {
	return r.ListWhere(ctx, nil)
}

// ListWhere fetches the whole collection with backend query parameters.
func (r Resource[T]) ListWhere(ctx context.Context, params url.Values) ([]T, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	target := r.client.URL(r.CollectionPath(), params)
	seen := map[string]bool{}
	var items []T
	for page := 0; target != ""; page++ {
		if page >= maxListPages || seen[target] {
			return nil, apperrors.E(apperrors.KindUnavailable, fmt.Sprintf("list %s: pagination did not terminate", r.name))
		}
		seen[target] = true
		data, err := r.client.send(ctx, http.MethodGet, target, nil, "")
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", r.name, err)
		}
		batch, next, err := decodeListPage[T](data)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindUnavailable, fmt.Sprintf("decode %s list", r.name), err)
		}
		items = append(items, batch...)
		target = r.resolveNext(next)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func decodeListPage[T any](data []byte) ([]T, string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, "", nil
	}
	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, "", err
		}
		return items, "", nil
	}
	var envelope pageEnvelope[T]
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, "", err
	}
	return envelope.Results, strings.TrimSpace(envelope.Next), nil
}

// resolveNext accepts absolute or relative "next" links.
func (r Resource[T]) resolveNext(next string) string {
	if next == "" {
		return ""
	}
	parsed, err := url.Parse(next)
	if err != nil {
		return ""
	}
	if parsed.IsAbs() {
		return parsed.String()
	}
	return r.client.base.ResolveReference(parsed).String()
}

// Get fetches one record.
func (r Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	if err := r.ready(); err != nil {
		return out, err
	}
	if err := r.client.Do(ctx, http.MethodGet, r.ItemPath(id), nil, nil, &out); err != nil {
		return out, fmt.Errorf("get %s %d: %w", r.name, id, err)
	}
	return out, nil
}

// Create posts a new record and returns the stored version.
func (r Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var out T
	if err := r.ready(); err != nil {
		return out, err
	}
	if err := r.client.Do(ctx, http.MethodPost, r.CollectionPath(), nil, item, &out); err != nil {
		return out, fmt.Errorf("create %s: %w", r.name, err)
	}
	return out, nil
}

// Update sends the record with PATCH semantics and returns the stored version.
func (r Resource[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	return r.patch(ctx, id, item)
}

// Patch sends only the given fields.
func (r Resource[T]) Patch(ctx context.Context, id int64, fields map[string]any) (T, error) {
	return r.patch(ctx, id, fields)
}

func (r Resource[T]) patch(ctx context.Context, id int64, body any) (T, error) {
	var out T
	if err := r.ready(); err != nil {
		return out, err
	}
	if err := r.client.Do(ctx, http.MethodPatch, r.ItemPath(id), nil, body, &out); err != nil {
		return out, fmt.Errorf("update %s %d: %w", r.name, id, err)
	}
	return out, nil
}

// Delete removes one record.
func (r Resource[T]) Delete(ctx context.Context, id int64) error {
	if err := r.ready(); err != nil {
		return err
	}
	if err := r.client.Do(ctx, http.MethodDelete, r.ItemPath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete %s %d: %w", r.name, id, err)
	}
	return nil
}

// Upload sends file to the record's field endpoint and returns the updated
// record.
func (r Resource[T]) Upload(ctx context.Context, id int64, field string, file File) (T, error) {
	var out T
	if err := r.ready(); err != nil {
		return out, err
	}
	if err := r.client.Upload(ctx, r.FieldPath(id, field), file, &out); err != nil {
		return out, fmt.Errorf("upload %s %d %s: %w", r.name, id, field, err)
	}
	return out, nil
}

var errNotConfigured = apperrors.EK(apperrors.KindUnavailable, "core.error.unavailable", "backend is not configured")

func (r Resource[T]) ready() error {
	if r.client == nil || r.name == "" {
		return errNotConfigured
	}
	return nil
}

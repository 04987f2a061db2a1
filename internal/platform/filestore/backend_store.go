package filestore

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nominaweb/nominaweb/internal/backend"
	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
)

// Uploader posts multipart files to the backend.
type Uploader interface {
	Upload(ctx context.Context, path string, file backend.File, out any) error
}

// BackendStore forwards files to /api/<resource>/<id>/<field>/.
type BackendStore struct {
	uploader Uploader
}

// NewBackendStore builds a store over the backend client.
func NewBackendStore(uploader Uploader) *BackendStore {
	return &BackendStore{uploader: uploader}
}

// Put uploads obj and returns the URL the backend recorded for the field.
func (s *BackendStore) Put(ctx context.Context, obj Object) (string, error) {
	if s == nil || s.uploader == nil {
		return "", apperrors.EK(apperrors.KindUnavailable, "core.error.unavailable", "file store is not configured")
	}
	target := "/api/" + obj.Resource + "/" + strconv.FormatInt(obj.ID, 10) + "/" + obj.Field + "/"
	var record map[string]any
	err := s.uploader.Upload(ctx, target, backend.File{
		Name:        obj.Name,
		ContentType: obj.ContentType,
		Body:        obj.Reader(),
	}, &record)
	if err != nil {
		return "", fmt.Errorf("forward %s upload: %w", obj.Field, err)
	}
	url, _ := record[obj.Field].(string)
	return strings.TrimSpace(url), nil
}

package crudtest

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/nominaweb/nominaweb/internal/backend"
	"github.com/nominaweb/nominaweb/internal/platform/filestore"
)

// Files records stored objects and returns predictable URLs.
type Files struct {
	mu   sync.Mutex
	Puts []filestore.Object
}

// Put records obj.
func (f *Files) Put(_ context.Context, obj filestore.Object) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Puts = append(f.Puts, obj)
	return fmt.Sprintf("/media/%s/%d/%s", obj.Resource, obj.ID, obj.Name), nil
}

// Upload builds a multipart POST carrying one file in the upload field.
func Upload(target, filename string, data []byte) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(backend.UploadField, filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

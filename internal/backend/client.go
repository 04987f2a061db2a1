// Package backend is the typed client for the Django REST backend that owns
// every HR, payroll, and accounting record.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
	"github.com/nominaweb/nominaweb/internal/platform/timeouts"
)

const (
	tracerName = "github.com/nominaweb/nominaweb/internal/backend"

	// UploadField is the multipart field name the backend reads files from.
	UploadField = "archivo"

	maxResponseBytes = 32 << 20
	maxErrorBytes    = 64 << 10
)

// Config configures the backend client.
type Config struct {
	// BaseURL is the backend origin, optionally with a path prefix.
	BaseURL string
	// Token is sent as "Authorization: Token <t>" when set.
	Token string
	// Timeout bounds each request. Defaults to timeouts.BackendRequest.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client issues JSON requests against the backend.
type Client struct {
	base    *url.URL
	token   string
	timeout time.Duration
	http    *http.Client
	logger  *zap.Logger
	tracer  trace.Tracer
}

// File is an upload payload.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// New validates cfg and builds a client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend base url must be http or https, got %q", base.Scheme)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("backend base url must include a host")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeouts.BackendRequest
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	base.RawQuery = ""
	base.Fragment = ""
	return &Client{
		base:    base,
		token:   strings.TrimSpace(cfg.Token),
		timeout: cfg.Timeout,
		http:    cfg.HTTPClient,
		logger:  cfg.Logger,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// URL resolves an API path against the base URL.
func (c *Client) URL(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Do sends a JSON request to path and decodes a JSON response into out when
// out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s request: %w", method, path, err)
		}
		payload = bytes.NewReader(encoded)
	}
	data, err := c.send(ctx, method, c.URL(path, query), payload, "application/json")
	if err != nil {
		return err
	}
	return decode(data, method, path, out)
}

// Upload posts file as multipart field "archivo" to path and decodes the JSON
// response into out when out is non-nil.
func (c *Client) Upload(ctx context.Context, path string, file File, out any) error {
	if file.Body == nil {
		return apperrors.EK(apperrors.KindInvalidInput, "core.upload.missing", "file body is required")
	}
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, UploadField, sanitizeHeaderValue(file.Name)))
	contentType := strings.TrimSpace(file.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create upload part: %w", err)
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return fmt.Errorf("copy upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close upload body: %w", err)
	}
	data, err := c.send(ctx, http.MethodPost, c.URL(path, nil), &buf, writer.FormDataContentType())
	if err != nil {
		return err
	}
	return decode(data, http.MethodPost, path, out)
}

func (c *Client) send(ctx context.Context, method, target string, body io.Reader, contentType string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "backend "+method, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.full", target),
	)

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	started := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.Duration("latency", time.Since(started)),
			zap.Error(err),
		)
		return nil, apperrors.Error{
			Kind:    apperrors.KindUnavailable,
			Key:     "core.error.unavailable",
			Message: "backend unavailable",
			Cause:   err,
		}
	}
	defer res.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBytes))
		mapped := mapError(res.StatusCode, data)
		span.SetStatus(codes.Error, http.StatusText(res.StatusCode))
		c.logger.Warn("backend request rejected",
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", res.StatusCode),
			zap.Duration("latency", time.Since(started)),
			zap.String("kind", string(apperrors.KindOf(mapped))),
		)
		return nil, mapped
	}
	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "read backend response", err)
	}
	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", res.StatusCode),
		zap.Duration("latency", time.Since(started)),
	)
	return data, nil
}

func decode(data []byte, method, path string, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, fmt.Sprintf("decode %s %s response", method, path), err)
	}
	return nil
}

func sanitizeHeaderValue(name string) string {
	name = strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' || r == '"' || r == '\\' {
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		return "archivo"
	}
	return name
}

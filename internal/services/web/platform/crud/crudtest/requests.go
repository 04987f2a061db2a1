package crudtest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// Serve runs req through handler and returns the recorded response.
func Serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// Get builds a plain GET request.
func Get(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

// PostForm builds a urlencoded POST request.
func PostForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// HTMX marks req as an HTMX request swapping into target.
func HTMX(req *http.Request, target string) *http.Request {
	req.Header.Set("HX-Request", "true")
	if target != "" {
		req.Header.Set("HX-Target", target)
	}
	return req
}

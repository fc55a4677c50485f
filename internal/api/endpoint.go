package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
)

// Method is an HTTP verb accepted by Endpoint.
type Method string

const (
	GET    Method = http.MethodGet
	POST   Method = http.MethodPost
	PUT    Method = http.MethodPut
	PATCH  Method = http.MethodPatch
	DELETE Method = http.MethodDelete
)

func (m Method) valid() bool {
	switch m {
	case GET, POST, PUT, PATCH, DELETE:
		return true
	}
	return false
}

// Endpoint describes one API call before it is bound to a base URL.
// Values are immutable; the With* helpers return modified copies.
type Endpoint struct {
	path    string
	method  Method
	headers map[string]string
	body    []byte
}

// EndpointOption customizes an Endpoint at construction.
type EndpointOption func(*Endpoint) error

// NewEndpoint builds an Endpoint. Content-Type defaults to application/json.
func NewEndpoint(method Method, path string, opts ...EndpointOption) (Endpoint, error) {
	ep := Endpoint{
		path:    path,
		method:  method,
		headers: map[string]string{"Content-Type": "application/json"},
	}
	for _, opt := range opts {
		if err := opt(&ep); err != nil {
			return Endpoint{}, err
		}
	}
	return ep, nil
}

// WithHeader sets a request header, replacing any default.
func WithHeader(key, value string) EndpointOption {
	return func(ep *Endpoint) error {
		ep.headers[key] = value
		return nil
	}
}

// WithBody attaches raw body bytes.
func WithBody(body []byte) EndpointOption {
	return func(ep *Endpoint) error {
		ep.body = bytes.Clone(body)
		return nil
	}
}

// WithJSONBody encodes v as the request body.
func WithJSONBody(v any) EndpointOption {
	return func(ep *Endpoint) error {
		data, err := json.Marshal(v)
		if err != nil {
			return newError(KindEncodingError, err)
		}
		ep.body = data
		return nil
	}
}

// Path returns the path relative to the base URL.
func (e Endpoint) Path() string { return e.path }

// Method returns the HTTP verb.
func (e Endpoint) Method() Method { return e.method }

// Headers returns a copy of the request headers.
func (e Endpoint) Headers() map[string]string { return maps.Clone(e.headers) }

// Body returns a copy of the body, or nil.
func (e Endpoint) Body() []byte { return bytes.Clone(e.body) }

// WithHeader returns a copy of e with the header set.
func (e Endpoint) WithHeader(key, value string) Endpoint {
	dup := e
	dup.headers = maps.Clone(e.headers)
	if dup.headers == nil {
		dup.headers = make(map[string]string, 1)
	}
	dup.headers[key] = value
	return dup
}

// Resolve binds the endpoint to baseURL and returns a transport-ready request.
// It performs no I/O.
func (e Endpoint) Resolve(baseURL string) (*http.Request, error) {
	if !e.method.valid() {
		return nil, newError(KindEncodingError, fmt.Errorf("unsupported method %q", e.method))
	}
	u, err := parseAbsolute(baseURL + e.path)
	if err != nil {
		return nil, err
	}
	var body io.Reader
	if e.body != nil {
		body = bytes.NewReader(e.body)
	}
	req, err := http.NewRequest(string(e.method), u.String(), body)
	if err != nil {
		return nil, newError(KindInvalidURL, err)
	}
	for k, v := range e.headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

func parseAbsolute(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, newError(KindInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, newError(KindInvalidURL, fmt.Errorf("url %q is not absolute", raw))
	}
	return u, nil
}

// Item endpoints.

// ListItems is GET /items.
func ListItems() Endpoint {
	ep, _ := NewEndpoint(GET, "/items")
	return ep
}

// GetItem is GET /items/{id}.
func GetItem(id string) Endpoint {
	ep, _ := NewEndpoint(GET, itemPath(id))
	return ep
}

// CreateItem is POST /items with body.
func CreateItem(body []byte) Endpoint {
	ep, _ := NewEndpoint(POST, "/items", WithBody(body))
	return ep
}

// UpdateItem is PUT /items/{id} with body.
func UpdateItem(id string, body []byte) Endpoint {
	ep, _ := NewEndpoint(PUT, itemPath(id), WithBody(body))
	return ep
}

// DeleteItem is DELETE /items/{id}.
func DeleteItem(id string) Endpoint {
	ep, _ := NewEndpoint(DELETE, itemPath(id))
	return ep
}

func itemPath(id string) string {
	return "/items/" + url.PathEscape(id)
}

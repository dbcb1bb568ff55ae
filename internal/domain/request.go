package domain

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// Request is the mutable request object handed from the transport to the
// forge and back. Query and Form are kept apart from the URL and the raw
// Body; the transport decides how to put them on the wire.
type Request struct {
	Method string `json:"method" yaml:"method"`
	URL    string `json:"url" yaml:"url"`
	Header Header `json:"header" yaml:"header"`
	Query  Fields `json:"query,omitempty" yaml:"query,omitempty"`
	Form   Fields `json:"form,omitempty" yaml:"form,omitempty"`
	Body   []byte `json:"-" yaml:"-"`
}

// NewRequest validates rawURL and returns an empty request for method.
// Any query string on rawURL is moved into Query, in order and with
// duplicates, so that later writes replace existing parameters.
func NewRequest(method, rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, rawURL)
	}

	rest, fragment, hasFragment := strings.Cut(rawURL, "#")
	base, rawQuery, _ := strings.Cut(rest, "?")
	query, err := ParseFields(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if hasFragment {
		base += "#" + fragment
	}
	return &Request{
		Method: strings.ToUpper(method),
		URL:    base,
		Query:  query,
	}, nil
}

// FullURL returns URL with Query added ahead of any fragment. A query
// already present on URL is kept and Query is appended to it.
func (r *Request) FullURL() string {
	base, fragment, hasFragment := strings.Cut(r.URL, "#")
	if len(r.Query) > 0 {
		sep := "?"
		if strings.Contains(base, "?") {
			sep = "&"
			if strings.HasSuffix(base, "?") || strings.HasSuffix(base, "&") {
				sep = ""
			}
		}
		base += sep + r.Query.Encode()
	}
	if hasFragment {
		base += "#" + fragment
	}
	return base
}

// Payload returns the bytes to transmit and, when the transport should
// default it, the matching content type. A raw Body always wins over Form.
func (r *Request) Payload() ([]byte, string) {
	if r.Body != nil {
		return r.Body, ""
	}
	if len(r.Form) > 0 {
		return []byte(r.Form.Encode()), "application/x-www-form-urlencoded"
	}
	return nil, ""
}

// Response is what a transport returns for a sent request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Text returns the raw body.
func (r *Response) Text() string {
	return string(r.Body)
}

// JSON returns the decoded body. Use Get on the result to select values.
func (r *Response) JSON() (gjson.Result, error) {
	if !gjson.ValidBytes(r.Body) {
		return gjson.Result{}, ErrInvalidJSON
	}
	return gjson.ParseBytes(r.Body), nil
}

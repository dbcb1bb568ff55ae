package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/utkit/utforge/internal/domain"
	"github.com/utkit/utforge/pkg/log"
)

type recordingClient struct {
	req  *http.Request
	body string
	err  error
}

func (c *recordingClient) Do(req *http.Request) (*http.Response, error) {
	c.req = req
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		c.body = string(b)
	}
	if c.err != nil {
		return nil, c.err
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{"ok":true}`)),
	}, nil
}

func TestTransport_NewRequest(t *testing.T) {
	tr := NewTransport(&recordingClient{}, nil)

	req, err := tr.NewRequest("get", "https://utas.s2.fut.ea.com/ut/game/fifa/user")
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	if req.Method != "GET" {
		t.Errorf("Method = %q, want GET", req.Method)
	}

	if _, err := tr.NewRequest("GET", "/relative/path"); !errors.Is(err, domain.ErrInvalidURL) {
		t.Errorf("relative url error = %v, want ErrInvalidURL", err)
	}
}

func TestTransport_SendsQueryHeadersAndJSON(t *testing.T) {
	var gotMethod, gotQuery, gotBody, gotSID, gotCT string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		gotSID = r.Header.Get("X-UT-SID")
		gotCT = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"credits":1500}`)
	}))
	defer ts.Close()

	tr := NewDefaultTransport(5*time.Second, log.NewNoopLogger())
	req, err := tr.NewRequest("PUT", ts.URL+"/ut/game/fifa/item?src=1")
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Query.Set("a", "1")
	req.Query.Set("b", "2")
	req.Header.Set("X-UT-SID", "abc")
	req.Header.Set("Content-Type", "application/json")
	req.Body = []byte(`{"x":1}`)

	resp, err := tr.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if gotMethod != "PUT" {
		t.Errorf("method = %q, want PUT", gotMethod)
	}
	if gotQuery != "src=1&a=1&b=2" {
		t.Errorf("query = %q, want src=1&a=1&b=2", gotQuery)
	}
	if gotSID != "abc" {
		t.Errorf("X-UT-SID = %q, want abc", gotSID)
	}
	if gotCT != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotCT)
	}
	if gotBody != `{"x":1}` {
		t.Errorf("body = %q, want {\"x\":1}", gotBody)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("StatusCode = %d, want 201", resp.StatusCode)
	}
	doc, err := resp.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if doc.Get("credits").Int() != 1500 {
		t.Errorf("credits = %v, want 1500", doc.Get("credits"))
	}
}

func TestTransport_FormBody(t *testing.T) {
	var form map[string]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm failed: %v", err)
		}
		form = map[string]string{"a": r.PostForm.Get("a"), "b": r.PostForm.Get("b")}
		if r.URL.RawQuery != "" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	tr := NewDefaultTransport(5*time.Second, nil)
	req, _ := tr.NewRequest("POST", ts.URL+"/form")
	req.Form.Set("a", "1")
	req.Form.Set("b", "2")

	if _, err := tr.Send(context.Background(), req); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if form["a"] != "1" || form["b"] != "2" {
		t.Errorf("form = %v, want a=1 b=2", form)
	}
}

func TestTransport_HeaderNamesVerbatim(t *testing.T) {
	client := &recordingClient{}
	tr := NewTransport(client, nil)

	req, _ := tr.NewRequest("GET", "https://utas.fut.ea.com/ut/auth")
	req.Header.Set("x-wap-profile", "http://wap.samsungmobile.com/uaprof/GT-I9195.xml")
	req.Header.Set("Host", "utas.s2.fut.ea.com")

	if _, err := tr.Send(context.Background(), req); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if _, ok := client.req.Header["x-wap-profile"]; !ok {
		t.Errorf("header name was canonicalized: %v", client.req.Header)
	}
	if client.req.Host != "utas.s2.fut.ea.com" {
		t.Errorf("Host = %q, want utas.s2.fut.ea.com", client.req.Host)
	}
	if _, ok := client.req.Header["Host"]; ok {
		t.Errorf("Host must not be sent as a regular header")
	}
}

func TestTransport_RawBodyWinsOverForm(t *testing.T) {
	client := &recordingClient{}
	tr := NewTransport(client, nil)

	req, _ := tr.NewRequest("POST", "https://utas.fut.ea.com/ut/bid")
	req.Form.Set("ignored", "1")
	req.Body = []byte(`{"bid":200}`)

	if _, err := tr.Send(context.Background(), req); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if client.body != `{"bid":200}` {
		t.Errorf("body = %q, want raw json", client.body)
	}
	if ct := client.req.Header.Get("Content-Type"); ct != "" {
		t.Errorf("Content-Type = %q, want none for raw body", ct)
	}
}

func TestTransport_ClientError(t *testing.T) {
	boom := errors.New("connection refused")
	tr := NewTransport(&recordingClient{err: boom}, nil)

	req, _ := tr.NewRequest("GET", "https://utas.fut.ea.com/ut/auth")
	_, err := tr.Send(context.Background(), req)
	if !errors.Is(err, boom) {
		t.Errorf("Send error = %v, want wrapped %v", err, boom)
	}
}

func TestTransport_Non2xxIsResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, "expired session")
	}))
	defer ts.Close()

	tr := NewDefaultTransport(5*time.Second, nil)
	req, _ := tr.NewRequest("GET", ts.URL)
	resp, err := tr.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized || resp.Text() != "expired session" {
		t.Errorf("response = %d %q", resp.StatusCode, resp.Text())
	}
	if _, err := resp.JSON(); !errors.Is(err, domain.ErrInvalidJSON) {
		t.Errorf("JSON error = %v, want ErrInvalidJSON", err)
	}
}

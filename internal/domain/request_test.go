package domain

import (
	"errors"
	"testing"
)

func TestNewRequest(t *testing.T) {
	req, err := NewRequest("get", "https://utas.fut.ea.com/ut/game/fifa/user")
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	if req.Method != "GET" {
		t.Errorf("Method = %q, want GET", req.Method)
	}

	for _, bad := range []string{"/ut/game/fifa/user", "utas.fut.ea.com", "http://%zz"} {
		if _, err := NewRequest("GET", bad); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("NewRequest(%q) error = %v, want ErrInvalidURL", bad, err)
		}
	}
}

func TestNewRequest_SplitsQuery(t *testing.T) {
	req, err := NewRequest("GET", "https://h/p?start=0&num=16&start=1&q=a+b#top")
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	if req.URL != "https://h/p#top" {
		t.Errorf("URL = %q, want https://h/p#top", req.URL)
	}
	if got := req.Query.Encode(); got != "start=0&num=16&start=1&q=a+b" {
		t.Errorf("Query = %q, want start=0&num=16&start=1&q=a+b", got)
	}

	req.Query.Set("start", "20")
	if got := req.FullURL(); got != "https://h/p?start=20&num=16&q=a+b#top" {
		t.Errorf("FullURL() = %q, want https://h/p?start=20&num=16&q=a+b#top", got)
	}

	if _, err := NewRequest("GET", "https://h/p?a=%zz"); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("NewRequest with bad query escape error = %v, want ErrInvalidURL", err)
	}
}

func TestParseFields(t *testing.T) {
	got, err := ParseFields("b=2&&a=1&flag&b=3")
	if err != nil {
		t.Fatalf("ParseFields failed: %v", err)
	}
	want := Fields{{"b", "2"}, {"a", "1"}, {"flag", ""}, {"b", "3"}}
	if len(got) != len(want) {
		t.Fatalf("ParseFields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %v, want %v", i, got[i], want[i])
		}
	}

	if got, _ := ParseFields(""); got != nil {
		t.Errorf("ParseFields(\"\") = %v, want nil", got)
	}
}

func TestRequest_FullURL(t *testing.T) {
	tests := []struct {
		url   string
		query Fields
		want  string
	}{
		{"https://h/p", nil, "https://h/p"},
		{"https://h/p", Fields{{"a", "1"}, {"b", "2"}}, "https://h/p?a=1&b=2"},
		{"https://h/p?x=0", Fields{{"a", "1"}}, "https://h/p?x=0&a=1"},
		{"https://h/p?", Fields{{"a", "1"}}, "https://h/p?a=1"},
		{"https://h/p#x", Fields{{"a", "1"}}, "https://h/p?a=1#x"},
		{"https://h/p#x", nil, "https://h/p#x"},
	}
	for _, tt := range tests {
		r := &Request{URL: tt.url, Query: tt.query}
		if got := r.FullURL(); got != tt.want {
			t.Errorf("FullURL() = %q, want %q", got, tt.want)
		}
	}
}

func TestRequest_Payload(t *testing.T) {
	r := &Request{Form: Fields{{"a", "1"}}}
	body, ct := r.Payload()
	if string(body) != "a=1" || ct != "application/x-www-form-urlencoded" {
		t.Errorf("Payload() = %q, %q", body, ct)
	}

	r.Body = []byte(`{"x":1}`)
	body, ct = r.Payload()
	if string(body) != `{"x":1}` || ct != "" {
		t.Errorf("raw Payload() = %q, %q, want raw body without content type", body, ct)
	}

	if body, _ := (&Request{}).Payload(); body != nil {
		t.Errorf("empty Payload() = %q, want nil", body)
	}
}

func TestResponse_JSON(t *testing.T) {
	resp := &Response{Body: []byte(`{"credits":10,"items":[{"id":1}]}`)}
	doc, err := resp.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if doc.Get("items.0.id").Int() != 1 {
		t.Errorf("items.0.id = %v", doc.Get("items.0.id"))
	}

	resp = &Response{Body: []byte("<html>")}
	if _, err := resp.JSON(); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("JSON error = %v, want ErrInvalidJSON", err)
	}
	if resp.Text() != "<html>" {
		t.Errorf("Text() = %q", resp.Text())
	}
}

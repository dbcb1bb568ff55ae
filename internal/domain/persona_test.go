package domain

import (
	"errors"
	"testing"
)

func TestParsePersona(t *testing.T) {
	tests := []struct {
		in      string
		want    Persona
		wantErr bool
	}{
		{"WebApp", WebApp, false},
		{"webapp", WebApp, false},
		{" MOBILE ", Mobile, false},
		{"desktop", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePersona(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePersona(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("ParsePersona(%q) error = %v, want ErrInvalidConfiguration", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePersona(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{"ps", PlayStation, false},
		{"PlayStation", PlayStation, false},
		{"XBOX", Xbox, false},
		{"pc", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePlatform(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePlatform(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePlatform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDraft_EffectiveMethod(t *testing.T) {
	tests := []struct {
		name    string
		persona Persona
		draft   Draft
		want    string
	}{
		{"webapp keeps method", WebApp, Draft{Method: "POST", MethodOverride: "DELETE"}, "POST"},
		{"mobile uses override", Mobile, Draft{Method: "POST", MethodOverride: "DELETE"}, "DELETE"},
		{"mobile without override", Mobile, Draft{Method: "PUT"}, "PUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.draft.EffectiveMethod(tt.persona); got != tt.want {
				t.Errorf("EffectiveMethod() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDraft_CloneDoesNotAlias(t *testing.T) {
	d := Draft{
		AddedHeaders:   Header{{"A", "1"}},
		RemovedHeaders: []string{"Referer"},
	}
	c := d.Clone()
	c.AddedHeaders[0].Value = "2"
	c.RemovedHeaders[0] = "Accept"

	if d.AddedHeaders[0].Value != "1" || d.RemovedHeaders[0] != "Referer" {
		t.Errorf("Clone aliases the original: %+v", d)
	}
}

package tool_test

import (
	"errors"
	"net/url"
	"testing"

	"hipat/internal/domain/tool"
)

// TestBuildLaunchURL_RejectsBadSchemes tests that non-http(s) bases yield "".
func TestBuildLaunchURL_RejectsBadSchemes(t *testing.T) {
	tests := []struct {
		name string
		base string
	}{
		{name: "empty", base: ""},
		{name: "whitespace", base: "   "},
		{name: "javascript", base: "javascript:alert(1)"},
		{name: "file", base: "file:///etc/passwd"},
		{name: "data", base: "data:text/html,<h1>hi</h1>"},
		{name: "relative path", base: "/just/a/path"},
		{name: "malformed", base: "http://bad url with spaces\x7f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tool.BuildLaunchURL(tt.base, "m1", "Coach", tool.ModeLive, tool.ThemeLight)
			if got != "" {
				t.Errorf("expected empty string for %q, got %q", tt.base, got)
			}
		})
	}
}

// TestBuildLaunchURL_AppendsAllParams tests that every required query
// parameter is present with the exact value passed in.
func TestBuildLaunchURL_AppendsAllParams(t *testing.T) {
	got := tool.BuildLaunchURL("https://tools.example.com/assess?ref=abc", "m1", "Coach Alex", tool.ModeSelfService, tool.ThemeLight)
	if got == "" {
		t.Fatal("expected non-empty launch URL")
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("built URL does not parse: %v", err)
	}
	q := u.Query()
	want := map[string]string{
		"mentorId":   "m1",
		"mentorName": "Coach Alex",
		"mode":       "self-service",
		"callback":   "postMessage",
		"theme":      "light",
		"ref":        "abc", // pre-existing params survive
	}
	for k, v := range want {
		if q.Get(k) != v {
			t.Errorf("param %s: expected %q, got %q", k, v, q.Get(k))
		}
	}
}

// TestBuildLaunchURL_ExactEncoding tests the documented wire format.
func TestBuildLaunchURL_ExactEncoding(t *testing.T) {
	got := tool.BuildLaunchURL("https://tools.example.com/assess", "m1", "Coach Alex", tool.ModeLive, tool.ThemeDark)
	want := "https://tools.example.com/assess?callback=postMessage&mentorId=m1&mentorName=Coach+Alex&mode=live&theme=dark"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// TestValidateURL tests persistence-time validation.
func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "valid https", raw: "https://tools.example.com/assess", wantErr: nil},
		{name: "valid http", raw: "http://localhost:3000/tool", wantErr: nil},
		{name: "empty", raw: "", wantErr: tool.ErrEmptyURL},
		{name: "whitespace", raw: "  ", wantErr: tool.ErrEmptyURL},
		{name: "javascript", raw: "javascript:void(0)", wantErr: tool.ErrSchemeNotAllowed},
		{name: "ftp", raw: "ftp://example.com/file", wantErr: tool.ErrSchemeNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tool.ValidateURL(tt.raw)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestOrigin tests origin extraction for the message acceptance predicate.
func TestOrigin(t *testing.T) {
	got, err := tool.Origin("https://tools.example.com/assess?x=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://tools.example.com" {
		t.Errorf("expected https://tools.example.com, got %s", got)
	}

	got, err = tool.Origin("http://localhost:8443/t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "http://localhost:8443" {
		t.Errorf("expected port preserved in origin, got %s", got)
	}

	if _, err := tool.Origin(""); err == nil {
		t.Error("expected error for empty URL")
	}
	if _, err := tool.Origin("javascript:alert(1)"); err == nil {
		t.Error("expected error for javascript scheme")
	}
}

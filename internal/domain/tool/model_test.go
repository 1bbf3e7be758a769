package tool_test

import (
	"testing"

	"hipat/internal/domain/tool"
)

// TestToolValidation tests validation of Tool.
func TestToolValidation(t *testing.T) {
	tests := []struct {
		name    string
		tool    tool.Tool
		wantErr bool
	}{
		{
			name: "valid configured tool",
			tool: tool.Tool{
				ID:             "t1",
				Name:           "Body Composition",
				LiveURL:        "https://tools.example.com/body",
				SelfServiceURL: "https://tools.example.com/body/self",
				IsActive:       true,
				IsConfigured:   true,
			},
			wantErr: false,
		},
		{
			name:    "valid unconfigured tool",
			tool:    tool.Tool{ID: "t2", Name: "Sleep Assessment"},
			wantErr: false,
		},
		{
			name:    "empty name",
			tool:    tool.Tool{ID: "t3", Name: ""},
			wantErr: true,
		},
		{
			name:    "javascript live url",
			tool:    tool.Tool{ID: "t4", Name: "Bad", LiveURL: "javascript:alert(1)"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tool.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestEffectiveURL tests override precedence per mode.
func TestEffectiveURL(t *testing.T) {
	tl := tool.Tool{
		ID:             "t1",
		Name:           "Assessment",
		LiveURL:        "https://tools.example.com/live",
		SelfServiceURL: "https://tools.example.com/self",
	}

	if got := tl.EffectiveURL(tool.ModeLive, nil); got != "https://tools.example.com/live" {
		t.Errorf("live without override: got %s", got)
	}
	if got := tl.EffectiveURL(tool.ModeSelfService, nil); got != "https://tools.example.com/self" {
		t.Errorf("self-service without override: got %s", got)
	}

	o := &tool.Override{MentorID: "m1", ToolID: "t1", LiveURL: "https://mentor.example.com/live"}
	if got := tl.EffectiveURL(tool.ModeLive, o); got != "https://mentor.example.com/live" {
		t.Errorf("live override not applied: got %s", got)
	}
	// Empty override field falls back to catalog default
	if got := tl.EffectiveURL(tool.ModeSelfService, o); got != "https://tools.example.com/self" {
		t.Errorf("self-service should use catalog default: got %s", got)
	}

	if got := tl.EffectiveURL("kiosk", nil); got != "" {
		t.Errorf("unknown mode should yield empty URL, got %s", got)
	}
}

// TestUsableIn tests the usability invariant.
func TestUsableIn(t *testing.T) {
	tl := tool.Tool{ID: "t1", Name: "Assessment", LiveURL: "https://tools.example.com/live"}

	if !tl.UsableIn(tool.ModeLive, nil) {
		t.Error("expected tool usable in live mode")
	}
	if tl.UsableIn(tool.ModeSelfService, nil) {
		t.Error("expected tool not usable in self-service mode (no URL)")
	}

	bad := tool.Tool{ID: "t2", Name: "Bad", LiveURL: "javascript:alert(1)"}
	if bad.UsableIn(tool.ModeLive, nil) {
		t.Error("expected tool with javascript URL to be unusable")
	}
}

// TestDeactivateReactivate tests visibility toggling.
func TestDeactivateReactivate(t *testing.T) {
	tl := tool.Tool{ID: "t1", Name: "Assessment", IsActive: true}

	if err := tl.Deactivate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tl.IsActive {
		t.Error("expected IsActive=false after Deactivate")
	}
	if err := tl.Deactivate(); err != tool.ErrAlreadyInactive {
		t.Errorf("expected ErrAlreadyInactive, got %v", err)
	}

	if err := tl.Reactivate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tl.IsActive {
		t.Error("expected IsActive=true after Reactivate")
	}
	if err := tl.Reactivate(); err != tool.ErrAlreadyActive {
		t.Errorf("expected ErrAlreadyActive, got %v", err)
	}
}

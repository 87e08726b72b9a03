package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.SSHHost != "::" || c.SSHPort != "2222" {
		t.Errorf("unexpected listen address %s:%s", c.SSHHost, c.SSHPort)
	}
	if c.TickInterval != time.Second {
		t.Errorf("TickInterval = %s, want 1s", c.TickInterval)
	}
	if c.ColorProfile != "auto" {
		t.Errorf("ColorProfile = %q, want auto", c.ColorProfile)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("COLORGUESS_SSH_PORT", "2323")
	t.Setenv("COLORGUESS_TICK_INTERVAL", "250ms")
	t.Setenv("COLORGUESS_COLOR_PROFILE", "ansi256")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.SSHPort != "2323" {
		t.Errorf("SSHPort = %q", c.SSHPort)
	}
	if c.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %s", c.TickInterval)
	}
	if c.ColorProfile != "ansi256" {
		t.Errorf("ColorProfile = %q", c.ColorProfile)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"COLORGUESS_TICK_INTERVAL", "0s"},
		{"COLORGUESS_TICK_INTERVAL", "soon"},
		{"COLORGUESS_SSH_PORT", "70000"},
		{"COLORGUESS_COLOR_PROFILE", "sepia"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

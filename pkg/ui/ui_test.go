package ui

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, "dms-mcp/") {
		t.Errorf("UserAgent() = %q, want dms-mcp/ prefix", ua)
	}
	if !strings.Contains(ua, Version) {
		t.Errorf("UserAgent() = %q, missing version %q", ua, Version)
	}
}

func TestSilentMode(t *testing.T) {
	t.Cleanup(func() { SetSilent(false) })

	SetSilent(true)
	if !IsSilent() {
		t.Error("IsSilent() = false after SetSilent(true)")
	}
	SetSilent(false)
	if IsSilent() {
		t.Error("IsSilent() = true after SetSilent(false)")
	}
}

func TestNoColorMode(t *testing.T) {
	t.Cleanup(func() { noColorMode = false })

	SetNoColor(true)
	if !IsNoColor() {
		t.Error("IsNoColor() = false after SetNoColor(true)")
	}
}

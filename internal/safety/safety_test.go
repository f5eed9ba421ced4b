package safety_test

import (
	"testing"

	"github.com/Kshitijkb28/port-manager/internal/safety"
)

func TestValidate(t *testing.T) {
	g := safety.NewGuard([]string{"csrss.exe", "wininit.exe", "systemd"})

	tests := []struct {
		name    string
		pid     int32
		proc    string
		allowed bool
	}{
		{"pid zero refused", 0, "node.exe", false},
		{"init refused", 1, "systemd", false},
		{"low windows pid refused", 4, "System", false},
		{"never-terminate name refused", 812, "csrss.exe", false},
		{"never-terminate matching is case-insensitive", 812, "CSRSS.EXE", false},
		{"ordinary process allowed", 4567, "node.exe", true},
		{"empty name allowed above pid floor", 4567, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := g.Validate(tt.pid, tt.proc)
			if ok != tt.allowed {
				t.Errorf("Validate(%d, %q) = %v (%s), want %v", tt.pid, tt.proc, ok, reason, tt.allowed)
			}
			if !ok && reason == "" {
				t.Error("a refusal must carry a reason")
			}
		})
	}
}

func TestIsProtected(t *testing.T) {
	g := safety.NewGuard([]string{"lsass.exe"})

	if !g.IsProtected(812, "lsass.exe") {
		t.Error("listed process must be protected")
	}
	if g.IsProtected(812, "node.exe") {
		t.Error("unlisted process must not be protected")
	}
}

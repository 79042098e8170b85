package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Component: ComponentTracker, Output: &buf})

	logger.Info("Expense added", FieldExpenseName, "Rent")
	logger.WithComponent(ComponentRecurrence).Info("Reactivated recurring expense", FieldCycleDays, 25)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "component=tracker") || !strings.Contains(lines[0], "expense_name=Rent") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "component=recurrence") || strings.Contains(lines[1], "component=tracker") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf})

	logger.Info("hidden")
	logger.Debug("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info/debug leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "component=app") {
		t.Errorf("warn line missing or without default component: %q", out)
	}
}

func TestLogger_WithKeepsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Component: ComponentStorage, Output: &buf}).
		With(FieldBackend, "sqlite")

	logger.Debug("Saved expenses", FieldOperation, OpSave, FieldCount, 2)

	out := buf.String()
	for _, want := range []string{"component=storage", "backend=sqlite", "operation=save", "count=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Level != slog.LevelWarn || c.Component != ComponentApp || c.Output == nil {
		t.Errorf("DefaultConfig() = %+v", c)
	}
}

package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}

	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("expected hard cut for tiny max, got %q", got)
	}
}

func TestFilenameFromDisposition(t *testing.T) {
	header := `attachment; filename="statement-1234567890-2025-01-31.pdf"`
	if got := filenameFromDisposition(header); got != "statement-1234567890-2025-01-31.pdf" {
		t.Fatalf("unexpected filename %q", got)
	}

	if got := filenameFromDisposition("inline"); got != "" {
		t.Fatalf("expected empty filename, got %q", got)
	}

	if got := filenameFromDisposition(`attachment; filename="unterminated`); got != "" {
		t.Fatalf("expected empty filename for unterminated quote, got %q", got)
	}
}

func TestProjectDepositOutput(t *testing.T) {
	out := captureOutput(t, func() {
		projectDeposit("100000", "7.1", 12)
	})

	if !strings.Contains(out, "Maturity value: 107100.00") {
		t.Fatalf("expected projected value in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Interest:       7100.00") {
		t.Fatalf("expected interest in output, got:\n%s", out)
	}
}

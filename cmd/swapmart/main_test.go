package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/dkolesn/swapmart/internal/model"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()
	_ = w.Close()
	out, _ := io.ReadAll(r)
	return string(out)
}

func Test_truncate(t *testing.T) {
	t.Parallel()

	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate short: %q", got)
	}
	if got := truncate("a very long title indeed", 10); len([]rune(got)) != 10 || !strings.HasSuffix(got, "…") {
		t.Fatalf("truncate long: %q", got)
	}
	if got := truncate("two\nlines", 20); strings.Contains(got, "\n") {
		t.Fatalf("newlines must flatten: %q", got)
	}
}

func Test_baseName(t *testing.T) {
	t.Parallel()

	if got := baseName("avatar.png"); got != "avatar.png" {
		t.Fatalf("plain name: %q", got)
	}
	if got := baseName("/home/u/pics/avatar.png"); got != "avatar.png" {
		t.Fatalf("path: %q", got)
	}
}

func Test_renderer_EmptyStates(t *testing.T) {
	r := renderer{}

	out := captureStdout(t, func() { r.items(nil) })
	if !strings.Contains(out, "no items found") {
		t.Fatalf("empty items view: %q", out)
	}

	out = captureStdout(t, func() { r.categories(nil) })
	if !strings.Contains(out, "no categories") {
		t.Fatalf("empty categories view: %q", out)
	}

	out = captureStdout(t, func() { r.session(model.Session{}) })
	if !strings.Contains(out, "not logged in") {
		t.Fatalf("logged-out session view: %q", out)
	}
}

func Test_renderer_ItemsTable(t *testing.T) {
	r := renderer{}
	out := captureStdout(t, func() {
		r.items([]model.Item{{
			ID:            7,
			Title:         "Bike",
			PriceEstimate: "40.00",
			Location:      "Austin",
			Approval:      model.ApprovalApproved,
			Category:      model.Category{Name: "Sports"},
		}})
	})
	for _, want := range []string{"ID", "Bike", "Sports", "40.00", "approved"} {
		if !strings.Contains(out, want) {
			t.Fatalf("items table missing %q:\n%s", want, out)
		}
	}
}

func Test_renderer_SessionRestoredWithoutProfile(t *testing.T) {
	r := renderer{}
	out := captureStdout(t, func() { r.session(model.Session{Token: "tok"}) })
	if !strings.Contains(out, "token restored") {
		t.Fatalf("restored session view: %q", out)
	}
}

package conf

import (
	"errors"
	"strings"
	"testing"
)

func TestInterpolateInjectedRoot(t *testing.T) {
	doc := NewDocument()
	vars := map[string]string{RootVariable: "/work/contest"}
	got, err := doc.Interpolate("problem", "%(caideRoot)s/p.ini", vars)
	if err != nil {
		t.Fatalf("Interpolate failed: %v", err)
	}
	if got != "/work/contest/p.ini" {
		t.Errorf("got %q, want %q", got, "/work/contest/p.ini")
	}
}

func TestInterpolateSectionAndDefault(t *testing.T) {
	doc, err := ParseDocument([]byte(
		"[DEFAULT]\next = cpp\n\n[problem]\nname = A\nsource = %(name)s.%(ext)s\n"))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	got, err := doc.Interpolate("problem", "%(source)s", nil)
	if err != nil {
		t.Fatalf("Interpolate failed: %v", err)
	}
	if got != "A.cpp" {
		t.Errorf("got %q, want \"A.cpp\"", got)
	}
}

func TestInterpolateEscapedPercent(t *testing.T) {
	doc := NewDocument()
	got, err := doc.Interpolate("problem", "100%% done", nil)
	if err != nil {
		t.Fatalf("Interpolate failed: %v", err)
	}
	if got != "100% done" {
		t.Errorf("got %q, want \"100%% done\"", got)
	}
}

func TestInterpolateUnknownVariable(t *testing.T) {
	doc := NewDocument()
	_, err := doc.Interpolate("problem", "%(missing)s", nil)
	if !errors.Is(err, ErrParse) {
		t.Errorf("error = %v, want ErrParse", err)
	}
}

func TestInterpolateBadSyntax(t *testing.T) {
	doc := NewDocument()
	_, err := doc.Interpolate("problem", "50% off", nil)
	if !errors.Is(err, ErrParse) {
		t.Errorf("error = %v, want ErrParse", err)
	}
}

func TestInterpolateDepthLimit(t *testing.T) {
	doc := NewDocument()
	if err := doc.Set("loop", "a", "%(b)s"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := doc.Set("loop", "b", "%(a)s"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	_, err := doc.Interpolate("loop", "%(a)s", nil)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("error = %v, want ErrParse", err)
	}
	if !strings.Contains(err.Error(), "deep") {
		t.Errorf("error %q does not mention depth", err)
	}
}

func TestInterpolateChainWithinLimit(t *testing.T) {
	doc := NewDocument()
	// A nine-link chain stays inside the ten-level budget.
	if err := doc.Set("chain", "v0", "end"); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 9; i++ {
		key := "v" + string(rune('0'+i))
		prev := "v" + string(rune('0'+i-1))
		if err := doc.Set("chain", key, "%("+prev+")s"); err != nil {
			t.Fatal(err)
		}
	}
	got, err := doc.Interpolate("chain", "%(v9)s", nil)
	if err != nil {
		t.Fatalf("Interpolate failed: %v", err)
	}
	if got != "end" {
		t.Errorf("got %q, want \"end\"", got)
	}
}

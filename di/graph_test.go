package di

import (
	"errors"
	"reflect"
	"testing"
)

func TestVerify(t *testing.T) {
	r := newTestRegistry()
	called := false
	_ = r.RegisterValue("config", 1)
	_ = r.RegisterSingleton("db", func(c int) int { called = true; return c }, "config")
	_ = r.RegisterSingleton("cache", func(c int) int { return c }, "config")
	_ = r.RegisterInstance("svc", func(d, c int) int { return d + c }, "db", "cache")

	if err := r.Verify(); err != nil {
		t.Fatalf("expected valid graph, got %v", err)
	}
	if called {
		t.Error("Verify must not invoke factories")
	}
}

func TestVerifyMissingDependency(t *testing.T) {
	r := newTestRegistry()
	_ = r.RegisterSingleton("svc", func(d int) int { return d }, "db")

	err := r.Verify()
	var missing *DependencyNotFoundError
	if !errors.As(err, &missing) {
		t.Fatalf("expected DependencyNotFoundError, got %v", err)
	}
	if missing.Name != "db" || missing.RequestedBy != "svc" {
		t.Errorf("unexpected fields %+v", missing)
	}
}

func TestVerifyCycle(t *testing.T) {
	r := newTestRegistry()
	_ = r.RegisterSingleton("A", func(b any) any { return b }, "B")
	_ = r.RegisterSingleton("B", func(a any) any { return a }, "A")

	err := r.Verify()
	var cycle *CircularDependencyError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected CircularDependencyError, got %v", err)
	}
	if cycle.Path() != "A->B->A" {
		t.Errorf("expected A->B->A, got %q", cycle.Path())
	}
}

func TestLevels(t *testing.T) {
	r := newTestRegistry()
	_ = r.RegisterValue("config", 1)
	_ = r.RegisterValue("clock", 2)
	_ = r.RegisterSingleton("db", func(c int) int { return c }, "config")
	_ = r.RegisterSingleton("cache", func(c, k int) int { return c + k }, "config", "clock")
	_ = r.RegisterInstance("svc", func(d, c int) int { return d + c }, "db", "cache")

	levels, err := r.Levels()
	if err != nil {
		t.Fatalf("Levels failed: %v", err)
	}
	want := [][]string{
		{"clock", "config"},
		{"cache", "db"},
		{"svc"},
	}
	if !reflect.DeepEqual(levels, want) {
		t.Errorf("expected %v, got %v", want, levels)
	}
}

func TestLevelsEmpty(t *testing.T) {
	levels, err := newTestRegistry().Levels()
	if err != nil || len(levels) != 0 {
		t.Errorf("expected no levels, got %v/%v", levels, err)
	}
}

func TestLevelsReportsCycle(t *testing.T) {
	r := newTestRegistry()
	_ = r.RegisterSingleton("self", func(s any) any { return s }, "self")
	if _, err := r.Levels(); err == nil {
		t.Error("expected cycle error")
	}
}

package di

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type selfDescribing func(a, b string) string

func (selfDescribing) Dependencies() []string { return []string{"first", "second"} }

func TestExtractNames(t *testing.T) {
	tests := []struct {
		name     string
		factory  any
		explicit []string
		want     []string
		wantErr  bool
	}{
		{"explicit names win", func(x int) int { return x }, []string{"foo"}, []string{"foo"}, false},
		{"explicit names on value", 42, []string{"a", "b"}, []string{"a", "b"}, false},
		{"no params", func() int { return 1 }, nil, []string{}, false},
		{"only context", func(ctx context.Context) int { return 1 }, nil, []string{}, false},
		{"annotated", Annotate(func(a int) int { return a }, "dep"), nil, []string{"dep"}, false},
		{"annotated pointer", &Annotated{Factory: func() int { return 1 }, Names: []string{}}, nil, []string{}, false},
		{"dependent func type", selfDescribing(func(a, b string) string { return a + b }), nil, []string{"first", "second"}, false},
		{"only variadic", func(xs ...int) int { return len(xs) }, nil, []string{}, false},
		{"context and variadic", func(ctx context.Context, xs ...int) int { return len(xs) }, nil, []string{}, false},
		{"fixed before variadic needs names", func(a int, xs ...int) int { return a }, nil, nil, true},
		{"params need names", func(a, b int) int { return a + b }, nil, nil, true},
		{"not callable", "text", nil, nil, true},
		{"blank explicit name", func(a int) int { return a }, []string{""}, nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractNames(tc.factory, tc.explicit...)
			if tc.wantErr {
				var extErr *ExtractionError
				if !errors.As(err, &extErr) {
					t.Fatalf("expected ExtractionError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestExtractNamesCopiesExplicit(t *testing.T) {
	names := []string{"a", "b"}
	got, _ := ExtractNames(nil, names...)
	got[0] = "changed"
	if names[0] != "a" {
		t.Error("expected returned names to be a copy")
	}
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"single", "ModuleA", []string{"ModuleA"}},
		{"list", "ModuleA, ModuleB", []string{"ModuleA", "ModuleB"}},
		{"block comment only", "/* a comment */", []string{}},
		{"leading block comment", " /* a comment */ ModuleA", []string{"ModuleA"}},
		{"signature", "func (ModuleA, ModuleB) {", []string{"ModuleA", "ModuleB"}},
		{"named signature", "func newService(db, cache)", []string{"db", "cache"}},
		{"typed signature", "func(db *sql.DB, log *logger.Logger) *Service", []string{"db", "log"}},
		{"grouped types", "a, b string", []string{"a", "b"}},
		{"multi-line", "func (\n\tModuleB,\n\tModuleC\n)", []string{"ModuleB", "ModuleC"}},
		{
			"multi-line with comments",
			"func (\n" +
				"\t// This is a comment\n" +
				"\tModuleB, /* And an inline comment */\n" +
				"\tModuleC // One more for good measure\n" +
				"\t/* plus another on its own */\n" +
				")",
			[]string{"ModuleB", "ModuleC"},
		},
		{"trailing comma", "a, b,", []string{"a", "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseParams(tc.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParseParamsInvalidSignature(t *testing.T) {
	_, err := ParseParams("func broken")
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestCheckFactory(t *testing.T) {
	tests := []struct {
		name    string
		factory any
		names   []string
		ok      bool
	}{
		{"value", func() int { return 1 }, nil, true},
		{"value and error", func() (int, error) { return 1, nil }, nil, true},
		{"context ignored", func(ctx context.Context, a int) int { return a }, []string{"a"}, true},
		{"variadic empty", func(parts ...string) int { return len(parts) }, nil, true},
		{"variadic fixed missing", func(a int, parts ...string) int { return a }, nil, false},
		{"arity mismatch", func(a int) int { return a }, nil, false},
		{"three results", func() (int, int, error) { return 1, 2, nil }, nil, false},
		{"not a func", 1, nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reason := checkFactory(reflect.ValueOf(tc.factory), tc.names)
			if (reason == "") != tc.ok {
				t.Errorf("expected ok=%v, got reason %q", tc.ok, reason)
			}
		})
	}
}

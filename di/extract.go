package di

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/kbukum/dingu/validation"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()

	commentPattern   = regexp.MustCompile(`(?m)(//.*$)|(/\*[\s\S]*?\*/)`)
	signaturePattern = regexp.MustCompile(`^func\b[^(]*\(([\s\S]*?)\)`)
)

// Dependent is implemented by factories that carry their own dependency names.
type Dependent interface {
	Dependencies() []string
}

// Annotated pairs a factory with the names of its dependencies, in the order
// they are passed as arguments.
type Annotated struct {
	Factory any
	Names   []string
}

// Dependencies implements Dependent.
func (a Annotated) Dependencies() []string { return a.Names }

// Annotate attaches dependency names to a factory.
//
//	r.RegisterSingleton("svc", di.Annotate(NewService, "db", "cache"))
func Annotate(factory any, names ...string) Annotated {
	return Annotated{Factory: factory, Names: names}
}

// ExtractNames returns the ordered dependency names of factory.
//
// Explicit names win. Otherwise a Dependent factory reports its own names,
// and a function taking no parameters (besides an optional leading
// context.Context) has none. Anything else yields an *ExtractionError since
// parameter names are not available at runtime.
func ExtractNames(factory any, explicit ...string) ([]string, error) {
	var names []string
	switch {
	case len(explicit) > 0:
		names = explicit
	case isDependent(factory):
		names = factory.(Dependent).Dependencies()
	default:
		fn := reflect.ValueOf(unwrapFactory(factory))
		if fn.Kind() != reflect.Func {
			return nil, &ExtractionError{Reason: fmt.Sprintf("factory is %T, not a function", factory)}
		}
		n := paramCount(fn.Type())
		if fn.Type().IsVariadic() {
			n--
		}
		if n > 0 {
			return nil, &ExtractionError{Reason: fmt.Sprintf("factory takes %d parameters but no dependency names were given", n)}
		}
		return []string{}, nil
	}

	if appErr := validation.New().EntryNames("dependencies", names).Validate(); appErr != nil {
		return nil, &ExtractionError{Reason: appErr.Message}
	}
	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}

// ParseParams extracts parameter names from a textual parameter list, either
// bare ("a, b") or as a full signature ("func name(a, b)"). Comments are
// stripped from each token before it is trimmed; empty tokens are dropped.
func ParseParams(text string) ([]string, error) {
	list := strings.TrimSpace(text)
	if strings.HasPrefix(list, "func") {
		m := signaturePattern.FindStringSubmatch(list)
		if m == nil {
			return nil, &ExtractionError{Reason: "cannot locate parameter list in signature"}
		}
		list = m[1]
	}

	names := []string{}
	for _, token := range strings.Split(list, ",") {
		token = strings.TrimSpace(commentPattern.ReplaceAllString(token, ""))
		if token == "" {
			continue
		}
		// Typed parameters ("db *sql.DB") keep only the name.
		if fields := strings.Fields(token); len(fields) > 0 {
			token = fields[0]
		}
		names = append(names, token)
	}
	return names, nil
}

func isDependent(factory any) bool {
	_, ok := factory.(Dependent)
	return ok
}

// unwrapFactory returns the callable behind an Annotated value.
func unwrapFactory(factory any) any {
	switch a := factory.(type) {
	case Annotated:
		return a.Factory
	case *Annotated:
		if a != nil {
			return a.Factory
		}
	}
	return factory
}

func takesContext(t reflect.Type) bool {
	return t.NumIn() > 0 && t.In(0) == contextType
}

// paramCount is the number of parameters that are filled from dependencies.
func paramCount(t reflect.Type) int {
	if takesContext(t) {
		return t.NumIn() - 1
	}
	return t.NumIn()
}

// checkFactory verifies that fn can be called with len(names) dependencies
// and returns (T) or (T, error).
func checkFactory(fn reflect.Value, names []string) string {
	if fn.Kind() != reflect.Func {
		return "factory is not a function"
	}
	if fn.IsNil() {
		return "factory is nil"
	}
	t := fn.Type()

	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errorType {
			return "second return value must be error"
		}
	default:
		return "factory must return (value) or (value, error)"
	}

	n := paramCount(t)
	if t.IsVariadic() {
		if len(names) < n-1 {
			return fmt.Sprintf("factory needs at least %d dependencies, %d named", n-1, len(names))
		}
		return ""
	}
	if len(names) != n {
		return fmt.Sprintf("factory takes %d dependencies, %d named", n, len(names))
	}
	return ""
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_NotFound_Success(t *testing.T) {
	err := NotFound("item", "logger")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.Details["resource"] != "item" {
		t.Errorf("expected resource=item, got %v", err.Details["resource"])
	}
	if err.Details["name"] != "logger" {
		t.Errorf("expected name=logger, got %v", err.Details["name"])
	}
}

func TestAppError_NotFound_EmptyName(t *testing.T) {
	err := NotFound("item", "")
	if _, ok := err.Details["name"]; ok {
		t.Error("expected no 'name' key in details when name is empty")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	root := fmt.Errorf("connection refused")
	err := FactoryFailed("db", nil).WithCause(root)
	if !stderrors.Is(err, root) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := Validation("name: is required")
	if got := err.Error(); got != "INVALID_INPUT: name: is required" {
		t.Errorf("unexpected format %q", got)
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"circular", CircularDependency("A", "A->B->A"), ErrCodeCircularDependency, http.StatusConflict},
		{"dependency not found", DependencyNotFound("B", "A"), ErrCodeDependencyNotFound, http.StatusNotFound},
		{"locked", RegistryLocked("register", "A"), ErrCodeRegistryLocked, http.StatusConflict},
		{"extraction", ExtractionFailed("A", "no names"), ErrCodeExtractionFailed, http.StatusBadRequest},
		{"factory", FactoryFailed("A", fmt.Errorf("boom")), ErrCodeFactoryFailed, http.StatusInternalServerError},
		{"validation", Validation("name: is required"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"internal", Internal(fmt.Errorf("x")), ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if tc.err.Retryable {
				t.Errorf("%s should not be retryable", tc.code)
			}
		})
	}
}

func TestRegistryLocked_OmitsEmptyName(t *testing.T) {
	err := RegistryLocked("reset", "")
	if _, ok := err.Details["name"]; ok {
		t.Error("expected no name detail for reset")
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	err := DependencyNotFound("B", "A")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeDependencyNotFound {
		t.Errorf("expected DEPENDENCY_NOT_FOUND, got %s", resp.Error.Code)
	}
	if resp.Error.Details["requested_by"] != "A" {
		t.Errorf("expected requested_by=A, got %v", resp.Error.Details["requested_by"])
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NotFound("item", "x"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if appErr.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", appErr.Code)
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("plain error should not be an AppError")
	}
}

type codedErr struct{ name string }

func (e *codedErr) Error() string        { return "coded " + e.name }
func (e *codedErr) AppError() *AppError { return NotFound("item", e.name) }

func TestFrom(t *testing.T) {
	t.Run("nil returns nil", func(t *testing.T) {
		if From(nil) != nil {
			t.Error("expected nil")
		}
	})

	t.Run("coder is converted", func(t *testing.T) {
		err := fmt.Errorf("wrap: %w", &codedErr{name: "svc"})
		appErr := From(err)
		if appErr.Code != ErrCodeNotFound || appErr.Details["name"] != "svc" {
			t.Errorf("unexpected conversion: %+v", appErr)
		}
	})

	t.Run("app error passes through", func(t *testing.T) {
		orig := RegistryLocked("reset", "")
		if From(orig) != orig {
			t.Error("expected same AppError instance")
		}
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		cause := fmt.Errorf("plain")
		appErr := From(cause)
		if appErr.Code != ErrCodeInternal {
			t.Errorf("expected INTERNAL_ERROR, got %s", appErr.Code)
		}
		if !stderrors.Is(appErr, cause) {
			t.Error("expected cause to be preserved")
		}
	})
}

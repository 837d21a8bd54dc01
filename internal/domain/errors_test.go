package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with wrapped error",
			err:  &AppError{Code: CodePersistence, Message: "database error", Err: errors.New("connection refused")},
			want: "database error: connection refused",
		},
		{
			name: "without wrapped error",
			err:  &AppError{Code: CodeNotFound, Message: "distributor not found"},
			want: "distributor not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.want {
				t.Errorf("Error() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("inner error")
	appErr := &AppError{Code: CodePersistence, Message: "something failed", Err: inner}

	if !errors.Is(appErr, inner) {
		t.Error("Unwrap() should allow errors.Is to find wrapped error")
	}

	appErr2 := &AppError{Code: CodePersistence, Message: "no wrap"}
	if appErr2.Unwrap() != nil {
		t.Error("Unwrap() should return nil when Err is nil")
	}
}

func TestNotFoundError(t *testing.T) {
	id := uuid.MustParse("6f1c1a4e-1d2b-4c3d-9e8f-0a1b2c3d4e5f")
	err := NotFoundError("distributor", id)

	if err.Code != CodeNotFound {
		t.Errorf("Code = %d; want %d", err.Code, CodeNotFound)
	}
	if err.Entity != "distributor" {
		t.Errorf("Entity = %q; want %q", err.Entity, "distributor")
	}
	if err.ID != id.String() {
		t.Errorf("ID = %q; want %q", err.ID, id.String())
	}
	want := "distributor " + id.String() + " not found"
	if err.Error() != want {
		t.Errorf("Error() = %q; want %q", err.Error(), want)
	}
}

func TestKindHelpers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checkFn func(error) bool
	}{
		{"ErrNotFound", ErrNotFound, IsNotFound},
		{"ErrConflict", ErrConflict, IsConflict},
		{"ErrValidation", ErrValidation, IsValidation},
		{"ErrPersistence", ErrPersistence, IsPersistence},
		{"ErrUnauthorized", ErrUnauthorized, IsUnauthorized},
		{"ConflictError", ConflictError("product", "version mismatch"), IsConflict},
		{"ValidationError", ValidationError("bad criteria"), IsValidation},
		{"wrapped NotFoundError", fmt.Errorf("update: %w", NotFoundError("shipment", uuid.New())), IsNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.checkFn(tt.err) {
				t.Errorf("helper returned false for %v", tt.err)
			}
		})
	}
}

func TestKindHelpers_RejectOtherCodes(t *testing.T) {
	if IsNotFound(ErrConflict) {
		t.Error("IsNotFound(ErrConflict) should be false")
	}
	if IsConflict(errors.New("plain")) {
		t.Error("IsConflict(plain error) should be false")
	}
	if IsPersistence(nil) {
		t.Error("IsPersistence(nil) should be false")
	}
}

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFoundError("product", uuid.New()), http.StatusNotFound},
		{"conflict", ErrConflict, http.StatusConflict},
		{"validation", ErrValidation, http.StatusBadRequest},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests},
		{"persistence", ErrPersistence, http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", ErrConflict), http.StatusConflict},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusCode(tt.err); got != tt.want {
				t.Errorf("HTTPStatusCode() = %d; want %d", got, tt.want)
			}
		})
	}
}

package pkg

import (
	"net/http"
	"strings"
	"testing"
)

type statusInput struct {
	Status string `json:"status" binding:"omitempty,status"`
}

func TestIsStatus(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"PENDING", true},
		{"IN_TRANSIT", true},
		{"STAGE2", true},
		{"pending", false},
		{"_PENDING", false},
		{"", false},
		{"APPROVED ", false},
		{"A_VERY_LONG_STATUS_CODE_OVER_LIMIT", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsStatus(tt.in); got != tt.want {
				t.Errorf("IsStatus(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	if got := NormalizeStatus("  approved\t"); got != "APPROVED" {
		t.Errorf("NormalizeStatus() = %q, want %q", got, "APPROVED")
	}
}

func TestRegisterValidators_StatusRule(t *testing.T) {
	if err := RegisterValidators(); err != nil {
		t.Fatalf("RegisterValidators() error: %v", err)
	}
	if err := RegisterValidators(); err != nil {
		t.Fatalf("second RegisterValidators() error: %v", err)
	}

	c, w := newResponseTestContextWithBody(`{"status":"approved"}`)
	var in statusInput
	if BindAndValidate(c, &in) {
		t.Fatal("BindAndValidate() = true, want false for lower-case status")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"Must be an upper-case status code"`) {
		t.Errorf("body = %s, want status field message", w.Body.String())
	}

	c, _ = newResponseTestContextWithBody(`{"status":"APPROVED"}`)
	if !BindAndValidate(c, &in) {
		t.Fatal("BindAndValidate() = false, want true for upper-case status")
	}

	c, _ = newResponseTestContextWithBody(`{}`)
	if !BindAndValidate(c, &in) {
		t.Fatal("BindAndValidate() = false, want true for omitted status")
	}
}

package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeValidation, "bad check")
	if err.Code != ErrCodeValidation {
		t.Errorf("expected code %s, got %s", ErrCodeValidation, err.Code)
	}
	if err.Error() != "VALIDATION_FAILED: bad check" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAppError_Validation_CheckID(t *testing.T) {
	err := Validation("disk", "broken")
	if err.Details["check_id"] != "disk" {
		t.Errorf("expected check_id=disk, got %v", err.Details["check_id"])
	}

	setLevel := Validation("", "ids must be unique")
	if _, ok := setLevel.Details["check_id"]; ok {
		t.Error("expected no check_id for a set-level violation")
	}
}

func TestAppError_Config_WrapsCause(t *testing.T) {
	err := Config("invalid configuration").WithCause(fmt.Errorf("sensu: check_path is required"))
	if err.Code != ErrCodeConfig {
		t.Errorf("expected CONFIG_INVALID, got %s", err.Code)
	}
	if !strings.Contains(err.Error(), "check_path is required") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestAppError_MissingField(t *testing.T) {
	err := MissingField("check_1", "interval")
	if err.Message != "Health check 'check_1' is missing field 'interval'" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["field"] != "interval" {
		t.Errorf("expected field=interval, got %v", err.Details["field"])
	}
}

func TestAppError_ScriptNotFound_IncludesPath(t *testing.T) {
	err := ScriptNotFound("healthchecks/consul/scripts/check.sh")
	if !strings.Contains(err.Error(), "healthchecks/consul/scripts/check.sh") {
		t.Errorf("expected path in message, got %q", err.Error())
	}
	if err.Code != ErrCodeScriptNotFound {
		t.Errorf("expected SCRIPT_NOT_FOUND, got %s", err.Code)
	}
}

func TestAppError_PluginNotFound_ListsSearchPaths(t *testing.T) {
	err := PluginNotFound("check-disk.rb", []string{"/a", "/b"})
	if !strings.Contains(err.Message, "[/a /b]") {
		t.Errorf("expected search paths in message, got %q", err.Message)
	}
}

func TestAppError_Registration_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Registration("Consul", "http_check", cause)
	if err.Unwrap() != cause {
		t.Error("expected cause to be unwrapped")
	}
	if !strings.Contains(err.Error(), "Failed to register Consul health check 'http_check'") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := DefinitionSource("healthchecks/sensu/healthchecks.yml", "not a mapping").WithDetails(map[string]any{
		"extra": "info",
	})
	if err.Details["extra"] != "info" {
		t.Error("expected extra=info in details")
	}
	if err.Details["source"] != "healthchecks/sensu/healthchecks.yml" {
		t.Error("original source detail should be preserved")
	}
}

func TestAppError_WithDetail_NilDetails(t *testing.T) {
	err := New(ErrCodeConfig, "boom").WithDetail("k", "v")
	if err.Details["k"] != "v" {
		t.Errorf("expected k=v, got %v", err.Details["k"])
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", Validation("a", "b"))

	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to find wrapped AppError")
	}
	if appErr.Code != ErrCodeValidation {
		t.Errorf("expected VALIDATION_FAILED, got %s", appErr.Code)
	}
	if !IsAppError(wrapped) {
		t.Error("IsAppError should be true for wrapped AppError")
	}
	if !HasCode(wrapped, ErrCodeValidation) {
		t.Error("HasCode should match VALIDATION_FAILED")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeValidation) {
		t.Error("HasCode should be false for plain errors")
	}
}

func TestIsPreflightCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{ErrCodeDefinitionSource, true},
		{ErrCodeValidation, true},
		{ErrCodeScriptNotFound, true},
		{ErrCodeRegistration, false},
		{ErrCodeConfig, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			if got := IsPreflightCode(tc.code); got != tc.want {
				t.Errorf("IsPreflightCode(%s) = %v, want %v", tc.code, got, tc.want)
			}
		})
	}
}

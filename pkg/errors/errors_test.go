package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError(t *testing.T) {
	cause := errors.New("exit status 1")

	tests := []struct {
		name    string
		err     *Error
		code    Code
		message string
		text    string
	}{
		{
			name:    "new",
			err:     New(ErrCodeInvalidAssetID, "asset id %q contains a path separator", "a/b"),
			code:    ErrCodeInvalidAssetID,
			message: `asset id "a/b" contains a path separator`,
			text:    `INVALID_ASSET_ID: asset id "a/b" contains a path separator`,
		},
		{
			name:    "wrap",
			err:     Wrap(ErrCodeExportFailed, cause, "sketchtool exited"),
			code:    ErrCodeExportFailed,
			message: "sketchtool exited",
			text:    "EXPORT_FAILED: sketchtool exited: exit status 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
			if got := tt.err.Error(); got != tt.text {
				t.Errorf("Error() = %q, want %q", got, tt.text)
			}
		})
	}

	if wrapped := Wrap(ErrCodeExportFailed, cause, "sketchtool exited"); !errors.Is(wrapped, cause) {
		t.Error("wrapped error should match its cause")
	}
}

func TestCodeLookup(t *testing.T) {
	inner := New(ErrCodeInvalidFormat, "decode document")
	outer := Wrap(ErrCodeInvalidInput, inner, "read newsletter.json")
	stdWrapped := fmt.Errorf("convert: %w", New(ErrCodeFileNotFound, "open doc.json"))

	tests := []struct {
		name    string
		err     error
		code    Code
		is      Code
		userErr bool
		message string
	}{
		{"outermost code wins", outer, ErrCodeInvalidInput, ErrCodeInvalidInput, true, "read newsletter.json"},
		{"through fmt wrapping", stdWrapped, ErrCodeFileNotFound, ErrCodeFileNotFound, true, "open doc.json"},
		{"collaborator failure", New(ErrCodeExportFailed, "no assets written"), ErrCodeExportFailed, ErrCodeExportFailed, false, "no assets written"},
		{"internal", New(ErrCodeInternal, "bug"), ErrCodeInternal, ErrCodeInternal, false, "bug"},
		{"plain error", errors.New("disk full"), "", "", false, "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.is != "" && !Is(tt.err, tt.is) {
				t.Errorf("Is(%s) = false", tt.is)
			}
			if Is(tt.err, ErrCodeUnsupported) {
				t.Error("Is(UNSUPPORTED) = true")
			}
			if got := IsUserError(tt.err); got != tt.userErr {
				t.Errorf("IsUserError() = %v, want %v", got, tt.userErr)
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestNilError(t *testing.T) {
	if Is(nil, ErrCodeInvalidInput) || GetCode(nil) != "" || IsUserError(nil) {
		t.Error("nil error should carry no code")
	}
}

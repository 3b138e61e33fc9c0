package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrHalted marks a clean, user-requested stop. It is not a failure.
var ErrHalted = errors.New("halted")

// Halt returns an error that stops the pipeline without failing it.
func Halt(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrHalted)
}

// IsHalt reports whether err requests a clean stop.
func IsHalt(err error) bool {
	return errors.Is(err, ErrHalted)
}

// Error codes, one per fatal diagnostic.
const (
	// Preconditions
	ErrCodeRootUser               = "ROOT_USER"
	ErrCodeSudoUnavailable        = "SUDO_UNAVAILABLE"
	ErrCodeUserUnknown            = "USER_UNKNOWN"
	ErrCodeOSReleaseMissing       = "OS_RELEASE_MISSING"
	ErrCodePlatformUnsupported    = "PLATFORM_UNSUPPORTED"
	ErrCodePlatformVersionInvalid = "PLATFORM_VERSION_INVALID"
	ErrCodePlatformTooOld         = "PLATFORM_TOO_OLD"

	// Package index and dependencies
	ErrCodeAptUpdateFailed         = "APT_UPDATE_FAILED"
	ErrCodeDependencyInstallFailed = "DEPENDENCY_INSTALL_FAILED"

	// Repository
	ErrCodeKeyringDirFailed       = "KEYRING_DIR_FAILED"
	ErrCodeKeyFetchFailed         = "KEY_FETCH_FAILED"
	ErrCodeKeyPermissionsFailed   = "KEY_PERMISSIONS_FAILED"
	ErrCodeKeyFingerprintMismatch = "KEY_FINGERPRINT_MISMATCH"
	ErrCodeArchDetectFailed       = "ARCH_DETECT_FAILED"
	ErrCodeSourceListFailed       = "SOURCE_LIST_FAILED"
	ErrCodeAptRepoUpdateFailed    = "APT_REPO_UPDATE_FAILED"

	// Packages
	ErrCodePackageInstallFailed = "PACKAGE_INSTALL_FAILED"

	// Post-install
	ErrCodeGroupAddFailed      = "GROUP_ADD_FAILED"
	ErrCodeServiceEnableFailed = "SERVICE_ENABLE_FAILED"
	ErrCodeServiceStartFailed  = "SERVICE_START_FAILED"
	ErrCodeConfigDirFailed     = "CONFIG_DIR_FAILED"

	// Verification
	ErrCodeEngineNotResponding = "ENGINE_NOT_RESPONDING"
	ErrCodeVersionParse        = "VERSION_PARSE"
)

// StageError is a fatal stage failure with a stable code and an actionable suggestion.
type StageError struct {
	Code       string // Error code for categorization
	Message    string // User-friendly error message
	StageID    string // Stage ID if applicable
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *StageError) Error() string {
	msg := e.Message
	if e.StageID != "" {
		msg = fmt.Sprintf("stage %q: %s", e.StageID, msg)
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error chain support.
func (e *StageError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *StageError) Is(target error) bool {
	var t *StageError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted error with all details.
func (e *StageError) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.StageID != "" {
		fmt.Fprintf(&b, "\n  Stage: %s", e.StageID)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, "\n  Cause: %s", e.Underlying.Error())
	}

	return b.String()
}

// NewStageError creates a new StageError with the given code and message.
func NewStageError(code, message string) *StageError {
	return &StageError{
		Code:    code,
		Message: message,
	}
}

// WithStageID returns a new StageError with stage ID set.
func (e *StageError) WithStageID(stageID string) *StageError {
	c := *e
	c.StageID = stageID
	return &c
}

// WithSuggestion returns a new StageError with suggestion set.
func (e *StageError) WithSuggestion(suggestion string) *StageError {
	c := *e
	c.Suggestion = suggestion
	return &c
}

// WithUnderlying returns a new StageError wrapping another error.
func (e *StageError) WithUnderlying(err error) *StageError {
	c := *e
	c.Underlying = err
	return &c
}

// CodeOf returns the code of the first StageError in err's chain, or "".
func CodeOf(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// CommandFailed builds a StageError for an external command that exited non-zero.
// stderr is trimmed and attached as the cause when present.
func CommandFailed(code, message, stderr string) *StageError {
	e := NewStageError(code, message)
	if s := strings.TrimSpace(stderr); s != "" {
		e.Underlying = errors.New(s)
	}
	return e
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Failure codes for configuration problems.
const (
	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    = "CONFIG_INVALID"
	ErrCodeConfigParse      = "CONFIG_PARSE"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
)

// UserError is a configuration problem the operator can fix.
type UserError struct {
	Code       string
	Message    string
	Context    string // file, file and line, or setting name
	Suggestion string
	Underlying error
}

func (e *UserError) Error() string {
	if e.Context == "" {
		return e.Message
	}
	return e.Message + " (at " + e.Context + ")"
}

func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is matches another UserError by code.
func (e *UserError) Is(target error) bool {
	t, ok := target.(*UserError)
	return ok && t.Code == e.Code
}

// Format renders the error with its code, location and hint on separate lines.
func (e *UserError) Format() string {
	lines := []string{fmt.Sprintf("[%s] %s", e.Code, e.Message)}
	if e.Context != "" {
		lines = append(lines, "  Location: "+e.Context)
	}
	if e.Suggestion != "" {
		lines = append(lines, "  Suggestion: "+e.Suggestion)
	}
	return strings.Join(lines, "\n")
}

// NewUserError creates a UserError.
func NewUserError(code, message string) *UserError {
	return &UserError{Code: code, Message: message}
}

// WithContext returns a copy of e located at ctx.
func (e *UserError) WithContext(ctx string) *UserError {
	c := *e
	c.Context = ctx
	return &c
}

// WithSuggestion returns a copy of e carrying a hint.
func (e *UserError) WithSuggestion(suggestion string) *UserError {
	c := *e
	c.Suggestion = suggestion
	return &c
}

// WithUnderlying returns a copy of e wrapping err.
func (e *UserError) WithUnderlying(err error) *UserError {
	c := *e
	c.Underlying = err
	return &c
}

// ValidationErrors collects every invalid setting found by Config.Validate.
type ValidationErrors []*UserError

func (v ValidationErrors) add(setting, problem, suggestion string) ValidationErrors {
	return append(v, &UserError{
		Code:       ErrCodeValidationFailed,
		Message:    setting + ": " + problem,
		Context:    setting,
		Suggestion: suggestion,
	})
}

func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	if len(v) == 1 {
		return v[0].Error()
	}
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return fmt.Sprintf("%d invalid settings: %s", len(v), strings.Join(msgs, "; "))
}

// Unwrap exposes each entry to errors.Is and errors.As.
func (v ValidationErrors) Unwrap() []error {
	out := make([]error, len(v))
	for i, e := range v {
		out[i] = e
	}
	return out
}

// Format renders one block per invalid setting.
func (v ValidationErrors) Format() string {
	blocks := make([]string, 0, len(v))
	for _, e := range v {
		blocks = append(blocks, e.Format())
	}
	return strings.Join(blocks, "\n")
}

// NewConfigNotFoundError reports a DOCKERUP_CONFIG path that does not exist.
func NewConfigNotFoundError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigNotFound,
		Message:    "configuration file not found: " + path,
		Context:    path,
		Suggestion: "Check the path in DOCKERUP_CONFIG, or unset it to use the built-in defaults.",
	}
}

// NewUnsupportedFormatError reports a configuration file with an unknown extension.
func NewUnsupportedFormatError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigParse,
		Message:    "unsupported configuration format",
		Context:    path,
		Suggestion: "Use a .yaml, .yml or .toml file.",
	}
}

// NewInvalidEnvError reports an environment override that cannot be parsed.
func NewInvalidEnvError(name, value, expected string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigInvalid,
		Message:    fmt.Sprintf("invalid value %q for %s", value, name),
		Context:    name,
		Suggestion: fmt.Sprintf("Set %s to %s.", name, expected),
	}
}

// IsUserError reports whether err wraps a UserError with code.
func IsUserError(err error, code string) bool {
	ue := GetUserError(err)
	return ue != nil && ue.Code == code
}

// GetUserError returns the first UserError in err's chain, or nil.
func GetUserError(err error) *UserError {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue
	}
	return nil
}

const unknownKeyHint = "Remove the key or check its spelling against the documented settings."

// yamlHints maps yaml.v3 error fragments to operator-facing messages.
var yamlHints = []struct {
	fragments  []string
	message    string
	suggestion string
}{
	{[]string{"not found in type"}, "unknown configuration key", unknownKeyHint},
	{[]string{"cannot unmarshal !!seq", "cannot unmarshal !!map"}, "expected a single value", "Every setting is a scalar, written as 'key: value'."},
	{[]string{"invalid duration"}, "invalid duration", `Durations look like "90s" or "5m".`},
	{[]string{"mapping values are not allowed", "did not find expected key"}, "invalid YAML structure", "Check for a missing colon or a stray indent."},
	{[]string{"found character that cannot start"}, "invalid character in YAML", "Quote values that contain ':', '#' or '{'."},
}

// NewYAMLParseError turns a yaml.v3 decoding failure into a UserError.
func NewYAMLParseError(path string, err error) *UserError {
	ue := &UserError{
		Code:       ErrCodeConfigParse,
		Message:    "invalid YAML syntax",
		Context:    path,
		Suggestion: "Settings are flat 'key: value' pairs; see the documented keys.",
		Underlying: err,
	}

	text := err.Error()
hints:
	for _, h := range yamlHints {
		for _, f := range h.fragments {
			if strings.Contains(text, f) {
				ue.Message, ue.Suggestion = h.message, h.suggestion
				break hints
			}
		}
	}

	if _, rest, ok := strings.Cut(text, "line "); ok {
		line, _, _ := strings.Cut(rest, ":")
		ue.Context = fmt.Sprintf("%s (line %s)", path, line)
	}
	return ue
}

// NewTOMLParseError turns a go-toml decoding failure into a UserError.
func NewTOMLParseError(path string, err error) *UserError {
	ue := &UserError{
		Code:       ErrCodeConfigParse,
		Message:    "invalid TOML syntax",
		Context:    path,
		Suggestion: "Settings are 'key = value' pairs and strings must be quoted.",
		Underlying: err,
	}

	var decodeErr *toml.DecodeError
	var strictErr *toml.StrictMissingError
	switch {
	case errors.As(err, &decodeErr):
		row, _ := decodeErr.Position()
		ue.Context = fmt.Sprintf("%s (line %d)", path, row)
	case errors.As(err, &strictErr):
		ue.Message, ue.Suggestion = "unknown configuration key", unknownKeyHint
	}
	return ue
}

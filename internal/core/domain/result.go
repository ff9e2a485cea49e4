package domain

import "errors"

// ErrorInfo is the error payload of a failed CliResult.
type ErrorInfo struct {
	Code    ErrorCode `json:"code" yaml:"code"`
	Message string    `json:"message" yaml:"message"`
	Hint    string    `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// CliResult is the outcome of one command invocation. It is a tagged
// union on OK: successes carry Message/Data/TextLines/ExitCodeOverride,
// failures carry Error. Build values with Success and Failure so exactly
// one shape is populated.
type CliResult struct {
	OK      bool   `json:"ok" yaml:"ok"`
	Command string `json:"command,omitempty" yaml:"command,omitempty"`

	Message          string   `json:"message,omitempty" yaml:"message,omitempty"`
	Data             any      `json:"data,omitempty" yaml:"data,omitempty"`
	TextLines        []string `json:"textLines,omitempty" yaml:"textLines,omitempty"`
	ExitCodeOverride *int     `json:"exitCodeOverride,omitempty" yaml:"exitCodeOverride,omitempty"`

	Error *ErrorInfo `json:"error,omitempty" yaml:"error,omitempty"`
}

// SuccessOption customises a successful result.
type SuccessOption func(*CliResult)

// WithMessage sets the one-line message.
func WithMessage(msg string) SuccessOption {
	return func(r *CliResult) { r.Message = msg }
}

// WithData attaches structured data.
func WithData(data any) SuccessOption {
	return func(r *CliResult) { r.Data = data }
}

// WithTextLines sets the lines printed in text mode.
func WithTextLines(lines ...string) SuccessOption {
	return func(r *CliResult) { r.TextLines = lines }
}

// WithExitCode forces the process exit code of a successful result.
func WithExitCode(code int) SuccessOption {
	return func(r *CliResult) { r.ExitCodeOverride = &code }
}

// Success builds an ok:true result.
func Success(command string, opts ...SuccessOption) CliResult {
	r := CliResult{OK: true, Command: command}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Failure builds an ok:false result.
func Failure(command string, code ErrorCode, message, hint string) CliResult {
	return CliResult{
		OK:      false,
		Command: command,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Hint:    hint,
		},
	}
}

// FailureFromError converts an error into a failed result. DomainErrors
// keep their code and hint; anything else is INTERNAL_ERROR.
func FailureFromError(command string, err error, fallbackHint string) CliResult {
	var de *DomainError
	if errors.As(err, &de) && de.Code.Valid() {
		return Failure(command, de.Code, de.UserMessage(), de.Hint)
	}
	return Failure(command, CodeInternal, err.Error(), fallbackHint)
}

// ExitCode returns ExitCodeOverride, or 0 when unset.
func (r CliResult) ExitCode() int {
	if r.ExitCodeOverride != nil {
		return *r.ExitCodeOverride
	}
	return 0
}

// BatchEntry records one sub-command of a batch run. Entries are appended
// in submission order and never modified afterwards.
type BatchEntry struct {
	Index      int       `json:"index" yaml:"index"`
	Raw        string    `json:"command" yaml:"command"`
	Argv       []string  `json:"argv" yaml:"argv"`
	Result     CliResult `json:"result" yaml:"result"`
	DurationMs int64     `json:"durationMs" yaml:"durationMs"`
}

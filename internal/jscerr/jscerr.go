// Package jscerr implements the toolchain's error taxonomy: a small
// machine-readable code, a human message, and an optional wrapped cause,
// marshaling to a flat JSON shape for --json output.
package jscerr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Code is the error kind. These mirror the recovery table: everything but
// IO, Config and Internal is recorded as a diagnostic and never surfaces as
// a Go error; IO aborts the file, Config aborts the run, and a lint rule
// that panics is skipped for the rest of that file.
type Code string

const (
	CodeIO       Code = "io"
	CodeLex      Code = "lex"
	CodeParse    Code = "parse"
	CodeSemantic Code = "semantic"
	CodeLint     Code = "lint"
	CodeConfig   Code = "config"
	CodeInternal Code = "internal"
)

// Error is the one concrete error type the core returns across package
// boundaries.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Detail  error  `json:"-"`
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Detail != nil {
		return fmt.Sprintf("%s: %v", msg, e.Detail)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Detail }

// MarshalJSON flattens Detail into the message so the JSON shape stays a
// single level.
func (e *Error) MarshalJSON() ([]byte, error) {
	type flat struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
		Path    string `json:"path,omitempty"`
	}
	return json.Marshal(flat{Code: e.Code, Message: e.Error(), Path: e.Path})
}

// New creates an Error with no cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Detail: cause}
}

// WithPath returns a copy carrying the file the error belongs to.
func (e *Error) WithPath(path string) *Error {
	cp := *e
	cp.Path = path
	return &cp
}

// CodeOf extracts the Code from any error in err's chain, defaulting to
// CodeInternal for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// ExitCode maps an error chain to the CLI exit codes: configuration and
// I/O failures are 3, anything else internal is also 3 (the run did not
// complete); diagnostics-driven exit codes 0-2 are computed by the driver
// from severities, not from errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 3
}

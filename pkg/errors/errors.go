// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// Error is a status-coded error with an optional cause and call site.
type Error struct {
	Code     Status
	Message  string
	Cause    error
	CallSite *CallSite
}

// CallSite records where an error was produced.
type CallSite struct {
	FuncName string
	File     string
	Line     int
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Code
}

// Is returns true if the target is a Status or *Error with the same code.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case Status:
		return e.Code == t
	case *Error:
		return e.Code == t.Code
	}
	return false
}

func (e *Error) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('+') && e.CallSite != nil {
		fmt.Fprintf(f, "%s\n%s\n\t%s:%d", e.Error(), e.CallSite.FuncName, e.CallSite.File, e.CallSite.Line)
		return
	}
	fmt.Fprint(f, e.Error())
}

// With constructs an error from a set of values.
func (s Status) With(v ...interface{}) *Error {
	e := s.new(2)
	e.Message = fmt.Sprint(v...)
	return e
}

// WithFormat constructs an error from a format string. If the format wraps an
// error with %w, the wrapped error becomes the cause.
func (s Status) WithFormat(format string, args ...interface{}) *Error {
	err := fmt.Errorf(format, args...)
	e := s.new(2)
	e.Message = err.Error()
	if u, ok := err.(interface{ Unwrap() error }); ok {
		e.Cause = u.Unwrap()
	}
	return e
}

// WithCauseAndFormat constructs an error from a cause and a format string.
func (s Status) WithCauseAndFormat(cause error, format string, args ...interface{}) *Error {
	e := s.new(2)
	e.Message = fmt.Sprintf(format, args...)
	e.Cause = cause
	return e
}

// Wrap wraps an error with a status code. Wrapping nil returns nil, and
// re-wrapping an error that already carries this code returns it unchanged.
func (s Status) Wrap(err error) error {
	if err == nil {
		// The return type must be `error`, otherwise this nil misbehaves in
		// comparisons
		return nil
	}
	if e, ok := err.(*Error); ok && e.Code == s {
		return err
	}
	e := s.new(2)
	e.Cause = err
	return e
}

func (s Status) new(skip int) *Error {
	e := &Error{Code: s}
	if pc, file, line, ok := runtime.Caller(skip); ok {
		site := &CallSite{File: file, Line: line}
		if fn := runtime.FuncForPC(pc); fn != nil {
			site.FuncName = fn.Name()
		}
		e.CallSite = site
	}
	return e
}

// Code returns the status code of an error: OK for nil, the innermost known
// status for coded errors, and UnknownError otherwise.
func Code(err error) Status {
	if err == nil {
		return OK
	}
	for ; err != nil; err = errors.Unwrap(err) {
		switch e := err.(type) {
		case *Error:
			if e.Code.IsKnownError() {
				return e.Code
			}
		case Status:
			return e
		}
	}
	return UnknownError
}

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

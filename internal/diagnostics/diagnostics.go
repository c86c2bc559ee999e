package diagnostics

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tarn-lang/tarn/internal/token"
)

type ErrorCode string

// Parser errors
const (
	ErrP001 ErrorCode = "P001" // UnbalancedGenericDelimiter
	ErrP002 ErrorCode = "P002" // AmbiguousConstGeneric
	ErrP003 ErrorCode = "P003" // unexpected token
	ErrP004 ErrorCode = "P004" // no prefix parse rule
	ErrP005 ErrorCode = "P005" // malformed literal
)

// Type errors
const (
	ErrT001 ErrorCode = "T001" // PatternAnnotationMismatch
	ErrT002 ErrorCode = "T002" // AmbiguousBindingUnion
	ErrT003 ErrorCode = "T003" // LetElseFallthrough
	ErrT004 ErrorCode = "T004" // refutable pattern without else
	ErrT005 ErrorCode = "T005" // duplicate binding name in pattern
	ErrT006 ErrorCode = "T006" // unknown name
	ErrT007 ErrorCode = "T007" // duplicate type declaration
)

// Cast errors
const (
	ErrC001 ErrorCode = "C001" // NoReliableCast
	ErrC002 ErrorCode = "C002" // UnresolvedCastTarget
	ErrC003 ErrorCode = "C003" // bit-width mismatch
	ErrC004 ErrorCode = "C004" // operator not applicable
)

var messages = map[ErrorCode]string{
	ErrP001: "unbalanced generic argument delimiter: %s",
	ErrP002: "ambiguous comparison or shift in const generic argument: parenthesize the expression",
	ErrP003: "unexpected token %q, expected %s",
	ErrP004: "no expression can start with %q",
	ErrP005: "malformed literal: %s",

	ErrT001: "pattern annotation mismatch: declared %s, found %s",
	ErrT002: "'||' is not allowed in a binding condition: a union of matches has no single binding type",
	ErrT003: "else block of a let-else must diverge: %s can complete normally",
	ErrT004: "refutable pattern %s requires an else clause",
	ErrT005: "binding %q appears more than once in this pattern",
	ErrT006: "unknown name %q",
	ErrT007: "type %q is already declared",

	ErrC001: "no reliable cast from %s to %s%s",
	ErrC002: "cast target cannot be inferred here: annotate the destination type",
	ErrC003: "bit cast requires identical widths: %s is %d bits, %s is %d bits",
	ErrC004: "operator %q does not apply to %s",
}

// DiagnosticError is a single coded compile-time diagnostic. Fatal to
// its compilation unit, never to sibling units. Unit identifies the
// originating compilation unit; the pipeline backfills it together
// with File once the unit is known.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	File    string
	Unit    uuid.UUID
	Line    int
	Column  int
}

func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	format, ok := messages[code]
	if !ok {
		format = "%v"
	}
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("[%s] %s:%d:%d: %s", e.Code, e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("[%s] %d:%d: %s", e.Code, e.Line, e.Column, e.Message)
}

// FragmentError tags a diagnostic produced while elaborating a token
// fragment handed over by the macro expander. Both the definition site
// (the diagnostic position) and the invocation site are attributed.
type FragmentError struct {
	Diagnostic *DiagnosticError
	MacroName  string
	CallSite   token.Token
}

func (e *FragmentError) Error() string {
	return fmt.Sprintf("%s (in expansion of %s, invoked at %s)",
		e.Diagnostic.Error(), e.MacroName, e.CallSite.Pos())
}

// Package uhdmio provides shared error handling, options, and the binary
// stream codec used by the UHDM core packages (wire, eval) and the CLI.
package uhdmio

import (
	"fmt"
	"os"
)

// ErrKind is the closed error taxonomy of §7. Every error the core raises
// carries one of these kinds plus a message and up to two offending nodes.
type ErrKind string

const (
	ErrUnsupportedExpr       ErrKind = "UHDM_UNSUPPORTED_EXPR"
	ErrUnsupportedStmt       ErrKind = "UHDM_UNSUPPORTED_STMT"
	ErrUndefinedPatternKey   ErrKind = "UHDM_UNDEFINED_PATTERN_KEY"
	ErrUnmatchedPatternField ErrKind = "UHDM_UNMATCHED_FIELD_IN_PATTERN_ASSIGN"
	ErrDivideByZero          ErrKind = "UHDM_DIVIDE_BY_ZERO"
	ErrOutOfBound            ErrKind = "UHDM_INTERNAL_ERROR_OUT_OF_BOUND"
	ErrUndefinedUserFunction ErrKind = "UHDM_UNDEFINED_USER_FUNCTION"
)

// Diag records a single error-handler invocation. It doubles as the
// non-fatal diagnostic record (mirrors the teacher's dartfmt.Diag) for
// passes that want to accumulate rather than print immediately.
type Diag struct {
	Kind      ErrKind
	Msg       string
	Primary   any // ir.Node of the offending construct, or nil
	Secondary any // ir.Node of a related construct, or nil
}

func (d Diag) String() string {
	return fmt.Sprintf("[%s] %s", d.Kind, d.Msg)
}

// ErrorHandler is the single per-serializer error callback of §6.3/§7.
// A node is passed as `any` (instead of a concrete ir.Node) so that this
// ambient package stays free of a dependency on ir.
type ErrorHandler func(kind ErrKind, msg string, primary, secondary any)

// DefaultErrorHandler prints to stderr, matching the teacher's convention
// of diagnostics going straight to os.Stderr rather than through a logging
// framework.
func DefaultErrorHandler(kind ErrKind, msg string, primary, secondary any) {
	fmt.Fprintf(os.Stderr, "uhdm: %s: %s\n", kind, msg)
}

// Diags accumulates diagnostics for callers that want to collect rather
// than act on each one immediately (e.g. a muted reduction pass that still
// wants a trailing report).
type Diags struct {
	items []Diag
}

func (d *Diags) Add(kind ErrKind, msg string, primary, secondary any) {
	d.items = append(d.items, Diag{Kind: kind, Msg: msg, Primary: primary, Secondary: secondary})
}

func (d *Diags) Addf(kind ErrKind, primary any, format string, args ...any) {
	d.items = append(d.items, Diag{Kind: kind, Msg: fmt.Sprintf(format, args...), Primary: primary})
}

func (d *Diags) Items() []Diag { return d.items }
func (d *Diags) Len() int      { return len(d.items) }

// RecordingHandler returns an ErrorHandler that appends to d, for use as an
// error-handler test double across package tests (mirrors the teacher's
// error-handler_test.cpp fixture).
func (d *Diags) RecordingHandler() ErrorHandler {
	return func(kind ErrKind, msg string, primary, secondary any) {
		d.Add(kind, msg, primary, secondary)
	}
}

// Mode controls how strictly passes react to recoverable problems.
type Mode int

const (
	// ModeBestEffort continues past recoverable problems, routing them
	// through the ErrorHandler, and yields a partial/invalid result.
	ModeBestEffort Mode = iota
	// ModeStrict is recorded in Options, but no pass in this module reads
	// Mode: reduction continues past recoverable problems in either mode.
	ModeStrict
)

// Options controls parsing/reduction/elaboration behavior across packages.
type Options struct {
	Mode        Mode
	MaxSteps    int // evalFunc statement-step cap; 0 = default (multi-concat uses MultiConcatCap)
	MaxBitWidth int // UHDM_MAX_BIT_WIDTH cap; 0 = default
	OnError     ErrorHandler
	MuteErrors  bool
}

// DefaultMaxSteps bounds evalFunc statement execution the same way the teacher's DefaultMaxSteps bounds
// cluster/alloc parsing loops.
const DefaultMaxSteps = 10_000_000

// DefaultMaxBitWidth is UHDM_MAX_BIT_WIDTH from §7.
const DefaultMaxBitWidth = 1 << 20 // 1M

// MultiConcatCap is the hard cap on `{n{x}}` tiling from §4.6.4/§9.7.
const MultiConcatCap = 1000

func (o Options) EffectiveMaxSteps() int {
	if o.MaxSteps > 0 {
		return o.MaxSteps
	}
	return DefaultMaxSteps
}

func (o Options) EffectiveMaxBitWidth() int {
	if o.MaxBitWidth > 0 {
		return o.MaxBitWidth
	}
	return DefaultMaxBitWidth
}

func (o Options) Handler() ErrorHandler {
	if o.OnError != nil {
		return o.OnError
	}
	return DefaultErrorHandler
}

// Report dispatches through the configured handler unless errors are muted.
func (o Options) Report(kind ErrKind, msg string, primary, secondary any) {
	if o.MuteErrors {
		return
	}
	o.Handler()(kind, msg, primary, secondary)
}

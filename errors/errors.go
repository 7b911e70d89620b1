package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // transfer option parsing
	PhaseTransfer Phase = "transfer" // value classification and dispatch
	PhaseCopy     Phase = "copy"     // deep copy / snapshot codecs
	PhaseSettle   Phase = "settle"   // promise bridge settlement
	PhaseDeliver  Phase = "deliver"  // destination-side delivery
	PhaseRealm    Phase = "realm"    // realm lifecycle and scheduling
)

// Kind categorizes the error
type Kind string

const (
	KindOptionConflict  Kind = "option_conflict"
	KindNonTransferable Kind = "non_transferable"
	KindAbandoned       Kind = "abandoned"
	KindTornDown        Kind = "torn_down"
	KindUnsupported     Kind = "unsupported"
	KindInvalidData     Kind = "invalid_data"
	KindInterrupted     Kind = "interrupted"
	KindWrongRealm      Kind = "wrong_realm"
	KindDepthExceeded   Kind = "depth_exceeded"
	KindCircular        Kind = "circular"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Realm  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Realm != "" {
		b.WriteString(" (realm ")
		b.WriteString(e.Realm)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the value path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Realm sets the realm name
func (b *Builder) Realm(name string) *Builder {
	b.err.Realm = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OptionConflict reports mutually exclusive transfer-kind flags.
func OptionConflict(flags ...string) *Error {
	quoted := make([]string, len(flags))
	for i, f := range flags {
		quoted[i] = "`" + f + "`"
	}
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindOptionConflict,
		Detail: fmt.Sprintf("only one of %s may be set", strings.Join(quoted, ", ")),
		Value:  flags,
	}
}

// NonTransferable reports that strict dispatch found no valid representation.
func NonTransferable() *Error {
	return &Error{
		Phase:  PhaseTransfer,
		Kind:   KindNonTransferable,
		Detail: "a non-transferable value was passed",
	}
}

// Abandoned reports a source-side bridge destroyed before settlement.
func Abandoned() *Error {
	return &Error{
		Phase:  PhaseSettle,
		Kind:   KindAbandoned,
		Detail: "promise was abandoned",
	}
}

// TornDown reports an operation against a realm that is shutting down or gone.
func TornDown(realm string) *Error {
	return &Error{
		Phase:  PhaseRealm,
		Kind:   KindTornDown,
		Realm:  realm,
		Detail: "realm is torn down",
	}
}

// Unsupported reports a value shape the codec cannot represent.
func Unsupported(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Path:   path,
		Detail: what,
	}
}

// InvalidData reports malformed input.
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// Interrupted reports script execution cut short.
func Interrupted(realm, reason string) *Error {
	return &Error{
		Phase:  PhaseRealm,
		Kind:   KindInterrupted,
		Realm:  realm,
		Detail: reason,
	}
}

// WrongRealm reports a realm-bound value touched from the wrong realm.
func WrongRealm(want, got string) *Error {
	return &Error{
		Phase:  PhaseTransfer,
		Kind:   KindWrongRealm,
		Detail: fmt.Sprintf("value belongs to realm %s, not %s", want, got),
	}
}

// DepthExceeded reports a value graph deeper than the codec allows.
func DepthExceeded(path []string, max int) *Error {
	return &Error{
		Phase:  PhaseCopy,
		Kind:   KindDepthExceeded,
		Path:   path,
		Detail: fmt.Sprintf("value graph exceeds depth limit %d", max),
	}
}

// Circular reports a cycle in a value graph the codec cannot represent.
func Circular(phase Phase, path []string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCircular,
		Path:   path,
		Detail: "circular structure",
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// IsKind reports whether err is a structured error of the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// IsAbandoned reports whether err carries an abandonment.
func IsAbandoned(err error) bool { return IsKind(err, KindAbandoned) }

// IsNonTransferable reports whether err carries a failed strict dispatch.
func IsNonTransferable(err error) bool { return IsKind(err, KindNonTransferable) }

// IsOptionConflict reports whether err carries conflicting transfer options.
func IsOptionConflict(err error) bool { return IsKind(err, KindOptionConflict) }

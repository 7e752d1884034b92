// Package channelargs provides the immutable channel-argument container
// consumed by the credentials layer.
//
// A Set is an ordered list of typed key/value arguments describing how a
// channel should be established. Sets are immutable after construction: the
// only way to derive a new Set is CopyAndAppend, which leaves the receiver
// untouched. This makes a Set safe to share across concurrent connection
// attempts without synchronization.
//
// Lookup semantics follow argument insertion order: the first argument whose
// key and type match wins, even if a later argument carries the same key.
package channelargs

// Kind discriminates the value type carried by an Arg.
type Kind int

const (
	// KindString is an argument carrying a string value.
	KindString Kind = iota
	// KindInt is an argument carrying an integer value.
	KindInt
)

// Arg is a single typed key/value argument. Construct with String or Int.
type Arg struct {
	key  string
	kind Kind
	str  string
	num  int
}

// String creates a string-typed argument.
func String(key, value string) Arg {
	return Arg{key: key, kind: KindString, str: value}
}

// Int creates an integer-typed argument.
func Int(key string, value int) Arg {
	return Arg{key: key, kind: KindInt, num: value}
}

// Key returns the argument's key.
func (a Arg) Key() string { return a.key }

// Kind returns the argument's value type.
func (a Arg) Kind() Kind { return a.kind }

// StringValue returns the string value and true if the argument is
// string-typed.
func (a Arg) StringValue() (string, bool) {
	if a.kind != KindString {
		return "", false
	}
	return a.str, true
}

// IntValue returns the integer value and true if the argument is
// integer-typed.
func (a Arg) IntValue() (int, bool) {
	if a.kind != KindInt {
		return 0, false
	}
	return a.num, true
}

// Set is an immutable ordered collection of arguments.
//
// A nil *Set is a valid empty set: all methods treat it the same as a Set
// with no arguments.
type Set struct {
	args []Arg
}

// New builds a Set from the given arguments. The argument slice is copied;
// later changes to the caller's slice do not affect the Set.
func New(args ...Arg) *Set {
	s := &Set{}
	if len(args) > 0 {
		s.args = make([]Arg, len(args))
		copy(s.args, args)
	}
	return s
}

// Len returns the number of arguments in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.args)
}

// Args returns a copy of the arguments in insertion order.
func (s *Set) Args() []Arg {
	if s == nil || len(s.args) == 0 {
		return nil
	}
	out := make([]Arg, len(s.args))
	copy(out, s.args)
	return out
}

// FindString returns the value of the first string-typed argument with the
// given key. Arguments with a matching key but a different type are skipped.
func (s *Set) FindString(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, a := range s.args {
		if a.key == key && a.kind == KindString {
			return a.str, true
		}
	}
	return "", false
}

// FindInt returns the value of the first integer-typed argument with the
// given key.
func (s *Set) FindInt(key string) (int, bool) {
	if s == nil {
		return 0, false
	}
	for _, a := range s.args {
		if a.key == key && a.kind == KindInt {
			return a.num, true
		}
	}
	return 0, false
}

// CopyAndAppend returns a new Set holding the receiver's arguments followed
// by extra, in order. The receiver is never modified; the returned Set shares
// no storage with it.
func (s *Set) CopyAndAppend(extra ...Arg) *Set {
	n := s.Len()
	out := &Set{args: make([]Arg, 0, n+len(extra))}
	if s != nil {
		out.args = append(out.args, s.args...)
	}
	out.args = append(out.args, extra...)
	return out
}

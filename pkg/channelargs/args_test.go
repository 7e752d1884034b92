package channelargs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/tlscreds/pkg/channelargs"
)

func TestSet_FindString_FirstMatchWins(t *testing.T) {
	t.Parallel()

	s := channelargs.New(
		channelargs.String("a", "first"),
		channelargs.Int("b", 1),
		channelargs.String("a", "second"),
	)

	v, ok := s.FindString("a")
	require.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestSet_FindString_SkipsMismatchedType(t *testing.T) {
	t.Parallel()

	s := channelargs.New(
		channelargs.Int("key", 7),
		channelargs.String("key", "value"),
	)

	v, ok := s.FindString("key")
	require.True(t, ok)
	assert.Equal(t, "value", v, "integer-typed argument with the same key must be skipped")

	n, ok := s.FindInt("key")
	require.True(t, ok)
	assert.Equal(t, 7, n)
}

func TestSet_FindString_Absent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		set  *channelargs.Set
	}{
		{"nil set", nil},
		{"empty set", channelargs.New()},
		{"no matching key", channelargs.New(channelargs.String("other", "x"))},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, ok := tt.set.FindString("key")
			assert.False(t, ok)
		})
	}
}

func TestSet_CopyAndAppend_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	orig := channelargs.New(channelargs.String("a", "1"))
	derived := orig.CopyAndAppend(channelargs.String("b", "2"))

	assert.Equal(t, 1, orig.Len(), "receiver must not grow")
	assert.Equal(t, 2, derived.Len())

	_, ok := orig.FindString("b")
	assert.False(t, ok, "appended argument must not be visible through the receiver")

	v, ok := derived.FindString("b")
	require.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestSet_CopyAndAppend_NilReceiver(t *testing.T) {
	t.Parallel()

	var s *channelargs.Set
	derived := s.CopyAndAppend(channelargs.String("a", "1"))

	require.Equal(t, 1, derived.Len())
	v, ok := derived.FindString("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestSet_Invariant_OrderPreserved(t *testing.T) {
	t.Parallel()

	s := channelargs.New(
		channelargs.String("a", "1"),
		channelargs.String("b", "2"),
	).CopyAndAppend(channelargs.String("c", "3"))

	args := s.Args()
	require.Len(t, args, 3)
	assert.Equal(t, "a", args[0].Key())
	assert.Equal(t, "b", args[1].Key())
	assert.Equal(t, "c", args[2].Key())
}

func TestNew_CopiesCallerSlice(t *testing.T) {
	t.Parallel()

	input := []channelargs.Arg{channelargs.String("a", "1")}
	s := channelargs.New(input...)

	input[0] = channelargs.String("a", "mutated")

	v, ok := s.FindString("a")
	require.True(t, ok)
	assert.Equal(t, "1", v, "set must not alias the caller's slice")
}

package keypad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keys builds events from a compact key string, e.g. "12+3=".
func keys(t *testing.T, seq string) []Event {
	t.Helper()
	events := make([]Event, 0, len(seq))
	for _, r := range seq {
		var (
			ev Event
			ok bool
		)
		switch r {
		case '<':
			ev, ok = FromKey("Backspace")
		case '!':
			ev, ok = FromKey("Escape")
		default:
			ev, ok = FromKey(string(r))
		}
		require.True(t, ok, "unmapped key %q", r)
		events = append(events, ev)
	}
	return events
}

func run(t *testing.T, seq string) State {
	t.Helper()
	s, err := ApplyAll(NewState(), keys(t, seq)...)
	require.NoError(t, err)
	return s
}

func TestDigitsAppend(t *testing.T) {
	s := run(t, "123")
	assert.Equal(t, "123", s.DisplayText)
	assert.Equal(t, PhaseOperandEntered, s.Phase())
}

func TestLeadingZeroIsReplaced(t *testing.T) {
	assert.Equal(t, "0", run(t, "00").DisplayText)
	assert.Equal(t, "7", run(t, "07").DisplayText)
}

func TestDecimalIsIdempotentWithinEntry(t *testing.T) {
	s := run(t, "1..2")
	assert.Equal(t, "1.2", s.DisplayText)
	assert.True(t, s.DecimalEntered)
}

func TestDecimalOnFreshEntryStartsAtZero(t *testing.T) {
	assert.Equal(t, "0.5", run(t, ".5").DisplayText)
	assert.Equal(t, "0.5", run(t, "3+.5").DisplayText)

	s := run(t, "3+.5=")
	assert.Equal(t, "3.5", s.DisplayText)
	assert.True(t, s.DecimalEntered)
}

func TestDecimalAfterFractionalResultStartsFreshEntry(t *testing.T) {
	assert.Equal(t, "0.2", run(t, "1.5+1=.2").DisplayText)
	assert.Equal(t, "0.25", run(t, "1.5+.25").DisplayText)
	assert.Equal(t, "1.75", run(t, "1.5+.25=").DisplayText)
}

func TestAddThenEquals(t *testing.T) {
	s := run(t, "5+3=")

	assert.Equal(t, "8", s.DisplayText)
	require.NotNil(t, s.PendingOperand)
	assert.Equal(t, 8.0, *s.PendingOperand)
	assert.Equal(t, OpNone, s.PendingOperator)
	assert.True(t, s.AwaitingFreshEntry)
	assert.False(t, s.DecimalEntered)
	assert.Equal(t, PhaseResultShown, s.Phase())
}

func TestDivisionByZeroShowsErrorThenFreshEntry(t *testing.T) {
	s := run(t, "5/0=")
	assert.Equal(t, DivisionByZeroText, s.DisplayText)
	assert.Equal(t, PhaseError, s.Phase())
	assert.Nil(t, s.PendingOperand)

	s, err := Apply(s, Digit(7))
	require.NoError(t, err)
	assert.Equal(t, "7", s.DisplayText)
	assert.Equal(t, PhaseOperandEntered, s.Phase())
}

func TestErrorStateIgnoresOperatorsAndBackspace(t *testing.T) {
	s := run(t, "5/0=")

	next, err := ApplyAll(s, keys(t, "+<=")...)
	require.NoError(t, err)
	assert.Equal(t, s, next)
}

func TestChainedEvaluation(t *testing.T) {
	s := run(t, "2+3*")
	assert.Equal(t, "5", s.DisplayText)
	assert.Equal(t, OpMultiply, s.PendingOperator)
	require.NotNil(t, s.PendingOperand)
	assert.Equal(t, 5.0, *s.PendingOperand)

	s = run(t, "2+3*4=")
	assert.Equal(t, "20", s.DisplayText)
}

func TestChainedDivisionByZero(t *testing.T) {
	s := run(t, "8/0+")
	assert.Equal(t, DivisionByZeroText, s.DisplayText)
	assert.Equal(t, OpNone, s.PendingOperator)

	s = run(t, "8/0+2=")
	assert.Equal(t, "2", s.DisplayText)
}

func TestOperatorReplacesPendingOperator(t *testing.T) {
	s := run(t, "6+-*")
	assert.Equal(t, OpMultiply, s.PendingOperator)
	assert.Equal(t, "6", s.DisplayText)

	assert.Equal(t, "12", run(t, "6+-*2=").DisplayText)
}

func TestOperatorAfterResultReusesIt(t *testing.T) {
	assert.Equal(t, "4", run(t, "5+3=/2=").DisplayText)
}

func TestDigitAfterResultStartsNewCalculation(t *testing.T) {
	s := run(t, "5+3=2")
	assert.Equal(t, "2", s.DisplayText)
	assert.Nil(t, s.PendingOperand)

	assert.Equal(t, "6", run(t, "5+3=2+4=").DisplayText)
}

func TestRepeatedEqualsIsNoop(t *testing.T) {
	once := run(t, "5+3=")
	twice := run(t, "5+3==")
	assert.Equal(t, once, twice)
}

func TestEqualsWithoutOperatorIsNoop(t *testing.T) {
	assert.Equal(t, run(t, "42"), run(t, "42="))
	assert.Equal(t, NewState(), run(t, "="))
}

func TestEqualsRightAfterOperatorUsesDisplayedOperand(t *testing.T) {
	assert.Equal(t, "10", run(t, "5+=").DisplayText)
}

func TestBackspace(t *testing.T) {
	assert.Equal(t, "1", run(t, "12<").DisplayText)
	assert.Equal(t, "0", run(t, "1<").DisplayText)
	assert.Equal(t, "0", run(t, "<").DisplayText)
	assert.Equal(t, "0", run(t, "1<<<").DisplayText)

	s := run(t, "1.5<")
	assert.Equal(t, "1.", s.DisplayText)
	assert.True(t, s.DecimalEntered)

	s = run(t, "1.5<<")
	assert.Equal(t, "1", s.DisplayText)
	assert.False(t, s.DecimalEntered)

	s = run(t, "1.5<<.7")
	assert.Equal(t, "1.7", s.DisplayText)
}

func TestBackspaceNegativeSignFloorsToZero(t *testing.T) {
	s := State{DisplayText: "-5"}
	s, err := Apply(s, Backspace())
	require.NoError(t, err)
	assert.Equal(t, "0", s.DisplayText)
}

func TestBackspaceIgnoredAfterResult(t *testing.T) {
	assert.Equal(t, run(t, "12+3="), run(t, "12+3=<"))
	assert.Equal(t, "12", run(t, "12+<").DisplayText)
}

func TestClearResetsToInitialState(t *testing.T) {
	for _, seq := range []string{"", "123", "1.5+2", "5/0=", "9*9=", "7+8*"} {
		assert.Equal(t, NewState(), run(t, seq+"!"), seq)
	}
}

func TestDecimalInvariantHolds(t *testing.T) {
	for _, seq := range []string{"1.2", "1.2<", "1.2<<", "3+.", "3+.4=", "5/0=", "1.5*2=", "1.5+", "1.5+2", "0.5*3=/", "1/4=", "1/4=+"} {
		s := run(t, seq)
		assert.Equal(t, s.DecimalEntered, containsDot(s.DisplayText), seq)
	}
}

func containsDot(s string) bool {
	for _, r := range s {
		if r == '.' {
			return true
		}
	}
	return false
}

func TestApplyDoesNotAliasPendingOperand(t *testing.T) {
	s := run(t, "5+")
	next, err := Apply(s, Digit(1))
	require.NoError(t, err)

	*next.PendingOperand = 99
	assert.Equal(t, 5.0, *s.PendingOperand)
}

func TestApplyRejectsInvalidEvents(t *testing.T) {
	bad := []Event{
		{Kind: "square"},
		{Kind: KindDigit, Digit: "a"},
		{Kind: KindDigit, Digit: "12"},
		{Kind: KindOperator, Operator: "pow"},
		{Kind: KindOperator},
	}
	for _, ev := range bad {
		s, err := Apply(NewState(), ev)
		assert.ErrorIs(t, err, ErrInvalidEvent, "%+v", ev)
		assert.Equal(t, NewState(), s)
	}
}

func TestApplyAllReportsFailingIndex(t *testing.T) {
	s, err := ApplyAll(NewState(), Digit(4), Event{Kind: "bogus"}, Digit(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event 1")
	assert.Equal(t, "4", s.DisplayText)
}

func TestCorruptPendingOperatorSurfacesError(t *testing.T) {
	s := State{PendingOperand: operand(1), PendingOperator: "pow", DisplayText: "2"}
	_, err := Apply(s, Equals())
	assert.ErrorIs(t, err, ErrInvalidOperator)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{8, "8"},
		{-2.5, "-2.5"},
		{0.30000000000000004, "0.30000000000000004"},
		{1.0 / 3, "0.3333333333333333"},
		{1e21, "1e+21"},
		{1e-7, "1e-07"},
		{123456789012, "123456789012"},
		{math.Copysign(0, -1), "0"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatNumber(tc.in))
	}
}

func TestInfinityResultCanChain(t *testing.T) {
	s := State{PendingOperand: operand(math.MaxFloat64), PendingOperator: OpMultiply, DisplayText: "10"}
	s, err := ApplyAll(s, Equals(), Press(OpAdd), Digit(1), Equals())
	require.NoError(t, err)
	assert.Equal(t, "Infinity", s.DisplayText)
}

package keypad

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateJSONLayout(t *testing.T) {
	s := State{
		PendingOperand:     operand(2.5),
		PendingOperator:    OpDivide,
		DisplayText:        "4",
		AwaitingFreshEntry: false,
		DecimalEntered:     false,
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"pending_operand": 2.5,
		"pending_operator": "divide",
		"display_text": "4",
		"awaiting_fresh_entry": false,
		"decimal_entered": false
	}`, string(data))

	var back State
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, back)
}

func TestStateJSONOmitsAbsentOperand(t *testing.T) {
	data, err := json.Marshal(NewState())
	require.NoError(t, err)
	assert.JSONEq(t, `{"display_text":"0","awaiting_fresh_entry":false,"decimal_entered":false}`, string(data))

	var back State
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, NewState(), back)
}

func TestStateJSONNonFiniteOperand(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1)} {
		s := State{PendingOperand: operand(v), DisplayText: FormatNumber(v), AwaitingFreshEntry: true}

		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"pending_operand":"`+FormatNumber(v)+`"`)

		var back State
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, s, back)
	}

	data, err := json.Marshal(State{PendingOperand: operand(math.NaN())})
	require.NoError(t, err)

	var back State
	require.NoError(t, json.Unmarshal(data, &back))
	require.NotNil(t, back.PendingOperand)
	assert.True(t, math.IsNaN(*back.PendingOperand))
}

func TestStateJSONRejectsGarbageOperand(t *testing.T) {
	var s State
	assert.Error(t, json.Unmarshal([]byte(`{"pending_operand":"lots"}`), &s))
}

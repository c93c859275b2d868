package lux

import (
	"bytes"
	"math"
	"testing"

	"github.com/oarkflow/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalTokens(t *testing.T) {
	data, err := MarshalTokens(Scan(`x = "s";`, nil))
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 5)
	assert.Equal(t, "IDENTIFIER", got[0]["type"])
	assert.Equal(t, "x", got[0]["lexeme"])
	assert.Equal(t, float64(1), got[0]["line"])
	assert.NotContains(t, got[0], "literal")
	assert.Equal(t, "STRING", got[2]["type"])
	assert.Equal(t, "s", got[2]["literal"])
	assert.Equal(t, "EOF", got[4]["type"])
}

func TestMarshalProgram(t *testing.T) {
	stmts := parseClean(t, "var a = 1 + 2;\nfun f(x) { return x; }")
	data, err := MarshalProgram(stmts)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)

	assert.Equal(t, "Var", got[0]["type"])
	assert.Equal(t, "a", got[0]["name"])
	initializer, ok := got[0]["initializer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Binary", initializer["type"])
	assert.Equal(t, "+", initializer["operator"])
	left := initializer["left"].(map[string]any)
	assert.Equal(t, "Literal", left["type"])
	assert.Equal(t, "Number", left["kind"])
	assert.Equal(t, float64(1), left["value"])

	assert.Equal(t, "Function", got[1]["type"])
	assert.Equal(t, "f", got[1]["name"])
	assert.Equal(t, float64(2), got[1]["line"])
	assert.Equal(t, []any{"x"}, got[1]["params"])
	body := got[1]["body"].([]any)
	require.Len(t, body, 1)
	assert.Equal(t, "Return", body[0].(map[string]any)["type"])
}

func TestMarshalProgramOptionalNodes(t *testing.T) {
	data, err := MarshalProgram(parseClean(t, "var a; if (a) x; return;"))
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 3)
	assert.Nil(t, got[0]["initializer"])
	assert.Nil(t, got[1]["else"])
	assert.Nil(t, got[2]["value"])
}

func TestDiagnosticsJSONRoundTrip(t *testing.T) {
	diags := []Diagnostic{
		{Phase: PhaseScan, Line: 1, Message: "Unterminated String"},
		{Phase: PhaseParse, Line: 2, Message: "Expect expression. at '+'"},
		{Phase: PhaseRuntime, Line: 3, Message: "Variable not found: x"},
	}
	data, err := MarshalDiagnostics(diags)
	require.NoError(t, err)
	back, err := UnmarshalDiagnostics(data)
	require.NoError(t, err)
	assert.Equal(t, diags, back)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]any{"a": []int{1, 2}}))
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}\n", buf.String())

	assert.Error(t, WriteJSON(&buf, make(chan int)))
}

func TestWriteIndentedDumps(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTokens(&buf, Scan("var", nil)))
	assert.Contains(t, buf.String(), "\n    \"type\": \"VAR\"")

	buf.Reset()
	require.NoError(t, WriteProgram(&buf, parseClean(t, "x;")))
	assert.Contains(t, buf.String(), "\"type\": \"Expression\"")

	buf.Reset()
	require.NoError(t, WriteDiagnostics(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	diags := []Diagnostic{{Phase: PhaseParse, Line: 3, Message: "Expect expression. at ';'"}}
	require.NoError(t, WriteDiagnostics(&buf, diags))
	back, err := UnmarshalDiagnostics(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, diags, back)
}

func TestValueJSONNonFinite(t *testing.T) {
	assert.Equal(t, "inf", valueJSON(Number(math.Inf(1))))
	assert.Nil(t, valueJSON(Nil))
	assert.Equal(t, true, valueJSON(Boolean(true)))
}

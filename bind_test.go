package lux

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type celsius float64

func TestBindGo(t *testing.T) {
	natives := DefaultNatives()
	for _, n := range []*Native{
		MustBindGo("upper", strings.ToUpper),
		MustBindGo("repeat", strings.Repeat),
		MustBindGo("half", func(n int) int { return n / 2 }),
		MustBindGo("toF", func(c celsius) celsius { return c*9/5 + 32 }),
		MustBindGo("both", func(a, b bool) bool { return a && b }),
		MustBindGo("kind", func(v Value) string { return kindOf(v).String() }),
		MustBindGo("divide", func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, errors.New("division by zero")
			}
			return a / b, nil
		}),
		MustBindGo("noop", func() {}),
		MustBindGo("fail", func(msg string) error {
			if msg == "" {
				return nil
			}
			return errors.New(msg)
		}),
		MustBindGo("maybe", func(s string) *string { return nil }),
	} {
		require.NoError(t, natives.Register(n))
	}

	tests := []struct {
		source   string
		want     string
		messages []string
	}{
		{`print(upper("abc"));`, "ABC\n", nil},
		{`print(repeat("ab", 3));`, "ababab\n", nil},
		{`print(half(7));`, "3\n", nil},
		{`print(toF(100));`, "212\n", nil},
		{`print(both(true, false));`, "false\n", nil},
		{`print(kind(clock));`, "Callable\n", nil},
		{`print(divide(1, 4));`, "0.25\n", nil},
		{`print(divide(1, 0));`, "NIL\n", []string{"divide: division by zero"}},
		{`print(noop());`, "NIL\n", nil},
		{`print(fail(""));`, "NIL\n", nil},
		{`print(fail("boom"));`, "NIL\n", []string{"fail: boom"}},
		{`print(maybe("x"));`, "NIL\n", nil},
		{`print(half("x"));`, "NIL\n", []string{`half: argument 1: strconv.Atoi: parsing "x": invalid syntax`}},
		{`print(both(1, true));`, "NIL\n", []string{"both: argument 1: cannot convert 1 to bool"}},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			out, diags := runScript(t, tt.source, WithNatives(natives))
			assert.Equal(t, tt.want, out)
			if tt.messages == nil {
				assert.Empty(t, diags)
				return
			}
			assert.Equal(t, tt.messages, messages(diags))
		})
	}
}

func TestBindGoArity(t *testing.T) {
	n, err := BindGo("pair", func(a, b string) string { return a + b })
	require.NoError(t, err)
	assert.Equal(t, 2, n.Arity())
	assert.Equal(t, "<native fn pair>", n.String())
}

func TestBindGoRejects(t *testing.T) {
	tests := []struct {
		name string
		fn   any
	}{
		{"not a func", 42},
		{"nil", nil},
		{"variadic", func(xs ...int) int { return len(xs) }},
		{"second result not error", func() (int, int) { return 1, 2 }},
		{"too many results", func() (int, int, error) { return 1, 2, nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BindGo("bad", tt.fn)
			assert.Error(t, err)
		})
	}
}

package tinylang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRoundTrip ports the string -> Display round-trip fixtures from
// tinylang/parser.rs's test_expr.
func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		`1`,
		`L"Population"`,
		`R"Capital"`,
		`not L"IsCapital"?`,
		`-1`,
		`(1 + 2) * 3`,
		`1 + 2 * 3`,
		`L"A" == R"B"`,
		`L"A" < R"B" and R"B" < L"C"`,
		`L"Lat" <-> R"Lat"`,
		`D"2020-01-01"`,
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			e, err := Parse(src)
			require.NoError(t, err)
			printed := e.String()

			e2, err := Parse(printed)
			require.NoError(t, err, "re-parsing printed form %q", printed)
			assert.Equal(t, printed, e2.String(), "round trip did not stabilize")
		})
	}
}

func TestParseNegativeCases(t *testing.T) {
	cases := []string{
		`(1 + 2`,
		`1 + `,
		`1 2`,
		`X"foo"`,
		`"unprefixed"`,
		`()`,
		`1)`,
		``,
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src)
			assert.Error(t, err)
		})
	}
}

func TestBindingPowerLeftAssociative(t *testing.T) {
	e, err := Parse(`1 - 2 - 3`)
	require.NoError(t, err)
	// left-associative: (1 - 2) - 3
	require.Equal(t, ExprBinary, e.Kind)
	assert.Equal(t, BinSub, e.BinOp)
	require.Equal(t, ExprBinary, e.Lhs.Kind)
	assert.Equal(t, BinSub, e.Lhs.BinOp)
	assert.Equal(t, 1.0, e.Lhs.Lhs.Number)
	assert.Equal(t, 2.0, e.Lhs.Rhs.Number)
	assert.Equal(t, 3.0, e.Rhs.Number)
}

func TestPrecedence(t *testing.T) {
	e, err := Parse(`1 or 2 and 3`)
	require.NoError(t, err)
	require.Equal(t, ExprBinary, e.Kind)
	assert.Equal(t, BinOr, e.BinOp)
	assert.Equal(t, BinAnd, e.Rhs.BinOp)
}

func TestPostfixIsNotNull(t *testing.T) {
	e, err := Parse(`L"X"?`)
	require.NoError(t, err)
	require.Equal(t, ExprUnary, e.Kind)
	assert.Equal(t, UnBool, e.UnOp)
}

package tester_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/programme-lv/runner/internal/tester"
)

func TestParseTests(t *testing.T) {
	cases, err := tester.ParseTests("1\n2\n\n--\n\n3\n\n===\n4\n\n--\n\n5\n\n")
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, tester.TestCase{Input: "1\n2", Expected: "3"}, cases[0])
	assert.Equal(t, tester.TestCase{Input: "4", Expected: "5"}, cases[1])
}

func TestParseTests_SingleCase(t *testing.T) {
	cases, err := tester.ParseTests("abc\n--\nxyz")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, tester.TestCase{Input: "abc", Expected: "xyz"}, cases[0])
}

// Only the first -- line splits input from answer; later ones belong to
// the answer text.
func TestParseTests_SeparatorInAnswer(t *testing.T) {
	cases, err := tester.ParseTests("in\n--\nfirst\n--\nsecond")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "in", cases[0].Input)
	assert.Equal(t, "first\n--\nsecond", cases[0].Expected)
}

func TestParseTests_EmptyFields(t *testing.T) {
	cases, err := tester.ParseTests("\n--\n\n")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Empty(t, cases[0].Input)
	assert.Empty(t, cases[0].Expected)
}

func TestParseTests_MissingSeparator(t *testing.T) {
	_, err := tester.ParseTests("no field separator at all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test case 1")
}

func TestParseTests_MissingSeparatorInLaterCase(t *testing.T) {
	_, err := tester.ParseTests("a\n--\nb\n===\nbroken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test case 2")
}

func TestParseTests_EmptyBlob(t *testing.T) {
	_, err := tester.ParseTests("")
	require.Error(t, err)
}

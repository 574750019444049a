package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runParseCommand(t *testing.T, args ...string) string {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(append([]string{"parse"}, args...))
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestParseCmd_ExtractsBareYear(t *testing.T) {
	out := runParseCommand(t, "We moved to Lisbon in 2019")

	assert.Contains(t, out, "2019")
	assert.Contains(t, out, "We moved to Lisbon in 2019")
	assert.Contains(t, out, "2019-01-01")
}

func TestParseCmd_MonthNameDate(t *testing.T) {
	out := runParseCommand(t, "Born March 1987")

	assert.Contains(t, out, "1987")
	assert.Contains(t, out, "1987-03-01")
}

func TestParseCmd_NoDateShowsNone(t *testing.T) {
	out := runParseCommand(t, "Something without a date")

	assert.Contains(t, out, "none")
}

func TestParseCmd_LongDescriptionTruncatedTitle(t *testing.T) {
	long := "This description is deliberately much longer than fifty characters to trigger truncation"
	out := runParseCommand(t, long)

	assert.Contains(t, out, "...")
}

func TestParseCmd_RequiresArgument(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"parse"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	assert.Error(t, rootCmd.Execute())
}

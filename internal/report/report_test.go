package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhartunian/brcagg/internal/stats"
)

func table() stats.Table {
	return stats.Table{
		"Paris":    {Min: 10, Max: 20, Sum: 30, Count: 2},
		"Oslo":     {Min: 5.5, Max: 5.5, Sum: 5.5, Count: 1},
		"Abidjan":  {Min: -3.31, Max: 31.04, Sum: 55.5, Count: 4},
		"San José": {Min: 0, Max: 0, Sum: 0, Count: 3},
	}
}

func TestBraces(t *testing.T) {
	assert.Equal(t,
		"{Abidjan=-3.3/13.9/31.0, Oslo=5.5/5.5/5.5, Paris=10.0/15.0/20.0, San José=0.0/0.0/0.0}",
		Braces(table()))
	assert.Equal(t, "{}", Braces(stats.Table{}))
}

func TestLines(t *testing.T) {
	assert.Equal(t,
		"Abidjan=-3.3/13.9/31.0\nOslo=5.5/5.5/5.5\nParis=10.0/15.0/20.0\nSan José=0.0/0.0/0.0\n",
		Lines(table()))
	assert.Equal(t, "", Lines(stats.Table{}))
}

func TestRender(t *testing.T) {
	assert.Equal(t, Braces(table()), Render(table(), FormatBraces))
	assert.Equal(t, Lines(table()), Render(table(), FormatLines))

	f, err := ParseFormat("lines")
	require.NoError(t, err)
	assert.Equal(t, FormatLines, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestKeysSorted(t *testing.T) {
	assert.Equal(t, []string{"Abidjan", "Oslo", "Paris", "San José"}, Keys(table()))
}

func TestDigest(t *testing.T) {
	assert.Equal(t, Digest(table()), Digest(table()))

	changed := table()
	changed["Oslo"].Add(9.5)
	assert.NotEqual(t, Digest(table()), Digest(changed))
}

func TestCompare(t *testing.T) {
	assert.Empty(t, Compare(Lines(table()), Lines(table())))
	assert.Empty(t, Compare("a=1.0/1.0/1.0  \n", "a=1.0/1.0/1.0\n"))

	changed := table()
	changed["Oslo"].Add(9.5)
	d := Compare(Lines(table()), Lines(changed))
	assert.Contains(t, d, "Oslo=5.5/5.5/5.5")
	assert.Contains(t, d, "Oslo=5.5/7.5/9.5")
}

func TestSplit(t *testing.T) {
	assert.Equal(t, Lines(table()), Split(Braces(table())))
	assert.Equal(t, "", Split("{}\n"))
}

package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanWords(t *testing.T) {
	got, err := ScanWords(strings.NewReader("# header\n  Teacher \n\n\tCHEAT\n#skip\nreach"))
	require.NoError(t, err)
	assert.Equal(t, []string{"teacher", "cheat", "reach"}, got)
}

func TestEmbeddedLists(t *testing.T) {
	roots, err := RootList()
	require.NoError(t, err)
	assert.Contains(t, roots, "silkworm")

	dict, err := DictionaryList()
	require.NoError(t, err)
	assert.Contains(t, dict, "cheat")
	for _, w := range dict {
		assert.Equal(t, strings.ToLower(strings.TrimSpace(w)), w)
	}
}

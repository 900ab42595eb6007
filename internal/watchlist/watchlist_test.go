package watchlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"2330, 2376,3034", []string{"2330", "2376", "3034"}},
		{"2330，2317 ， 2383", []string{"2330", "2317", "2383"}},
		{" 2330 ,, ,，", []string{"2330"}},
		{"6488.two, 2330, 2330", []string{"6488.TWO", "2330"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.in), "input %q", tt.in)
	}
}

func TestJoin_RoundTrip(t *testing.T) {
	codes := Parse(DefaultCodes)
	assert.Equal(t, DefaultCodes, Join(codes))
}

func TestNewManager_SeedsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "watchlist.json")
	m, err := NewManager(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2330", "2376", "3034", "2317", "2383", "2027"}, m.Codes())

	_, err = os.Stat(path)
	require.NoError(t, err, "defaults should be persisted")
}

func TestManager_AddRemoveSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")
	m, err := NewManager(path, "2330, 2317")
	require.NoError(t, err)

	added, err := m.Add("2317，2454, 3008")
	require.NoError(t, err)
	assert.Equal(t, []string{"2454", "3008"}, added)

	removed, err := m.Remove("2330, 9999")
	require.NoError(t, err)
	assert.Equal(t, []string{"2330"}, removed)
	assert.Equal(t, "2317, 2454, 3008", m.String())

	none, err := m.Remove("9999")
	require.NoError(t, err)
	assert.Nil(t, none)

	// reload from disk
	m2, err := NewManager(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2317", "2454", "3008"}, m2.Codes())

	require.NoError(t, m2.Set("1101，1102"))
	m3, err := NewManager(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1101", "1102"}, m3.Codes())
}

func TestLoadState_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := NewManager(path, "")
	assert.Error(t, err)
}

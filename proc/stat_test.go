package proc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatPlainComm(t *testing.T) {
	line := "42 (bash) S 1 42 42 34816 42 4194304 1000 0 2 0 350 120 0 0 20 0 1 0 7000 22000000 1500\n"

	st, err := parseStat(line)
	require.NoError(t, err)

	assert.Equal(t, "bash", st.Comm)
	assert.Equal(t, byte('S'), st.State)
	assert.Equal(t, uint64(350), st.Utime)
	assert.Equal(t, uint64(120), st.Stime)
	assert.Equal(t, uint64(470), st.TotalTicks())
}

func TestParseStatHostileComm(t *testing.T) {
	// comm may contain spaces and parentheses; only the LAST ')'
	// terminates it. A first-delimiter split would misread every
	// numeric field here.
	line := "77 (Web Content) (x) R 1 77 77 0 -1 4194304 5 0 0 0 900 100 0 0 20 0 4 0 123 456789 321\n"

	st, err := parseStat(line)
	require.NoError(t, err)

	assert.Equal(t, "Web Content) (x", st.Comm)
	assert.Equal(t, byte('R'), st.State)
	assert.Equal(t, uint64(900), st.Utime)
	assert.Equal(t, uint64(100), st.Stime)
}

func TestParseStatMalformed(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"noComm", "42 bash S 1 2 3"},
		{"truncated", "42 (bash) S 1 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseStat(tc.line)
			assert.Error(t, err)
		})
	}
}

func TestReadStatFromFixture(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "42"), 0o755))
	line := "42 (worker) D 1 42 42 0 -1 0 0 0 0 0 11 22 0 0 20 0 1 0 1 2 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "42", "stat"), []byte(line), 0o644))

	st, err := ReadStat(root, 42)
	require.NoError(t, err)
	assert.Equal(t, "worker", st.Comm)
	assert.Equal(t, byte('D'), st.State)
	assert.Equal(t, uint64(33), st.TotalTicks())

	_, err = ReadStat(root, 43)
	assert.Error(t, err)
}

package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage(t *testing.T) {
	payload := "col_a,col_b\n1,2\n"
	staged, err := Stage(strings.NewReader(payload), ".XLSX", nil)
	require.NoError(t, err)
	defer staged.Cleanup()

	assert.Equal(t, "xlsx", staged.Ext)
	assert.Equal(t, int64(len(payload)), staged.Size)

	sum := sha256.Sum256([]byte(payload))
	assert.Equal(t, hex.EncodeToString(sum[:]), staged.HashHex)

	data, err := os.ReadFile(staged.Path)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))
}

func TestCleanup_RemovesFileAndIsIdempotent(t *testing.T) {
	staged, err := Stage(strings.NewReader("x"), "pdf", nil)
	require.NoError(t, err)

	staged.Cleanup()
	_, statErr := os.Stat(staged.Path)
	assert.True(t, os.IsNotExist(statErr))

	// A second cleanup must be a no-op.
	staged.Cleanup()
}

package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chatbot.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCannedResponses_Lookup(t *testing.T) {
	path := writeDataset(t, `{
		"halo": "Hai! Ada yang bisa saya bantu?",
		"Apa itu melanoma?": "Melanoma adalah jenis kanker kulit."
	}`)

	canned, err := LoadCannedResponses(path)
	require.NoError(t, err)

	assert.Equal(t, "Hai! Ada yang bisa saya bantu?", canned.Lookup("halo"))
	// Case-insensitive on both sides: keys are lowered at load time.
	assert.Equal(t, "Hai! Ada yang bisa saya bantu?", canned.Lookup("HALO"))
	assert.Equal(t, "Melanoma adalah jenis kanker kulit.", canned.Lookup("apa itu melanoma?"))
}

func TestLoadCannedResponses_FallbackForUnknownMessage(t *testing.T) {
	path := writeDataset(t, `{"halo": "Hai! Ada yang bisa saya bantu?"}`)

	canned, err := LoadCannedResponses(path)
	require.NoError(t, err)

	assert.Equal(t, CannedFallback, canned.Lookup("zzqq"))
	assert.Equal(t, CannedFallback, canned.Lookup(""))
}

func TestLoadCannedResponses_Errors(t *testing.T) {
	_, err := LoadCannedResponses(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadCannedResponses(writeDataset(t, "not json"))
	assert.Error(t, err)
}

func TestShippedDataset_ContainsHalo(t *testing.T) {
	canned, err := LoadCannedResponses("../../chatbot.json")
	require.NoError(t, err)
	assert.Equal(t, "Hai! Ada yang bisa saya bantu?", canned.Lookup("halo"))
}

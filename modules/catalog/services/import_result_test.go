package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportResult_Success(t *testing.T) {
	r := NewImportResult()
	assert.False(t, r.Success(), "no records yet")

	r.SuccessfulRecords = 3
	assert.True(t, r.Success())

	r.AddValidationError("ID", "required value is missing", 4)
	assert.False(t, r.Success())
}

func TestImportResult_MarshalJSON(t *testing.T) {
	r := NewImportResult()
	r.SuccessfulRecords = 2
	r.AddDuplicateWarning("ID", `id "A1" already appeared on row 1 of Bijlagen`, 3)
	r.AddMessage("backfilled %d asset link(s)", 1)

	out, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, float64(2), decoded["successfulRecords"])
	assert.Equal(t, float64(1), decoded["failedRecords"])

	errs, ok := decoded["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	first := errs[0].(map[string]any)
	assert.Equal(t, "duplicate", first["type"])
	assert.Equal(t, float64(3), first["rowNumber"])
}

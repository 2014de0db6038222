package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFailureEnvelope(t *testing.T) {
	env := NewFailureEnvelope("timeout", "the lead search did not complete in time")

	assert.False(t, env.Success)
	assert.Equal(t, "timeout", env.ErrorCode)
	assert.Equal(t, 0, env.TotalLeads)
	_, err := time.Parse(time.RFC3339, env.Timestamp)
	assert.NoError(t, err)
}

func TestFailureEnvelope_OmitsLeadFields(t *testing.T) {
	data, err := json.Marshal(NewFailureEnvelope("internal_error", "boom"))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "leads")
	assert.NotContains(t, raw, "icp_name")
	assert.Contains(t, raw, "error")
	assert.Contains(t, raw, "error_code")
	assert.Equal(t, false, raw["success"])
}

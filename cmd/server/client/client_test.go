package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	req, err := parseRequest(nil)
	require.NoError(t, err)
	assert.Empty(t, req.GetFields())

	req, err = parseRequest([]string{`{"stationId":"forge_1","deltaSeconds":2.5}`})
	require.NoError(t, err)
	assert.Equal(t, "forge_1", req.GetFields()["stationId"].GetStringValue())
	assert.Equal(t, 2.5, req.GetFields()["deltaSeconds"].GetNumberValue())

	_, err = parseRequest([]string{`["not", "an", "object"]`})
	assert.Error(t, err)
}

func TestKnownMethod(t *testing.T) {
	assert.True(t, knownMethod("Simulate"))
	assert.False(t, knownMethod("simulate"))
}

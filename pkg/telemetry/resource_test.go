package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildResource(t *testing.T) {
	s := &Settings{
		ServiceName:    "msos-test",
		ServiceVersion: "1.2.3",
		Attributes:     map[string]string{"deployment.environment": "test"},
	}

	res, err := buildResource(context.Background(), s)
	require.NoError(t, err)
	require.NotNil(t, res)

	got := map[string]string{}
	for _, attr := range res.Attributes() {
		got[string(attr.Key)] = attr.Value.AsString()
	}
	assert.Equal(t, "msos-test", got["service.name"])
	assert.Equal(t, "1.2.3", got["service.version"])
	assert.Equal(t, "test", got["deployment.environment"])
}

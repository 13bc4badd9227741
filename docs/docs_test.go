package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		Info  struct{ Title string } `json:"info"`
		Paths map[string]any        `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, "Audio Sentiment Recorder API", parsed.Info.Title)
	for _, path := range []string{"/", "/upload", "/upload_text", "/uploads/{filename}", "/api/history", "/ws/reports"} {
		assert.Contains(t, parsed.Paths, path)
	}
}

package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCoversCRUDRoutes(t *testing.T) {
	var doc struct {
		Paths       map[string]any `json:"paths"`
		Definitions map[string]struct {
			Properties map[string]struct {
				Type string `json:"type"`
			} `json:"properties"`
		} `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	for _, r := range []string{"brands", "cars", "categories", "orders", "orderitems", "users"} {
		assert.Contains(t, doc.Paths, "/api/"+r)
		assert.Contains(t, doc.Paths, "/api/"+r+"/{id}")
	}

	var price string
	for _, def := range doc.Definitions {
		if p, ok := def.Properties["price"]; ok {
			price = p.Type
		}
	}
	assert.Equal(t, "number", price)
}

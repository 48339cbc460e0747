package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocIsValidJSON(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "Pet Adoption API", doc.Info.Title)
	assert.Contains(t, doc.Paths, "/applications/{applicationID}/approve")
	assert.Contains(t, doc.Paths["/payments/{txID}/refund"], "post")
	assert.Contains(t, doc.Paths["/pets/{petID}/availability"], "put")
	assert.Contains(t, doc.Paths["/medical-records/{recordID}/follow-up"], "post")
	assert.Contains(t, doc.Paths["/medical-records/pet/{petID}"], "get")
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTemplateWorkbook(t *testing.T) {
	f, err := BuildTemplateWorkbook()
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Opportunities")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, TemplateHeaders, rows[0])
	assert.Len(t, templateExampleRow, len(TemplateHeaders))

	// Every template header must resolve to a known logical field
	for _, header := range rows[0] {
		found := false
		for _, aliases := range headerAliases {
			for _, alias := range aliases {
				if alias == header {
					found = true
				}
			}
		}
		assert.True(t, found, "header %q has no alias mapping", header)
	}
}

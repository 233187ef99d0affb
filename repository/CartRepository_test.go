package repository

import (
	"testing"

	"merchstore/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCartLines(t *testing.T) {
	lines := []entities.CartLine{
		{
			Product:  entities.Product{Id: "merch-1", Name: "Hoodie", Price: 59.99, CategoryId: entities.CategoryMerchandise, InStock: true},
			Quantity: 2,
		},
	}

	data, err := marshalCartLines(lines)
	require.NoError(t, err)

	got, err := unmarshalCartLines(data)
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestMarshalNilLines(t *testing.T) {
	data, err := marshalCartLines(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestUnmarshalCartLines(t *testing.T) {
	got, err := unmarshalCartLines([]byte(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	// JSON null decodes to a usable empty list, not nil.
	got, err = unmarshalCartLines([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = unmarshalCartLines([]byte(`{broken`))
	assert.Error(t, err)
}

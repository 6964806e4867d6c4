package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentType(t *testing.T) {
	cases := []struct {
		contentType string
		want        DocumentType
		wantErr     bool
	}{
		{"application/pdf", DocumentTypePDF, false},
		{"image/png", DocumentTypePNG, false},
		{"Application/PDF", DocumentTypePDF, false},
		{"application/pdf; charset=binary", DocumentTypePDF, false},
		{"  image/png  ", DocumentTypePNG, false},
		{"image/jpeg", "", true},
		{"text/plain", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseDocumentType(tc.contentType)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedDocument, "content type %q", tc.contentType)
			continue
		}
		require.NoError(t, err, "content type %q", tc.contentType)
		assert.Equal(t, tc.want, got)
	}
}

func TestValidate(t *testing.T) {
	items := Validate([]Item{
		{Name: "Tea", Barcode: " 4870001234592 ", Quantity: 2},
		{Name: "No barcode", Barcode: "   ", Quantity: 1},
		{Name: "Zero quantity", Barcode: "4870001234608", Quantity: 0},
		{Name: "Negative quantity", Barcode: "4870001234615", Quantity: -3},
	})

	require.Len(t, items, 3)
	assert.Equal(t, "4870001234592", items[0].Barcode)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 1, items[2].Quantity)
}

package extraction

import (
	"strings"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// Item is one order line extracted from an uploaded document
type Item struct {
	Name     string `json:"name"`
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
}

// DocumentType identifies the media type of an uploaded document
type DocumentType string

const (
	DocumentTypePDF DocumentType = "application/pdf"
	DocumentTypePNG DocumentType = "image/png"
)

// ErrUnsupportedDocument is returned for media types other than PDF and PNG
var ErrUnsupportedDocument = shared.NewDomainError("UNSUPPORTED_DOCUMENT", "Only PDF and PNG files are supported")

// ParseDocumentType validates an uploaded content type
func ParseDocumentType(contentType string) (DocumentType, error) {
	// Browsers may append charset or boundary parameters
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	switch DocumentType(strings.TrimSpace(strings.ToLower(contentType))) {
	case DocumentTypePDF:
		return DocumentTypePDF, nil
	case DocumentTypePNG:
		return DocumentTypePNG, nil
	}
	return "", ErrUnsupportedDocument
}

// Validate drops items without a barcode or with a non-positive quantity.
// The extraction service is instructed never to guess barcodes, so an item
// with an empty barcode carries no actionable information.
func Validate(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Barcode) == "" {
			continue
		}
		if it.Quantity <= 0 {
			it.Quantity = 1
		}
		it.Barcode = strings.TrimSpace(it.Barcode)
		out = append(out, it)
	}
	return out
}

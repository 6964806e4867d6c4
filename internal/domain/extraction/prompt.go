package extraction

// DefaultPrompt is used when a company has no extraction prompt of its own.
const DefaultPrompt = `You are a data extraction assistant. Extract only purchase/order information from the provided document, regardless of language.

STRICT MATCHING RULES:
- You must extract barcodes EXACTLY as they appear in the document.
- Do NOT correct, fix, repair, autocomplete, or change any barcode digits.
- Do NOT extract any barcode that is "similar" or "close" to one in the document.
- If a barcode differs by even ONE digit, it must NOT be extracted.
- If you are uncertain whether a number is a barcode, skip it.
- Never guess or generate barcode numbers.

Extraction Rules:
1. Extract ONLY:
   - Name: the product name associated with each barcode.
   - Barcode: long numeric codes (usually 10-14 digits) if and ONLY if they appear identically in the document.
   - Quantity: the ordered amount directly associated with each barcode.

2. Multilingual support:
   The document may be in English, Mongolian, Russian, or mixed.
`

// DefaultSchema is the JSON response schema requested from the extraction
// service when a company has not configured its own.
const DefaultSchema = `{
  "type": "object",
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "barcode": {"type": "string"},
          "quantity": {"type": "integer"}
        },
        "required": ["barcode", "quantity"]
      }
    }
  },
  "required": ["items"]
}`

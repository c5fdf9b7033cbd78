package docs

// Frontmatter holds the recognized metadata keys of a document. Keys the
// pipeline does not interpret are carried through in Extra.
type Frontmatter struct {
	Title       string
	Subtitle    string
	Description string
	Slug        string
	// Weight is nil when the document does not override the default.
	Weight *float64
	Extra  map[string]any
}

// Section is one heading-delimited slice of a rendered document. Body is
// whitespace-normalized text without the heading itself.
type Section struct {
	Heading string
	Body    string
	Level   int
}

package markdown

// Heading is one entry of a page's table of contents.
type Heading struct {
	// Level is the heading depth, 1 for a top-level heading.
	Level int `json:"level"`

	// Title is the heading's inline content flattened to plain text.
	Title string `json:"title"`

	// URL is the anchor fragment of the heading, e.g. "#content".
	URL string `json:"url"`
}

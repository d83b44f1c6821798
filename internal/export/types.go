// Package export renders study notes into a self-contained HTML document.
package export

// Notes is everything that goes into one export.
type Notes struct {
	// Title is the document title, already localized.
	Title string

	// Topic is the main topic; it names the output file.
	Topic string

	// FilePrefix is the localized file name prefix, e.g. "study-notes".
	FilePrefix string

	// Lang is the document language tag.
	Lang string

	Sections []Section
	Progress Progress
}

// Section is one assistant reply.
type Section struct {
	// Heading is the sub-topic, empty for untagged replies.
	Heading  string
	Markdown string
	Images   []Image
}

// Image is embedded into the document as a data URI.
type Image struct {
	MIMEType string
	Data     []byte
}

// Progress feeds the progress card drawn at the top of the document.
type Progress struct {
	Completed int
	Total     int
	Badges    int
}

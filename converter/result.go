package converter

// Result holds the output of a conversion.
type Result struct {
	Markup   string    `json:"markup"`
	Stats    Stats     `json:"stats"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnknownElement WarningType = "unknown_element"
	WarningDroppedContent WarningType = "dropped_content"
	WarningParseFallback  WarningType = "parse_fallback"

	WarningUnresolvedReference WarningType = "unresolved_reference"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}

// BlockType is the type name written into a block's boundary markers.
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockCode      BlockType = "code"
	BlockList      BlockType = "list"
	BlockTable     BlockType = "table"
	BlockImage     BlockType = "image"
	BlockQuote     BlockType = "quote"
	BlockSeparator BlockType = "separator"
	BlockHTML      BlockType = "html"
)

// Stats counts the blocks produced by a single conversion.
type Stats struct {
	Paragraphs int `json:"paragraphs"`
	Headings   int `json:"headings"`
	Code       int `json:"code"`
	Images     int `json:"images"`
	Lists      int `json:"lists"`
	Tables     int `json:"tables"`
	Quotes     int `json:"quotes"`
	Separators int `json:"separators"`
	HTML       int `json:"html"`
	// Untouched counts shielded regions restored verbatim inside another block.
	Untouched int `json:"untouched"`
}

// Blocks returns the total number of blocks counted.
func (s Stats) Blocks() int {
	return s.Paragraphs + s.Headings + s.Code + s.Images + s.Lists +
		s.Tables + s.Quotes + s.Separators + s.HTML
}

// Count returns the counter for a single block type.
func (s Stats) Count(t BlockType) int {
	switch t {
	case BlockHeading:
		return s.Headings
	case BlockParagraph:
		return s.Paragraphs
	case BlockCode:
		return s.Code
	case BlockList:
		return s.Lists
	case BlockTable:
		return s.Tables
	case BlockImage:
		return s.Images
	case BlockQuote:
		return s.Quotes
	case BlockSeparator:
		return s.Separators
	case BlockHTML:
		return s.HTML
	default:
		return 0
	}
}

func (s *Stats) add(t BlockType) {
	switch t {
	case BlockHeading:
		s.Headings++
	case BlockParagraph:
		s.Paragraphs++
	case BlockCode:
		s.Code++
	case BlockList:
		s.Lists++
	case BlockTable:
		s.Tables++
	case BlockImage:
		s.Images++
	case BlockQuote:
		s.Quotes++
	case BlockSeparator:
		s.Separators++
	case BlockHTML:
		s.HTML++
	}
}

package model

// Properties are modeled as flat structs of optional (pointer) fields
// rather than a string-keyed dictionary, per spec.md §9: "implementations
// using sum types should model properties as a flat struct of Option
// fields." Each struct exposes `prop:"name"` tags so the generic
// set_properties operation (internal/ops) can shallow-merge a patch by
// field name without one hand-written merge function per tag.

// Underline is the closed set of underline styles.
type Underline string

const (
	UnderlineNone   Underline = "none"
	UnderlineSingle Underline = "single"
	UnderlineDouble Underline = "double"
	UnderlineThick  Underline = "thick"
)

// RevisionKind is the closed set of tracked-change kinds.
type RevisionKind string

const (
	RevisionInsertion    RevisionKind = "insertion"
	RevisionDeletion     RevisionKind = "deletion"
	RevisionFormatChange RevisionKind = "formatChange"
)

// Revision records change-tracking metadata attached to a run.
type Revision struct {
	Kind   RevisionKind
	Author string
	Date   string
	ID     string
}

// RunProperties holds the character-level formatting keys from spec.md §3.
type RunProperties struct {
	Bold            *bool      `prop:"bold"`
	Italic          *bool      `prop:"italic"`
	Underline       *Underline `prop:"underline"`
	Strikethrough   *bool      `prop:"strikethrough"`
	Superscript     *bool      `prop:"superscript"`
	Subscript       *bool      `prop:"subscript"`
	FontFamily      *string    `prop:"fontFamily"`
	FontSize        *int       `prop:"fontSize"` // half-points
	Color           *string    `prop:"color"`     // 6-hex
	BackgroundColor *string    `prop:"backgroundColor"`
	Highlight       *string    `prop:"highlight"`
	AllCaps         *bool      `prop:"allCaps"`
	SmallCaps       *bool      `prop:"smallCaps"`
	LetterSpacing   *int       `prop:"letterSpacing"`
	Language        *string    `prop:"language"`
	StyleID         *string    `prop:"styleId"`
	Revision        *Revision  `prop:"revision"`
}

// Clone returns a deep copy so nodes never share a mutable properties value.
func (p *RunProperties) Clone() *RunProperties {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Revision != nil {
		r := *p.Revision
		cp.Revision = &r
	}
	return &cp
}

// Alignment is the closed set of paragraph alignments.
type Alignment string

const (
	AlignLeft      Alignment = "left"
	AlignCenter    Alignment = "center"
	AlignRight     Alignment = "right"
	AlignJustify   Alignment = "justify"
	AlignDistribute Alignment = "distribute"
)

// Spacing holds paragraph spacing-before/after/line in twips.
type Spacing struct {
	Before   *int
	After    *int
	Line     *int
	LineRule *string
}

// Indent holds paragraph indentation in twips.
type Indent struct {
	Left      *int
	Right     *int
	FirstLine *int
	Hanging   *int
}

// Numbering references an instance in the document's numbering registry.
type Numbering struct {
	NumID int
	Level int
}

// Borders holds the five paragraph border positions.
type Borders struct {
	Top     *Border
	Bottom  *Border
	Left    *Border
	Right   *Border
	Between *Border
}

// Border describes one paragraph border edge.
type Border struct {
	Style string
	Size  int
	Color string
}

// Tab describes one custom tab stop.
type Tab struct {
	Position int
	Align    string
	Leader   string
}

// ParagraphProperties holds the block-level formatting keys from spec.md §3.
type ParagraphProperties struct {
	StyleID         *string        `prop:"styleId"`
	Alignment       *Alignment     `prop:"alignment"`
	Spacing         *Spacing       `prop:"spacing"`
	Indent          *Indent        `prop:"indent"`
	Numbering       *Numbering     `prop:"numbering"`
	OutlineLevel    *int           `prop:"outlineLevel"`
	KeepNext        *bool          `prop:"keepNext"`
	KeepLines       *bool          `prop:"keepLines"`
	PageBreakBefore *bool          `prop:"pageBreakBefore"`
	WidowControl    *bool          `prop:"widowControl"`
	Borders         *Borders       `prop:"borders"`
	Shading         *string        `prop:"shading"`
	Tabs            []Tab          `prop:"tabs"`
	RunProperties   *RunProperties `prop:"runProperties"`
}

// Clone returns a deep copy.
func (p *ParagraphProperties) Clone() *ParagraphProperties {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Spacing != nil {
		s := *p.Spacing
		cp.Spacing = &s
	}
	if p.Indent != nil {
		i := *p.Indent
		cp.Indent = &i
	}
	if p.Numbering != nil {
		n := *p.Numbering
		cp.Numbering = &n
	}
	if p.Borders != nil {
		b := *p.Borders
		cp.Borders = &b
	}
	if p.Tabs != nil {
		cp.Tabs = append([]Tab(nil), p.Tabs...)
	}
	cp.RunProperties = p.RunProperties.Clone()
	return &cp
}

// PageMargins holds page margins in twips.
type PageMargins struct {
	Top    int
	Right  int
	Bottom int
	Left   int
	Header int
	Footer int
	Gutter int
}

// PageSize holds the page dimensions in twips, plus orientation.
type PageSize struct {
	Width       int
	Height      int
	Orientation string // "portrait" | "landscape"
}

// Columns describes section multi-column layout.
type Columns struct {
	Count     int
	Space     int
	Separator bool
}

// LineNumbering describes section line-numbering.
type LineNumbering struct {
	CountBy int
	Start   int
	Restart string
}

// SectionProperties holds the page-geometry keys from spec.md §3.
type SectionProperties struct {
	PageSize       PageSize
	Margins        PageMargins
	Columns        Columns
	HeaderRefs     map[string]string // type ("default"|"even"|"first") -> header id
	FooterRefs     map[string]string
	PageBorders    *Borders
	LineNumbering  *LineNumbering
	TitlePage      bool
}

// Clone returns a deep copy.
func (s SectionProperties) Clone() SectionProperties {
	cp := s
	if s.HeaderRefs != nil {
		cp.HeaderRefs = make(map[string]string, len(s.HeaderRefs))
		for k, v := range s.HeaderRefs {
			cp.HeaderRefs[k] = v
		}
	}
	if s.FooterRefs != nil {
		cp.FooterRefs = make(map[string]string, len(s.FooterRefs))
		for k, v := range s.FooterRefs {
			cp.FooterRefs[k] = v
		}
	}
	if s.PageBorders != nil {
		b := *s.PageBorders
		cp.PageBorders = &b
	}
	if s.LineNumbering != nil {
		l := *s.LineNumbering
		cp.LineNumbering = &l
	}
	return cp
}

// TableCellProperties holds per-cell layout keys (gridSpan, width, shading).
type TableCellProperties struct {
	GridSpan int     `prop:"gridSpan"`
	Width    *int    `prop:"width"`
	Shading  *string `prop:"shading"`
	VAlign   *string `prop:"vAlign"`
}

func (p TableCellProperties) Clone() TableCellProperties { return p }

// TableProperties holds table-level layout keys.
type TableProperties struct {
	StyleID     *string `prop:"styleId"`
	Width       *int    `prop:"width"`
	ColumnWidths []int  `prop:"columnWidths"`
}

func (p TableProperties) Clone() TableProperties {
	cp := p
	if p.ColumnWidths != nil {
		cp.ColumnWidths = append([]int(nil), p.ColumnWidths...)
	}
	return cp
}

// HyperlinkProperties holds the hyperlink target.
type HyperlinkProperties struct {
	Href     string `prop:"href"`
	Anchor   string `prop:"anchor"`
	Tooltip  *string `prop:"tooltip"`
}

func (p HyperlinkProperties) Clone() HyperlinkProperties { return p }

// DrawingProperties holds the extent and alt text of an inline/anchored
// drawing, in EMU (see GLOSSARY).
type DrawingProperties struct {
	Width   int64  `prop:"width"`
	Height  int64  `prop:"height"`
	AltText string `prop:"altText"`
	Inline  bool   `prop:"inline"`
}

func (p DrawingProperties) Clone() DrawingProperties { return p }

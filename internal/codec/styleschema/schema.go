// Package styleschema loads the built-in style and numbering definitions
// a document gets when it has no word/styles.xml or word/numbering.xml
// of its own — a docx authored by a non-Word producer. Only the docx
// import applies them; model.NewDocument does not. The defaults live as data
// (defaults.yaml) rather than Go literals, the same schema-as-data split
// the teacher's codegen package uses for its CT_* element bindings.
package styleschema

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vortex/wordcore/internal/model"
)

//go:embed defaults.yaml
var defaultsYaml []byte

// spacingSchema/indentSchema mirror model.Spacing/model.Indent's shape
// for YAML unmarshaling; fields are pointers rather than plain ints (0
// meaning "unset" would be ambiguous, so absence is tracked via YAML's
// own nil semantics on the pointer fields below).
type spacingSchema struct {
	Before   *int    `yaml:"before"`
	After    *int    `yaml:"after"`
	Line     *int    `yaml:"line"`
	LineRule *string `yaml:"lineRule"`
}

type indentSchema struct {
	Left      *int `yaml:"left"`
	Right     *int `yaml:"right"`
	FirstLine *int `yaml:"firstLine"`
	Hanging   *int `yaml:"hanging"`
}

type runPropertiesSchema struct {
	Bold          *bool   `yaml:"bold"`
	Italic        *bool   `yaml:"italic"`
	Underline     *string `yaml:"underline"`
	Strikethrough *bool   `yaml:"strikethrough"`
	FontFamily    *string `yaml:"fontFamily"`
	FontSize      *int    `yaml:"fontSize"`
	Color         *string `yaml:"color"`
}

type paragraphPropertiesSchema struct {
	Alignment       *string        `yaml:"alignment"`
	Spacing         *spacingSchema `yaml:"spacing"`
	Indent          *indentSchema  `yaml:"indent"`
	OutlineLevel    *int           `yaml:"outlineLevel"`
	KeepNext        *bool          `yaml:"keepNext"`
	KeepLines       *bool          `yaml:"keepLines"`
	PageBreakBefore *bool          `yaml:"pageBreakBefore"`
}

type styleSchema struct {
	ID                  string                     `yaml:"id"`
	Name                string                     `yaml:"name"`
	Type                string                     `yaml:"type"`
	BasedOn             string                     `yaml:"basedOn"`
	Next                string                     `yaml:"next"`
	Default             bool                       `yaml:"default"`
	RunProperties       *runPropertiesSchema       `yaml:"runProperties"`
	ParagraphProperties *paragraphPropertiesSchema `yaml:"paragraphProperties"`
}

type levelSchema struct {
	Level         int    `yaml:"level"`
	Start         int    `yaml:"start"`
	Format        string `yaml:"format"`
	Text          string `yaml:"text"`
	Alignment     string `yaml:"alignment"`
	Indent        int    `yaml:"indent"`
	HangingIndent int    `yaml:"hangingIndent"`
	Font          string `yaml:"font"`
}

type abstractNumberingSchema struct {
	AbstractNumID int           `yaml:"abstractNumId"`
	Levels        []levelSchema `yaml:"levels"`
}

type numberingInstanceSchema struct {
	NumID         int `yaml:"numId"`
	AbstractNumID int `yaml:"abstractNumId"`
}

type numberingSchema struct {
	Abstracts []abstractNumberingSchema `yaml:"abstracts"`
	Instances []numberingInstanceSchema `yaml:"instances"`
}

type documentSchema struct {
	Styles    []styleSchema   `yaml:"styles"`
	Numbering numberingSchema `yaml:"numbering"`
}

// Defaults returns the built-in styles registry and numbering registry,
// parsed fresh from the embedded defaults.yaml each call so callers can
// freely mutate the result.
func Defaults() (*model.StylesRegistry, *model.NumberingRegistry, error) {
	var doc documentSchema
	if err := yaml.Unmarshal(defaultsYaml, &doc); err != nil {
		return nil, nil, fmt.Errorf("styleschema: parsing defaults.yaml: %w", err)
	}

	styles := make([]model.Style, 0, len(doc.Styles))
	for _, s := range doc.Styles {
		styles = append(styles, buildStyle(s))
	}

	numbering := &model.NumberingRegistry{
		Abstracts: buildAbstracts(doc.Numbering.Abstracts),
		Instances: buildInstances(doc.Numbering.Instances),
	}

	return model.NewStylesRegistry(styles), numbering, nil
}

func buildStyle(s styleSchema) model.Style {
	style := model.Style{
		ID:        s.ID,
		Name:      s.Name,
		Type:      model.StyleType(s.Type),
		BasedOn:   s.BasedOn,
		Next:      s.Next,
		IsDefault: s.Default,
	}
	if s.RunProperties != nil {
		style.RunProperties = buildRunProperties(s.RunProperties)
	}
	if s.ParagraphProperties != nil {
		style.ParagraphProperties = buildParagraphProperties(s.ParagraphProperties)
	}
	return style
}

func buildRunProperties(s *runPropertiesSchema) *model.RunProperties {
	rp := &model.RunProperties{
		Bold:          s.Bold,
		Italic:        s.Italic,
		Strikethrough: s.Strikethrough,
		FontFamily:    s.FontFamily,
		FontSize:      s.FontSize,
		Color:         s.Color,
	}
	if s.Underline != nil {
		u := model.Underline(*s.Underline)
		rp.Underline = &u
	}
	return rp
}

func buildParagraphProperties(s *paragraphPropertiesSchema) *model.ParagraphProperties {
	pp := &model.ParagraphProperties{
		OutlineLevel:    s.OutlineLevel,
		KeepNext:        s.KeepNext,
		KeepLines:       s.KeepLines,
		PageBreakBefore: s.PageBreakBefore,
	}
	if s.Alignment != nil {
		a := model.Alignment(*s.Alignment)
		pp.Alignment = &a
	}
	if s.Spacing != nil {
		pp.Spacing = &model.Spacing{
			Before:   s.Spacing.Before,
			After:    s.Spacing.After,
			Line:     s.Spacing.Line,
			LineRule: s.Spacing.LineRule,
		}
	}
	if s.Indent != nil {
		pp.Indent = &model.Indent{
			Left:      s.Indent.Left,
			Right:     s.Indent.Right,
			FirstLine: s.Indent.FirstLine,
			Hanging:   s.Indent.Hanging,
		}
	}
	return pp
}

func buildAbstracts(schemas []abstractNumberingSchema) []model.AbstractNumbering {
	out := make([]model.AbstractNumbering, 0, len(schemas))
	for _, a := range schemas {
		levels := make([]model.NumberingLevel, 0, len(a.Levels))
		for _, l := range a.Levels {
			levels = append(levels, model.NumberingLevel{
				Level:         l.Level,
				Start:         l.Start,
				Format:        model.NumberFormat(l.Format),
				Text:          l.Text,
				Alignment:     l.Alignment,
				Indent:        l.Indent,
				HangingIndent: l.HangingIndent,
				Font:          l.Font,
			})
		}
		out = append(out, model.AbstractNumbering{AbstractNumID: a.AbstractNumID, Levels: levels})
	}
	return out
}

func buildInstances(schemas []numberingInstanceSchema) []model.NumberingInstance {
	out := make([]model.NumberingInstance, 0, len(schemas))
	for _, i := range schemas {
		out = append(out, model.NumberingInstance{NumID: i.NumID, AbstractNumID: i.AbstractNumID})
	}
	return out
}

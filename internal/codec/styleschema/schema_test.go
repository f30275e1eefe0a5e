package styleschema

import (
	"testing"

	"github.com/vortex/wordcore/internal/model"
)

func TestDefaultsLoadsBuiltinStyles(t *testing.T) {
	styles, numbering, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}

	normal, ok := styles.Get("Normal")
	if !ok {
		t.Fatal("Normal style missing")
	}
	if !normal.IsDefault || normal.Type != model.StyleParagraph {
		t.Errorf("Normal = %+v, want default paragraph style", normal)
	}
	if normal.RunProperties == nil || normal.RunProperties.FontFamily == nil || *normal.RunProperties.FontFamily != "Calibri" {
		t.Errorf("Normal.RunProperties = %+v, want FontFamily Calibri", normal.RunProperties)
	}

	h1, ok := styles.Get("Heading1")
	if !ok {
		t.Fatal("Heading1 style missing")
	}
	if h1.BasedOn != "Normal" || h1.ParagraphProperties == nil || h1.ParagraphProperties.OutlineLevel == nil || *h1.ParagraphProperties.OutlineLevel != 0 {
		t.Errorf("Heading1 = %+v, want BasedOn Normal, OutlineLevel 0", h1)
	}

	hyperlink, ok := styles.Get("Hyperlink")
	if !ok {
		t.Fatal("Hyperlink style missing")
	}
	if hyperlink.Type != model.StyleCharacter || hyperlink.RunProperties.Underline == nil || *hyperlink.RunProperties.Underline != model.UnderlineSingle {
		t.Errorf("Hyperlink = %+v, want character style with single underline", hyperlink)
	}

	if numbering == nil || len(numbering.Abstracts) != 2 {
		t.Fatalf("numbering.Abstracts = %v, want 2 entries", numbering)
	}
	bulletAbstract, ok := numbering.AbstractByID(0)
	if !ok || bulletAbstract.Levels[0].Format != model.FormatBullet {
		t.Errorf("abstract 0 = %+v, want bullet format at level 0", bulletAbstract)
	}
	inst, ok := numbering.InstanceByNumID(1)
	if !ok || inst.AbstractNumID != 0 {
		t.Errorf("numId 1 = %+v, want bound to abstractNumId 0", inst)
	}
}

func TestDefaultsReturnsFreshRegistriesEachCall(t *testing.T) {
	styles1, _, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	styles2, _, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	mutated := styles1.With(model.Style{ID: "Normal", Name: "Changed", Type: model.StyleParagraph})
	if got, _ := mutated.Get("Normal"); got.Name != "Changed" {
		t.Fatalf("With() did not apply mutation")
	}
	if got, _ := styles2.Get("Normal"); got.Name == "Changed" {
		t.Errorf("mutating one Defaults() result leaked into another call's registry")
	}
}

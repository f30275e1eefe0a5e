package plugins

import (
	"testing"

	"github.com/vortex/wordcore/internal/editor"
	"github.com/vortex/wordcore/internal/idgen"
	"github.com/vortex/wordcore/internal/model"
)

// newDocEditor builds an editor over a document with one section containing
// one paragraph per entry of paragraphs, each paragraph holding one run per
// string in its slice.
func newDocEditor(t *testing.T, paragraphs ...[]string) *editor.Editor {
	t.Helper()
	idgen.Reset()
	paras := make([]model.Node, len(paragraphs))
	for i, runs := range paragraphs {
		runNodes := make([]model.Node, len(runs))
		for j, text := range runs {
			runNodes[j] = model.NewElement(model.TagRun, (*model.RunProperties)(nil), model.NewTextLeaf(text))
		}
		paras[i] = model.NewElement(model.TagParagraph, (*model.ParagraphProperties)(nil), runNodes...)
	}
	section := model.NewElement(model.TagSection, model.SectionProperties{}, paras...)
	body := model.NewElement(model.TagBody, nil, section)
	root := model.NewElement(model.TagDocument, nil, body)
	doc := &model.Document{
		Root:     root,
		Headers:  map[string]*model.Element{},
		Footers:  map[string]*model.Element{},
		Media:    map[string]*model.MediaAsset{},
		RawParts: map[string][]byte{},
	}
	return editor.New(doc)
}

func paraPathAt(i int) model.Path { return model.Path{0, 0, i} }
func runPathAt(para, run int) model.Path { return model.Path{0, 0, para, run} }
func leafPathAt(para, run int) model.Path { return model.Path{0, 0, para, run, 0} }

package plugins

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vortex/wordcore/internal/editor"
	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/ops"
	"github.com/vortex/wordcore/internal/selection"
)

// headingStyleIDs maps the h1..h6 tags to their paragraph style, per
// spec.md §4.4.5.
var headingStyleIDs = map[atom.Atom]string{
	atom.H1: "Heading1",
	atom.H2: "Heading2",
	atom.H3: "Heading3",
	atom.H4: "Heading4",
	atom.H5: "Heading5",
	atom.H6: "Heading6",
}

var headingTags = map[string]atom.Atom{
	"Heading1": atom.H1,
	"Heading2": atom.H2,
	"Heading3": atom.H3,
	"Heading4": atom.H4,
	"Heading5": atom.H5,
	"Heading6": atom.H6,
}

// Payload is what Copy produces and Paste consumes: the selection
// serialized as plain text and, when the selection is non-empty, an HTML
// fragment carrying formatting.
type Payload struct {
	PlainText string
	HTML      string
}

// RegisterClipboard adds the copy/cut/paste commands to e.
func RegisterClipboard(e *editor.Editor, clip *Payload) {
	e.RegisterCommand(&editor.Command{
		ID:         "clipboard.copy",
		Name:       "Copy",
		Shortcuts:  []string{"Ctrl+C"},
		CanExecute: func(e *editor.Editor, args any) bool { return true },
		Execute: func(e *editor.Editor, args any) error {
			*clip = Copy(e)
			return nil
		},
	})
	e.RegisterCommand(&editor.Command{
		ID:        "clipboard.cut",
		Name:      "Cut",
		Shortcuts: []string{"Ctrl+X"},
		CanExecute: func(e *editor.Editor, args any) bool {
			return !e.ReadOnly() && !selection.IsCollapsed(selection.Normalize(e.Selection()))
		},
		Execute: func(e *editor.Editor, args any) error {
			*clip = Copy(e)
			return DeleteSelection(e)
		},
	})
	e.RegisterCommand(&editor.Command{
		ID:         "clipboard.paste",
		Name:       "Paste",
		Shortcuts:  []string{"Ctrl+V"},
		CanExecute: func(e *editor.Editor, args any) bool { return !e.ReadOnly() },
		Execute: func(e *editor.Editor, args any) error {
			return Paste(e, *clip)
		},
	})
}

// Copy serializes the current selection as plain text and an HTML
// fragment (spec.md §4.4.5). Returns a zero Payload for a collapsed
// selection.
func Copy(e *editor.Editor) Payload {
	sel := selection.Normalize(e.Selection())
	if selection.IsCollapsed(sel) {
		return Payload{}
	}
	return Payload{
		PlainText: selection.GetSelectedText(e.Document(), sel),
		HTML:      copyHTML(e, sel),
	}
}

func copyHTML(e *editor.Editor, sel selection.Selection) string {
	paths := selectedParagraphPathsReadOnly(e, sel)
	var sb strings.Builder
	for _, p := range paths {
		para, err := model.Get(e.Document().Root, p)
		if err != nil {
			continue
		}
		el := para.(*model.Element)
		tag := "p"
		if props, ok := el.Props().(*model.ParagraphProperties); ok && props != nil && props.StyleID != nil {
			if _, ok := headingTags[*props.StyleID]; ok {
				tag = strings.ToLower(*props.StyleID)
				tag = map[string]string{"heading1": "h1", "heading2": "h2", "heading3": "h3", "heading4": "h4", "heading5": "h5", "heading6": "h6"}[tag]
			}
		}
		sb.WriteString("<" + tag + ">")
		writeRunsHTML(&sb, el, p, sel)
		sb.WriteString("</" + tag + ">")
	}
	return sb.String()
}

func writeRunsHTML(sb *strings.Builder, para *model.Element, paraPath model.Path, sel selection.Selection) {
	for i, child := range para.Children() {
		run, ok := model.AsElement(child)
		if !ok || run.Tag() != model.TagRun {
			continue
		}
		runPath := paraPath.Child(i)
		leafPath, ok := firstTextPath(run, runPath)
		if !ok {
			continue
		}
		if leafPath.Compare(sel.Anchor.Path) < 0 || leafPath.Compare(sel.Focus.Path) > 0 {
			continue
		}
		text, _, _ := clipRunText(run, leafPath, sel)
		if text == "" {
			continue
		}
		props, _ := run.Props().(*model.RunProperties)
		writeRunHTML(sb, text, props)
	}
}

// clipRunText returns the run's text leaf content clipped to sel's bounds
// when leafPath lands on the selection's anchor or focus leaf.
func clipRunText(run *model.Element, leafPath model.Path, sel selection.Selection) (string, int, int) {
	leaf, ok := findLeaf(run, leafPath, leafPath)
	if !ok {
		return "", 0, 0
	}
	runes := []rune(leaf.Text())
	start, end := 0, len(runes)
	if leafPath.Equal(sel.Anchor.Path) {
		start = sel.Anchor.Offset
	}
	if leafPath.Equal(sel.Focus.Path) {
		end = sel.Focus.Offset
	}
	if start > len(runes) {
		start = len(runes)
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start > end {
		start = end
	}
	return string(runes[start:end]), start, end
}

func findLeaf(n model.Node, path, target model.Path) (*model.Leaf, bool) {
	if !path.Equal(target) {
		el, ok := model.AsElement(n)
		if !ok {
			return nil, false
		}
		for i, c := range el.Children() {
			if leaf, ok := findLeaf(c, path.Child(i), target); ok {
				return leaf, true
			}
		}
		return nil, false
	}
	leaf, ok := model.AsLeaf(n)
	if !ok || leaf.Tag() != model.TagText {
		return nil, false
	}
	return leaf, true
}

func writeRunHTML(sb *strings.Builder, text string, props *model.RunProperties) {
	if text == "" {
		return
	}
	open, close := "", ""
	if props != nil {
		if props.Bold != nil && *props.Bold {
			open, close = open+"<strong>", "</strong>"+close
		}
		if props.Italic != nil && *props.Italic {
			open, close = open+"<em>", "</em>"+close
		}
		if props.Underline != nil && *props.Underline != model.UnderlineNone {
			open, close = open+"<u>", "</u>"+close
		}
		if props.Strikethrough != nil && *props.Strikethrough {
			open, close = open+"<s>", "</s>"+close
		}
		if props.Superscript != nil && *props.Superscript {
			open, close = open+"<sup>", "</sup>"+close
		}
		if props.Subscript != nil && *props.Subscript {
			open, close = open+"<sub>", "</sub>"+close
		}
		var style []string
		if props.FontFamily != nil {
			style = append(style, "font-family:"+*props.FontFamily)
		}
		if props.Color != nil {
			style = append(style, "color:#"+*props.Color)
		}
		if len(style) > 0 {
			open = `<span style="` + strings.Join(style, ";") + `">` + open
			close = close + "</span>"
		}
	}
	sb.WriteString(open)
	sb.WriteString(html.EscapeString(text))
	sb.WriteString(close)
}

// selectedParagraphPathsReadOnly mirrors selectedParagraphPaths but takes
// an explicit (already normalized) selection instead of reading e's
// current one, so Copy never depends on mutation helpers.
func selectedParagraphPathsReadOnly(e *editor.Editor, sel selection.Selection) []model.Path {
	aPara := paragraphPath(sel.Anchor.Path)
	fPara := paragraphPath(sel.Focus.Path)
	if aPara.Equal(fPara) {
		return []model.Path{aPara}
	}
	secPath := sectionPath(aPara)
	var out []model.Path
	for idx := paragraphIndex(aPara); idx <= paragraphIndex(fPara); idx++ {
		out = append(out, secPath.Child(idx))
	}
	return out
}

// pasteRun is one inline run parsed from a clipboard HTML fragment.
type pasteRun struct {
	text  string
	props *model.RunProperties
	href  *string
}

// pasteBlock is one paragraph parsed from a clipboard HTML fragment.
type pasteBlock struct {
	styleID *string
	runs    []pasteRun
}

// parseHTMLFragment parses an HTML clipboard fragment into a sequence of
// paragraphs, tracking the inline formatting tags spec.md §4.4.5 names.
func parseHTMLFragment(src string) ([]pasteBlock, error) {
	tokenizer := html.NewTokenizer(strings.NewReader(src))
	var blocks []pasteBlock
	var cur *pasteBlock
	type inlineState struct {
		bold, italic, underline, strike, sup, sub bool
		fontFamily, color                         *string
		href                                      *string
	}
	var stack []inlineState
	state := inlineState{}

	flushText := func(text string) {
		if cur == nil {
			blocks = append(blocks, pasteBlock{})
			cur = &blocks[len(blocks)-1]
		}
		if text == "" {
			return
		}
		rp := &model.RunProperties{}
		if state.bold {
			v := true
			rp.Bold = &v
		}
		if state.italic {
			v := true
			rp.Italic = &v
		}
		if state.underline {
			u := model.UnderlineSingle
			rp.Underline = &u
		}
		if state.strike {
			v := true
			rp.Strikethrough = &v
		}
		if state.sup {
			v := true
			rp.Superscript = &v
		}
		if state.sub {
			v := true
			rp.Subscript = &v
		}
		rp.FontFamily = state.fontFamily
		rp.Color = state.color
		cur.runs = append(cur.runs, pasteRun{text: text, props: rp, href: state.href})
	}

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return blocks, nil
		case html.TextToken:
			flushText(string(tokenizer.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := tokenizer.Token()
			switch tok.DataAtom {
			case atom.P:
				blocks = append(blocks, pasteBlock{})
				cur = &blocks[len(blocks)-1]
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				styleID := headingStyleIDs[tok.DataAtom]
				blocks = append(blocks, pasteBlock{styleID: &styleID})
				cur = &blocks[len(blocks)-1]
			case atom.Strong, atom.B:
				stack = append(stack, state)
				state.bold = true
			case atom.Em, atom.I:
				stack = append(stack, state)
				state.italic = true
			case atom.U:
				stack = append(stack, state)
				state.underline = true
			case atom.S, atom.Strike:
				stack = append(stack, state)
				state.strike = true
			case atom.Sup:
				stack = append(stack, state)
				state.sup = true
			case atom.Sub:
				stack = append(stack, state)
				state.sub = true
			case atom.Span:
				stack = append(stack, state)
				if ff, col, ok := parseSpanStyle(tok); ok {
					if ff != "" {
						state.fontFamily = &ff
					}
					if col != "" {
						state.color = &col
					}
				}
			case atom.A:
				stack = append(stack, state)
				for _, attr := range tok.Attr {
					if attr.Key == "href" {
						href := attr.Val
						state.href = &href
					}
				}
			case atom.Br:
				flushText("\n")
			}
		case html.EndTagToken:
			tok := tokenizer.Token()
			switch tok.DataAtom {
			case atom.Strong, atom.B, atom.Em, atom.I, atom.U, atom.S, atom.Strike, atom.Sup, atom.Sub, atom.Span, atom.A:
				if len(stack) > 0 {
					state = stack[len(stack)-1]
					stack = stack[:len(stack)-1]
				}
			case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				cur = nil
			}
		}
	}
}

func parseSpanStyle(tok html.Token) (fontFamily, color string, ok bool) {
	for _, attr := range tok.Attr {
		if attr.Key != "style" {
			continue
		}
		ok = true
		for _, decl := range strings.Split(attr.Val, ";") {
			parts := strings.SplitN(decl, ":", 2)
			if len(parts) != 2 {
				continue
			}
			key := strings.TrimSpace(parts[0])
			val := strings.TrimSpace(parts[1])
			switch key {
			case "font-family":
				fontFamily = val
			case "color":
				color = strings.TrimPrefix(val, "#")
			}
		}
	}
	return
}

func runNodesFrom(runs []pasteRun) []model.Node {
	nodes := make([]model.Node, 0, len(runs))
	for _, r := range runs {
		leaf := model.NewTextLeaf(r.text)
		run := model.NewElement(model.TagRun, r.props, leaf)
		if r.href != nil {
			nodes = append(nodes, model.NewElement(model.TagHyperlink, model.HyperlinkProperties{Href: *r.href}, run))
		} else {
			nodes = append(nodes, run)
		}
	}
	return nodes
}

// ensureNonEmptyParagraph inserts a blank run into the paragraph at
// paraPath if splitting and splicing left it with no runs at all (every
// paragraph block carries inline+).
func ensureNonEmptyParagraph(e *editor.Editor, paraPath model.Path) error {
	n, err := model.Get(e.Document().Root, paraPath)
	if err != nil {
		return err
	}
	if n.(*model.Element).ChildCount() > 0 {
		return nil
	}
	blank := model.NewElement(model.TagRun, (*model.RunProperties)(nil), model.NewTextLeaf(""))
	return e.Apply(ops.InsertNode{Path: paraPath.Child(0), Node: blank})
}

func blockParagraphNode(b pasteBlock) model.Node {
	var props *model.ParagraphProperties
	if b.styleID != nil {
		props = &model.ParagraphProperties{StyleID: b.styleID}
	}
	runs := runNodesFrom(b.runs)
	if len(runs) == 0 {
		runs = []model.Node{model.NewElement(model.TagRun, (*model.RunProperties)(nil), model.NewTextLeaf(""))}
	}
	return model.NewElement(model.TagParagraph, props, runs...)
}

// Paste inserts payload at the current selection, preferring the HTML
// fragment when present and falling back to a plain-text, line-split
// paste otherwise (spec.md §4.4.5).
func Paste(e *editor.Editor, payload Payload) error {
	if strings.TrimSpace(payload.HTML) != "" {
		blocks, err := parseHTMLFragment(payload.HTML)
		if err != nil {
			return err
		}
		if len(blocks) > 0 {
			return pasteBlocks(e, blocks)
		}
	}
	return pastePlainText(e, payload.PlainText)
}

func pastePlainText(e *editor.Editor, text string) error {
	lines := strings.Split(text, "\n")
	blocks := make([]pasteBlock, len(lines))
	for i, line := range lines {
		blocks[i] = pasteBlock{runs: []pasteRun{{text: line, props: &model.RunProperties{}}}}
	}
	return pasteBlocks(e, blocks)
}

func pasteBlocks(e *editor.Editor, blocks []pasteBlock) error {
	return e.Batch(func() error {
		sel := selection.Normalize(e.Selection())
		if !selection.IsCollapsed(sel) {
			if err := deleteSelectionOps(e, sel); err != nil {
				return err
			}
			sel = selection.Collapse(e.Selection().Anchor.Path, e.Selection().Anchor.Offset)
		}
		point := sel.Anchor

		if len(blocks) == 1 {
			return spliceRunsAtCursor(e, point, blocks[0].runs)
		}
		return splitAndSpliceBlocks(e, point, blocks)
	})
}

// spliceRunsAtCursor implements step 3: a single-paragraph fragment's runs
// are spliced at the cursor by splitting the current leaf/run as needed.
func spliceRunsAtCursor(e *editor.Editor, point model.Point, runs []pasteRun) error {
	leaf, err := model.GetTextLeaf(e.Document().Root, point.Path)
	if err != nil {
		return err
	}
	if point.Offset > 0 && point.Offset < leaf.TextLen() {
		if err := e.Apply(ops.SplitNode{Path: point.Path, Position: point.Offset}); err != nil {
			return err
		}
		if err := e.Apply(ops.SplitNode{Path: runPath(point.Path), Position: 1}); err != nil {
			return err
		}
	}
	insertRunIdx := runIndex(point.Path)
	if point.Offset > 0 {
		insertRunIdx++
	}
	paraPath := paragraphPath(point.Path)
	nodes := runNodesFrom(runs)
	for i, n := range nodes {
		if err := e.Apply(ops.InsertNode{Path: paraPath.Child(insertRunIdx + i), Node: model.CloneFresh(n)}); err != nil {
			return err
		}
	}
	if len(nodes) > 0 {
		lastRunPath := paraPath.Child(insertRunIdx + len(nodes) - 1)
		lastLeaf, ok := firstTextPath(mustGet(e, lastRunPath), lastRunPath)
		if ok {
			leafNode, _ := model.GetTextLeaf(e.Document().Root, lastLeaf)
			e.SetSelection(selection.Collapse(lastLeaf, leafNode.TextLen()))
		}
	}
	return nil
}

// splitAndSpliceBlocks implements step 4: the cursor paragraph is split,
// the first fragment paragraph's runs join the head half, the last
// fragment paragraph's runs join the tail half, and any middle blocks are
// inserted whole between them.
func splitAndSpliceBlocks(e *editor.Editor, point model.Point, blocks []pasteBlock) error {
	leaf, err := model.GetTextLeaf(e.Document().Root, point.Path)
	if err != nil {
		return err
	}
	if point.Offset > 0 && point.Offset < leaf.TextLen() {
		if err := e.Apply(ops.SplitNode{Path: point.Path, Position: point.Offset}); err != nil {
			return err
		}
		if err := e.Apply(ops.SplitNode{Path: runPath(point.Path), Position: 1}); err != nil {
			return err
		}
	}
	headRunCount := runIndex(point.Path)
	if point.Offset > 0 {
		headRunCount++
	}
	paraPath := paragraphPath(point.Path)
	if err := e.Apply(ops.SplitNode{Path: paraPath, Position: headRunCount}); err != nil {
		return err
	}
	secPath := sectionPath(paraPath)
	headParaIdx := paragraphIndex(paraPath)
	tailParaIdx := headParaIdx + 1

	// Append the first fragment paragraph's runs to the head half.
	headNode, err := model.Get(e.Document().Root, paraPath)
	if err != nil {
		return err
	}
	headRunBase := headNode.(*model.Element).ChildCount()
	firstNodes := runNodesFrom(blocks[0].runs)
	for i, n := range firstNodes {
		if err := e.Apply(ops.InsertNode{Path: paraPath.Child(headRunBase + i), Node: model.CloneFresh(n)}); err != nil {
			return err
		}
	}

	// Insert middle blocks whole, between the two halves.
	middle := blocks[1 : len(blocks)-1]
	for i, b := range middle {
		if err := e.Apply(ops.InsertNode{Path: secPath.Child(tailParaIdx + i), Node: model.CloneFresh(blockParagraphNode(b))}); err != nil {
			return err
		}
	}
	finalTailPath := secPath.Child(tailParaIdx + len(middle))

	// Prepend the last fragment paragraph's runs to the tail half.
	lastNodes := runNodesFrom(blocks[len(blocks)-1].runs)
	for i, n := range lastNodes {
		if err := e.Apply(ops.InsertNode{Path: finalTailPath.Child(i), Node: model.CloneFresh(n)}); err != nil {
			return err
		}
	}

	if err := ensureNonEmptyParagraph(e, paraPath); err != nil {
		return err
	}
	if err := ensureNonEmptyParagraph(e, finalTailPath); err != nil {
		return err
	}

	if len(lastNodes) > 0 {
		lastRunPath := finalTailPath.Child(len(lastNodes) - 1)
		lastLeaf, ok := firstTextPath(mustGet(e, lastRunPath), lastRunPath)
		if ok {
			leafNode, _ := model.GetTextLeaf(e.Document().Root, lastLeaf)
			e.SetSelection(selection.Collapse(lastLeaf, leafNode.TextLen()))
		}
	} else if len(middle) > 0 {
		midPath := secPath.Child(tailParaIdx)
		firstLeaf, ok := firstTextPath(mustGet(e, midPath), midPath)
		if ok {
			e.SetSelection(selection.Collapse(firstLeaf, 0))
		}
	}
	return nil
}

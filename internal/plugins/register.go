package plugins

import "github.com/vortex/wordcore/internal/editor"

// RegisterAll wires every command set in this package onto e: text editing,
// formatting, lists, tables, and clipboard. clip is the clipboard payload
// clipboard.copy/cut/paste read and write; callers typically hold one
// *Payload per editor instance.
func RegisterAll(e *editor.Editor, clip *Payload) {
	RegisterTextEditing(e)
	RegisterFormatting(e)
	RegisterLists(e)
	RegisterTables(e)
	RegisterClipboard(e, clip)
}

package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/vortex/wordcore/internal/editor"
	"github.com/vortex/wordcore/internal/ops"
	"github.com/vortex/wordcore/internal/packaging"
	"github.com/vortex/wordcore/internal/plugins"
	"github.com/vortex/wordcore/internal/selection"
)

// ErrSessionNotFound is returned by every Store method given an id that
// does not name a live session.
var ErrSessionNotFound = errors.New("service: session not found")

// session wraps one live editor plus the clipboard payload its copy/cut/
// paste commands read and write. mu serializes access to editor, since
// internal/editor is documented not safe for concurrent use and two
// requests can name the same session at once.
type session struct {
	mu     sync.Mutex
	editor *editor.Editor
	clip   *plugins.Payload
}

// Store holds every open editing session, keyed by a generated id. Unlike a
// stateless request handler, a session carries state across requests: undo
// history, selection, the live document.
//
// Store's own mutex guards the session map; it is locked only long enough to
// look up or insert a *session, never while an editor call is in flight. Each
// session then has its own mutex guarding its editor, so two requests naming
// the same session id serialize on that session without blocking requests to
// other sessions.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*session)}
}

func newSessionID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

// Open parses data into a new document, registers every plugin command on
// a fresh editor, and stores it under a new session id.
func (s *Store) Open(data []byte) (id string, summary packaging.Summary, err error) {
	doc, err := packaging.Open(data)
	if err != nil {
		return "", packaging.Summary{}, fmt.Errorf("service: open: %w", err)
	}
	id, err = newSessionID()
	if err != nil {
		return "", packaging.Summary{}, fmt.Errorf("service: generating session id: %w", err)
	}

	e := editor.New(doc)
	clip := &plugins.Payload{}
	plugins.RegisterAll(e, clip)

	s.mu.Lock()
	s.sessions[id] = &session{editor: e, clip: clip}
	s.mu.Unlock()

	return id, packaging.Summarize(doc), nil
}

func (s *Store) get(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Close discards a session, freeing its document and history.
func (s *Store) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Export serializes the session's current document back to .docx bytes.
func (s *Store) Export(id string) ([]byte, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return packaging.Export(sess.editor.Document())
}

// Summary returns the session's current structural digest, reflecting any
// edits applied since Open.
func (s *Store) Summary(id string) (packaging.Summary, error) {
	sess, err := s.get(id)
	if err != nil {
		return packaging.Summary{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return packaging.Summarize(sess.editor.Document()), nil
}

// ApplyOperation applies op to the session's document and returns the
// selection afterward.
func (s *Store) ApplyOperation(id string, op ops.Op) (selection.Selection, error) {
	sess, err := s.get(id)
	if err != nil {
		return selection.Selection{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.editor.Apply(op); err != nil {
		return selection.Selection{}, err
	}
	return sess.editor.Selection(), nil
}

// ExecuteCommand runs a registered plugin command by id against the
// session's editor.
func (s *Store) ExecuteCommand(id, commandID string, args any) (selection.Selection, error) {
	sess, err := s.get(id)
	if err != nil {
		return selection.Selection{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.editor.ExecuteCommand(commandID, args); err != nil {
		return selection.Selection{}, err
	}
	return sess.editor.Selection(), nil
}

// Undo reverts the session's most recent history entry.
func (s *Store) Undo(id string) (selection.Selection, error) {
	sess, err := s.get(id)
	if err != nil {
		return selection.Selection{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.editor.Undo(); err != nil {
		return selection.Selection{}, err
	}
	return sess.editor.Selection(), nil
}

// Redo reapplies the session's most recently undone history entry.
func (s *Store) Redo(id string) (selection.Selection, error) {
	sess, err := s.get(id)
	if err != nil {
		return selection.Selection{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.editor.Redo(); err != nil {
		return selection.Selection{}, err
	}
	return sess.editor.Selection(), nil
}

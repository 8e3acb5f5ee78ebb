package state

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/editor"
	"github.com/lixenwraith/worldkit/scene"
)

// EditorState adapts the editor's session lifecycle to the state machine
type EditorState struct {
	ctx *Context
	ed  *editor.Editor
}

// NewEditorState wraps ed as a switchable state
func NewEditorState(ctx *Context, ed *editor.Editor) *EditorState {
	return &EditorState{ctx: ctx, ed: ed}
}

func (s *EditorState) Name() string { return NameEditor }

// Enter starts a fresh session; a string param names a stored world to
// open for editing
func (s *EditorState) Enter(params any) error {
	s.ed.Enter()
	if name, ok := params.(string); ok && name != "" {
		if err := s.ed.LoadLocal(name); err != nil {
			s.ctx.Log.Warn("editor world load failed", zap.String("world", name), zap.Error(err))
		}
	}
	return nil
}

func (s *EditorState) Exit() { s.ed.Exit() }

// Ready is immediate: the editor loads assets lazily per placement
func (s *EditorState) Ready() bool { return true }

func (s *EditorState) Update(time.Duration) { s.ed.Update() }

func (s *EditorState) Scene() *scene.Object  { return s.ed.Scene() }
func (s *EditorState) Camera() *scene.Camera { return s.ed.Camera() }

// Editor exposes the wrapped editor for rendering overlays
func (s *EditorState) Editor() *editor.Editor { return s.ed }

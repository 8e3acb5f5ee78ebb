package input

// Action is a logical input the game reacts to; bindings map physical
// keys onto actions so layouts stay configurable
type Action uint8

const (
	ActionNone Action = iota

	// Movement, cardinal only
	ActionMoveForward
	ActionMoveBack
	ActionMoveLeft
	ActionMoveRight

	// Play-mode interaction key (tap vs hold semantics)
	ActionInteract

	// Editor keys
	ActionRotate
	ActionHighlight
	ActionDelete
	ActionSaveWorld
	ActionToolSelect
	ActionToolStamp
	ActionToolLine
	ActionToolSquare
	ActionNextAsset

	// Global editor toggle (modifier combination)
	ActionToggleEditor

	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionMoveForward:
		return "move-forward"
	case ActionMoveBack:
		return "move-back"
	case ActionMoveLeft:
		return "move-left"
	case ActionMoveRight:
		return "move-right"
	case ActionInteract:
		return "interact"
	case ActionRotate:
		return "rotate"
	case ActionHighlight:
		return "highlight"
	case ActionDelete:
		return "delete"
	case ActionSaveWorld:
		return "save-world"
	case ActionToolSelect:
		return "tool-select"
	case ActionToolStamp:
		return "tool-stamp"
	case ActionToolLine:
		return "tool-line"
	case ActionToolSquare:
		return "tool-square"
	case ActionNextAsset:
		return "next-asset"
	case ActionToggleEditor:
		return "toggle-editor"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// ActionByName resolves an action from its configuration name
func ActionByName(name string) (Action, bool) {
	for a := ActionMoveForward; a <= ActionQuit; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return ActionNone, false
}

// Bindings maps key names (see keyName) to actions
type Bindings map[string]Action

// DefaultBindings returns the stock layout
func DefaultBindings() Bindings {
	return Bindings{
		"w":      ActionMoveForward,
		"s":      ActionMoveBack,
		"a":      ActionMoveLeft,
		"d":      ActionMoveRight,
		"e":      ActionInteract,
		"r":      ActionRotate,
		"f":      ActionHighlight,
		"x":      ActionDelete,
		"delete": ActionDelete,
		"o":      ActionSaveWorld,
		"1":      ActionToolSelect,
		"2":      ActionToolStamp,
		"3":      ActionToolLine,
		"4":      ActionToolSquare,
		"tab":    ActionNextAsset,
		"ctrl+e": ActionToggleEditor,
		"ctrl+c": ActionQuit,
	}
}

package bot

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/world"
)

//go:embed scripts/*.tengo
var builtinScripts embed.FS

// Scripts only get pure modules so bot runs stay reproducible.
var scriptModules = []string{"math", "text", "enum"}

const scriptMaxAllocs = 20000

// The user script must define decide(self, players, arena, state) and
// return an array of action names.
const decideDispatch = `
__actions = decide(__self, __players, __arena, __state)
`

var actionNames = map[string]core.Action{
	"left":   core.ActionLeft,
	"right":  core.ActionRight,
	"jump":   core.ActionJump,
	"shoot":  core.ActionShoot,
	"bomb":   core.ActionBomb,
	"rocket": core.ActionRocket,
}

// ScriptController runs a tengo script once per tick to pick actions.
//
// The script sees its own player, the other live players and the arena
// size as immutable maps, plus a state map that persists between ticks.
// A failing script produces empty input; the error is kept in Err and
// passed to the OnError handler whenever it changes.
type ScriptController struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	err      error
	reported string
	onErr    func(error)
}

// NewScriptController compiles src. name is used in error messages.
func NewScriptController(name string, src []byte) (*ScriptController, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + decideDispatch))
	globals := []struct {
		name  string
		value any
	}{
		{"__self", map[string]any{}},
		{"__players", []any{}},
		{"__arena", map[string]any{}},
		{"__state", map[string]any{}},
		{"__actions", []any{}},
	}
	for _, g := range globals {
		if err := script.Add(g.name, g.value); err != nil {
			return nil, fmt.Errorf("bot: %s: failed to declare %s: %w", name, g.name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(scriptModules...))
	script.SetMaxAllocs(scriptMaxAllocs)

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("bot: compile %s: %w", name, err)
	}
	return &ScriptController{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// LoadScript reads and compiles a script file.
func LoadScript(path string) (*ScriptController, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bot: failed to read script: %w", err)
	}
	return NewScriptController(path, src)
}

// BuiltinScript compiles one of the scripts shipped with the binary.
func BuiltinScript(name string) (*ScriptController, error) {
	src, err := builtinScripts.ReadFile("scripts/" + name + ".tengo")
	if err != nil {
		return nil, fmt.Errorf("bot: unknown builtin script %q", name)
	}
	return NewScriptController(name, src)
}

// BuiltinScripts lists the names accepted by BuiltinScript.
func BuiltinScripts() []string {
	entries, _ := builtinScripts.ReadDir("scripts")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tengo"))
	}
	return names
}

// Err returns the error of the most recent Decide, if any.
func (s *ScriptController) Err() error {
	return s.err
}

// OnError registers fn to be called with each new script failure. The same
// error repeating on consecutive ticks is reported once.
func (s *ScriptController) OnError(fn func(error)) {
	s.onErr = fn
}

// Decide implements Controller.
func (s *ScriptController) Decide(obs Observer, slot core.PlayerID) core.InputFrame {
	frame := core.NewInputFrame()
	s.err = nil
	defer s.report()

	self, ok := obs.PlayerBySlot(slot)
	if !ok {
		return frame
	}

	var others []tengo.Object
	for _, p := range obs.Players() {
		if p.ID != self.ID {
			others = append(others, entityObject(p))
		}
	}
	bounds := obs.Bounds()
	arena := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"width":  &tengo.Float{Value: bounds.Size.X},
		"height": &tengo.Float{Value: bounds.Size.Y},
	}}

	if err := s.run(entityObject(self), &tengo.ImmutableArray{Value: others}, arena); err != nil {
		s.err = fmt.Errorf("bot: %s: %w", s.name, err)
		return frame
	}

	for _, v := range s.compiled.Get("__actions").Array() {
		name, _ := v.(string)
		if a, ok := actionNames[strings.ToLower(strings.TrimSpace(name))]; ok {
			frame.Set(a)
		}
	}
	return frame
}

func (s *ScriptController) report() {
	if s.err == nil {
		s.reported = ""
		return
	}
	if msg := s.err.Error(); msg != s.reported {
		s.reported = msg
		if s.onErr != nil {
			s.onErr(s.err)
		}
	}
}

// run executes one decision. The tengo VM panics on some runtime faults
// (integer division by zero), so panics are turned into errors here.
func (s *ScriptController) run(self, players, arena tengo.Object) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script panicked: %v", r)
		}
	}()

	if err := s.compiled.Set("__self", self); err != nil {
		return err
	}
	if err := s.compiled.Set("__players", players); err != nil {
		return err
	}
	if err := s.compiled.Set("__arena", arena); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	if err := s.compiled.Set("__actions", &tengo.Array{}); err != nil {
		return err
	}
	return s.compiled.Run()
}

func entityObject(e world.Entity) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"id":       &tengo.Int{Value: int64(e.ID)},
		"x":        &tengo.Float{Value: e.Body.Pos.X},
		"y":        &tengo.Float{Value: e.Body.Pos.Y},
		"w":        &tengo.Float{Value: e.Body.Size.X},
		"h":        &tengo.Float{Value: e.Body.Size.Y},
		"vx":       &tengo.Float{Value: e.Body.Vel.X},
		"vy":       &tengo.Float{Value: e.Body.Vel.Y},
		"grounded": tengo.FalseValue,
	}
	if e.Body.Grounded() {
		values["grounded"] = tengo.TrueValue
	}
	if e.Player != nil {
		values["slot"] = &tengo.Int{Value: int64(e.Player.Slot)}
		values["name"] = &tengo.String{Value: e.Player.Name}
		values["facing"] = &tengo.Int{Value: int64(e.Player.Facing)}
	}
	return &tengo.ImmutableMap{Value: values}
}

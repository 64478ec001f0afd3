package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/prefabs"
)

const levelScriptDispatch = `
if __event != "" {
	on_event(__engine, __event, __state)
}
`

// ScriptRuntime holds a compiled level script. The script defines
// on_event(engine, name, state); state persists between calls.
type ScriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// LoadScriptRuntime compiles the named script from the prefab scripts.
func LoadScriptRuntime(path string) (*ScriptRuntime, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	return CompileScript(path, src)
}

func CompileScript(path string, src []byte) (*ScriptRuntime, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + levelScriptDispatch))
	_ = script.Add("__event", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", path, err)
	}

	rt := &ScriptRuntime{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	if err := rt.Dispatch(nil, ""); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", path, err)
	}
	if !compiled.IsDefined("on_event") {
		return nil, fmt.Errorf("script: %s does not define on_event", path)
	}
	return rt, nil
}

func (rt *ScriptRuntime) Path() string {
	if rt == nil {
		return ""
	}
	return rt.path
}

// Dispatch runs on_event for one event name.
func (rt *ScriptRuntime) Dispatch(engine *tengo.ImmutableMap, event string) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := rt.compiled.Set("__event", event); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// buildScriptEngine exposes the session to scripts.
func buildScriptEngine(w *ecs.World) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	jolly := func() *component.Jolly {
		e, ok := w.First(component.SessionComponent.Kind())
		if !ok {
			return nil
		}
		j, _ := ecs.Get(w, e, component.JollyComponent)
		return j
	}

	values["jolly"] = &tengo.UserFunction{Name: "jolly", Value: func(args ...tengo.Object) (tengo.Object, error) {
		j := jolly()
		if j == nil {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(j.Value)}, nil
	}}

	values["jolly_add"] = &tengo.UserFunction{Name: "jolly_add", Value: func(args ...tengo.Object) (tengo.Object, error) {
		j := jolly()
		if j == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		delta, ok := tengo.ToInt(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		j.Add(delta)
		return tengo.TrueValue, nil
	}}

	values["jolly_set"] = &tengo.UserFunction{Name: "jolly_set", Value: func(args ...tengo.Object) (tengo.Object, error) {
		j := jolly()
		if j == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		v, ok := tengo.ToInt(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		j.Set(v)
		return tengo.TrueValue, nil
	}}

	values["emit"] = &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		msg := strings.TrimSpace(objectAsString(args[0]))
		if msg == "" {
			return tengo.FalseValue, nil
		}
		w.Emit(component.EventScriptMessage, msg)
		return tengo.TrueValue, nil
	}}

	values["objective"] = &tengo.UserFunction{Name: "objective", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := w.First(component.SessionComponent.Kind())
		if !ok {
			return &tengo.String{Value: ""}, nil
		}
		objective, ok := ecs.Get(w, e, component.ObjectiveComponent)
		if !ok {
			return &tengo.String{Value: ""}, nil
		}
		return &tengo.String{Value: objective.Stage.String()}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(o tengo.Object) string {
	if o == nil {
		return ""
	}
	if s, ok := o.(*tengo.String); ok {
		return s.Value
	}
	if s, ok := tengo.ToString(o); ok {
		return s
	}
	return ""
}

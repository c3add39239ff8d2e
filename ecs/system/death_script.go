package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
	"github.com/milk9111/arena/projectile"
)

const (
	deathProjectileRadius   = 0.2
	deathProjectileLifetime = 4.0
)

const deathDispatchScript = `
if __phase == "death" {
	on_death(__engine, __state, __progress)
}
`

// ScriptLoader returns the source of a death script by name.
type ScriptLoader func(name string) ([]byte, error)

type deathScriptRuntime struct {
	path      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
	failed    bool
}

// DeathScriptRunner plays tengo death sequences. A script defines
// on_death(engine, state, progress) and is called once per dying frame.
type DeathScriptRunner struct {
	sim      *projectile.Simulator
	load     ScriptLoader
	runtimes map[ecs.Entity]*deathScriptRuntime
}

// NewDeathScriptRunner uses load to fetch scripts; nil loads from prefabs.
func NewDeathScriptRunner(sim *projectile.Simulator, load ScriptLoader) *DeathScriptRunner {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &DeathScriptRunner{sim: sim, load: load, runtimes: map[ecs.Entity]*deathScriptRuntime{}}
}

// Run advances e's death script to progress. Errors are logged once and the
// death sequence carries on without the script.
func (r *DeathScriptRunner) Run(w *ecs.World, e ecs.Entity, progress float64) {
	if r == nil || w == nil {
		return
	}
	ds, ok := ecs.Get(w, e, component.DeathScriptComponent.Kind())
	if !ok || strings.TrimSpace(ds.Path) == "" {
		return
	}

	rt, err := r.runtime(e, ds)
	if err != nil {
		log.Printf("death script: entity=%d load %s: %v", e, ds.Path, err)
		return
	}
	if rt.failed {
		return
	}

	engine := buildDeathScriptEngine(r, w, e, ds)
	if err := rt.run(engine, progress); err != nil {
		rt.failed = true
		log.Printf("death script: entity=%d run %s: %v", e, ds.Path, err)
	}
}

// Forget drops the runtime cached for e.
func (r *DeathScriptRunner) Forget(e ecs.Entity) {
	if r == nil {
		return
	}
	delete(r.runtimes, e)
}

// Reset drops every cached runtime, so edited scripts are picked up.
func (r *DeathScriptRunner) Reset() {
	if r == nil {
		return
	}
	clear(r.runtimes)
}

func (r *DeathScriptRunner) runtime(e ecs.Entity, ds *component.DeathScript) (*deathScriptRuntime, error) {
	if rt, ok := r.runtimes[e]; ok && rt.path == ds.Path {
		return rt, nil
	}

	src, err := r.load(ds.Path)
	if err != nil {
		r.runtimes[e] = &deathScriptRuntime{path: ds.Path, failed: true}
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + deathDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__progress", 0.0)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		r.runtimes[e] = &deathScriptRuntime{path: ds.Path, failed: true}
		return nil, err
	}

	state := &tengo.Map{Value: map[string]tengo.Object{}}
	for k, v := range ds.Vars {
		obj, err := tengo.FromInterface(v)
		if err != nil {
			continue
		}
		state.Value[k] = obj
	}

	rt := &deathScriptRuntime{path: ds.Path, compiled: compiled, stateData: state}
	r.runtimes[e] = rt
	return rt, nil
}

func (rt *deathScriptRuntime) run(engine *tengo.ImmutableMap, progress float64) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil death script runtime")
	}
	if err := rt.compiled.Set("__phase", "death"); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__progress", progress); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildDeathScriptEngine(r *DeathScriptRunner, w *ecs.World, e ecs.Entity, ds *component.DeathScript) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(position(w, e)), nil
	}}

	values["player_position"] = &tengo.UserFunction{Name: "player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		p, _ := playerTarget(w)
		return vectorObject(p), nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		v.Value = cp.Vector{X: objectAsFloat(args[0]), Y: objectAsFloat(args[1])}
		return tengo.TrueValue, nil
	}}

	// emit_radial(count, speed, damage, offset)
	values["emit_radial"] = &tengo.UserFunction{Name: "emit_radial", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, nil
		}
		count := int(objectAsFloat(args[0]))
		if count <= 0 {
			return tengo.FalseValue, nil
		}
		offset := 0.0
		if len(args) > 3 {
			offset = objectAsFloat(args[3])
		}
		for _, dir := range radialDirections(count, offset) {
			r.emit(w, e, ds, dir, objectAsFloat(args[1]), int(objectAsFloat(args[2])))
		}
		return tengo.TrueValue, nil
	}}

	// emit_aimed(speed, damage)
	values["emit_aimed"] = &tengo.UserFunction{Name: "emit_aimed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		player, ok := playerTarget(w)
		if !ok {
			return tengo.FalseValue, nil
		}
		dir := common.Direction(position(w, e), player)
		if dir.X == 0 && dir.Y == 0 {
			return tengo.FalseValue, nil
		}
		r.emit(w, e, ds, dir, objectAsFloat(args[0]), int(objectAsFloat(args[1])))
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("death script: entity=%d %s", e, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (r *DeathScriptRunner) emit(w *ecs.World, e ecs.Entity, ds *component.DeathScript, dir cp.Vector, speed float64, damage int) {
	if r.sim == nil || damage <= 0 {
		return
	}
	r.sim.Enqueue(projectile.Projectile{
		Position:  position(w, e).Add(dir.Mult(radius(w, e))),
		Velocity:  dir.Mult(speed),
		Damage:    damage,
		Radius:    deathProjectileRadius,
		Remaining: deathProjectileLifetime,
		Owner:     projectile.OwnerEnemy,
	})
	ds.Emitted++
}

func vectorObject(v cp.Vector) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}

func objectAsFloat(obj tengo.Object) float64 {
	if f, ok := tengo.ToFloat64(obj); ok {
		return f
	}
	return 0
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

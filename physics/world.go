package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/oneroom/common"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeProp
)

const (
	terrainFriction   = 1.0
	terrainElasticity = 1.0
	boundsThickness   = 1.0
)

// Config tunes the Chipmunk space.
type Config struct {
	Gravity    float64
	Iterations int
	Step       float64
}

func (c Config) withDefaults() Config {
	if c.Iterations <= 0 {
		c.Iterations = 20
	}
	if c.Step <= 0 {
		c.Step = common.TickSeconds
	}
	return c
}

// World integrates ecs bodies against static level geometry. The ecs Body is
// authoritative: it is pushed into the space before each step and read back
// afterwards, so other systems can set positions and velocities freely.
type World struct {
	space  *cp.Space
	config Config

	bodies   map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	contacts map[ecs.Entity]*contactFlags
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
	ghost bool
	w, h  float64
}

type contactFlags struct {
	below, above, left, right bool
}

func (c *contactFlags) any() bool {
	return c != nil && (c.below || c.above || c.left || c.right)
}

// NewWorld builds a space whose static geometry is the given solid boxes
// plus the edges of bounds.
func NewWorld(cfg Config, solids []common.Rect, bounds common.Rect) *World {
	cfg = cfg.withDefaults()

	space := cp.NewSpace()
	space.Iterations = uint(cfg.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})

	pw := &World{
		space:    space,
		config:   cfg,
		bodies:   make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
		contacts: make(map[ecs.Entity]*contactFlags),
	}

	for _, r := range solids {
		if r.Empty() {
			continue
		}
		bb := cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
		shape := cp.NewBox2(space.StaticBody, bb, 0)
		shape.SetFriction(terrainFriction)
		shape.SetElasticity(terrainElasticity)
		shape.SetCollisionType(collisionTypeSolid)
		space.AddShape(shape)
	}
	pw.addBounds(bounds)
	pw.addHandlers()
	return pw
}

func (pw *World) addBounds(bounds common.Rect) {
	if bounds.Empty() {
		return
	}
	l, t := bounds.X, bounds.Y
	r, b := bounds.X+bounds.Width, bounds.Y+bounds.Height
	segments := [][2]cp.Vector{
		{{X: l, Y: t}, {X: r, Y: t}},
		{{X: l, Y: b}, {X: r, Y: b}},
		{{X: l, Y: t}, {X: l, Y: b}},
		{{X: r, Y: t}, {X: r, Y: b}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(pw.space.StaticBody, seg[0], seg[1], boundsThickness)
		shape.SetFriction(terrainFriction)
		shape.SetElasticity(terrainElasticity)
		shape.SetCollisionType(collisionTypeSolid)
		pw.space.AddShape(shape)
	}
}

func (pw *World) addHandlers() {
	for _, kind := range []cp.CollisionType{collisionTypePlayer, collisionTypeProp} {
		handler := pw.space.NewCollisionHandler(kind, collisionTypeSolid)
		handler.UserData = pw
		handler.PreSolveFunc = recordContact
	}

	// Presents never push the player around.
	playerProp := pw.space.NewCollisionHandler(collisionTypePlayer, collisionTypeProp)
	playerProp.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}
}

func recordContact(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	pw, ok := userData.(*World)
	if !ok || pw == nil {
		return true
	}
	shapeA, shapeB := arb.Shapes()
	e, bodyIsA := pw.shapes[shapeA]
	if !bodyIsA {
		var okB bool
		e, okB = pw.shapes[shapeB]
		if !okB {
			return true
		}
	}
	info := pw.bodies[e]
	if info == nil || info.ghost {
		return false
	}

	// Normal points from the body towards the terrain, Y grows downward.
	n := arb.Normal()
	if !bodyIsA {
		n = n.Neg()
	}
	flags := pw.contacts[e]
	if flags == nil {
		flags = &contactFlags{}
		pw.contacts[e] = flags
	}
	switch {
	case n.Y > 0.5:
		flags.below = true
	case n.Y < -0.5:
		flags.above = true
	case n.X > 0.5:
		flags.right = true
	case n.X < -0.5:
		flags.left = true
	}
	return true
}

// Step advances every awake body by one tick.
func (pw *World) Step(w *ecs.World) {
	if pw == nil || w == nil {
		return
	}
	pw.sync(w)
	for e := range pw.contacts {
		delete(pw.contacts, e)
	}

	pw.space.Step(pw.config.Step)

	ecs.ForEach(w, component.BodyComponent, func(e ecs.Entity, body *component.Body) {
		info := pw.bodies[e]
		if info == nil {
			return
		}
		pos := info.body.Position()
		vel := info.body.Velocity()
		body.X = pos.X - body.W/2
		body.Y = pos.Y - body.H/2
		body.VX = vel.X
		body.VY = vel.Y
		if body.Rotates {
			body.Angle = info.body.Angle()
			body.Spin = info.body.AngularVelocity()
		}

		body.ClearContacts()
		if flags := pw.contacts[e]; flags != nil && !body.Ghost {
			body.BlockedBelow = flags.below
			body.BlockedAbove = flags.above
			body.BlockedLeft = flags.left
			body.BlockedRight = flags.right
		}
	})
}

// Collide reports whether e touched terrain during the last step and runs
// onCollide when it did.
func (pw *World) Collide(w *ecs.World, e ecs.Entity, onCollide func()) bool {
	if pw == nil || w == nil {
		return false
	}
	body, ok := ecs.Get(w, e, component.BodyComponent)
	if !ok || body.Ghost {
		return false
	}
	if !pw.contacts[e].any() {
		return false
	}
	if onCollide != nil {
		onCollide()
	}
	return true
}

func (pw *World) sync(w *ecs.World) {
	for e, info := range pw.bodies {
		body, ok := ecs.Get(w, e, component.BodyComponent)
		if w.IsAlive(e) && ok && !body.Asleep {
			continue
		}
		pw.remove(e, info)
	}

	ecs.ForEach(w, component.BodyComponent, func(e ecs.Entity, body *component.Body) {
		if body.Asleep {
			return
		}
		info := pw.bodies[e]
		if info == nil || info.w != body.W || info.h != body.H {
			if info != nil {
				pw.remove(e, info)
			}
			info = pw.add(w, e, body)
		}

		info.ghost = body.Ghost
		info.shape.SetSensor(body.Ghost)
		info.body.SetPosition(cp.Vector{X: body.X + body.W/2, Y: body.Y + body.H/2})
		info.body.SetVelocityVector(cp.Vector{X: body.VX, Y: body.VY})
		if body.Rotates {
			info.body.SetAngle(body.Angle)
			info.body.SetAngularVelocity(body.Spin)
		}
	})
}

func (pw *World) add(w *ecs.World, e ecs.Entity, body *component.Body) *bodyInfo {
	mass := body.Mass
	if mass <= 0 {
		mass = 1
	}
	moment := math.Inf(1)
	if body.Rotates {
		moment = cp.MomentForBox(mass, body.W, body.H)
	}

	cpBody := cp.NewBody(mass, moment)
	info := &bodyInfo{body: cpBody, w: body.W, h: body.H}
	cpBody.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		if info.ghost {
			cp.BodyUpdateVelocity(b, cp.Vector{}, 1, dt)
			return
		}
		cp.BodyUpdateVelocity(b, gravity, damping, dt)
	})

	shape := cp.NewBox(cpBody, body.W, body.H, 0)
	shape.SetFriction(body.Friction)
	shape.SetElasticity(body.Bounce)
	if ecs.Has(w, e, component.PlayerTagComponent) {
		shape.SetCollisionType(collisionTypePlayer)
	} else {
		shape.SetCollisionType(collisionTypeProp)
	}

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)
	info.shape = shape

	pw.bodies[e] = info
	pw.shapes[shape] = e
	return info
}

func (pw *World) remove(e ecs.Entity, info *bodyInfo) {
	if info.shape != nil {
		pw.space.RemoveShape(info.shape)
		delete(pw.shapes, info.shape)
	}
	if info.body != nil {
		pw.space.RemoveBody(info.body)
	}
	delete(pw.bodies, e)
	delete(pw.contacts, e)
}

// Bodies reports how many bodies are in the space.
func (pw *World) Bodies() int {
	return len(pw.bodies)
}

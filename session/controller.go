package session

import (
	"fmt"
	"log"

	"github.com/milk9111/oneroom/audio"
	"github.com/milk9111/oneroom/ecs"
	"github.com/milk9111/oneroom/ecs/component"
	"github.com/milk9111/oneroom/levels"
	"github.com/milk9111/oneroom/prefabs"
)

// Options configure a Controller. Zero values fall back to the embedded
// levels, Chipmunk physics and silence.
type Options struct {
	Levels     []string
	Load       func(name string) (*levels.Level, error)
	Audio      audio.Cues
	Muted      bool
	Seed       int64
	Integrator IntegratorFactory
}

type transition int

const (
	transitionNone transition = iota
	transitionStart
	transitionMenu
)

// Controller owns the current LevelSession and swaps it only at tick
// boundaries.
type Controller struct {
	names  []string
	load   func(name string) (*levels.Level, error)
	tuning *prefabs.Tuning
	cues   audio.Cues
	seed   int64
	integ  IntegratorFactory

	session *LevelSession
	pending transition
	next    int
	attempt int64
}

func NewController(tuning *prefabs.Tuning, opts Options) (*Controller, error) {
	if tuning == nil {
		return nil, fmt.Errorf("session: nil tuning")
	}
	names := opts.Levels
	if len(names) == 0 {
		names = levels.Names()
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("session: no levels")
	}
	load := opts.Load
	if load == nil {
		load = levels.LoadLevelFromFS
	}
	cues := opts.Audio
	if cues == nil {
		cues = audio.Silent{}
	}
	return &Controller{
		names:  names,
		load:   load,
		tuning: tuning,
		cues:   audio.Mute(cues, opts.Muted),
		seed:   opts.Seed,
		integ:  opts.Integrator,
	}, nil
}

func (c *Controller) LevelCount() int {
	return len(c.names)
}

func (c *Controller) LevelName(index int) string {
	if index < 0 || index >= len(c.names) {
		return ""
	}
	return c.names[index]
}

// Session is the running session, or nil while in the menu.
func (c *Controller) Session() *LevelSession {
	return c.session
}

// SetTuning replaces the specs used by sessions created from now on.
func (c *Controller) SetTuning(t *prefabs.Tuning) {
	if t != nil {
		c.tuning = t
	}
}

// Start schedules level index to begin at the next tick.
func (c *Controller) Start(index int) error {
	if index < 0 || index >= len(c.names) {
		return fmt.Errorf("session: level %d out of range [0,%d)", index, len(c.names))
	}
	c.pending = transitionStart
	c.next = index
	return nil
}

// Restart schedules the current level to be rebuilt from scratch.
func (c *Controller) Restart() {
	if c.session == nil {
		return
	}
	c.pending = transitionStart
	c.next = c.session.Index
}

// Advance schedules the next level, staying on the last one at the end.
func (c *Controller) Advance() {
	index := 0
	if c.session != nil {
		index = c.session.Index + 1
	}
	if index >= len(c.names) {
		index = len(c.names) - 1
	}
	c.pending = transitionStart
	c.next = index
}

// SetPaused pauses or resumes the current session. Collisions keep resolving
// while paused; delivery, scripts, the meter and player control do not.
func (c *Controller) SetPaused(paused bool) {
	if c.session == nil {
		return
	}
	c.session.SetPaused(paused)
}

// ReturnToMenu schedules the session to be dropped.
func (c *Controller) ReturnToMenu() {
	c.pending = transitionMenu
}

// Tick applies any pending transition, then runs one step of the session.
// A depleted meter schedules a restart for the following tick.
func (c *Controller) Tick(input component.Input) ([]ecs.Event, error) {
	if err := c.applyPending(); err != nil {
		return nil, err
	}
	if c.session == nil {
		return nil, nil
	}

	events := c.session.Tick(input)
	for _, evt := range events {
		c.playCue(evt)
		if evt.Type == component.EventMeterDepleted {
			c.Restart()
		}
	}
	return events, nil
}

func (c *Controller) applyPending() error {
	pending := c.pending
	c.pending = transitionNone

	switch pending {
	case transitionMenu:
		c.teardown()
	case transitionStart:
		name := c.names[c.next]
		lvl, err := c.load(name)
		if err != nil {
			return fmt.Errorf("session: load %s: %w", name, err)
		}
		c.attempt++
		s, err := New(c.next, lvl, c.tuning, c.cues, c.seed+c.attempt, c.integ)
		if err != nil {
			return err
		}
		c.teardown()
		c.session = s
		log.Printf("session: started level %d (%s)", c.next, lvl.Name)
	}
	return nil
}

func (c *Controller) teardown() {
	if c.session == nil {
		return
	}
	for _, cue := range audio.AllCues {
		c.cues.Stop(cue)
	}
	c.session = nil
}

func (c *Controller) playCue(evt ecs.Event) {
	switch evt.Type {
	case component.EventPresentsDelivered:
		c.cues.Play(audio.CueDeliver)
	case component.EventLevelComplete:
		c.cues.Play(audio.CueLevelComplete)
	case component.EventMeterDepleted:
		c.cues.Play(audio.CueDepleted)
	case component.EventChimneyEntered:
		c.cues.Play(audio.CueChimney)
	case component.EventScriptMessage:
		c.cues.Play(audio.CueMessage)
	}
}

package control

import (
	"sync"

	"voxkey/log"
)

type Options struct {
	// Voice is the initial voice state. The panel always starts visible.
	Voice VoiceState
}

// Controller owns both channels. One mutex guards the channel values and
// the observer lists; observers are always called with it released, so a
// callback may call back into the Controller.
//
// Every mutator is a no-op, and notifies nobody, when the requested state
// already holds.
type Controller struct {
	mu    sync.Mutex
	voice *Topic[VoiceState]
	panel *Topic[PanelState]
	queue Queue
}

func New(opts Options) *Controller {
	return &Controller{
		voice: NewTopic("voice", opts.Voice),
		panel: NewTopic("shortcuts", Visible),
	}
}

func (c *Controller) Voice() VoiceState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.voice.Value()
}

func (c *Controller) Shortcuts() PanelState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel.Value()
}

// States returns both channels read under one lock.
func (c *Controller) States() (VoiceState, PanelState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.voice.Value(), c.panel.Value()
}

func (c *Controller) Mode() Mode {
	return DeriveMode(c.States())
}

func (c *Controller) ToggleVoice() VoiceState {
	return c.updateVoice(func(v VoiceState) VoiceState {
		if v == Active {
			return Paused
		}
		return Active
	})
}

func (c *Controller) Resume() VoiceState {
	return c.updateVoice(func(VoiceState) VoiceState { return Active })
}

func (c *Controller) Pause() VoiceState {
	return c.updateVoice(func(VoiceState) VoiceState { return Paused })
}

func (c *Controller) ToggleShortcuts() PanelState {
	return c.updatePanel(func(p PanelState) PanelState {
		if p == Visible {
			return Hidden
		}
		return Visible
	})
}

func (c *Controller) ShowShortcuts() PanelState {
	return c.updatePanel(func(PanelState) PanelState { return Visible })
}

func (c *Controller) HideShortcuts() PanelState {
	return c.updatePanel(func(PanelState) PanelState { return Hidden })
}

// SetMode drives both channels to the pair implied by m. Each channel is
// notified at most once, and only if it changed. An unknown mode is ignored.
func (c *Controller) SetMode(m Mode) Mode {
	v, p, ok := m.States()
	c.mu.Lock()
	if !ok {
		log.Warnf("control: ignoring unknown mode %d", int(m))
		cur := DeriveMode(c.voice.Value(), c.panel.Value())
		c.mu.Unlock()
		return cur
	}
	c.setVoiceLocked(v)
	c.setPanelLocked(p)
	c.mu.Unlock()
	c.queue.Drain(&c.mu)
	return m
}

func (c *Controller) updateVoice(next func(VoiceState) VoiceState) VoiceState {
	c.mu.Lock()
	v := next(c.voice.Value())
	c.setVoiceLocked(v)
	c.mu.Unlock()
	c.queue.Drain(&c.mu)
	return v
}

func (c *Controller) updatePanel(next func(PanelState) PanelState) PanelState {
	c.mu.Lock()
	p := next(c.panel.Value())
	c.setPanelLocked(p)
	c.mu.Unlock()
	c.queue.Drain(&c.mu)
	return p
}

func (c *Controller) setVoiceLocked(v VoiceState) {
	if deliver, changed := c.voice.Set(v); changed {
		log.StateChange("voice", v.String())
		c.queue.Push(deliver)
	}
}

func (c *Controller) setPanelLocked(p PanelState) {
	if deliver, changed := c.panel.Set(p); changed {
		log.StateChange("shortcuts", p.String())
		c.queue.Push(deliver)
	}
}

// RegisterVoice adds o to the voice channel and, before returning, calls it
// once with the current value. Registering o again does nothing.
func (c *Controller) RegisterVoice(o *Observer[VoiceState]) {
	c.mu.Lock()
	deliver, added := c.voice.Add(o)
	c.mu.Unlock()
	if added {
		deliver()
	}
}

func (c *Controller) UnregisterVoice(o *Observer[VoiceState]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.voice.Remove(o)
}

// RegisterShortcuts is RegisterVoice for the panel channel.
func (c *Controller) RegisterShortcuts(o *Observer[PanelState]) {
	c.mu.Lock()
	deliver, added := c.panel.Add(o)
	c.mu.Unlock()
	if added {
		deliver()
	}
}

func (c *Controller) UnregisterShortcuts(o *Observer[PanelState]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panel.Remove(o)
}

// Shutdown drops every observer. The Controller keeps working afterwards
// but notifies no one.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.voice.Clear()
	c.panel.Clear()
}

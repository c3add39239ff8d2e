package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/collision"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

const chargeOpacity = 0.35

// BeamSystem walks beams through charge, extend, hold and retract. Damage is
// only dealt while holding, at most once per tick interval.
type BeamSystem struct {
	audio Audio
}

func NewBeamSystem(audio Audio) *BeamSystem {
	return &BeamSystem{audio: audio}
}

func (s *BeamSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	target, hasTarget := playerTarget(w)
	pe, _ := playerEntity(w)
	targetRadius := radius(w, pe)

	ecs.ForEach2(w, component.BeamComponent.Kind(), component.LifecycleComponent.Kind(), func(e ecs.Entity, b *component.Beam, lc *component.Lifecycle) {
		if !lc.Active() {
			stopBeam(b)
			return
		}
		b.Origin = position(w, e)

		switch b.Phase {
		case component.BeamIdle:
			if b.CooldownTimer > 0 {
				b.CooldownTimer = math.Max(0, b.CooldownTimer-dt)
			}
			if !hasTarget || b.CooldownTimer > common.TimeEpsilon || !beamIntent(w, e) {
				return
			}
			b.Direction = common.Direction(b.Origin, target)
			if b.Direction.X == 0 && b.Direction.Y == 0 {
				b.Direction = cp.Vector{X: 1}
			}
			b.Phase = component.BeamCharging
			b.PhaseTimer = 0
			b.Length = b.MaxLength * b.ChargeFraction
			b.Opacity = chargeOpacity
			b.Fired++
		case component.BeamCharging:
			p := beamProgress(b, b.ChargeDuration, dt)
			b.Length = b.MaxLength * b.ChargeFraction
			b.Opacity = chargeOpacity * (0.5 + 0.5*p)
			if p >= 1 {
				b.Enter(component.BeamExtending)
				if s.audio != nil {
					s.audio.PlayBeamSound()
				}
			}
		case component.BeamExtending:
			p := beamProgress(b, b.ExtendDuration, dt)
			b.Length = b.MaxLength * p
			b.Opacity = 1
			if p >= 1 {
				b.Enter(component.BeamHolding)
				b.TickTimer = b.TickInterval
			}
		case component.BeamHolding:
			p := beamProgress(b, b.HoldDuration, dt)
			b.Length = b.MaxLength
			b.Opacity = 1
			b.Intensity = 0.75 + 0.25*math.Sin(2*math.Pi*b.PulseRate*b.PhaseTimer)
			b.TickTimer = math.Min(b.TickTimer+dt, b.TickInterval)
			if hasTarget && common.Reached(b.TickTimer, b.TickInterval) &&
				collision.SegmentHit(b.Origin, b.Direction, b.Length, b.HalfWidth, target, targetRadius) {
				if TakeDamage(w, pe, b.Damage) {
					b.Hits++
					s.playerHit(w, pe, b.Damage)
				}
				b.TickTimer = 0
			}
			if p >= 1 {
				b.Enter(component.BeamRetracting)
			}
		case component.BeamRetracting:
			p := beamProgress(b, b.RetractDuration, dt)
			b.Length = b.MaxLength * (1 - p)
			b.Opacity = 1 - p
			if p >= 1 {
				stopBeam(b)
				b.CooldownTimer = b.Cooldown
			}
		}
	})
}

func (s *BeamSystem) playerHit(w *ecs.World, pe ecs.Entity, damage int) {
	if s.audio != nil {
		s.audio.PlayHitSound()
	}
	remaining := 0
	if h, ok := ecs.Get(w, pe, component.HealthComponent.Kind()); ok {
		remaining = h.Current
	}
	push(w, EventPlayerHit, pe, HitInfo{Damage: damage, Remaining: remaining})
}

func beamIntent(w *ecs.World, e ecs.Entity) bool {
	if brain, ok := ecs.Get(w, e, component.BrainComponent.Kind()); ok {
		return brain.FireIntent
	}
	return true
}

func beamProgress(b *component.Beam, duration, dt float64) float64 {
	b.PhaseTimer += dt
	return common.Progress(b.PhaseTimer, duration)
}

func stopBeam(b *component.Beam) {
	b.Phase = component.BeamIdle
	b.PhaseTimer = 0
	b.Length = 0
	b.Opacity = 0
	b.Intensity = 0
}

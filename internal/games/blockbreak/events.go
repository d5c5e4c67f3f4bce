package blockbreak

import "github.com/vovakirdan/blockbreak/internal/core"

// EventKind classifies something that happened during a tick.
type EventKind uint8

const (
	EventWallBounce EventKind = iota + 1
	EventPaddleBounce
	EventBlockHit // damaged or deflected, not destroyed
	EventBlockBreak
	EventExplosion
	EventDropSpawn
	EventPowerUp
	EventEffectExpired
	EventBallLost
	EventComboLost
	EventLevelClear
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventWallBounce:
		return "wall_bounce"
	case EventPaddleBounce:
		return "paddle_bounce"
	case EventBlockHit:
		return "block_hit"
	case EventBlockBreak:
		return "block_break"
	case EventExplosion:
		return "explosion"
	case EventDropSpawn:
		return "drop_spawn"
	case EventPowerUp:
		return "powerup"
	case EventEffectExpired:
		return "effect_expired"
	case EventBallLost:
		return "ball_lost"
	case EventComboLost:
		return "combo_lost"
	case EventLevelClear:
		return "level_clear"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is one notification for presentation and audio.
type Event struct {
	Kind  EventKind
	Pos   core.Vec2
	Power PowerUpKind // EventDropSpawn, EventPowerUp, EventEffectExpired
	Value int         // points for EventBlockBreak, chain size for EventExplosion
}

// Sound maps an event to its audio cue, if it has one.
func (e Event) Sound() (core.Sound, bool) {
	switch e.Kind {
	case EventWallBounce, EventPaddleBounce, EventBlockHit:
		return core.SoundBounce, true
	case EventBlockBreak:
		return core.SoundBreak, true
	case EventExplosion:
		return core.SoundExplosion, true
	case EventPowerUp:
		return core.SoundPowerUp, true
	case EventGameOver:
		return core.SoundGameOver, true
	case EventLevelClear:
		return core.SoundLevelUp, true
	default:
		return 0, false
	}
}

// Sounds returns the distinct cues for a batch of events, in first-seen order.
func Sounds(events []Event) []core.Sound {
	var out []core.Sound
	var seen [8]bool
	for _, e := range events {
		s, ok := e.Sound()
		if !ok || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

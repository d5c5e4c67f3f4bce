package core

// Sound is a fire-and-forget audio cue emitted by a simulation step.
// Playback is the platform's business; games only report what happened.
type Sound uint8

const (
	SoundBounce Sound = iota + 1
	SoundBreak
	SoundExplosion
	SoundPowerUp
	SoundGameOver
	SoundLevelUp
)

func (s Sound) String() string {
	switch s {
	case SoundBounce:
		return "bounce"
	case SoundBreak:
		return "break"
	case SoundExplosion:
		return "explosion"
	case SoundPowerUp:
		return "powerup"
	case SoundGameOver:
		return "gameover"
	case SoundLevelUp:
		return "levelup"
	default:
		return "unknown"
	}
}

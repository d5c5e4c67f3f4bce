package config

import (
	_ "embed"
)

//go:embed defaults/blockbreak.yaml
var defaultBlockbreakYAML []byte

// DefaultBlockbreakConfig returns the hard-coded defaults. They mirror
// defaults/blockbreak.yaml and back it up if the embedded file is unreadable.
func DefaultBlockbreakConfig() BlockbreakConfig {
	return BlockbreakConfig{
		Arena: ArenaConfig{Width: 800, Height: 800, WallThickness: 10},
		Paddle: PaddleConfig{
			Width:          100,
			Height:         20,
			Speed:          500,
			Y:              750,
			MaxBounceAngle: 60,
		},
		Ball: BallConfig{Size: 15, Speed: 400},
		Blocks: BlocksConfig{
			Width:           70,
			Height:          25,
			Gap:             5,
			TopY:            120,
			Points:          10,
			DurableBonus:    5,
			ExplosionRadius: 100,
			FlashDuration:   0.15,
		},
		Combo: ComboConfig{
			Window:        1.5,
			Step:          1,
			MaxMultiplier: 10,
			PopupDuration: 1.0,
		},
		PowerUps: PowerUpsConfig{
			DropChance:     0.15,
			FallSpeed:      150,
			Size:           20,
			WideFactor:     1.5,
			WideDuration:   8,
			SlowFactor:     0.6,
			SlowDuration:   6,
			FireDuration:   5,
			MultiBallAngle: 0.52,
		},
		Progression: ProgressionConfig{
			Enabled:          true,
			SpeedStep:        0.1,
			ProceduralFrom:   4,
			SpecialShare:     0.15,
			SpecialShareStep: 0.05,
			MaxSpecialShare:  0.6,
			ToughFrom:        6,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBlockbreakYAML
}

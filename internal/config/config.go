// Package config loads the YAML game configuration and applies difficulty
// presets and per-level progression.
package config

// BlockbreakConfig holds every tunable of the simulation. Distances are in
// arena units, durations in seconds, speeds in units per second.
type BlockbreakConfig struct {
	Arena       ArenaConfig       `yaml:"arena"`
	Paddle      PaddleConfig      `yaml:"paddle"`
	Ball        BallConfig        `yaml:"ball"`
	Blocks      BlocksConfig      `yaml:"blocks"`
	Combo       ComboConfig       `yaml:"combo"`
	PowerUps    PowerUpsConfig    `yaml:"powerups"`
	Progression ProgressionConfig `yaml:"progression"`
}

// ArenaConfig describes the playfield and its walls.
type ArenaConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
}

// PaddleConfig describes the player paddle.
type PaddleConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Speed          float64 `yaml:"speed"`
	Y              float64 `yaml:"y"`                // centre line
	MaxBounceAngle float64 `yaml:"max_bounce_angle"` // degrees from vertical
}

// BallConfig describes the ball.
type BallConfig struct {
	Size  float64 `yaml:"size"`
	Speed float64 `yaml:"speed"` // level 1 base speed
}

// BlocksConfig describes the block grid and scoring.
type BlocksConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Gap             float64 `yaml:"gap"`
	TopY            float64 `yaml:"top_y"` // centre of row 0
	Points          int     `yaml:"points"`
	DurableBonus    int     `yaml:"durable_bonus"`
	ExplosionRadius float64 `yaml:"explosion_radius"`
	FlashDuration   float64 `yaml:"flash_duration"`
}

// ComboConfig describes the combo streak.
type ComboConfig struct {
	Window        float64 `yaml:"window"`
	Step          int     `yaml:"step"` // destructions per multiplier increment
	MaxMultiplier int     `yaml:"max_multiplier"`
	PopupDuration float64 `yaml:"popup_duration"`
}

// PowerUpsConfig describes drops and effect strengths.
type PowerUpsConfig struct {
	DropChance     float64 `yaml:"drop_chance"`
	FallSpeed      float64 `yaml:"fall_speed"`
	Size           float64 `yaml:"size"`
	WideFactor     float64 `yaml:"wide_factor"`
	WideDuration   float64 `yaml:"wide_duration"`
	SlowFactor     float64 `yaml:"slow_factor"`
	SlowDuration   float64 `yaml:"slow_duration"`
	FireDuration   float64 `yaml:"fire_duration"`
	MultiBallAngle float64 `yaml:"multiball_angle"` // radians either side of the source heading
}

// ProgressionConfig controls how later levels get harder.
type ProgressionConfig struct {
	Enabled          bool    `yaml:"enabled"`
	SpeedStep        float64 `yaml:"speed_step"`         // ball speed gain per level
	ProceduralFrom   int     `yaml:"procedural_from"`    // first generated level
	SpecialShare     float64 `yaml:"special_share"`      // special block share at ProceduralFrom
	SpecialShareStep float64 `yaml:"special_share_step"` // added per level after that
	MaxSpecialShare  float64 `yaml:"max_special_share"`
	ToughFrom        int     `yaml:"tough_from"` // level where durable blocks may take 3 hits
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

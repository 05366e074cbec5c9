package domain

// Tuning - все числа, от которых зависит ощущение игры.
// Единицы: расстояния в единицах мира, время в тиках (60 тиков = 1 секунда).
// Теги mapstructure читает viper (секция "game" конфига), msgpack - запись забега.
type Tuning struct {
	// Игрок
	Gravity          float64 `mapstructure:"gravity" msgpack:"gravity"`
	JumpForce        float64 `mapstructure:"jump_force" msgpack:"jump_force"`
	DoubleJumpFactor float64 `mapstructure:"double_jump_factor" msgpack:"double_jump_factor"`
	LateralSpeed     float64 `mapstructure:"lateral_speed" msgpack:"lateral_speed"`
	LateralLimit     float64 `mapstructure:"lateral_limit" msgpack:"lateral_limit"`
	HitboxScale      float64 `mapstructure:"hitbox_scale" msgpack:"hitbox_scale"`

	// Препятствия
	BaseSpeed         float64 `mapstructure:"base_speed" msgpack:"base_speed"`
	SpawnDistance     float64 `mapstructure:"spawn_distance" msgpack:"spawn_distance"`
	SpawnInterval     float64 `mapstructure:"spawn_interval" msgpack:"spawn_interval"`
	MinSpawnInterval  float64 `mapstructure:"min_spawn_interval" msgpack:"min_spawn_interval"`
	SpawnIntervalStep float64 `mapstructure:"spawn_interval_step" msgpack:"spawn_interval_step"`
	LateralSpread     float64 `mapstructure:"lateral_spread" msgpack:"lateral_spread"`
	RemovalThreshold  float64 `mapstructure:"removal_threshold" msgpack:"removal_threshold"`
	BurstChance       float64 `mapstructure:"burst_chance" msgpack:"burst_chance"`
	BurstDelay        int     `mapstructure:"burst_delay" msgpack:"burst_delay"`

	// Очки и сложность
	ScorePerTick   float64 `mapstructure:"score_per_tick" msgpack:"score_per_tick"`
	SpeedInterval  int     `mapstructure:"speed_interval" msgpack:"speed_interval"`
	SpeedIncrement float64 `mapstructure:"speed_increment" msgpack:"speed_increment"`
	CollisionGrace float64 `mapstructure:"collision_grace" msgpack:"collision_grace"`

	// Фазы и эффекты
	CountdownTicks  int `mapstructure:"countdown_ticks" msgpack:"countdown_ticks"`
	SlowMotionTicks int `mapstructure:"slow_motion_ticks" msgpack:"slow_motion_ticks"`
	FlashTicks      int `mapstructure:"flash_ticks" msgpack:"flash_ticks"`

	// Следы и бонусы
	MaxTrails         int     `mapstructure:"max_trails" msgpack:"max_trails"`
	CollectibleChance float64 `mapstructure:"collectible_chance" msgpack:"collectible_chance"`
	CollectibleBonus  float64 `mapstructure:"collectible_bonus" msgpack:"collectible_bonus"`
}

// DefaultTuning возвращает значения оригинальной игры.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:          0.015,
		JumpForce:        0.35,
		DoubleJumpFactor: 0.8,
		LateralSpeed:     0.1,
		LateralLimit:     4,
		HitboxScale:      0.8,

		BaseSpeed:         0.1,
		SpawnDistance:     30,
		SpawnInterval:     60,
		MinSpawnInterval:  30,
		SpawnIntervalStep: 0.1,
		LateralSpread:     8,
		RemovalThreshold:  5,
		BurstChance:       0.2,
		BurstDelay:        24,

		ScorePerTick:   0.1,
		SpeedInterval:  10,
		SpeedIncrement: 0.01,
		CollisionGrace: 5,

		CountdownTicks:  180,
		SlowMotionTicks: 30,
		FlashTicks:      12,

		MaxTrails:         20,
		CollectibleChance: 0.002,
		CollectibleBonus:  5,
	}
}

package match

// Settings tunes the board layout, the turn choreography and the AI
type Settings struct {
	Players  int  `mapstructure:"players"`
	LoneWolf bool `mapstructure:"loneWolf"`

	GridSize   int     `mapstructure:"gridSize"`
	CellPitch  float64 `mapstructure:"cellPitch"`
	RingRadius float64 `mapstructure:"ringRadius"`

	// AI commanders act at a random interval in [AIDelayMin, AIDelayMax)
	AIDelayMin          float64 `mapstructure:"aiDelayMin"`
	AIDelayMax          float64 `mapstructure:"aiDelayMax"`
	AIRetryDelay        float64 `mapstructure:"aiRetryDelay"`
	AIPlacementAttempts int     `mapstructure:"aiPlacementAttempts"`

	PanToAttackOrigin     float64 `mapstructure:"panToAttackOrigin"`
	DwellOnAttackOrigin   float64 `mapstructure:"dwellOnAttackOrigin"`
	HoldOnTargetGrid      float64 `mapstructure:"holdOnTargetGrid"`
	LaunchWarningFraction float64 `mapstructure:"launchWarningFraction"`
	// ImpactTimeout ends a turn whose weapon never reports an impact
	ImpactTimeout float64 `mapstructure:"impactTimeout"`
}

func DefaultSettings() Settings {
	return Settings{
		Players:  2,
		LoneWolf: false,

		GridSize:   8,
		CellPitch:  25,
		RingRadius: 250,

		AIDelayMin:          2,
		AIDelayMax:          5,
		AIRetryDelay:        1,
		AIPlacementAttempts: 500,

		PanToAttackOrigin:     2,
		DwellOnAttackOrigin:   2,
		HoldOnTargetGrid:      2,
		LaunchWarningFraction: 0.5,
		ImpactTimeout:         120,
	}
}

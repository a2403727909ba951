package vessel

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/aircraft"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

// Settings tunes every vessel class and the shared projectile pools
type Settings struct {
	CapsizeDuration float64 `mapstructure:"capsizeDuration"`
	CapsizeAngle    float64 `mapstructure:"capsizeAngle"`
	CapsizeDepth    float64 `mapstructure:"capsizeDepth"`
	// ReservationTTL is how long a prepared shot may wait to be fired
	ReservationTTL float64 `mapstructure:"reservationTTL"`

	ShellPoolSize    int `mapstructure:"shellPoolSize"`
	TomahawkPoolSize int `mapstructure:"tomahawkPoolSize"`
	JSMPoolSize      int `mapstructure:"jsmPoolSize"`

	Shell    weapons.ShellSettings    `mapstructure:"shell"`
	Tomahawk weapons.TomahawkSettings `mapstructure:"tomahawk"`
	JSM      weapons.JSMSettings      `mapstructure:"jsm"`

	Battleship BattleshipSettings `mapstructure:"battleship"`
	LCS        LCSSettings        `mapstructure:"lcs"`
	Destroyer  DestroyerSettings  `mapstructure:"destroyer"`
	Submarine  SubmarineSettings  `mapstructure:"submarine"`
	Carrier    CarrierSettings    `mapstructure:"carrier"`
}

type BattleshipSettings struct {
	Turret weapons.TurretSettings `mapstructure:"turret"`
}

type LCSSettings struct {
	Turret        weapons.TurretSettings `mapstructure:"turret"`
	BurstCount    int                    `mapstructure:"burstCount"`
	BurstInterval float64                `mapstructure:"burstInterval"`
}

type DestroyerSettings struct {
	HatchOpenTime   float64 `mapstructure:"hatchOpenTime"`
	HatchCloseDelay float64 `mapstructure:"hatchCloseDelay"`
	HatchCloseTime  float64 `mapstructure:"hatchCloseTime"`
}

type SubmarineSettings struct {
	HatchOpenTime  float64 `mapstructure:"hatchOpenTime"`
	HatchDwellTime float64 `mapstructure:"hatchDwellTime"`
	HatchCloseTime float64 `mapstructure:"hatchCloseTime"`
}

type CarrierSettings struct {
	LiftTravelTime float64 `mapstructure:"liftTravelTime"`
	AircraftCount  int     `mapstructure:"aircraftCount"`
	// EnableDelay and SecondEnableDelay release the two ready aircraft;
	// the rest follow every ActivateInterval
	EnableDelay       float64           `mapstructure:"enableDelay"`
	SecondEnableDelay float64           `mapstructure:"secondEnableDelay"`
	ActivateInterval  float64           `mapstructure:"activateInterval"`
	FuelToFireLimit   float64           `mapstructure:"fuelToFireLimit"`
	Aircraft          aircraft.Settings `mapstructure:"aircraft"`
}

func DefaultSettings() Settings {
	battleshipTurret := weapons.DefaultTurretSettings()
	battleshipTurret.Barrels = 3
	battleshipTurret.BarrelSpacing = 1.2

	return Settings{
		CapsizeDuration: 4,
		CapsizeAngle:    45,
		CapsizeDepth:    5,
		ReservationTTL:  20,

		ShellPoolSize:    24,
		TomahawkPoolSize: 8,
		JSMPoolSize:      8,

		Shell:    weapons.DefaultShellSettings(),
		Tomahawk: weapons.DefaultTomahawkSettings(),
		JSM:      weapons.DefaultJSMSettings(),

		Battleship: BattleshipSettings{Turret: battleshipTurret},
		LCS: LCSSettings{
			Turret:        weapons.DefaultTurretSettings(),
			BurstCount:    3,
			BurstInterval: 0.6,
		},
		Destroyer: DestroyerSettings{
			HatchOpenTime:   0.1,
			HatchCloseDelay: 5,
			HatchCloseTime:  1,
		},
		Submarine: SubmarineSettings{
			HatchOpenTime:  1,
			HatchDwellTime: 4,
			HatchCloseTime: 1,
		},
		Carrier: CarrierSettings{
			LiftTravelTime:    4,
			AircraftCount:     4,
			EnableDelay:       3,
			SecondEnableDelay: 2,
			ActivateInterval:  15,
			FuelToFireLimit:   20,
			Aircraft:          aircraft.DefaultSettings(),
		},
	}
}

package aircraft

// Settings tunes the F35. Speeds, accelerations, climb rate and waypoint
// tolerance are in airframe units and are multiplied by WorldScale when the
// aircraft moves.
type Settings struct {
	GearDoorTime    float64 `mapstructure:"gearDoorTime"`
	GearActuateTime float64 `mapstructure:"gearActuateTime"`
	BayActuateTime  float64 `mapstructure:"bayActuateTime"`
	BayDoorHoldTime float64 `mapstructure:"bayDoorHoldTime"`

	TaxiSpeed             float64 `mapstructure:"taxiSpeed"`
	LandingSpeed          float64 `mapstructure:"landingSpeed"`
	FlightSpeed           float64 `mapstructure:"flightSpeed"`
	LaunchAcceleration    float64 `mapstructure:"launchAcceleration"`
	FlightAcceleration    float64 `mapstructure:"flightAcceleration"`
	ArrestingAcceleration float64 `mapstructure:"arrestingAcceleration"`
	GroundAcceleration    float64 `mapstructure:"groundAcceleration"`

	AirTurnRate                 float64 `mapstructure:"airTurnRate"`
	AirTurnRateSpeedCoefficient float64 `mapstructure:"airTurnRateSpeedCoefficient"`
	GroundTurnRate              float64 `mapstructure:"groundTurnRate"`
	ClimbRate                   float64 `mapstructure:"climbRate"`
	FollowOriginZoom            float64 `mapstructure:"followOriginZoom"`
	FlightAltitude              float64 `mapstructure:"flightAltitude"`
	FlightAltitudeJitter        float64 `mapstructure:"flightAltitudeJitter"`
	MaxOffAxisFire              float64 `mapstructure:"maxOffAxisFire"`
	OvershootHoldTime           float64 `mapstructure:"overshootHoldTime"`
	WaypointTolerance           float64 `mapstructure:"waypointTolerance"`
	WorldScale                  float64 `mapstructure:"worldScale"`
	MissileTargetHeight         float64 `mapstructure:"missileTargetHeight"`

	StartingFuel          float64 `mapstructure:"startingFuel"`
	FuelBurnPerSecond     float64 `mapstructure:"fuelBurnPerSecond"`
	ReturnToBaseFuelLevel float64 `mapstructure:"returnToBaseFuelLevel"`
}

func DefaultSettings() Settings {
	return Settings{
		GearDoorTime:    2,
		GearActuateTime: 2,
		BayActuateTime:  1,
		BayDoorHoldTime: 1,

		TaxiSpeed:             0.2,
		LandingSpeed:          2,
		FlightSpeed:           4,
		LaunchAcceleration:    5,
		FlightAcceleration:    2,
		ArrestingAcceleration: 8,
		GroundAcceleration:    1,

		AirTurnRate:                 90,
		AirTurnRateSpeedCoefficient: 1,
		GroundTurnRate:              360,
		ClimbRate:                   1,
		FollowOriginZoom:            5,
		FlightAltitude:              80,
		FlightAltitudeJitter:        5,
		MaxOffAxisFire:              15,
		OvershootHoldTime:           2,
		WaypointTolerance:           0.3,
		WorldScale:                  10,
		MissileTargetHeight:         0.4,

		StartingFuel:          120,
		FuelBurnPerSecond:     1,
		ReturnToBaseFuelLevel: 40,
	}
}

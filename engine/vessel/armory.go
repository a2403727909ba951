package vessel

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

// Armory holds the projectile pools every fleet in a match draws from
type Armory struct {
	Shells    *weapons.Pool[*weapons.Shell]
	Tomahawks *weapons.Pool[weapons.Missile]
	JSMs      *weapons.Pool[weapons.Missile]
}

func NewArmory(env weapons.Env, s *Settings) *Armory {
	return &Armory{
		Shells:    weapons.NewShellPool(env, s.Shell, s.ShellPoolSize),
		Tomahawks: weapons.NewTomahawkPool(env, s.Tomahawk, s.TomahawkPoolSize),
		JSMs:      weapons.NewJSMPool(env, s.JSM, s.JSMPoolSize),
	}
}

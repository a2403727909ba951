package weapons

import "fmt"

// FuseResult is what a projectile does when it reaches its target
type FuseResult uint8

const (
	NoAction FuseResult = iota
	Detonate
	Terminate
	Splash
)

func (f FuseResult) String() string {
	switch f {
	case NoAction:
		return "NoAction"
	case Detonate:
		return "Detonate"
	case Terminate:
		return "Terminate"
	case Splash:
		return "Splash"
	}
	return fmt.Sprintf("FuseResult(%d)", uint8(f))
}

// FuseFor picks the impact behaviour for a shot: a hit on a vessel detonates,
// anything else splashes
func FuseFor(targetIsVessel bool) FuseResult {
	if targetIsVessel {
		return Detonate
	}
	return Splash
}

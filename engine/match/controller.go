package match

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/grid"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/logging"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/vessel"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

// State is the phase of a match
type State uint8

const (
	Lobby State = iota
	Placing
	Playing
	Victory
)

func (s State) String() string {
	switch s {
	case Lobby:
		return "Lobby"
	case Placing:
		return "Placing"
	case Playing:
		return "Playing"
	case Victory:
		return "Victory"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// CommanderMode says whether a commander fights or only watches
type CommanderMode uint8

const (
	Observe CommanderMode = iota
	Combat
)

// Status is the match's record of one commander
type Status struct {
	Mode              CommanderMode
	ColorIndex        int
	TeamName          string
	Grid              *grid.Grid
	Playing           bool
	PlacementComplete bool
	FollowEnabled     bool

	eliminated   bool
	aiNextAction float64
}

// team is every combat commander sharing a colour
type team struct {
	color   int
	layer   core.Layer
	players int
}

// TimeScaler is the loop whose speed the match can change
type TimeScaler interface {
	SetTimeScale(s float64)
}

// Controller referees a match: seats, teams, placement, turns and victory
type Controller struct {
	env      weapons.Env
	log      logging.Logger
	settings Settings
	vessels  *vessel.Settings
	armory   *vessel.Armory
	mode     GameMode
	clock    TimeScaler

	state      State
	commanders []*core.Commander
	status     *swiss.Map[*core.Commander, *Status]
	teams      []*team

	playOrder []*core.Commander
	playIndex int
	attacking *core.Commander
	hasFired  bool

	current      *attack
	shotCounter  int
	launchWarned bool
	schedule     core.Scheduler
	lastDensity  map[*grid.Grid]grid.Density
}

// New creates a controller in the lobby and registers it with the world
func New(env weapons.Env, settings Settings, vessels *vessel.Settings) (*Controller, error) {
	mode, err := ModeFor(settings.Players, settings.LoneWolf)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		env:         env,
		log:         env.Log.With("component", "match"),
		settings:    settings,
		vessels:     vessels,
		armory:      vessel.NewArmory(env, vessels),
		mode:        mode,
		status:      swiss.NewMap[*core.Commander, *Status](8),
		playIndex:   -1,
		lastDensity: make(map[*grid.Grid]grid.Density),
	}
	env.World.AddSystem(c)
	return c, nil
}

func (c *Controller) Priority() int { return 50 }

func (c *Controller) State() State                        { return c.state }
func (c *Controller) Mode() GameMode                      { return c.mode }
func (c *Controller) Playing() bool                       { return c.state == Playing }
func (c *Controller) AttackingCommander() *core.Commander { return c.attacking }
func (c *Controller) HasFired() bool                      { return c.hasFired }

// Commanders lists every commander in the order they joined
func (c *Controller) Commanders() []*core.Commander { return c.commanders }

// Status is the record for commander
func (c *Controller) Status(commander *core.Commander) (*Status, bool) {
	return c.status.Get(commander)
}

// CombatCommanders are the commanders holding a combat seat
func (c *Controller) CombatCommanders() []*core.Commander {
	var out []*core.Commander
	for _, cmdr := range c.commanders {
		if s, _ := c.status.Get(cmdr); s.Mode == Combat {
			out = append(out, cmdr)
		}
	}
	return out
}

// Grids are the boards of the combat commanders, in seat order
func (c *Controller) Grids() []*grid.Grid {
	var out []*grid.Grid
	for _, cmdr := range c.commanders {
		if s, _ := c.status.Get(cmdr); s.Grid != nil {
			out = append(out, s.Grid)
		}
	}
	return out
}

// GridOf is the board commander defends
func (c *Controller) GridOf(commander *core.Commander) *grid.Grid {
	if s, ok := c.status.Get(commander); ok {
		return s.Grid
	}
	return nil
}

// LastDensity is the most recent AI targeting density computed for g
func (c *Controller) LastDensity(g *grid.Grid) (grid.Density, bool) {
	d, ok := c.lastDensity[g]
	return d, ok
}

// SetClock attaches the loop SetTimeMultiplier adjusts
func (c *Controller) SetClock(clock TimeScaler) { c.clock = clock }

// SetTimeMultiplier speeds up or slows down the whole simulation
func (c *Controller) SetTimeMultiplier(m float64) {
	if c.clock != nil {
		c.clock.SetTimeScale(m)
	}
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	from := c.state
	c.state = s
	c.log.Info("game state changed", "from", from, "to", s)
	c.env.World.Emit(core.EvtGameStateChanged, StateEvent{From: from, To: s})
}

func (c *Controller) requireState(s State, op string) error {
	if c.state != s {
		return fmt.Errorf("%s in %s: %w", op, c.state, ErrWrongState)
	}
	return nil
}

func (c *Controller) mustStatus(commander *core.Commander, op string) (*Status, error) {
	s, ok := c.status.Get(commander)
	if !ok {
		return nil, fmt.Errorf("%s for %s: %w", op, commander, ErrUnknownCommander)
	}
	return s, nil
}

// seats is the number of human combat seats and the AI seats left over
func (c *Controller) seats() (humans, ais int) {
	for _, cmdr := range c.commanders {
		if s, _ := c.status.Get(cmdr); s.Mode == Combat && !cmdr.IsAI() {
			humans++
		}
	}
	return humans, max(c.mode.Players-humans, 0)
}

func (c *Controller) availableColors() []int {
	used := make(map[int]bool)
	for _, cmdr := range c.commanders {
		s, _ := c.status.Get(cmdr)
		used[s.ColorIndex] = true
	}
	var out []int
	for i := range core.TeamColors {
		if !used[i] {
			out = append(out, i)
		}
	}
	return out
}

func (c *Controller) add(commander *core.Commander, mode CommanderMode) {
	color := 0
	if free := c.availableColors(); len(free) > 0 {
		color = free[0]
	}
	c.commanders = append(c.commanders, commander)
	c.status.Put(commander, &Status{Mode: mode, ColorIndex: color})
}

// Join seats a human commander in the lobby. Once every combat seat is taken
// later arrivals observe.
func (c *Controller) Join(commander *core.Commander) error {
	if err := c.requireState(Lobby, "join"); err != nil {
		return err
	}
	if c.status.Has(commander) {
		return nil
	}
	mode := Observe
	if _, ais := c.seats(); ais > 0 {
		mode = Combat
	}
	c.add(commander, mode)
	c.log.Info("commander joined", "commander", commander, "combat", mode == Combat)
	return nil
}

// Leave removes a commander from the lobby
func (c *Controller) Leave(commander *core.Commander) error {
	if err := c.requireState(Lobby, "leave"); err != nil {
		return err
	}
	c.removeCommander(commander)
	return nil
}

func (c *Controller) removeCommander(commander *core.Commander) {
	for i, cmdr := range c.commanders {
		if cmdr == commander {
			c.commanders = append(c.commanders[:i], c.commanders[i+1:]...)
			break
		}
	}
	c.status.Delete(commander)
}

// SetTeamColor moves a commander to the team of the given palette colour
func (c *Controller) SetTeamColor(commander *core.Commander, index int) error {
	if err := c.requireState(Lobby, "set team colour"); err != nil {
		return err
	}
	s, err := c.mustStatus(commander, "set team colour")
	if err != nil {
		return err
	}
	if index < 0 || index >= len(core.TeamColors) {
		return fmt.Errorf("set team colour %d: %w", index, ErrInvalidColor)
	}
	s.ColorIndex = index
	return nil
}

// SetGameMode changes the number of fleets and the fleet issued to each.
// Human commanders are reseated in join order.
func (c *Controller) SetGameMode(players int, loneWolf bool) error {
	if err := c.requireState(Lobby, "set game mode"); err != nil {
		return err
	}
	mode, err := ModeFor(players, loneWolf)
	if err != nil {
		return err
	}
	c.mode = mode
	seated := 0
	for _, cmdr := range c.commanders {
		s, _ := c.status.Get(cmdr)
		s.Mode = Observe
		if seated < mode.Players {
			s.Mode = Combat
			seated++
		}
	}
	c.log.Info("game mode set", "mode", mode)
	return nil
}

// SameTeam reports whether two commanders share a team colour
func (c *Controller) SameTeam(a, b *core.Commander) bool {
	sa, okA := c.status.Get(a)
	sb, okB := c.status.Get(b)
	return okA && okB && sa.ColorIndex == sb.ColorIndex
}

func (c *Controller) teamOf(commander *core.Commander) *team {
	s, ok := c.status.Get(commander)
	if !ok {
		return nil
	}
	for _, t := range c.teams {
		if t.color == s.ColorIndex {
			return t
		}
	}
	return nil
}

// TeamLayer is the layer only the commander's team can see
func (c *Controller) TeamLayer(commander *core.Commander) core.Layer {
	if t := c.teamOf(commander); t != nil {
		return t.layer
	}
	return core.LayerAll
}

func (c *Controller) prepareTeams() {
	c.teams = c.teams[:0]
	for _, cmdr := range c.CombatCommanders() {
		s, _ := c.status.Get(cmdr)
		if c.teamOf(cmdr) != nil {
			continue
		}
		c.teams = append(c.teams, &team{color: s.ColorIndex, layer: core.LayerFor(len(c.teams))})
	}
}

// StartPlacement fills the empty seats with AI commanders, deals out grids
// and fleets and opens placement
func (c *Controller) StartPlacement() error {
	if err := c.requireState(Lobby, "start placement"); err != nil {
		return err
	}
	rng := c.env.World.Rand

	_, ais := c.seats()
	for i := 0; i < ais; i++ {
		c.add(core.NewAICommander(i), Combat)
	}
	c.prepareTeams()

	combat := c.CombatCommanders()
	c.playOrder = append(c.playOrder[:0], combat...)
	rng.Shuffle(len(c.playOrder), func(i, j int) {
		c.playOrder[i], c.playOrder[j] = c.playOrder[j], c.playOrder[i]
	})
	c.playIndex = -1
	c.attacking = nil
	c.hasFired = false

	factions := vessel.ShuffledFactions(rng)
	size := c.settings.GridSize
	for i, cmdr := range combat {
		s, _ := c.status.Get(cmdr)
		frame := grid.Ring(i, len(combat), c.settings.RingRadius, c.settings.CellPitch)
		g := grid.New(c.env, cmdr, size, size, frame, c.TeamLayer(cmdr), c)

		faction := factions[i%len(factions)]
		for _, v := range vessel.BuildFleet(c.env, c.vessels, c.armory, c.mode.Fleet, faction.ShuffledNames(rng)) {
			g.AddVessel(v)
		}
		s.Grid = g
		s.TeamName = faction.Name
		s.Playing = false
		s.PlacementComplete = false
		s.eliminated = false
		if cmdr.IsAI() {
			s.aiNextAction = c.env.Now() + c.aiDelay()
		}
		c.teamOf(cmdr).players++
	}

	c.log.Info("placement started", "mode", c.mode, "commanders", len(combat), "teams", len(c.teams))
	c.setState(Placing)
	return nil
}

// SetPlacementComplete records whether commander's whole fleet is on the grid
func (c *Controller) SetPlacementComplete(commander *core.Commander, complete bool) {
	s, ok := c.status.Get(commander)
	if !ok || s.PlacementComplete == complete {
		return
	}
	s.PlacementComplete = complete
	c.env.World.Emit(core.EvtPlacementComplete, PlacementEvent{Commander: commander, Complete: complete})
}

// MarkCommanderReady flips a commander's launch switch. The game starts as
// soon as every combat commander is ready.
func (c *Controller) MarkCommanderReady(commander *core.Commander, ready bool) error {
	if err := c.requireState(Placing, "mark ready"); err != nil {
		return err
	}
	s, err := c.mustStatus(commander, "mark ready")
	if err != nil {
		return err
	}
	if ready && !s.PlacementComplete {
		return fmt.Errorf("mark %s ready: %w", commander, ErrPlacementIncomplete)
	}
	s.Playing = ready
	c.checkLaunchSwitches()
	return nil
}

func (c *Controller) checkLaunchSwitches() {
	if c.state != Placing {
		return
	}
	for _, cmdr := range c.CombatCommanders() {
		if s, _ := c.status.Get(cmdr); !s.Playing {
			return
		}
	}
	c.startGame()
}

func (c *Controller) startGame() {
	c.setState(Playing)
	for _, g := range c.Grids() {
		g.EnableVessels()
	}
	c.nextPlayer()
}

// nextPlayer hands the turn to the next commander in play order who is
// still playing
func (c *Controller) nextPlayer() {
	n := len(c.playOrder)
	for attempts := 0; attempts < n; attempts++ {
		c.playIndex = (c.playIndex + 1) % n
		next := c.playOrder[c.playIndex]
		if s, _ := c.status.Get(next); s.Playing {
			c.beginTurn(next, s)
			return
		}
	}
	c.log.Warn("No commanders are currently playing.")
}

func (c *Controller) beginTurn(commander *core.Commander, s *Status) {
	c.attacking = commander
	c.hasFired = false
	c.launchWarned = false
	c.current = nil
	if commander.IsAI() {
		s.aiNextAction = c.env.Now() + c.aiDelay()
	}
	c.log.Debug("turn started", "commander", commander)
	c.env.World.Emit(core.EvtTurnStarted, CommanderEvent{Commander: commander})
}

// EliminateCommander takes a commander whose fleet is gone out of play
func (c *Controller) EliminateCommander(commander *core.Commander) {
	s, ok := c.status.Get(commander)
	if !ok || s.eliminated {
		return
	}
	s.eliminated = true
	s.Playing = false
	if t := c.teamOf(commander); t != nil {
		t.players--
	}
	c.log.Info("commander eliminated", "commander", commander)
	c.env.Metrics.CommanderEliminated()
	c.env.World.Emit(core.EvtCommanderEliminated, CommanderEvent{Commander: commander})
}

// SelfDestruct sinks a commander's entire fleet
func (c *Controller) SelfDestruct(commander *core.Commander) error {
	if err := c.requireState(Playing, "self destruct"); err != nil {
		return err
	}
	s, err := c.mustStatus(commander, "self destruct")
	if err != nil {
		return err
	}
	if s.Grid == nil {
		return fmt.Errorf("self destruct %s: %w", commander, ErrUnknownCommander)
	}
	s.Grid.SelfDestruct()
	c.checkForVictory()
	if c.state == Playing && commander == c.attacking && !c.hasFired {
		c.nextPlayer()
	}
	return nil
}

// victor is the only team with commanders still playing
func (c *Controller) victor() *team {
	var victor *team
	for _, t := range c.teams {
		if t.players == 0 {
			continue
		}
		if victor != nil {
			return nil
		}
		victor = t
	}
	return victor
}

func (c *Controller) checkForVictory() {
	if c.state != Playing {
		return
	}
	victor := c.victor()
	if victor == nil {
		return
	}
	c.setState(Victory)
	c.env.Play(audio.SndVictory, core.Vec3{})
	for _, g := range c.Grids() {
		g.Reveal()
	}

	var members []*core.Commander
	for _, cmdr := range c.CombatCommanders() {
		if s, _ := c.status.Get(cmdr); s.ColorIndex == victor.color {
			members = append(members, cmdr)
		}
	}
	c.log.Info("victory", "color", victor.color, "commanders", len(members))
	c.env.World.Emit(core.EvtVictory, VictoryEvent{ColorIndex: victor.color, Commanders: members})
}

// EndGame tears the boards down and returns to the lobby. AI commanders leave.
func (c *Controller) EndGame() {
	c.schedule.StopAll()
	if a := c.current; a != nil {
		a.res.Release()
	}
	c.current = nil

	for _, cmdr := range append([]*core.Commander(nil), c.commanders...) {
		s, _ := c.status.Get(cmdr)
		if s.Grid != nil {
			s.Grid.Terminate()
		}
		s.Grid = nil
		s.Playing = false
		s.PlacementComplete = false
		s.FollowEnabled = false
		s.eliminated = false
		if cmdr.IsAI() {
			c.removeCommander(cmdr)
		}
	}

	c.teams = c.teams[:0]
	c.playOrder = c.playOrder[:0]
	c.attacking = nil
	c.hasFired = false
	clear(c.lastDensity)
	c.setState(Lobby)
}

// Update advances the attack choreography and the AI commanders
func (c *Controller) Update(_ *core.World, dt float64) {
	c.schedule.Update(dt)
	c.sweepReservation()
	c.watchFlight()
	c.processAICommanders()
}

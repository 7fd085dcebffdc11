package parser

import "github.com/rockysnow7/mlb-transformer/pkg/models"

// slot names a target field of PlayContents
type slot int

const (
	slotBatter slot = iota
	slotPitcher
	slotFielders
	slotCatcher
	slotRunner
	slotScoringRunner
	slotBase
)

// slotMarkers maps each slot to the marker literal that introduces it
var slotMarkers = map[slot]string{
	slotBatter:        "[BATTER]",
	slotPitcher:       "[PITCHER]",
	slotFielders:      "[FIELDERS]",
	slotCatcher:       "[CATCHER]",
	slotRunner:        "[RUNNER]",
	slotScoringRunner: "[SCORING_RUNNER]",
	slotBase:          "[BASE]",
}

// playSchemas maps every play type to the ordered slots that follow it.
// Each entry is implicitly terminated by [MOVEMENTS] and the movement
// list, except GAME_ADVISORY, which carries no contents at all. This
// table is the whole grammar of a play body: the contents builder walks
// it in order with no branching.
var playSchemas = map[models.PlayType][]slot{
	models.PlayGroundout:              {slotBatter, slotPitcher, slotFielders},
	models.PlayBuntGroundout:          {slotBatter, slotPitcher, slotFielders},
	models.PlayLineout:                {slotBatter, slotPitcher, slotFielders},
	models.PlayBuntLineout:            {slotBatter, slotPitcher, slotFielders},
	models.PlayFlyout:                 {slotBatter, slotPitcher, slotFielders},
	models.PlayPopOut:                 {slotBatter, slotPitcher, slotFielders},
	models.PlayBuntPopOut:             {slotBatter, slotPitcher, slotFielders},
	models.PlayForceout:               {slotBatter, slotPitcher, slotFielders},
	models.PlayDoublePlay:             {slotBatter, slotPitcher, slotFielders},
	models.PlayTriplePlay:             {slotBatter, slotPitcher, slotFielders},
	models.PlayRunnerDoublePlay:       {slotBatter, slotPitcher, slotFielders},
	models.PlayRunnerTriplePlay:       {slotBatter, slotPitcher, slotFielders},
	models.PlayGroundedIntoDoublePlay: {slotBatter, slotPitcher, slotFielders},
	models.PlayStrikeoutDoublePlay:    {slotBatter, slotPitcher, slotFielders},
	models.PlayFieldersChoice:         {slotBatter, slotPitcher, slotFielders},
	models.PlayCatcherInterference:    {slotBatter, slotPitcher, slotFielders},
	models.PlayFieldError:             {slotBatter, slotPitcher, slotFielders},

	models.PlayStrikeout:  {slotBatter, slotPitcher},
	models.PlaySingle:     {slotBatter, slotPitcher},
	models.PlayDouble:     {slotBatter, slotPitcher},
	models.PlayTriple:     {slotBatter, slotPitcher},
	models.PlayHomeRun:    {slotBatter, slotPitcher},
	models.PlayWalk:       {slotBatter, slotPitcher},
	models.PlayIntentWalk: {slotBatter, slotPitcher},
	models.PlayHitByPitch: {slotBatter, slotPitcher},

	models.PlayPickoff:               {slotBase, slotRunner, slotFielders},
	models.PlayPickoffError:          {slotBase, slotRunner, slotFielders},
	models.PlayCaughtStealing:        {slotBase, slotRunner, slotFielders},
	models.PlayPickoffCaughtStealing: {slotBase, slotRunner, slotFielders},

	models.PlayWildPitch: {slotPitcher, slotRunner},

	models.PlayRunnerOut: {slotRunner, slotFielders},
	models.PlayFieldOut:  {slotRunner, slotFielders},

	models.PlayBalk: {slotPitcher},

	models.PlayPassedBall: {slotPitcher, slotCatcher},
	models.PlayError:      {slotPitcher, slotCatcher},

	models.PlayStolenBase: {slotBase, slotRunner},

	models.PlaySacFly:            {slotBatter, slotPitcher, slotFielders, slotScoringRunner},
	models.PlaySacFlyDoublePlay:  {slotBatter, slotPitcher, slotFielders, slotScoringRunner},
	models.PlayFieldersChoiceOut: {slotBatter, slotPitcher, slotFielders, slotScoringRunner},

	models.PlaySacBunt:           {slotBatter, slotPitcher, slotFielders, slotRunner},
	models.PlaySacBuntDoublePlay: {slotBatter, slotPitcher, slotFielders, slotRunner},

	models.PlayGameAdvisory: {},
}

// schemaFor returns the ordered slots for a play type. The boolean is
// false when the type has no entry, which means the table has a gap.
func schemaFor(playType models.PlayType) ([]slot, bool) {
	slots, ok := playSchemas[playType]
	return slots, ok
}

// HasSchema reports whether a play type has a schema entry. The table
// is meant to cover the whole enumeration; this exists so that can be
// checked mechanically.
func HasSchema(playType models.PlayType) bool {
	_, ok := playSchemas[playType]
	return ok
}

// markerPositions maps position markers like [SHORTSTOP] to positions
var markerPositions = func() map[string]models.Position {
	m := make(map[string]models.Position, len(models.AllPositions))
	for _, p := range models.AllPositions {
		m["["+string(p)+"]"] = p
	}
	return m
}()

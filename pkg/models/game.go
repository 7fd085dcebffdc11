package models

// Position is a player's fielding position or roster role
type Position string

const (
	PositionPitcher          Position = "PITCHER"
	PositionCatcher          Position = "CATCHER"
	PositionFirstBase        Position = "FIRST_BASE"
	PositionSecondBase       Position = "SECOND_BASE"
	PositionThirdBase        Position = "THIRD_BASE"
	PositionShortstop        Position = "SHORTSTOP"
	PositionLeftField        Position = "LEFT_FIELD"
	PositionCenterField      Position = "CENTER_FIELD"
	PositionRightField       Position = "RIGHT_FIELD"
	PositionDesignatedHitter Position = "DESIGNATED_HITTER"
	PositionPinchHitter      Position = "PINCH_HITTER"
	PositionPinchRunner      Position = "PINCH_RUNNER"
	PositionTwoWayPlayer     Position = "TWO_WAY_PLAYER"
	PositionOutfield         Position = "OUTFIELD"
	PositionInfield          Position = "INFIELD"
	PositionUtility          Position = "UTILITY"
	PositionReliefPitcher    Position = "RELIEF_PITCHER"
	PositionStartingPitcher  Position = "STARTING_PITCHER"
)

// AllPositions lists every recognized roster position
var AllPositions = []Position{
	PositionPitcher,
	PositionCatcher,
	PositionFirstBase,
	PositionSecondBase,
	PositionThirdBase,
	PositionShortstop,
	PositionLeftField,
	PositionCenterField,
	PositionRightField,
	PositionDesignatedHitter,
	PositionPinchHitter,
	PositionPinchRunner,
	PositionTwoWayPlayer,
	PositionOutfield,
	PositionInfield,
	PositionUtility,
	PositionReliefPitcher,
	PositionStartingPitcher,
}

// Player is a single roster entry
type Player struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
}

// Team is a roster in input order
type Team struct {
	ID      int      `json:"id"`
	Players []Player `json:"players"`
}

// Weather holds the game-day conditions from the transcript header
type Weather struct {
	Condition   string `json:"condition"`
	Temperature int    `json:"temperature"` // °F
	WindSpeed   int    `json:"wind_speed"`  // mph
}

// GameContext is everything before [GAME_START]: identity, venue,
// weather and both rosters. The first team in the transcript is the
// home team, the second the away team.
type GameContext struct {
	GamePK   int     `json:"game_pk"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Venue    string  `json:"venue"`
	Weather  Weather `json:"weather"`
	HomeTeam Team    `json:"home_team"`
	AwayTeam Team    `json:"away_team"`
}

// Game is the root of a fully parsed transcript. Plays are ordered
// exactly as they appear in the input.
type Game struct {
	Context GameContext `json:"context"`
	Plays   []Play      `json:"plays"`
}

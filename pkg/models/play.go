package models

import "strings"

// PlayType enumerates every play kind that can appear after a [PLAY] marker
type PlayType string

const (
	// Outs
	PlayGroundout              PlayType = "GROUNDOUT"
	PlayBuntGroundout          PlayType = "BUNT_GROUNDOUT"
	PlayStrikeout              PlayType = "STRIKEOUT"
	PlayLineout                PlayType = "LINEOUT"
	PlayBuntLineout            PlayType = "BUNT_LINEOUT"
	PlayFlyout                 PlayType = "FLYOUT"
	PlayPopOut                 PlayType = "POP_OUT"
	PlayBuntPopOut             PlayType = "BUNT_POP_OUT"
	PlayForceout               PlayType = "FORCEOUT"
	PlayFieldersChoiceOut      PlayType = "FIELDERS_CHOICE_OUT"
	PlayDoublePlay             PlayType = "DOUBLE_PLAY"
	PlayTriplePlay             PlayType = "TRIPLE_PLAY"
	PlayRunnerDoublePlay       PlayType = "RUNNER_DOUBLE_PLAY"
	PlayRunnerTriplePlay       PlayType = "RUNNER_TRIPLE_PLAY"
	PlayGroundedIntoDoublePlay PlayType = "GROUNDED_INTO_DOUBLE_PLAY"
	PlayStrikeoutDoublePlay    PlayType = "STRIKEOUT_DOUBLE_PLAY"
	PlayPickoff                PlayType = "PICKOFF"
	PlayPickoffError           PlayType = "PICKOFF_ERROR"
	PlayCaughtStealing         PlayType = "CAUGHT_STEALING"
	PlayPickoffCaughtStealing  PlayType = "PICKOFF_CAUGHT_STEALING"
	PlayWildPitch              PlayType = "WILD_PITCH"
	PlayRunnerOut              PlayType = "RUNNER_OUT"
	PlayFieldOut               PlayType = "FIELD_OUT"
	PlayBalk                   PlayType = "BALK"
	PlayPassedBall             PlayType = "PASSED_BALL"
	PlayError                  PlayType = "ERROR"

	// Scores
	PlaySingle              PlayType = "SINGLE"
	PlayDouble              PlayType = "DOUBLE"
	PlayTriple              PlayType = "TRIPLE"
	PlayHomeRun             PlayType = "HOME_RUN"
	PlayWalk                PlayType = "WALK"
	PlayIntentWalk          PlayType = "INTENT_WALK"
	PlayHitByPitch          PlayType = "HIT_BY_PITCH"
	PlayFieldersChoice      PlayType = "FIELDERS_CHOICE"
	PlayCatcherInterference PlayType = "CATCHER_INTERFERENCE"
	PlayStolenBase          PlayType = "STOLEN_BASE"

	// Other
	PlaySacFly            PlayType = "SAC_FLY"
	PlaySacFlyDoublePlay  PlayType = "SAC_FLY_DOUBLE_PLAY"
	PlaySacBunt           PlayType = "SAC_BUNT"
	PlaySacBuntDoublePlay PlayType = "SAC_BUNT_DOUBLE_PLAY"
	PlayFieldError        PlayType = "FIELD_ERROR"
	PlayGameAdvisory      PlayType = "GAME_ADVISORY"
)

// AllPlayTypes lists every recognized play type
var AllPlayTypes = []PlayType{
	PlayGroundout,
	PlayBuntGroundout,
	PlayStrikeout,
	PlayLineout,
	PlayBuntLineout,
	PlayFlyout,
	PlayPopOut,
	PlayBuntPopOut,
	PlayForceout,
	PlayFieldersChoiceOut,
	PlayDoublePlay,
	PlayTriplePlay,
	PlayRunnerDoublePlay,
	PlayRunnerTriplePlay,
	PlayGroundedIntoDoublePlay,
	PlayStrikeoutDoublePlay,
	PlayPickoff,
	PlayPickoffError,
	PlayCaughtStealing,
	PlayPickoffCaughtStealing,
	PlayWildPitch,
	PlayRunnerOut,
	PlayFieldOut,
	PlayBalk,
	PlayPassedBall,
	PlayError,
	PlaySingle,
	PlayDouble,
	PlayTriple,
	PlayHomeRun,
	PlayWalk,
	PlayIntentWalk,
	PlayHitByPitch,
	PlayFieldersChoice,
	PlayCatcherInterference,
	PlayStolenBase,
	PlaySacFly,
	PlaySacFlyDoublePlay,
	PlaySacBunt,
	PlaySacBuntDoublePlay,
	PlayFieldError,
	PlayGameAdvisory,
}

var playTypeSet = func() map[PlayType]struct{} {
	set := make(map[PlayType]struct{}, len(AllPlayTypes))
	for _, pt := range AllPlayTypes {
		set[pt] = struct{}{}
	}
	return set
}()

// PlayTypeFromText resolves free transcript text (case-insensitive,
// space-separated) against the play type enumeration. The boolean is
// false when the text matches nothing.
func PlayTypeFromText(text string) (PlayType, bool) {
	pt := PlayType(strings.ToUpper(strings.ReplaceAll(text, " ", "_")))
	_, ok := playTypeSet[pt]
	return pt, ok
}

// HomePlate is the normalized base number for the "home" token
const HomePlate = 4

// Movement records one runner advancing (or being put out) between two
// bases within a single play. Base 4 is home plate for both ends.
type Movement struct {
	Runner    string `json:"runner"`
	StartBase *int   `json:"start_base"`
	EndBase   *int   `json:"end_base"`
	IsOut     bool   `json:"is_out"`
}

// PlayContents carries the role slots for a play. Which slots are set
// is determined entirely by the play type's schema; everything else
// stays nil.
type PlayContents struct {
	Batter        *string    `json:"batter,omitempty"`
	Pitcher       *string    `json:"pitcher,omitempty"`
	Fielders      []string   `json:"fielders,omitempty"`
	Catcher       *string    `json:"catcher,omitempty"`
	Runner        *string    `json:"runner,omitempty"`
	ScoringRunner *string    `json:"scoring_runner,omitempty"`
	Base          *int       `json:"base,omitempty"`
	Movements     []Movement `json:"movements"`
}

// Play is one in-game event: its type plus the role data the type calls for
type Play struct {
	PlayType PlayType     `json:"play_type"`
	Contents PlayContents `json:"contents"`
}

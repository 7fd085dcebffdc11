package parser_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rockysnow7/mlb-transformer/internal/parser"
	"github.com/rockysnow7/mlb-transformer/pkg/models"
)

// header carries a full context section with two-player rosters
const header = "[GAME] 745804 [DATE] 2023-04-10 [VENUE] Test Park " +
	"[WEATHER] Partly Cloudy 70 5 " +
	"[TEAM] 100 [PITCHER] Jane Doe [SHORTSTOP] Alice Smith " +
	"[TEAM] 200 [PITCHER] John Roe [CATCHER] Bob Jones [GAME_START] "

// transcript wraps a plays section in a valid game
func transcript(plays string) string {
	return header + plays + " [GAME_END]"
}

func intp(n int) *int {
	return &n
}

func strp(s string) *string {
	return &s
}

func TestParseMinimalGame(t *testing.T) {
	// Concrete scenario: one strikeout, one player per roster
	text := "[GAME] 1 [DATE] 2023-04-10 [VENUE] Test Park [WEATHER] Clear 70 5 " +
		"[TEAM] 100 [PITCHER] Jane Doe [TEAM] 200 [PITCHER] John Roe [GAME_START] " +
		"[PLAY] STRIKEOUT [BATTER] John Roe [PITCHER] Jane Doe [MOVEMENTS] [GAME_END]"

	game, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if game.Context.GamePK != 1 {
		t.Errorf("GamePK = %d, want 1", game.Context.GamePK)
	}
	if game.Context.Date != "2023-04-10" {
		t.Errorf("Date = %q, want 2023-04-10", game.Context.Date)
	}
	if game.Context.Venue != "Test Park" {
		t.Errorf("Venue = %q, want Test Park", game.Context.Venue)
	}

	wantWeather := models.Weather{Condition: "Clear", Temperature: 70, WindSpeed: 5}
	if game.Context.Weather != wantWeather {
		t.Errorf("Weather = %+v, want %+v", game.Context.Weather, wantWeather)
	}

	if game.Context.HomeTeam.ID != 100 || game.Context.AwayTeam.ID != 200 {
		t.Errorf("team ids = %d/%d, want 100/200", game.Context.HomeTeam.ID, game.Context.AwayTeam.ID)
	}
	if len(game.Context.HomeTeam.Players) != 1 || len(game.Context.AwayTeam.Players) != 1 {
		t.Fatalf("roster sizes = %d/%d, want 1/1",
			len(game.Context.HomeTeam.Players), len(game.Context.AwayTeam.Players))
	}

	wantPlayer := models.Player{Name: "Jane Doe", Position: models.PositionPitcher}
	if game.Context.HomeTeam.Players[0] != wantPlayer {
		t.Errorf("home player = %+v, want %+v", game.Context.HomeTeam.Players[0], wantPlayer)
	}

	if len(game.Plays) != 1 {
		t.Fatalf("got %d plays, want 1", len(game.Plays))
	}

	play := game.Plays[0]
	if play.PlayType != models.PlayStrikeout {
		t.Errorf("play type = %s, want STRIKEOUT", play.PlayType)
	}
	if play.Contents.Batter == nil || *play.Contents.Batter != "John Roe" {
		t.Errorf("batter = %v, want John Roe", play.Contents.Batter)
	}
	if play.Contents.Pitcher == nil || *play.Contents.Pitcher != "Jane Doe" {
		t.Errorf("pitcher = %v, want Jane Doe", play.Contents.Pitcher)
	}
	if play.Contents.Movements == nil || len(play.Contents.Movements) != 0 {
		t.Errorf("movements = %v, want empty non-nil slice", play.Contents.Movements)
	}
}

func TestParseSlotPopulation(t *testing.T) {
	// Each case checks that exactly the slots the play type's schema
	// names are set and everything else stays nil.
	tests := []struct {
		name  string
		plays string
		want  models.PlayContents
	}{
		{
			"groundout fills batter, pitcher and fielders",
			"[PLAY] GROUNDOUT [BATTER] John Roe [PITCHER] Jane Doe [FIELDERS] Alice Smith [MOVEMENTS] John Roe 1 -> 2",
			models.PlayContents{
				Batter:   strp("John Roe"),
				Pitcher:  strp("Jane Doe"),
				Fielders: []string{"Alice Smith"},
				Movements: []models.Movement{
					{Runner: "John Roe", StartBase: intp(1), EndBase: intp(2)},
				},
			},
		},
		{
			"pickoff fills base, runner and fielders",
			"[PLAY] PICKOFF [BASE] 2 [RUNNER] John Roe [FIELDERS] Alice Smith [MOVEMENTS] John Roe 2 -> 2 [out]",
			models.PlayContents{
				Base:     intp(2),
				Runner:   strp("John Roe"),
				Fielders: []string{"Alice Smith"},
				Movements: []models.Movement{
					{Runner: "John Roe", StartBase: intp(2), EndBase: intp(2), IsOut: true},
				},
			},
		},
		{
			"wild pitch fills pitcher and runner",
			"[PLAY] WILD_PITCH [PITCHER] Jane Doe [RUNNER] John Roe [MOVEMENTS] John Roe 1 -> 2",
			models.PlayContents{
				Pitcher: strp("Jane Doe"),
				Runner:  strp("John Roe"),
				Movements: []models.Movement{
					{Runner: "John Roe", StartBase: intp(1), EndBase: intp(2)},
				},
			},
		},
		{
			"passed ball fills pitcher and catcher",
			"[PLAY] PASSED_BALL [PITCHER] Jane Doe [CATCHER] Bob Jones [MOVEMENTS]",
			models.PlayContents{
				Pitcher:   strp("Jane Doe"),
				Catcher:   strp("Bob Jones"),
				Movements: []models.Movement{},
			},
		},
		{
			"balk fills pitcher only",
			"[PLAY] BALK [PITCHER] Jane Doe [MOVEMENTS]",
			models.PlayContents{
				Pitcher:   strp("Jane Doe"),
				Movements: []models.Movement{},
			},
		},
		{
			"stolen base fills base and runner",
			"[PLAY] STOLEN_BASE [BASE] 3 [RUNNER] Alice Smith [MOVEMENTS] Alice Smith 2 -> 3",
			models.PlayContents{
				Base:   intp(3),
				Runner: strp("Alice Smith"),
				Movements: []models.Movement{
					{Runner: "Alice Smith", StartBase: intp(2), EndBase: intp(3)},
				},
			},
		},
		{
			"sac fly fills scoring runner",
			"[PLAY] SAC_FLY [BATTER] John Roe [PITCHER] Jane Doe [FIELDERS] Alice Smith [SCORING_RUNNER] Bob Jones [MOVEMENTS] Bob Jones 3 -> home",
			models.PlayContents{
				Batter:        strp("John Roe"),
				Pitcher:       strp("Jane Doe"),
				Fielders:      []string{"Alice Smith"},
				ScoringRunner: strp("Bob Jones"),
				Movements: []models.Movement{
					{Runner: "Bob Jones", StartBase: intp(3), EndBase: intp(4)},
				},
			},
		},
		{
			"sac bunt fills runner",
			"[PLAY] SAC_BUNT [BATTER] John Roe [PITCHER] Jane Doe [FIELDERS] Alice Smith [RUNNER] Bob Jones [MOVEMENTS] Bob Jones 1 -> 2",
			models.PlayContents{
				Batter:   strp("John Roe"),
				Pitcher:  strp("Jane Doe"),
				Fielders: []string{"Alice Smith"},
				Runner:   strp("Bob Jones"),
				Movements: []models.Movement{
					{Runner: "Bob Jones", StartBase: intp(1), EndBase: intp(2)},
				},
			},
		},
		{
			"empty fielders section yields empty list",
			"[PLAY] RUNNER_OUT [RUNNER] John Roe [FIELDERS] [MOVEMENTS] John Roe 2 -> 2 [out]",
			models.PlayContents{
				Runner:   strp("John Roe"),
				Fielders: []string{},
				Movements: []models.Movement{
					{Runner: "John Roe", StartBase: intp(2), EndBase: intp(2), IsOut: true},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, err := parser.Parse(transcript(tt.plays))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(game.Plays) != 1 {
				t.Fatalf("got %d plays, want 1", len(game.Plays))
			}
			if !reflect.DeepEqual(game.Plays[0].Contents, tt.want) {
				t.Errorf("contents = %+v, want %+v", game.Plays[0].Contents, tt.want)
			}
		})
	}
}

func TestParseHomeRunMovement(t *testing.T) {
	// A home-to-home movement without [out] stays a scoring record
	game, err := parser.Parse(transcript(
		"[PLAY] HOME_RUN [BATTER] John Roe [PITCHER] Jane Doe [MOVEMENTS] John Roe home -> home"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	movements := game.Plays[0].Contents.Movements
	if len(movements) != 1 {
		t.Fatalf("got %d movements, want 1", len(movements))
	}

	m := movements[0]
	if m.Runner != "John Roe" {
		t.Errorf("runner = %q, want John Roe", m.Runner)
	}
	if m.StartBase == nil || *m.StartBase != 4 || m.EndBase == nil || *m.EndBase != 4 {
		t.Errorf("bases = %v -> %v, want 4 -> 4", m.StartBase, m.EndBase)
	}
	if m.IsOut {
		t.Error("IsOut = true, want false")
	}
}

func TestParseMultipleMovements(t *testing.T) {
	game, err := parser.Parse(transcript(
		"[PLAY] DOUBLE [BATTER] John Roe [PITCHER] Jane Doe [MOVEMENTS] " +
			"Bob Jones 3 -> home, John Roe 1 -> 3, Alice Smith 2 -> 3 [out]"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.Movement{
		{Runner: "Bob Jones", StartBase: intp(3), EndBase: intp(4)},
		{Runner: "John Roe", StartBase: intp(1), EndBase: intp(3)},
		{Runner: "Alice Smith", StartBase: intp(2), EndBase: intp(3), IsOut: true},
	}
	if !reflect.DeepEqual(game.Plays[0].Contents.Movements, want) {
		t.Errorf("movements = %+v, want %+v", game.Plays[0].Contents.Movements, want)
	}
}

func TestParsePlayTypeTextNormalization(t *testing.T) {
	// Play type text is case-insensitive with spaces for underscores
	game, err := parser.Parse(transcript(
		"[PLAY] home run [BATTER] John Roe [PITCHER] Jane Doe [MOVEMENTS] John Roe home -> home " +
			"[PLAY] Grounded Into Double Play [BATTER] John Roe [PITCHER] Jane Doe [FIELDERS] Alice Smith [MOVEMENTS] John Roe 1 -> 1 [out]"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if game.Plays[0].PlayType != models.PlayHomeRun {
		t.Errorf("play 0 type = %s, want HOME_RUN", game.Plays[0].PlayType)
	}
	if game.Plays[1].PlayType != models.PlayGroundedIntoDoublePlay {
		t.Errorf("play 1 type = %s, want GROUNDED_INTO_DOUBLE_PLAY", game.Plays[1].PlayType)
	}
}

func TestParseGameAdvisory(t *testing.T) {
	game, err := parser.Parse(transcript(
		"[PLAY] GAME_ADVISORY " +
			"[PLAY] SINGLE [BATTER] John Roe [PITCHER] Jane Doe [MOVEMENTS] John Roe 1 -> 1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(game.Plays) != 2 {
		t.Fatalf("got %d plays, want 2", len(game.Plays))
	}
	if game.Plays[0].PlayType != models.PlayGameAdvisory {
		t.Errorf("play type = %s, want GAME_ADVISORY", game.Plays[0].PlayType)
	}
	if !reflect.DeepEqual(game.Plays[0].Contents, models.PlayContents{}) {
		t.Errorf("advisory contents = %+v, want empty", game.Plays[0].Contents)
	}
}

func TestParseEmptyPlaysSection(t *testing.T) {
	game, err := parser.Parse(transcript(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(game.Plays) != 0 {
		t.Errorf("got %d plays, want 0", len(game.Plays))
	}
}

func TestParseIsDeterministic(t *testing.T) {
	text := transcript(
		"[PLAY] PICKOFF [BASE] home [RUNNER] John Roe [FIELDERS] Bob Jones [MOVEMENTS] John Roe 3 -> home [out]")

	first, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("unexpected error on reparse: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("reparsing identical input produced a different tree")
	}

	// home normalizes to 4 for the pickoff base as well
	if first.Plays[0].Contents.Base == nil || *first.Plays[0].Contents.Base != 4 {
		t.Errorf("pickoff base = %v, want 4", first.Plays[0].Contents.Base)
	}
}

func TestParseSeparatorsAreInsignificant(t *testing.T) {
	text := transcript("[PLAY] STRIKEOUT [BATTER] John Roe [PITCHER] Jane Doe [MOVEMENTS]")
	squashed := strings.ReplaceAll(text, " ", ",\n\t ")

	first, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := parser.Parse(squashed)
	if err != nil {
		t.Fatalf("unexpected error on reformatted input: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("separator style changed the parsed tree")
	}
}

func TestParseTruncatedInput(t *testing.T) {
	full := transcript("[PLAY] STRIKEOUT [BATTER] John Roe [PITCHER] Jane Doe [MOVEMENTS]")
	tokens := strings.Fields(full)

	// Cutting the transcript anywhere before its end must surface as
	// an unexpected end of stream, never a partial game.
	for _, cut := range []int{1, 3, 8, 12, 20, len(tokens) - 1} {
		truncated := strings.Join(tokens[:cut], " ")

		_, err := parser.Parse(truncated)
		if err == nil {
			t.Fatalf("cut at %d tokens: parse succeeded, want error", cut)
		}

		var eos *parser.UnexpectedEndOfStreamError
		if !errors.As(err, &eos) {
			t.Errorf("cut at %d tokens: got %v, want UnexpectedEndOfStreamError", cut, err)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := parser.Parse("")
	var eos *parser.UnexpectedEndOfStreamError
	if !errors.As(err, &eos) {
		t.Errorf("got %v, want UnexpectedEndOfStreamError", err)
	}
}

func TestParseTrailingTokens(t *testing.T) {
	_, err := parser.Parse(transcript("") + " extra")
	var trailing *parser.TrailingTokensError
	if !errors.As(err, &trailing) {
		t.Fatalf("got %v, want TrailingTokensError", err)
	}
	if trailing.Next != "extra" {
		t.Errorf("Next = %q, want extra", trailing.Next)
	}
}

func TestParseUnknownPlayType(t *testing.T) {
	_, err := parser.Parse(transcript("[PLAY] FOO_BAR [BATTER] John Roe [MOVEMENTS]"))
	var unknown *parser.UnknownPlayTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownPlayTypeError", err)
	}
	if unknown.Text != "FOO_BAR" {
		t.Errorf("Text = %q, want FOO_BAR", unknown.Text)
	}
}

func TestParseMisorderedMarker(t *testing.T) {
	// STRIKEOUT's schema wants [PITCHER] after the batter
	_, err := parser.Parse(transcript("[PLAY] STRIKEOUT [BATTER] John Roe [MOVEMENTS]"))

	var unexpected *parser.UnexpectedTokenError
	if !errors.As(err, &unexpected) {
		t.Fatalf("got %v, want UnexpectedTokenError", err)
	}
	if unexpected.Found != "[MOVEMENTS]" {
		t.Errorf("Found = %q, want [MOVEMENTS]", unexpected.Found)
	}
	if !strings.Contains(unexpected.Expected, "[PITCHER]") {
		t.Errorf("Expected = %q, want it to name [PITCHER]", unexpected.Expected)
	}
	if unexpected.Position <= 0 {
		t.Errorf("Position = %d, want a real stream position", unexpected.Position)
	}
}

func TestParseInvalidPositionMarker(t *testing.T) {
	text := "[GAME] 1 [DATE] 2023-04-10 [VENUE] Test Park [WEATHER] Clear 70 5 " +
		"[TEAM] 100 [GOALKEEPER] Jane Doe [TEAM] 200 [PITCHER] John Roe [GAME_START] [GAME_END]"

	_, err := parser.Parse(text)
	var unexpected *parser.UnexpectedTokenError
	if !errors.As(err, &unexpected) {
		t.Fatalf("got %v, want UnexpectedTokenError", err)
	}
	if unexpected.Found != "[GOALKEEPER]" {
		t.Errorf("Found = %q, want [GOALKEEPER]", unexpected.Found)
	}
}

func TestParseDuplicateTeamID(t *testing.T) {
	text := "[GAME] 1 [DATE] 2023-04-10 [VENUE] Test Park [WEATHER] Clear 70 5 " +
		"[TEAM] 100 [PITCHER] Jane Doe [TEAM] 100 [PITCHER] John Roe [GAME_START] [GAME_END]"

	_, err := parser.Parse(text)
	var invalid *parser.InvalidContextError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidContextError", err)
	}
}

func TestParseInvalidDate(t *testing.T) {
	text := "[GAME] 1 [DATE] April-10 [VENUE] Test Park [WEATHER] Clear 70 5 " +
		"[TEAM] 100 [PITCHER] Jane Doe [TEAM] 200 [PITCHER] John Roe [GAME_START] [GAME_END]"

	_, err := parser.Parse(text)
	var unexpected *parser.UnexpectedTokenError
	if !errors.As(err, &unexpected) {
		t.Fatalf("got %v, want UnexpectedTokenError", err)
	}
}

package parser

import (
	"fmt"

	"github.com/rockysnow7/mlb-transformer/pkg/models"
)

// Parse converts a full tokenized transcript into a Game tree. Any
// malformed token aborts the parse; no partial Game is ever returned.
func Parse(text string) (*models.Game, error) {
	p := &gameParser{cur: NewCursor(Lex(text))}
	return p.parseGame()
}

// gameParser drives the entity builders over a single cursor. One
// parser exists per game parse and is never shared.
type gameParser struct {
	cur *Cursor
}

// errExpected reports a missing value at the current position. An
// exhausted stream is an end-of-stream failure, not a token mismatch.
func (p *gameParser) errExpected(what string) error {
	if p.cur.AtEnd() {
		return &UnexpectedEndOfStreamError{Position: p.cur.Pos()}
	}
	return &UnexpectedTokenError{Expected: what, Found: p.cur.Peek(), Position: p.cur.Pos()}
}

// parseGame is the top-level assembler: context, [GAME_START], plays
// until [GAME_END], then nothing.
func (p *gameParser) parseGame() (*models.Game, error) {
	context, err := p.parseContext()
	if err != nil {
		return nil, err
	}

	if err := p.cur.Expect("[GAME_START]"); err != nil {
		return nil, err
	}

	plays := []models.Play{}
	for p.cur.Peek() != "[GAME_END]" && !p.cur.AtEnd() {
		play, err := p.parsePlay()
		if err != nil {
			return nil, err
		}
		plays = append(plays, *play)
	}

	if err := p.cur.Expect("[GAME_END]"); err != nil {
		return nil, err
	}

	if !p.cur.AtEnd() {
		return nil, &TrailingTokensError{Next: p.cur.Peek(), Position: p.cur.Pos()}
	}

	return &models.Game{Context: *context, Plays: plays}, nil
}

// parseContext reads the header: [GAME] id, [DATE], [VENUE], weather,
// then the home and away rosters in that fixed order.
func (p *gameParser) parseContext() (*models.GameContext, error) {
	if err := p.cur.Expect("[GAME]"); err != nil {
		return nil, err
	}
	gamePK, err := p.cur.TakeInt("game pk")
	if err != nil {
		return nil, err
	}

	if err := p.cur.Expect("[DATE]"); err != nil {
		return nil, err
	}
	date, err := p.takeDate()
	if err != nil {
		return nil, err
	}

	if err := p.cur.Expect("[VENUE]"); err != nil {
		return nil, err
	}
	venue := p.cur.TakeName(nil)
	if venue == "" {
		return nil, p.errExpected("venue name")
	}

	weather, err := p.parseWeather()
	if err != nil {
		return nil, err
	}

	homeTeam, err := p.parseTeam()
	if err != nil {
		return nil, err
	}
	awayTeam, err := p.parseTeam()
	if err != nil {
		return nil, err
	}
	if homeTeam.ID == awayTeam.ID {
		return nil, &InvalidContextError{Reason: fmt.Sprintf("home and away rosters share team id %d", homeTeam.ID)}
	}

	return &models.GameContext{
		GamePK:   gamePK,
		Date:     date,
		Venue:    venue,
		Weather:  *weather,
		HomeTeam: *homeTeam,
		AwayTeam: *awayTeam,
	}, nil
}

// takeDate consumes a YYYY-MM-DD token
func (p *gameParser) takeDate() (string, error) {
	pos := p.cur.Pos()
	token, err := p.cur.next()
	if err != nil {
		return "", err
	}
	if !isDate(token) {
		p.cur.pos = pos
		return "", &UnexpectedTokenError{Expected: "date (YYYY-MM-DD)", Found: token, Position: pos}
	}
	return token, nil
}

// isDate checks the YYYY-MM-DD shape without validating the calendar
func isDate(token string) bool {
	if len(token) != 10 || token[4] != '-' || token[7] != '-' {
		return false
	}
	for i, r := range token {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseWeather reads [WEATHER], the free-text condition, then the
// temperature and wind speed.
func (p *gameParser) parseWeather() (*models.Weather, error) {
	if err := p.cur.Expect("[WEATHER]"); err != nil {
		return nil, err
	}

	condition := p.cur.TakeName(isInteger)
	if condition == "" {
		return nil, p.errExpected("weather condition")
	}

	temperature, err := p.cur.TakeInt("temperature")
	if err != nil {
		return nil, err
	}
	windSpeed, err := p.cur.TakeInt("wind speed")
	if err != nil {
		return nil, err
	}

	return &models.Weather{Condition: condition, Temperature: temperature, WindSpeed: windSpeed}, nil
}

// parseTeam reads [TEAM], the team id, then players until the next
// [TEAM] or [GAME_START] marker.
func (p *gameParser) parseTeam() (*models.Team, error) {
	if err := p.cur.Expect("[TEAM]"); err != nil {
		return nil, err
	}
	id, err := p.cur.TakeInt("team id")
	if err != nil {
		return nil, err
	}

	players := []models.Player{}
	for {
		next := p.cur.Peek()
		if next == "[TEAM]" || next == "[GAME_START]" || next == EndOfStream {
			break
		}
		player, err := p.parsePlayer()
		if err != nil {
			return nil, err
		}
		players = append(players, *player)
	}

	return &models.Team{ID: id, Players: players}, nil
}

// parsePlayer reads one position marker and the name that follows it
func (p *gameParser) parsePlayer() (*models.Player, error) {
	pos := p.cur.Pos()
	token, err := p.cur.next()
	if err != nil {
		return nil, err
	}
	position, ok := markerPositions[token]
	if !ok {
		p.cur.pos = pos
		return nil, &UnexpectedTokenError{Expected: "position marker", Found: token, Position: pos}
	}

	name := p.cur.TakeName(nil)
	if name == "" {
		return nil, p.errExpected("player name")
	}

	return &models.Player{Name: name, Position: position}, nil
}

// parsePlay reads [PLAY], resolves the play-type text, then hands the
// body over to the schema-driven contents builder. GAME_ADVISORY plays
// carry no contents.
func (p *gameParser) parsePlay() (*models.Play, error) {
	if err := p.cur.Expect("[PLAY]"); err != nil {
		return nil, err
	}

	text := p.cur.TakeName(nil)
	if text == "" {
		return nil, p.errExpected("play type")
	}
	playType, ok := models.PlayTypeFromText(text)
	if !ok {
		return nil, &UnknownPlayTypeError{Text: text}
	}

	if playType == models.PlayGameAdvisory {
		return &models.Play{PlayType: playType}, nil
	}

	contents, err := p.parsePlayContents(playType)
	if err != nil {
		return nil, err
	}
	return &models.Play{PlayType: playType, Contents: *contents}, nil
}

// parsePlayContents consumes the body of a play in the exact slot order
// the schema table declares for its type, then the mandatory
// [MOVEMENTS] section.
func (p *gameParser) parsePlayContents(playType models.PlayType) (*models.PlayContents, error) {
	slots, ok := schemaFor(playType)
	if !ok {
		return nil, &UnsupportedPlayTypeError{PlayType: playType}
	}

	contents := &models.PlayContents{}
	for _, s := range slots {
		if err := p.cur.Expect(slotMarkers[s]); err != nil {
			return nil, err
		}

		switch s {
		case slotBase:
			base, err := p.cur.TakeBase()
			if err != nil {
				return nil, err
			}
			contents.Base = &base
		case slotFielders:
			// Observed transcripts carry at most one fielder, so a
			// non-empty section becomes a single-element list; the
			// list shape is kept for when that changes.
			contents.Fielders = []string{}
			if name := p.cur.TakeName(nil); name != "" {
				contents.Fielders = append(contents.Fielders, name)
			}
		default:
			name := p.cur.TakeName(nil)
			if name == "" {
				return nil, p.errExpected(slotMarkers[s] + " name")
			}
			switch s {
			case slotBatter:
				contents.Batter = &name
			case slotPitcher:
				contents.Pitcher = &name
			case slotCatcher:
				contents.Catcher = &name
			case slotRunner:
				contents.Runner = &name
			case slotScoringRunner:
				contents.ScoringRunner = &name
			}
		}
	}

	if err := p.cur.Expect("[MOVEMENTS]"); err != nil {
		return nil, err
	}

	// No marker closes the movement list; it ends exactly when the
	// next token opens a new play or ends the game.
	contents.Movements = []models.Movement{}
	for {
		next := p.cur.Peek()
		if next == "[PLAY]" || next == "[GAME_END]" || next == EndOfStream {
			break
		}
		movement, err := p.parseMovement()
		if err != nil {
			return nil, err
		}
		contents.Movements = append(contents.Movements, *movement)
	}

	return contents, nil
}

// parseMovement reads one "<runner> <base> -> <base> [out]?" record
func (p *gameParser) parseMovement() (*models.Movement, error) {
	runner := p.cur.TakeName(isBaseToken)
	if runner == "" {
		return nil, p.errExpected("runner name")
	}

	startBase, err := p.cur.TakeBase()
	if err != nil {
		return nil, err
	}
	if err := p.cur.Expect("->"); err != nil {
		return nil, err
	}
	endBase, err := p.cur.TakeBase()
	if err != nil {
		return nil, err
	}

	isOut := false
	if p.cur.Peek() == "[out]" {
		if _, err := p.cur.next(); err != nil {
			return nil, err
		}
		isOut = true
	}

	return &models.Movement{Runner: runner, StartBase: &startBase, EndBase: &endBase, IsOut: isOut}, nil
}

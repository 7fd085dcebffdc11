package analytics

import "github.com/rockysnow7/mlb-transformer/pkg/models"

// RunsAtEnd computes the final run total for each team in a parsed
// game, keyed by team id. A run is a movement that reaches home plate
// without an out; a home-to-home movement only scores on a HOME_RUN
// (it otherwise records a runner holding at the plate). Runners are
// attributed to teams by roster name.
func RunsAtEnd(game *models.Game) map[int]int {
	scores := map[int]int{
		game.Context.HomeTeam.ID: 0,
		game.Context.AwayTeam.ID: 0,
	}

	homeNames := rosterNames(game.Context.HomeTeam)
	awayNames := rosterNames(game.Context.AwayTeam)

	for _, play := range game.Plays {
		for _, movement := range play.Contents.Movements {
			if movement.EndBase == nil || *movement.EndBase != models.HomePlate || movement.IsOut {
				continue
			}
			if movement.StartBase != nil && *movement.StartBase == models.HomePlate && play.PlayType != models.PlayHomeRun {
				continue
			}

			if _, ok := homeNames[movement.Runner]; ok {
				scores[game.Context.HomeTeam.ID]++
			} else if _, ok := awayNames[movement.Runner]; ok {
				scores[game.Context.AwayTeam.ID]++
			}
		}
	}

	return scores
}

func rosterNames(team models.Team) map[string]struct{} {
	names := make(map[string]struct{}, len(team.Players))
	for _, player := range team.Players {
		names[player.Name] = struct{}{}
	}
	return names
}

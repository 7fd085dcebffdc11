package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rockysnow7/mlb-transformer/pkg/models"
)

// ParsedGamesStream receives every successfully parsed game. Downstream
// services (broadcaster, analytics) consume it with their own groups.
const ParsedGamesStream = "games.parsed.baseball_mlb"

// StreamPublisher publishes parsed games to a Redis stream
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher creates a new stream publisher
func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{
		client: client,
	}
}

// PublishParsedGame publishes a parsed game to the stream
func (p *StreamPublisher) PublishParsedGame(ctx context.Context, game *models.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("marshaling parsed game: %w", err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: ParsedGamesStream,
		Values: map[string]interface{}{
			"data":    string(data),
			"game_pk": strconv.Itoa(game.Context.GamePK),
			"date":    game.Context.Date,
			"venue":   game.Context.Venue,
		},
	}).Err()
}

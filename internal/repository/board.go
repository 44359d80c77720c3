package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/entity"
)

const (
	latestBoardKey    = "board:latest"
	latestRevisionKey = "board:latest:revision"

	DefaultChannel = "board:updates"
)

// publishLatest stores and announces a board only when its revision is newer than the
// stored one. Returns 1 when the board was taken, 0 when it was stale.
var publishLatest = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[2]) or '0')
local revision = tonumber(ARGV[1])
if revision <= current then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2])
redis.call('SET', KEYS[2], ARGV[1])
redis.call('PUBLISH', ARGV[3], ARGV[2])
return 1
`)

// BoardRecord is what spectators read from Redis.
type BoardRecord struct {
	Revision uint64   `json:"revision"`
	Cells    []string `json:"cells"`
	Winner   string   `json:"winner,omitempty"`
	Finished bool     `json:"finished"`
	Rendered string   `json:"rendered"`
}

func newBoardRecord(board entity.Board, revision uint64) BoardRecord {
	cells := board.Cells()
	record := BoardRecord{
		Revision: revision,
		Cells:    make([]string, 0, len(cells)),
		Rendered: board.String(),
	}

	for _, cell := range cells {
		record.Cells = append(record.Cells, cell.String())
	}

	if winner, over := board.Winner(); over {
		record.Finished = true
		if winner.IsTeam() {
			record.Winner = winner.String()
		}
	}

	return record
}

// BoardMirror writes the latest board to Redis and announces it on a pub/sub channel.
// It is write-only from the game's point of view.
type BoardMirror struct {
	client  *redis.Client
	channel string
}

func NewBoardMirror(client *redis.Client, channel string) *BoardMirror {
	if channel == "" {
		channel = DefaultChannel
	}

	return &BoardMirror{
		client:  client,
		channel: channel,
	}
}

// Clear - drops what a previous process left behind; revisions restart with the session.
func (that *BoardMirror) Clear(ctx context.Context) error {
	if err := that.client.Del(ctx, latestBoardKey, latestRevisionKey).Err(); err != nil {
		return fmt.Errorf("failed to clear board mirror: %w", err)
	}

	return nil
}

// Publish - stores the board under board:latest and publishes it to subscribers,
// unless a newer revision is already stored.
func (that *BoardMirror) Publish(ctx context.Context, board entity.Board, revision uint64) error {
	boardJSON, err := json.Marshal(newBoardRecord(board, revision))
	if err != nil {
		return fmt.Errorf("could not marshal board: %w", err)
	}

	keys := []string{latestBoardKey, latestRevisionKey}
	if err = publishLatest.Run(ctx, that.client, keys, revision, boardJSON, that.channel).Err(); err != nil {
		return fmt.Errorf("failed to publish board: %w", err)
	}

	return nil
}

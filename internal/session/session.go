package session

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/entity"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/rng"
)

// Session owns the one board being played and the random stream that deals random boards.
// Readers share the lock; every mutation holds it exclusively and the board and stream
// only ever change together under it.
//
// Every mutation bumps the revision, so boards handed out after the lock is released
// can still be put back in the order they were produced.
type Session struct {
	mu sync.RWMutex

	seed     uint64
	board    entity.Board
	stream   *rng.Stream
	revision uint64
}

func New(seed uint64) *Session {
	return &Session{
		seed:   seed,
		board:  entity.NewBoard(),
		stream: rng.New(seed),
	}
}

// Snapshot - returns a copy of the current board.
func (that *Session) Snapshot() entity.Board {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.board
}

// Revision - returns the number of mutations applied so far.
func (that *Session) Revision() uint64 {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.revision
}

// Reset - clears the board and rewinds the random stream.
func (that *Session) Reset() (entity.Board, uint64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.board = entity.NewBoard()
	that.stream.Seed(that.seed)
	that.revision++

	return that.board, that.revision
}

// Place - drops team into column (0-indexed). The returned board is the state after the
// call, unchanged when the move was rejected; a rejected move does not bump the revision.
func (that *Session) Place(team entity.Tile, column int) (entity.Board, uint64, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.board.Place(team, column); err != nil {
		return that.board, that.revision, fmt.Errorf("failed place %s into column %d: %w", team, column, err)
	}
	that.revision++

	return that.board, that.revision, nil
}

// RandomBoard - replaces the board with one dealt from the shared stream.
func (that *Session) RandomBoard() (entity.Board, uint64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.board = entity.NewRandomBoard(that.stream)
	that.revision++

	return that.board, that.revision
}

package entity

import (
	"fmt"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/apperror"
)

type Tile uint8

const (
	Empty Tile = iota
	Cookie
	Milk
)

const (
	TeamCookie = "cookie"
	TeamMilk   = "milk"

	glyphEmpty  = "⬛"
	glyphCookie = "🍪"
	glyphMilk   = "🥛"
	glyphFrame  = "⬜"
)

// String - returns the glyph used on the wire for the tile.
func (that Tile) String() string {
	switch that {
	case Empty:
		return glyphEmpty
	case Cookie:
		return glyphCookie
	case Milk:
		return glyphMilk
	default:
		panic(fmt.Sprintf("unknown tile %d", uint8(that)))
	}
}

// IsTeam - reports whether the tile belongs to a player.
func (that Tile) IsTeam() bool {
	return that == Cookie || that == Milk
}

// ParseTeam - maps a team name from a request to its tile.
func ParseTeam(name string) (Tile, error) {
	switch name {
	case TeamCookie:
		return Cookie, nil
	case TeamMilk:
		return Milk, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidTeam, name)
	}
}

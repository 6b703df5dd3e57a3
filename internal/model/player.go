package model

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Player struct {
	Name  string
	Color Side
	clock Clock
}

func newPlayer(color Side, name string) *Player {
	return &Player{Name: name, Color: color}
}

// String falls back to the capitalised colour when the player has no name.
func (p *Player) String() string {
	if p.Name == "" {
		return cases.Title(language.English).String(string(p.Color))
	}
	return p.Name
}

func (p *Player) Elapsed() time.Duration {
	return p.clock.Elapsed()
}

func (p *Player) TurnElapsed() time.Duration {
	return p.clock.TurnElapsed()
}

// ClientPlayer is the serialisable view of a player.
type ClientPlayer struct {
	Name        string        `json:"name"`
	Color       Side          `json:"color"`
	ElapsedTime time.Duration `json:"elapsedTime"`
}

func (p *Player) client() ClientPlayer {
	return ClientPlayer{Name: p.String(), Color: p.Color, ElapsedTime: p.Elapsed()}
}

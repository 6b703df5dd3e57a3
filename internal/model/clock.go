package model

import "time"

// Clock accumulates the time a player has spent on the move. Time arrives from
// external ticks; the clock never reads the wall clock itself.
type Clock struct {
	total time.Duration
	turn  time.Duration
}

func (c *Clock) Add(d time.Duration) {
	if d > 0 {
		c.turn += d
	}
}

// Elapsed is the player's total time including the turn in progress.
func (c *Clock) Elapsed() time.Duration {
	return c.total + c.turn
}

func (c *Clock) TurnElapsed() time.Duration {
	return c.turn
}

// EndTurn folds the current turn into the total and returns its length.
func (c *Clock) EndTurn() time.Duration {
	d := c.turn
	c.total += d
	c.turn = 0
	return d
}

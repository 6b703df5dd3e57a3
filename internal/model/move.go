package model

import (
	"encoding/json"
	"time"
)

// Tag is a log field that encodes as false when empty.
type Tag string

func (t Tag) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("false"), nil
	}
	return json.Marshal(string(t))
}

func (t *Tag) UnmarshalJSON(data []byte) error {
	if string(data) == "false" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = Tag(s)
	return nil
}

type MoveRecord struct {
	Piece       Kind          `json:"piece"`
	Start       Square        `json:"start"`
	End         Square        `json:"end"`
	Special     Tag           `json:"special"`
	Captured    Tag           `json:"captured"`
	Notation    string        `json:"notation"`
	ElapsedTime time.Duration `json:"elapsedTime"`
}

// TurnRecord is one entry of the move log.
type TurnRecord struct {
	TurnNumber int          `json:"turnNumber"`
	Player     ClientPlayer `json:"player"`
	Move       MoveRecord   `json:"move"`
}

// TurnObserver is told about every committed turn, in order.
type TurnObserver interface {
	TurnCommitted(TurnRecord)
}

type TurnObserverFunc func(TurnRecord)

func (f TurnObserverFunc) TurnCommitted(r TurnRecord) {
	f(r)
}

package anima

import "time"

// Turn is one displayed message unit in the transcript. Content is
// append-only while its exchange streams and immutable afterwards.
type Turn struct {
	Role      Role
	Label     string
	Content   string
	CreatedAt time.Time
}

// TurnUpdate is the event emitted towards the transcript after a chunk or
// terminal signal is applied. Content carries the turn's full accumulated
// text, not a delta: the transcript replaces, it does not append. Seq
// identifies the turn within the exchange so consumers know whether to
// update an existing entry or append a new one.
type TurnUpdate struct {
	Seq     int
	Role    Role
	Label   string
	Content string
	Final   bool
}

// Transcript consumes ordered turn updates and renders them. It must not
// re-derive chunk classification; everything it needs is on the update.
type Transcript interface {
	ApplyUpdate(TurnUpdate)
}

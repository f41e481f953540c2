package anima

// Item is a sealed interface representing one element of the bridged
// stream: a data chunk or one of the two terminal signals. A well-formed
// sequence contains any number of ItemChunk values followed by exactly one
// ItemDone or ItemError, never both.
// The unexported marker method prevents external implementations.
type Item interface {
	item()
}

// ItemChunk carries one classified chunk.
type ItemChunk struct {
	Chunk Chunk
}

func (ItemChunk) item() {}

// ItemError terminates the sequence after a transport or worker failure.
type ItemError struct {
	Err error
}

func (ItemError) item() {}

// ItemDone terminates the sequence when the transport is exhausted normally.
type ItemDone struct{}

func (ItemDone) item() {}

// Interface compliance checks.
var (
	_ Item = ItemChunk{}
	_ Item = ItemError{}
	_ Item = ItemDone{}
)

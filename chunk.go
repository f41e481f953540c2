package anima

// ChunkKind is the semantic kind assigned to a streamed chunk by the
// classifier. The transport itself never assigns kinds.
type ChunkKind int

const (
	KindUnknown ChunkKind = iota // No recognizable payload.
	KindContent                  // Part of the agent's answer.
	KindReasoning                // Visible "thinking" content.
	KindHiddenReasoning          // Reasoning the server redacts or summarizes.
)

// String returns the kind's name for logging and test output.
func (k ChunkKind) String() string {
	switch k {
	case KindContent:
		return "content"
	case KindReasoning:
		return "reasoning"
	case KindHiddenReasoning:
		return "hidden_reasoning"
	default:
		return "unknown"
	}
}

// Chunk is one classified unit of streamed reply data. Text may contain the
// two-character escape `\n` instead of a real line break; normalization
// happens when the chunk is merged into a turn, not here.
type Chunk struct {
	Kind ChunkKind
	Text string
}

// Empty reports whether the chunk carries nothing worth displaying.
// Unknown chunks and chunks with no text are dropped by the accumulator.
func (c Chunk) Empty() bool {
	return c.Kind == KindUnknown || c.Text == ""
}

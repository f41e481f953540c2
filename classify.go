package anima

// Server message type tags recognized by the classifier.
const (
	TypeAssistantMessage       = "assistant_message"
	TypeReasoningMessage       = "reasoning_message"
	TypeHiddenReasoningMessage = "hidden_reasoning_message"
)

// Classifier assigns a semantic kind to each raw transport item. It is a
// value type configured once per exchange; ShowReasoning mirrors the
// request's reasoning-visibility flag.
type Classifier struct {
	ShowReasoning bool
}

// Classify inspects a raw item and produces at most one chunk. The explicit
// type tag wins when present; otherwise the populated payload field decides.
// When a reasoning classification matches, any content payload on the same
// item is considered consumed by it — one raw item never yields two chunks.
// Items with no recognizable payload classify as Unknown with empty text.
func (c Classifier) Classify(item RawItem) Chunk {
	switch item.MessageType {
	case TypeAssistantMessage:
		return Chunk{Kind: KindContent, Text: item.Content}
	case TypeReasoningMessage:
		if !c.ShowReasoning {
			return Chunk{Kind: KindUnknown}
		}
		return Chunk{Kind: KindReasoning, Text: item.Reasoning}
	case TypeHiddenReasoningMessage:
		if !c.ShowReasoning {
			return Chunk{Kind: KindUnknown}
		}
		return Chunk{Kind: KindHiddenReasoning, Text: item.HiddenReasoning}
	case "":
		// No tag: fall back to whichever payload field is populated.
	default:
		// Unrecognized tag (usage stats, tool events, pings).
		return Chunk{Kind: KindUnknown}
	}

	if c.ShowReasoning {
		if item.Reasoning != "" {
			return Chunk{Kind: KindReasoning, Text: item.Reasoning}
		}
		if item.HiddenReasoning != "" {
			return Chunk{Kind: KindHiddenReasoning, Text: item.HiddenReasoning}
		}
	}
	if item.Content != "" {
		return Chunk{Kind: KindContent, Text: item.Content}
	}
	return Chunk{Kind: KindUnknown}
}

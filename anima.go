// Package anima contains the domain types and streaming pipeline for a
// terminal client talking to a remote conversational-agent server.
//
// The pipeline for one exchange is: a [Transport] produces a blocking
// [ChunkSource]; a [Bridge] drives it on a worker goroutine and hands
// classified [Chunk] values to the consumer through a buffered channel; an
// [Accumulator] folds chunks into transcript turns and emits [TurnUpdate]
// events for a [Transcript] to render.
package anima

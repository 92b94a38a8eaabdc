// Package output shapes NDB records before they are returned to the MCP client.
//
// NDB entities are large: a single database record carries its nodes, properties,
// time machine and metadata. Returning them unmodified quickly exhausts an LLM
// context window, so every read result passes through a [Processor]:
//
//   - Projection keeps only the whitelisted top-level fields for the entity type
//     (see [DefaultTable]). Projection never adds fields and is idempotent.
//   - Secret masking replaces password, secret and token values with
//     "***REDACTED***" at any depth, including NDB name/value argument pairs.
//   - Truncation caps list results at [Config.MaxItems] (absolute maximum
//     [AbsoluteMaxItems]) and attaches a [TruncationWarning].
//
// Mutating results are not projected; they are only masked via [Processor.ProcessRaw].
//
// # Usage Example
//
//	processor := output.NewProcessor(output.DefaultConfig(), nil)
//	result := processor.ProcessList(output.EntityDatabase, records, 0)
package output

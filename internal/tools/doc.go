// Package tools dispatches MCP tool invocations to NDB handlers.
//
// A Tool pairs an mcp.Tool definition with a Handler. Handlers receive the
// raw argument map; Bind decodes it into a typed argument struct and runs
// its Validate method before any NDB call is made.
//
// Handlers follow one of three shapes:
//
//   - List: fetch a collection, narrow it with a filter built from the
//     valueType/value arguments, project it and truncate it.
//   - Get: fetch one record and project it.
//   - Mutate: send a POST, PATCH or DELETE and return the masked, unprojected
//     result. Refused when the server is read-only.
//
// The Dispatcher is the single place where failures are translated into a
// *ToolError. Every invocation is audit logged, traced and counted.
package tools

// Package api handles incoming HTTP requests, request validation and response
// formatting. It adapts HTTP to the generation and credential services and to
// the RTF exporter.
//
// Generation endpoints never fail because of the model: the service absorbs
// those failures into fallback artifacts. They answer 400 for invalid
// requests or a missing credential and 500 only for bodies that cannot be
// decoded. The key-test and export endpoints surface their errors directly.
package api

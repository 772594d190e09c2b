// Package tasks implements bulk operations against the product API.
//
// The core abstraction is [ExportEngine], which snapshots the remote product
// collection to a local file. Operations emit progress updates via channels
// for non-blocking status reporting to the CLI layer. The engine re-derives
// everything from the server at export time; it never trusts a previously
// fetched collection.
package tasks

// Package api handles incoming HTTP requests for tasks: path and query
// parsing, request validation and response formatting. It adapts HTTP to
// the service.TaskService operations and maps their errors to status codes
// and safe client messages.
package api

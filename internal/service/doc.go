// Package service contains the task use cases. It coordinates the task store
// with the user service check and translates store errors into the
// service-level errors the API layer maps to HTTP responses.
//
// The service depends only on the store and UserChecker interfaces, never on
// a concrete database or HTTP client.
package service

// Package userservice is the HTTP client for the user service, used to
// check that the owner of a task exists.
package userservice

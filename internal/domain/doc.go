// Package domain contains the task entity, its validation rules, and the
// value types used to describe partial updates. It has no knowledge of
// storage, transport, or the user service.
package domain

// Package store defines the persistence contract for tasks. Implementations
// live under internal/platform; the service layer depends only on the
// interfaces declared here.
package store

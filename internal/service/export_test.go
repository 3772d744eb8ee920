package service

import "time"

// SetClock replaces the clock of a TaskService built by NewTaskService.
func SetClock(s TaskService, now func() time.Time) {
	s.(*taskServiceImpl).now = now
}

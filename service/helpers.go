package service

import (
	"fmt"
)

// background runs fn in a goroutine tracked by the service's wait group.
// Panics inside fn are recovered and logged.
func (s *service) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				s.logger.PrintError(fmt.Errorf("%s", err), nil)
			}
		}()
		fn()
	}()
}

package persistence

import "time"

type ServiceOpt func(*Service)

// WithBackups enables a compressed snapshot in dir on every save, keeping
// the newest keep files.
func WithBackups(dir string, keep int) ServiceOpt {
	return func(s *Service) {
		s.backupDir = dir
		s.backupKeep = keep
	}
}

func WithClock(now func() time.Time) ServiceOpt {
	return func(s *Service) {
		s.now = now
	}
}

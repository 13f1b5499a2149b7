package storage

import "github.com/chaisthra/vibetrack/internal"

// Repositories bundles every store interface a single backend satisfies.
type Repositories struct {
	Users      UserRepository
	Activities ActivityRepository
	Categories CategoryRepository
	Backups    BackupRepository
}

func NewFileRepositories(dataDir string, logger internal.Logger) (Repositories, error) {
	s, err := NewFileStorage(dataDir, logger)
	if err != nil {
		return Repositories{}, err
	}
	return Repositories{Users: s, Activities: s, Categories: s, Backups: s}, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (Repositories, error) {
	s, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return Repositories{}, err
	}
	return Repositories{Users: s, Activities: s, Categories: s, Backups: s}, nil
}

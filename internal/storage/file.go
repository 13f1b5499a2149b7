package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/chaisthra/vibetrack/internal"
)

// FileStorage persists each collection as one JSON file. Every mutation is a
// load-mutate-save of the whole collection under the store mutex, and every
// save is an atomic whole-file rewrite.
type FileStorage struct {
	mu             sync.RWMutex
	usersFile      string
	activitiesFile string
	countersFile   string
	backupDir      string
	logger         internal.Logger
	nowTime        func() time.Time
}

func NewFileStorage(dataDir string, logger internal.Logger) (*FileStorage, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, storageErr("create data dir", err)
	}
	s := &FileStorage{
		usersFile:      filepath.Join(dataDir, "users.json"),
		activitiesFile: filepath.Join(dataDir, "activities.json"),
		countersFile:   filepath.Join(dataDir, "categories.json"),
		backupDir:      dataDir,
		logger:         logger,
		nowTime:        time.Now,
	}
	// Materialize empty collections up front so a fresh data dir is
	// immediately in canonical shape.
	if _, err := s.loadUsersLocked(); err != nil {
		return nil, err
	}
	if _, err := s.loadActivitiesLocked(); err != nil {
		return nil, err
	}
	if _, err := s.loadCountersLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStorage) now() string {
	return internal.FormatTime(s.nowTime())
}

func storageErr(op string, err error) error {
	return fmt.Errorf("storage: %s: %w", op, errors.Join(internal.ErrStorageUnavailable, err))
}

// readCollection decodes path into out. A missing file initializes the
// collection: the zero value in out is persisted and kept.
func readCollection(path string, out any) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return atomicWriteFileJSON(path, out)
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

// --- users ---

func (s *FileStorage) loadUsersLocked() ([]internal.User, error) {
	users := []internal.User{}
	if err := readCollection(s.usersFile, &users); err != nil {
		return nil, storageErr("load users", err)
	}
	return users, nil
}

func (s *FileStorage) saveUsersLocked(users []internal.User) error {
	if err := atomicWriteFileJSON(s.usersFile, users); err != nil {
		s.logger.Errorf("storage: error saving users: %v", err)
		return storageErr("save users", err)
	}
	return nil
}

func (s *FileStorage) CreateUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsersLocked()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username == user.Username {
			return internal.ErrDuplicateUsername
		}
	}
	users = append(users, *user)
	return s.saveUsersLocked(users)
}

func (s *FileStorage) GetUserByUsername(ctx context.Context, username string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, err := s.loadUsersLocked()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			u := users[i]
			return &u, nil
		}
	}
	return nil, internal.ErrNotFound
}

func (s *FileStorage) UpdateUser(ctx context.Context, username string, update internal.UserUpdate) (*internal.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsersLocked()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username != username {
			continue
		}
		applyUserUpdate(&users[i], update)
		if err := s.saveUsersLocked(users); err != nil {
			return nil, err
		}
		u := users[i]
		return &u, nil
	}
	return nil, internal.ErrNotFound
}

func applyUserUpdate(u *internal.User, update internal.UserUpdate) {
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.ElevenLabsKey != nil {
		u.ElevenLabsKey = *update.ElevenLabsKey
	}
	if update.HashedPassword != nil {
		u.HashedPassword = *update.HashedPassword
	}
	if update.LastLogin != nil {
		u.LastLogin = *update.LastLogin
	}
}

// --- activities ---

func (s *FileStorage) loadActivitiesLocked() ([]internal.Activity, error) {
	activities := []internal.Activity{}
	if err := readCollection(s.activitiesFile, &activities); err != nil {
		return nil, storageErr("load activities", err)
	}
	return activities, nil
}

func (s *FileStorage) SaveActivity(ctx context.Context, activity *internal.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	activities, err := s.loadActivitiesLocked()
	if err != nil {
		return err
	}
	activities = append(activities, *activity)
	if err := atomicWriteFileJSON(s.activitiesFile, activities); err != nil {
		s.logger.Errorf("storage: error saving activities: %v", err)
		return storageErr("save activities", err)
	}
	return nil
}

func (s *FileStorage) ListActivities(ctx context.Context, userID, start, end string) ([]internal.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	activities, err := s.loadActivitiesLocked()
	if err != nil {
		return nil, err
	}
	matched := []internal.Activity{}
	for _, a := range activities {
		if a.UserID != userID {
			continue
		}
		if start != "" && a.Timestamp < start {
			continue
		}
		if end != "" && a.Timestamp >= end {
			continue
		}
		matched = append(matched, a)
	}
	return matched, nil
}

// --- category counters ---

// loadCountersLocked reads the counter collection, upgrading any legacy
// flat-integer entries ({"Work": 12}) to structured entries in place.
func (s *FileStorage) loadCountersLocked() (map[string]*internal.CounterEntry, error) {
	raw := map[string]json.RawMessage{}
	if err := readCollection(s.countersFile, &raw); err != nil {
		return nil, storageErr("load counters", err)
	}

	counters := make(map[string]*internal.CounterEntry, len(raw))
	migrated := false
	for name, msg := range raw {
		var entry internal.CounterEntry
		if err := json.Unmarshal(msg, &entry); err == nil {
			if entry.UserStats == nil {
				entry.UserStats = map[string]*internal.UserCategoryStats{}
			}
			counters[name] = &entry
			continue
		}
		var legacy int
		if err := json.Unmarshal(msg, &legacy); err == nil {
			// Per-user stats were never recorded in the old format, so the
			// migrated entry starts with the global count only.
			counters[name] = &internal.CounterEntry{
				Count:     legacy,
				FirstSeen: s.now(),
				UserStats: map[string]*internal.UserCategoryStats{},
			}
			migrated = true
			continue
		}
		return nil, storageErr("load counters", fmt.Errorf("unrecognized entry for %q", name))
	}

	if migrated {
		if err := s.saveCountersLocked(counters); err != nil {
			return nil, err
		}
		s.logger.Infof("storage: migrated %d legacy category counters", len(counters))
	}
	return counters, nil
}

func (s *FileStorage) saveCountersLocked(counters map[string]*internal.CounterEntry) error {
	if err := atomicWriteFileJSON(s.countersFile, counters); err != nil {
		s.logger.Errorf("storage: error saving category counters: %v", err)
		return storageErr("save counters", err)
	}
	return nil
}

func (s *FileStorage) LoadCounters(ctx context.Context) (map[string]*internal.CounterEntry, error) {
	// Write lock because a legacy-format load persists the migrated entries.
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCountersLocked()
}

func (s *FileStorage) RecordCategoryUse(ctx context.Context, category, userID, contextClue string) (*internal.CounterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counters, err := s.loadCountersLocked()
	if err != nil {
		return nil, err
	}

	now := s.now()
	entry, ok := counters[category]
	if !ok {
		entry = &internal.CounterEntry{
			FirstSeen: now,
			UserStats: map[string]*internal.UserCategoryStats{},
		}
		counters[category] = entry
	}
	entry.Count++

	stats := entry.UserStats[userID]
	if stats == nil {
		stats = &internal.UserCategoryStats{FirstUsed: now}
		entry.UserStats[userID] = stats
	}
	stats.Count++
	stats.LastUsed = now

	if contextClue != "" && !slices.Contains(entry.ContextClues, contextClue) {
		entry.ContextClues = append(entry.ContextClues, contextClue)
	}

	if err := s.saveCountersLocked(counters); err != nil {
		return nil, err
	}
	return entry, nil
}

// --- backup ---

func (s *FileStorage) BackupAll(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Join(s.backupDir, "backup_"+s.nowTime().UTC().Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", storageErr("create backup dir", err)
	}
	for _, path := range []string{s.usersFile, s.activitiesFile, s.countersFile} {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", storageErr("backup read "+filepath.Base(path), err)
		}
		if err := os.WriteFile(filepath.Join(dir, filepath.Base(path)), data, 0o644); err != nil {
			return "", storageErr("backup write "+filepath.Base(path), err)
		}
	}
	return dir, nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*FileStorage)(nil)
var _ ActivityRepository = (*FileStorage)(nil)
var _ CategoryRepository = (*FileStorage)(nil)
var _ BackupRepository = (*FileStorage)(nil)

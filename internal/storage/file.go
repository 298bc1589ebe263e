package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/RiseHunter/RiseHuntBot/internal"
)

// FileStore keeps everything in memory and persists to JSON files through
// debounced background save workers. Writes are atomic (temp file + rename).
type FileStore struct {
	users            map[string]*internal.User
	journal          map[int64]*internal.JournalEntry
	userJournalIndex map[string][]*internal.JournalEntry // newest first
	goals            map[int64]*internal.Goal
	userGoalIndex    map[string][]*internal.Goal // oldest first
	nextJournalID    int64
	nextGoalID       int64
	mu               sync.RWMutex

	usersFile   string
	journalFile string
	goalsFile   string

	saveUsersChan   chan struct{}
	saveJournalChan chan struct{}
	saveGoalsChan   chan struct{}
	shutdownChan    chan struct{}
	saveDelay       time.Duration
	closeOnce       sync.Once
	logger          internal.Logger
}

func NewFileStore(usersFile, journalFile, goalsFile string, logger internal.Logger) (*FileStore, error) {
	s := &FileStore{
		users:            make(map[string]*internal.User),
		journal:          make(map[int64]*internal.JournalEntry),
		userJournalIndex: make(map[string][]*internal.JournalEntry),
		goals:            make(map[int64]*internal.Goal),
		userGoalIndex:    make(map[string][]*internal.Goal),
		usersFile:        usersFile,
		journalFile:      journalFile,
		goalsFile:        goalsFile,
		saveUsersChan:    make(chan struct{}, 1),
		saveJournalChan:  make(chan struct{}, 1),
		saveGoalsChan:    make(chan struct{}, 1),
		shutdownChan:     make(chan struct{}),
		saveDelay:        500 * time.Millisecond,
		logger:           logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}
	if err := s.loadJournal(); err != nil {
		logger.Errorf("storage: failed to load journal: %v", err)
		return nil, err
	}
	if err := s.loadGoals(); err != nil {
		logger.Errorf("storage: failed to load goals: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveUsersChan, s.saveUsers, "users")
	go s.saveWorker(s.saveJournalChan, s.saveJournal, "journal")
	go s.saveWorker(s.saveGoalsChan, s.saveGoals, "goals")

	return s, nil
}

func decodeJSONFile[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var items []T
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return items, nil
}

func (s *FileStore) loadUsers() error {
	users, err := decodeJSONFile[*internal.User](s.usersFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		if u.Dimensions == nil {
			u.Dimensions = internal.NewUser(u.ID).Dimensions
		}
		if u.Level < 1 {
			u.Level = 1
		}
		s.users[u.ID] = u
	}
	return nil
}

func (s *FileStore) loadJournal() error {
	entries, err := decodeJSONFile[*internal.JournalEntry](s.journalFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.journal[e.ID] = e
		s.userJournalIndex[e.UserID] = append(s.userJournalIndex[e.UserID], e)
		if e.ID >= s.nextJournalID {
			s.nextJournalID = e.ID + 1
		}
	}
	for userID := range s.userJournalIndex {
		idx := s.userJournalIndex[userID]
		sort.Slice(idx, func(i, j int) bool {
			return idx[i].CreatedAt.After(idx[j].CreatedAt)
		})
	}
	return nil
}

func (s *FileStore) loadGoals() error {
	goals, err := decodeJSONFile[*internal.Goal](s.goalsFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range goals {
		s.goals[g.ID] = g
		s.userGoalIndex[g.UserID] = append(s.userGoalIndex[g.UserID], g)
		if g.ID >= s.nextGoalID {
			s.nextGoalID = g.ID + 1
		}
	}
	for userID := range s.userGoalIndex {
		idx := s.userGoalIndex[userID]
		sort.Slice(idx, func(i, j int) bool {
			return idx[i].CreatedAt.Before(idx[j].CreatedAt)
		})
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

func (s *FileStore) saveUsers() error {
	s.mu.RLock()
	users := make([]*internal.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.usersFile, users)
}

func (s *FileStore) saveJournal() error {
	s.mu.RLock()
	entries := make([]*internal.JournalEntry, 0, len(s.journal))
	for _, e := range s.journal {
		entries = append(entries, e)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.journalFile, entries)
}

func (s *FileStore) saveGoals() error {
	s.mu.RLock()
	goals := make([]*internal.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		goals = append(goals, g)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.goalsFile, goals)
}

// saveWorker batches save signals to avoid a disk write per mutation.
func (s *FileStore) saveWorker(signal chan struct{}, save func() error, name string) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", name, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func signalSave(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (s *FileStore) Close() error {
	s.closeOnce.Do(func() { close(s.shutdownChan) })

	// Flush pending data synchronously on shutdown.
	if err := s.saveUsers(); err != nil {
		return err
	}
	if err := s.saveJournal(); err != nil {
		return err
	}
	return s.saveGoals()
}

// --- users ---

func (s *FileStore) GetUser(ctx context.Context, id string) (*internal.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		u = internal.NewUser(id)
		s.users[id] = u
		signalSave(s.saveUsersChan)
	}
	copied := *u
	copied.Dimensions = make(map[internal.Direction]float64, len(u.Dimensions))
	for k, v := range u.Dimensions {
		copied.Dimensions[k] = v
	}
	return &copied, nil
}

func (s *FileStore) UpdateUserFields(ctx context.Context, id string, patch internal.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("%w: user %s", internal.ErrNotFound, id)
	}
	patch.Apply(u)
	signalSave(s.saveUsersChan)
	return nil
}

func (s *FileStore) UpdateDimension(ctx context.Context, id string, dir internal.Direction, value float64) error {
	if !internal.ValidDirection(dir) {
		return fmt.Errorf("%w: dimension %s", internal.ErrNotFound, dir)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("%w: user %s", internal.ErrNotFound, id)
	}
	u.Dimensions[dir] = value
	signalSave(s.saveUsersChan)
	return nil
}

func (s *FileStore) IncrementLevelAndReset(ctx context.Context, id string, dir internal.Direction) (int, error) {
	if !internal.ValidDirection(dir) {
		return 0, fmt.Errorf("%w: dimension %s", internal.ErrNotFound, dir)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return 0, fmt.Errorf("%w: user %s", internal.ErrNotFound, id)
	}
	u.Level++
	u.Dimensions[dir] = internal.DimensionBaseline
	signalSave(s.saveUsersChan)
	return u.Level, nil
}

// --- journal ---

func (s *FileStore) SaveJournalEntry(ctx context.Context, userID string, typ internal.JournalType, content string) (*internal.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nextJournalID == 0 {
		s.nextJournalID = 1
	}
	e := &internal.JournalEntry{
		ID:        s.nextJournalID,
		UserID:    userID,
		Type:      typ,
		Content:   content,
		CreatedAt: time.Now(),
	}
	s.nextJournalID++
	s.journal[e.ID] = e
	// Newest first; new entries always lead.
	s.userJournalIndex[userID] = append([]*internal.JournalEntry{e}, s.userJournalIndex[userID]...)
	signalSave(s.saveJournalChan)
	copied := *e
	return &copied, nil
}

func (s *FileStore) GetRecentJournal(ctx context.Context, userID string, windowDays, limit int) ([]internal.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := time.Now().AddDate(0, 0, -windowDays)
	var out []internal.JournalEntry
	for _, e := range s.userJournalIndex[userID] {
		if e.CreatedAt.Before(cutoff) {
			break
		}
		out = append(out, *e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	if out == nil {
		out = []internal.JournalEntry{}
	}
	return out, nil
}

func (s *FileStore) PurgeJournalBefore(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.journal {
		if e.CreatedAt.Before(cutoff) {
			delete(s.journal, id)
			removed++
		}
	}
	if removed > 0 {
		for userID := range s.userJournalIndex {
			idx := s.userJournalIndex[userID][:0]
			for _, e := range s.userJournalIndex[userID] {
				if !e.CreatedAt.Before(cutoff) {
					idx = append(idx, e)
				}
			}
			s.userJournalIndex[userID] = idx
		}
		signalSave(s.saveJournalChan)
	}
	return removed, nil
}

// --- goals ---

func (s *FileStore) AddGoal(ctx context.Context, userID string, period internal.Period, dir internal.Direction, title string) (*internal.Goal, error) {
	if !internal.ValidPeriod(period) {
		return nil, fmt.Errorf("%w: period %s", internal.ErrOutOfRange, period)
	}
	if !internal.ValidDirection(dir) {
		return nil, fmt.Errorf("%w: dimension %s", internal.ErrOutOfRange, dir)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nextGoalID == 0 {
		s.nextGoalID = 1
	}
	g := &internal.Goal{
		ID:        s.nextGoalID,
		UserID:    userID,
		Period:    period,
		Direction: dir,
		Title:     title,
		CreatedAt: time.Now(),
	}
	s.nextGoalID++
	s.goals[g.ID] = g
	s.userGoalIndex[userID] = append(s.userGoalIndex[userID], g)
	signalSave(s.saveGoalsChan)
	copied := *g
	return &copied, nil
}

func (s *FileStore) GetGoals(ctx context.Context, userID string, period internal.Period) ([]internal.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []internal.Goal{}
	for _, g := range s.userGoalIndex[userID] {
		if g.Period == period {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (s *FileStore) GetGoal(ctx context.Context, goalID int64) (*internal.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[goalID]
	if !ok {
		return nil, fmt.Errorf("%w: goal %d", internal.ErrNotFound, goalID)
	}
	copied := *g
	return &copied, nil
}

func (s *FileStore) SetGoalDone(ctx context.Context, goalID int64, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[goalID]
	if !ok {
		return fmt.Errorf("%w: goal %d", internal.ErrNotFound, goalID)
	}
	g.Done = done
	signalSave(s.saveGoalsChan)
	return nil
}

func (s *FileStore) DeleteGoal(ctx context.Context, goalID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[goalID]
	if !ok {
		return fmt.Errorf("%w: goal %d", internal.ErrNotFound, goalID)
	}
	delete(s.goals, goalID)
	idx := s.userGoalIndex[g.UserID][:0]
	for _, other := range s.userGoalIndex[g.UserID] {
		if other.ID != goalID {
			idx = append(idx, other)
		}
	}
	s.userGoalIndex[g.UserID] = idx
	signalSave(s.saveGoalsChan)
	return nil
}

// --- Compile-time assertions ---
var _ Store = (*FileStore)(nil)

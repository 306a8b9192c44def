package session

import (
	"context"
	"sync"
	"time"

	"ruma/models"
)

type memoryEntry struct {
	session   models.Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. A zero ttl disables expiry.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if !ok {
		return models.NewSession(userID), nil
	}
	if s.expired(entry) {
		delete(s.entries, userID)
		return models.NewSession(userID), nil
	}
	// Stored by value; hand out a copy so callers cannot mutate the store.
	sess := cloneSession(entry.session)
	return &sess, nil
}

func (s *MemoryStore) Put(_ context.Context, userID string, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stored := cloneSession(*sess)
	stored.UserID = userID
	stored.UpdatedAt = now
	sess.UpdatedAt = now
	entry := memoryEntry{session: stored}
	if s.ttl > 0 {
		entry.expiresAt = now.Add(s.ttl)
	}
	s.entries[userID] = entry
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	return nil
}

// Sweep drops every expired entry and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.entries {
		if s.expired(entry) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is done.
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

func (s *MemoryStore) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt)
}

// cloneSession copies the flow payloads so the stored value shares no
// pointers or maps with the caller.
func cloneSession(in models.Session) models.Session {
	out := in
	if in.Booking != nil {
		b := *in.Booking
		b.Questions = cloneQuestions(in.Booking.Questions)
		out.Booking = &b
	}
	if in.Edit != nil {
		e := *in.Edit
		e.Questions = cloneQuestions(in.Edit.Questions)
		out.Edit = &e
	}
	if in.Cancel != nil {
		c := *in.Cancel
		out.Cancel = &c
	}
	if in.Room != nil {
		q := cloneQuestions(*in.Room)
		out.Room = &q
	}
	if in.Admin != nil {
		q := cloneQuestions(*in.Admin)
		out.Admin = &q
	}
	if in.Login != nil {
		l := *in.Login
		out.Login = &l
	}
	return out
}

func cloneQuestions(q models.Questions) models.Questions {
	out := models.Questions{Cursor: q.Cursor}
	if q.Answers != nil {
		out.Answers = make(map[string]string, len(q.Answers))
		for k, v := range q.Answers {
			out.Answers[k] = v
		}
	}
	return out
}

package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/drstein77/quotedesk/internal/basket"
	"github.com/drstein77/quotedesk/internal/models"
)

// ErrConflict indicates a data conflict in the store.
var (
	ErrConflict = errors.New("data conflict")
	ErrNotFound = errors.New("not found")
)

type Log interface {
	Info(string, ...zap.Field)
}

// Keeper interface for database operations
type Keeper interface {
	SaveQuote(context.Context, models.QuoteRequest) error
	GetQuote(context.Context, string) (*models.QuoteRequest, error)
	Ping(context.Context) bool
	Close() bool
}

type session struct {
	basket   *basket.Basket
	lastSeen time.Time
}

// MemoryStorage holds the baskets of the live sessions. Quote requests go
// to the keeper, or stay in memory when no keeper is configured.
type MemoryStorage struct {
	mx sync.RWMutex

	sessions map[string]*session
	quotes   map[string]models.QuoteRequest
	ttl      time.Duration
	now      func() time.Time

	keeper Keeper
	log    Log
}

// NewMemoryStorage creates a new MemoryStorage instance. keeper may be nil.
func NewMemoryStorage(keeper Keeper, ttl time.Duration, log Log) *MemoryStorage {
	if keeper == nil {
		log.Info("no database configured, quote requests are kept in memory")
	}

	return &MemoryStorage{
		sessions: make(map[string]*session),
		quotes:   make(map[string]models.QuoteRequest),
		ttl:      ttl,
		now:      time.Now,
		keeper:   keeper,
		log:      log,
	}
}

// Basket returns the basket owned by the session, creating an empty one
// on first use.
func (s *MemoryStorage) Basket(sessionID string) *basket.Basket {
	s.mx.Lock()
	defer s.mx.Unlock()

	now := s.now()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.lastSeen = now
		return sess.basket
	}
	sess := &session{basket: basket.New(), lastSeen: now}
	s.sessions[sessionID] = sess
	return sess.basket
}

// Sessions returns the number of live sessions.
func (s *MemoryStorage) Sessions() int {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were dropped.
func (s *MemoryStorage) Sweep(now time.Time) int {
	s.mx.Lock()
	defer s.mx.Unlock()

	dropped := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStorage) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if n := s.Sweep(t); n > 0 {
				s.log.Info("expired sessions dropped", zap.Int("count", n), zap.Int("live", s.Sessions()))
			}
		}
	}
}

func (s *MemoryStorage) SaveQuote(ctx context.Context, q models.QuoteRequest) error {
	if s.keeper != nil {
		return s.keeper.SaveQuote(ctx, q)
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	if _, ok := s.quotes[q.ID]; ok {
		return ErrConflict
	}
	s.quotes[q.ID] = q
	return nil
}

func (s *MemoryStorage) GetQuote(ctx context.Context, id string) (*models.QuoteRequest, error) {
	if s.keeper != nil {
		return s.keeper.GetQuote(ctx, id)
	}

	s.mx.RLock()
	defer s.mx.RUnlock()

	q, ok := s.quotes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &q, nil
}

// Ping reports whether the quote store is reachable.
func (s *MemoryStorage) Ping(ctx context.Context) bool {
	if s.keeper == nil {
		return true
	}
	return s.keeper.Ping(ctx)
}

func (s *MemoryStorage) Close() {
	if s.keeper != nil {
		s.keeper.Close()
	}
}

package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"audimew-storefront/config"
	"audimew-storefront/internal/listing"
	"audimew-storefront/internal/model"
)

// Views builds the list views of a new session.
type Views struct {
	Products func() *listing.View[model.Product]
	Concerts func() *listing.View[model.Concert]
}

// Store keeps sessions in memory. Idle sessions expire after the configured
// TTL; every Get refreshes the expiry.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
	views Views
	log   *zap.Logger
}

// NewStore creates a session store.
func NewStore(cfg config.SessionConfig, views Views, log *zap.Logger) *Store {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
		views: views,
		log:   log,
	}
}

// Create starts a new anonymous session.
func (st *Store) Create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	if st.views.Products != nil {
		s.Products = st.views.Products()
	}
	if st.views.Concerts != nil {
		s.Concerts = st.views.Concerts()
	}
	st.cache.Set(s.ID, s, st.ttl)
	st.log.Debug("session created", zap.String("session", s.ID), zap.Int("live", st.Len()))
	return s
}

// Get returns the session with the given ID.
func (st *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	v, found := st.cache.Get(id)
	if !found {
		return nil, false
	}
	s := v.(*Session)
	st.cache.Set(id, s, st.ttl)
	return s, true
}

// Delete removes a session.
func (st *Store) Delete(id string) {
	st.cache.Delete(id)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	return st.cache.ItemCount()
}

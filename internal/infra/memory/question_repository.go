package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"quizapp/internal/domain"
)

// Loader fetches the question bank from a backing store (e.g. Postgres).
type Loader interface {
	LoadQuestions(ctx context.Context) ([]domain.QuestionRecord, error)
}

// QuestionRepository caches the question bank with TTL to avoid repeated
// backing-store hits. Admin writes mutate the cached copy and pin it: once the
// bank diverges locally, refreshes stop so edits are never silently discarded.
type QuestionRepository struct {
	loader Loader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	records   []domain.QuestionRecord
	expiresAt time.Time
	loaded    bool
	dirty     bool
}

func NewQuestionRepository(loader Loader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) List(ctx context.Context) ([]domain.QuestionRecord, error) {
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.QuestionRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *QuestionRepository) Get(ctx context.Context, id string) (domain.QuestionRecord, error) {
	if err := r.ensure(ctx); err != nil {
		return domain.QuestionRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, record := range r.records {
		if record.ID == id {
			return record, nil
		}
	}
	return domain.QuestionRecord{}, domain.ErrQuestionNotFound
}

func (r *QuestionRepository) Create(ctx context.Context, record domain.QuestionRecord) (domain.QuestionRecord, error) {
	if err := r.ensure(ctx); err != nil {
		return domain.QuestionRecord{}, err
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	r.dirty = true
	return record, nil
}

func (r *QuestionRepository) Update(ctx context.Context, id string, record domain.QuestionRecord) (domain.QuestionRecord, error) {
	if err := r.ensure(ctx); err != nil {
		return domain.QuestionRecord{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			record.ID = id
			r.records[i] = record
			r.dirty = true
			return record, nil
		}
	}
	return domain.QuestionRecord{}, domain.ErrQuestionNotFound
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	if err := r.ensure(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			r.dirty = true
			return nil
		}
	}
	return domain.ErrQuestionNotFound
}

// ensure fills or refreshes the cache from the loader, collapsing concurrent
// misses into a single load.
func (r *QuestionRepository) ensure(ctx context.Context) error {
	now := r.clock()

	r.mu.RLock()
	fresh := r.loaded && (r.dirty || r.expiresAt.After(now))
	r.mu.RUnlock()
	if fresh {
		return nil
	}

	_, err, _ := r.sf.Do("bank", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		fresh := r.loaded && (r.dirty || r.expiresAt.After(now))
		r.mu.RUnlock()
		if fresh {
			return nil, nil
		}

		records, err := r.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.records = records
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.loaded = true
		r.mu.Unlock()
		return nil, nil
	})
	return err
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticLoader serves a fixed question list (tests and the default dev seed).
type StaticLoader struct {
	records []domain.QuestionRecord
}

func NewStaticLoader(records []domain.QuestionRecord) *StaticLoader {
	return &StaticLoader{records: records}
}

func (l *StaticLoader) LoadQuestions(_ context.Context) ([]domain.QuestionRecord, error) {
	out := make([]domain.QuestionRecord, len(l.records))
	copy(out, l.records)
	return out, nil
}

package rest

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/edora/internal/common"
	"github.com/dmitrijs2005/edora/internal/server/auth"
	"github.com/dmitrijs2005/edora/internal/server/models"
	"github.com/dmitrijs2005/edora/internal/server/services"
)

// memoryStore is an in-memory SubjectStore and ThemeStore that counts calls.
type memoryStore struct {
	mu       sync.Mutex
	nextID   int64
	subjects map[int64]models.Subject
	themes   map[int64]models.Theme
	calls    int
	err      error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{subjects: map[int64]models.Subject{}, themes: map[int64]models.Theme{}}
}

// enter locks the store and records a call; callers unlock.
func (m *memoryStore) enter() {
	m.mu.Lock()
	m.calls++
}

func (m *memoryStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type subjectStore struct{ *memoryStore }
type themeStore struct{ *memoryStore }

func (s subjectStore) List(context.Context) ([]*models.Subject, error) {
	s.enter()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*models.Subject, 0, len(s.subjects))
	for id := int64(1); id <= s.nextID; id++ {
		if v, ok := s.subjects[id]; ok {
			out = append(out, &v)
		}
	}
	return out, nil
}

func (s subjectStore) Create(_ context.Context, in *models.Subject) (*models.Subject, error) {
	s.enter()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.nextID++
	v := models.Subject{ID: s.nextID, Name: in.Name, Tags: in.Tags}
	s.subjects[v.ID] = v
	return &v, nil
}

func (s subjectStore) Update(_ context.Context, id int64, in *models.Subject) error {
	s.enter()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.subjects[id]; !ok {
		return common.ErrSubjectNotFound
	}
	s.subjects[id] = models.Subject{ID: id, Name: in.Name, Tags: in.Tags}
	return nil
}

func (s subjectStore) Delete(_ context.Context, id int64) error {
	s.enter()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.subjects[id]; !ok {
		return common.ErrSubjectNotFound
	}
	delete(s.subjects, id)
	for tid, t := range s.themes {
		if t.SubjectID == id {
			delete(s.themes, tid)
		}
	}
	return nil
}

func (s themeStore) List(context.Context) ([]*models.Theme, error) {
	s.enter()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*models.Theme, 0, len(s.themes))
	for id := int64(1); id <= s.nextID; id++ {
		if v, ok := s.themes[id]; ok {
			out = append(out, &v)
		}
	}
	return out, nil
}

func (s themeStore) Create(_ context.Context, in *models.Theme) (*models.Theme, error) {
	s.enter()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if _, ok := s.subjects[in.SubjectID]; !ok {
		return nil, common.ErrSubjectReferenceNotFound
	}
	s.nextID++
	v := *in
	v.ID = s.nextID
	s.themes[v.ID] = v
	return &v, nil
}

func (s themeStore) Update(_ context.Context, id int64, in *models.Theme) error {
	s.enter()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.themes[id]; !ok {
		return common.ErrThemeNotFound
	}
	if _, ok := s.subjects[in.SubjectID]; !ok {
		return common.ErrSubjectReferenceNotFound
	}
	v := *in
	v.ID = id
	s.themes[id] = v
	return nil
}

func (s themeStore) Delete(_ context.Context, id int64) error {
	s.enter()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.themes[id]; !ok {
		return common.ErrThemeNotFound
	}
	delete(s.themes, id)
	return nil
}

type fakeInfo struct {
	version string
	err     error
}

func (f fakeInfo) DBVersion(context.Context) (string, error) { return f.version, f.err }

const testSecret = "test-secret"

func newAuthService() (*services.AuthService, *auth.TokenService) {
	digest, err := auth.HashPassword("1234")
	if err != nil {
		panic(err)
	}
	admin, err := auth.NewAdmin("admin", digest)
	if err != nil {
		panic(err)
	}
	tokens := auth.NewTokenService([]byte(testSecret), 30*time.Minute)
	return services.NewAuthService(admin, tokens, 30*time.Minute), tokens
}

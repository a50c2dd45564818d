package exam

import (
	"context"
	"sort"
	"sync"
)

// memoryStore backs the local dev server. Same contract as the SQL store,
// so handlers cannot tell which one is wired in.
type memoryStore struct {
	mu          sync.RWMutex
	exams       map[string]*NormalizedExam
	submissions map[string]*Submission
}

func NewInMemoryStore() Store {
	return &memoryStore{
		exams:       map[string]*NormalizedExam{},
		submissions: map[string]*Submission{},
	}
}

func (m *memoryStore) PutExam(_ context.Context, e *NormalizedExam) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exams[e.ID] = e
	return nil
}

func (m *memoryStore) GetExam(_ context.Context, id string) (*NormalizedExam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.exams[id]
	if !ok {
		return nil, ErrExamNotFound
	}
	return e, nil
}

func (m *memoryStore) ListExams(_ context.Context) ([]*NormalizedExam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*NormalizedExam, 0, len(m.exams))
	for _, e := range m.exams {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) PutSubmission(_ context.Context, s *Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[s.ID] = s
	return nil
}

func (m *memoryStore) GetSubmission(_ context.Context, id string) (*Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.submissions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	return s, nil
}

func (m *memoryStore) ListSubmissions(_ context.Context, studentID string) ([]*Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Submission
	for _, s := range m.submissions {
		if studentID == "" || s.StudentID == studentID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) ListUnscoredSubmissions(_ context.Context) ([]*Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Submission
	for _, s := range m.submissions {
		if s.ScoringResult == nil || !s.Scored {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

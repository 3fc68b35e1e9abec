package persistence

import (
	"sort"
	"sync"

	"github.com/equiscribe/scribego/internal/pkg/domain"
)

type memKey struct {
	tenant string
	id     string
}

//InMemJobs keeps jobs in process memory, for development and tests
type InMemJobs struct {
	lock sync.RWMutex
	jobs map[memKey]*domain.TranscriptionJob
}

//NewInMemJobs creates the store
func NewInMemJobs() *InMemJobs {
	return &InMemJobs{jobs: make(map[memKey]*domain.TranscriptionJob)}
}

//Save stores a copy of the job, last write wins
func (s *InMemJobs) Save(job *domain.TranscriptionJob) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.jobs[memKey{job.TenantID, job.ID}] = copyJob(job)
	return nil
}

//Get returns a copy of the job or nil
func (s *InMemJobs) Get(tenant, id string) (*domain.TranscriptionJob, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return copyJob(s.jobs[memKey{tenant, id}]), nil
}

//List returns copies of the tenant jobs ordered by creation time
func (s *InMemJobs) List(tenant string) ([]*domain.TranscriptionJob, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	var res []*domain.TranscriptionJob
	for k, job := range s.jobs {
		if k.tenant == tenant {
			res = append(res, copyJob(job))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID < res[j].ID
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func copyJob(job *domain.TranscriptionJob) *domain.TranscriptionJob {
	if job == nil {
		return nil
	}
	res := *job
	return &res
}

//InMemEncounters keeps encounters in process memory
type InMemEncounters struct {
	lock sync.RWMutex
	encs map[memKey]*domain.Encounter
}

//NewInMemEncounters creates the store
func NewInMemEncounters() *InMemEncounters {
	return &InMemEncounters{encs: make(map[memKey]*domain.Encounter)}
}

//Save stores a copy of the encounter, last write wins
func (s *InMemEncounters) Save(enc *domain.Encounter) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.encs[memKey{enc.TenantID, enc.ID}] = copyEncounter(enc)
	return nil
}

//Get returns a copy of the encounter or nil
func (s *InMemEncounters) Get(tenant, id string) (*domain.Encounter, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return copyEncounter(s.encs[memKey{tenant, id}]), nil
}

//List returns copies of the tenant encounters ordered by creation time
func (s *InMemEncounters) List(tenant string) ([]*domain.Encounter, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	var res []*domain.Encounter
	for k, e := range s.encs {
		if k.tenant == tenant {
			res = append(res, copyEncounter(e))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID < res[j].ID
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func copyEncounter(enc *domain.Encounter) *domain.Encounter {
	if enc == nil {
		return nil
	}
	res := *enc
	res.JobIDs = append([]string(nil), enc.JobIDs...)
	return &res
}

//InMemNotes keeps notes in process memory, keyed by encounter
type InMemNotes struct {
	lock  sync.RWMutex
	notes map[memKey]*domain.Note
}

//NewInMemNotes creates the store
func NewInMemNotes() *InMemNotes {
	return &InMemNotes{notes: make(map[memKey]*domain.Note)}
}

//Save stores a copy of the note, last write wins
func (s *InMemNotes) Save(note *domain.Note) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.notes[memKey{note.TenantID, note.EncounterID}] = copyNote(note)
	return nil
}

//GetByEncounter returns a copy of the encounter note or nil
func (s *InMemNotes) GetByEncounter(tenant, encounterID string) (*domain.Note, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return copyNote(s.notes[memKey{tenant, encounterID}]), nil
}

func copyNote(note *domain.Note) *domain.Note {
	if note == nil {
		return nil
	}
	res := *note
	if note.ReviewedAt != nil {
		at := *note.ReviewedAt
		res.ReviewedAt = &at
	}
	return &res
}

//InMemSessions keeps sessions in process memory
type InMemSessions struct {
	lock     sync.RWMutex
	sessions map[memKey]*domain.Session
}

//NewInMemSessions creates the store
func NewInMemSessions() *InMemSessions {
	return &InMemSessions{sessions: make(map[memKey]*domain.Session)}
}

//Save stores a copy of the session, last write wins
func (s *InMemSessions) Save(session *domain.Session) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.sessions[memKey{session.TenantID, session.ID}] = copySession(session)
	return nil
}

//Get returns a copy of the session or nil
func (s *InMemSessions) Get(tenant, id string) (*domain.Session, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return copySession(s.sessions[memKey{tenant, id}]), nil
}

func copySession(session *domain.Session) *domain.Session {
	if session == nil {
		return nil
	}
	res := *session
	res.JobIDs = append([]string(nil), session.JobIDs...)
	if session.EndedAt != nil {
		at := *session.EndedAt
		res.EndedAt = &at
	}
	return &res
}

//InMemUsers keeps subject to user mappings in process memory
type InMemUsers struct {
	lock  sync.RWMutex
	users map[memKey]*domain.User
}

//NewInMemUsers creates the store
func NewInMemUsers() *InMemUsers {
	return &InMemUsers{users: make(map[memKey]*domain.User)}
}

//SaveBySubject stores a copy of the user under the subject
func (s *InMemUsers) SaveBySubject(subject string, u *domain.User) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	cp := *u
	s.users[memKey{u.TenantID, subject}] = &cp
	return nil
}

//GetBySubject returns a copy of the subject user or nil
func (s *InMemUsers) GetBySubject(tenant, subject string) (*domain.User, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	u := s.users[memKey{tenant, subject}]
	if u == nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

package persistence

import "github.com/equiscribe/scribego/internal/pkg/domain"

//Jobs stores transcription jobs scoped by tenant.
//Get returns nil without error when no job is found.
//List returns the tenant jobs ordered by creation time.
type Jobs interface {
	Save(job *domain.TranscriptionJob) error
	Get(tenant, id string) (*domain.TranscriptionJob, error)
	List(tenant string) ([]*domain.TranscriptionJob, error)
}

//Encounters stores encounters scoped by tenant.
//List returns the tenant encounters ordered by creation time.
type Encounters interface {
	Save(enc *domain.Encounter) error
	Get(tenant, id string) (*domain.Encounter, error)
	List(tenant string) ([]*domain.Encounter, error)
}

//Notes stores clinical notes, one active note per encounter
type Notes interface {
	Save(note *domain.Note) error
	GetByEncounter(tenant, encounterID string) (*domain.Note, error)
}

//Sessions stores conversation sessions scoped by tenant
type Sessions interface {
	Save(s *domain.Session) error
	Get(tenant, id string) (*domain.Session, error)
}

//Users maps auth subjects to users within a tenant
type Users interface {
	SaveBySubject(subject string, u *domain.User) error
	GetBySubject(tenant, subject string) (*domain.User, error)
}

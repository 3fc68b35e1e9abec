package mongo

import (
	"context"
	"time"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"go.mongodb.org/mongo-driver/bson"
	mgo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NoteStore saves clinical notes to mongo db, one note per encounter
type NoteStore struct {
	SessionProvider *SessionProvider
}

//NewNoteStore creates NoteStore instance
func NewNoteStore(sessionProvider *SessionProvider) (*NoteStore, error) {
	f := NoteStore{SessionProvider: sessionProvider}
	return &f, nil
}

type noteRecord struct {
	ID            string     `bson:"ID"`
	Tenant        string     `bson:"tenant"`
	EncounterID   string     `bson:"encounterID"`
	CreatedAt     time.Time  `bson:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt"`
	CreatedBy     string     `bson:"createdBy,omitempty"`
	LastEditedBy  string     `bson:"lastEditedBy,omitempty"`
	IsFinalized   bool       `bson:"isFinalized"`
	ReviewedBy    string     `bson:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time `bson:"reviewedAt,omitempty"`
	ReviewComment string     `bson:"reviewComment,omitempty"`
	Subjective    string     `bson:"subjective,omitempty"`
	Objective     string     `bson:"objective,omitempty"`
	Assessment    string     `bson:"assessment,omitempty"`
	Plan          string     `bson:"plan,omitempty"`
}

// Save upserts the note document of the encounter
func (ss *NoteStore) Save(note *domain.Note) error {
	cmdapp.Log.Infof("Saving note %s for encounter %s", note.ID, note.EncounterID)

	ctx, cancel := mongoContext()
	defer cancel()

	session, err := ss.SessionProvider.NewSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(noteTable)

	return c.FindOneAndUpdate(ctx,
		bson.M{"encounterID": sanitize(note.EncounterID), "tenant": sanitize(note.TenantID)},
		bson.M{"$set": bson.M{"ID": note.ID, "createdAt": note.CreatedAt,
			"updatedAt": note.UpdatedAt, "createdBy": note.CreatedBy,
			"lastEditedBy": note.LastEditedBy, "isFinalized": note.IsFinalized,
			"reviewedBy": note.ReviewedBy, "reviewedAt": note.ReviewedAt,
			"reviewComment": note.ReviewComment, "subjective": note.Subjective.Text,
			"objective": note.Objective.Text, "assessment": note.Assessment.Text,
			"plan": note.Plan.Text}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).Err()
}

// GetByEncounter retrieves the encounter note, nil is returned when there is none
func (ss *NoteStore) GetByEncounter(tenant, encounterID string) (*domain.Note, error) {
	ctx, cancel := mongoContext()
	defer cancel()

	session, err := ss.SessionProvider.NewSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(noteTable)

	var rec noteRecord
	err = c.FindOne(ctx, bson.M{"encounterID": sanitize(encounterID),
		"tenant": sanitize(tenant)}).Decode(&rec)
	if err == mgo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.Note{ID: rec.ID, TenantID: rec.Tenant, EncounterID: rec.EncounterID,
		CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt, CreatedBy: rec.CreatedBy,
		LastEditedBy: rec.LastEditedBy, IsFinalized: rec.IsFinalized, ReviewedBy: rec.ReviewedBy,
		ReviewedAt: rec.ReviewedAt, ReviewComment: rec.ReviewComment,
		Subjective: domain.SOAPSection{Text: rec.Subjective},
		Objective:  domain.SOAPSection{Text: rec.Objective},
		Assessment: domain.SOAPSection{Text: rec.Assessment},
		Plan:       domain.SOAPSection{Text: rec.Plan}}, nil
}

package mongo

import (
	"context"
	"time"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/equiscribe/scribego/internal/pkg/status"
	"go.mongodb.org/mongo-driver/bson"
	mgo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EncounterStore saves encounters to mongo db
type EncounterStore struct {
	SessionProvider *SessionProvider
}

//NewEncounterStore creates EncounterStore instance
func NewEncounterStore(sessionProvider *SessionProvider) (*EncounterStore, error) {
	f := EncounterStore{SessionProvider: sessionProvider}
	return &f, nil
}

type encounterRecord struct {
	ID          string    `bson:"ID"`
	Tenant      string    `bson:"tenant"`
	CreatedAt   time.Time `bson:"createdAt"`
	ClinicianID string    `bson:"clinicianID,omitempty"`
	PatientID   string    `bson:"patientID,omitempty"`
	Status      string    `bson:"status,omitempty"`
	Title       string    `bson:"title,omitempty"`
	JobIDs      []string  `bson:"jobIDs,omitempty"`
}

// Save upserts the encounter document
func (ss *EncounterStore) Save(enc *domain.Encounter) error {
	cmdapp.Log.Infof("Saving encounter %s", enc.ID)

	ctx, cancel := mongoContext()
	defer cancel()

	session, err := ss.SessionProvider.NewSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(encounterTable)

	return c.FindOneAndUpdate(ctx,
		bson.M{"ID": sanitize(enc.ID), "tenant": sanitize(enc.TenantID)},
		bson.M{"$set": bson.M{"createdAt": enc.CreatedAt, "clinicianID": enc.ClinicianID,
			"patientID": enc.PatientID, "status": enc.Status.String(), "title": enc.Title,
			"jobIDs": enc.JobIDs}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).Err()
}

// Get retrieves the encounter, nil is returned when the tenant has no such encounter
func (ss *EncounterStore) Get(tenant, id string) (*domain.Encounter, error) {
	ctx, cancel := mongoContext()
	defer cancel()

	session, err := ss.SessionProvider.NewSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(encounterTable)

	var rec encounterRecord
	err = c.FindOne(ctx, bson.M{"ID": sanitize(id), "tenant": sanitize(tenant)}).Decode(&rec)
	if err == mgo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapEncounter(&rec), nil
}

// List retrieves the tenant encounters ordered by creation time
func (ss *EncounterStore) List(tenant string) ([]*domain.Encounter, error) {
	ctx, cancel := mongoContext()
	defer cancel()

	session, err := ss.SessionProvider.NewSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(encounterTable)

	cursor, err := c.Find(ctx, bson.M{"tenant": sanitize(tenant)},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "ID", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var res []*domain.Encounter
	for cursor.Next(ctx) {
		var rec encounterRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, err
		}
		res = append(res, mapEncounter(&rec))
	}
	return res, cursor.Err()
}

func mapEncounter(rec *encounterRecord) *domain.Encounter {
	return &domain.Encounter{ID: rec.ID, TenantID: rec.Tenant, CreatedAt: rec.CreatedAt,
		ClinicianID: rec.ClinicianID, PatientID: rec.PatientID,
		Status: status.EncounterFrom(rec.Status), Title: rec.Title, JobIDs: rec.JobIDs}
}

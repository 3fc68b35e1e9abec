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

// SessionStore saves conversation sessions to mongo db
type SessionStore struct {
	SessionProvider *SessionProvider
}

//NewSessionStore creates SessionStore instance
func NewSessionStore(sessionProvider *SessionProvider) (*SessionStore, error) {
	f := SessionStore{SessionProvider: sessionProvider}
	return &f, nil
}

type sessionRecord struct {
	ID        string     `bson:"ID"`
	Tenant    string     `bson:"tenant"`
	CreatedAt time.Time  `bson:"createdAt"`
	EndedAt   *time.Time `bson:"endedAt,omitempty"`
	Title     string     `bson:"title,omitempty"`
	JobIDs    []string   `bson:"jobIDs,omitempty"`
}

// Save upserts the session document
func (ss *SessionStore) Save(s *domain.Session) error {
	cmdapp.Log.Infof("Saving session %s", s.ID)

	ctx, cancel := mongoContext()
	defer cancel()

	session, err := ss.SessionProvider.NewSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(sessionTable)

	return c.FindOneAndUpdate(ctx,
		bson.M{"ID": sanitize(s.ID), "tenant": sanitize(s.TenantID)},
		bson.M{"$set": bson.M{"createdAt": s.CreatedAt, "endedAt": s.EndedAt,
			"title": s.Title, "jobIDs": s.JobIDs}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).Err()
}

// Get retrieves the session, nil is returned when the tenant has no such session
func (ss *SessionStore) Get(tenant, id string) (*domain.Session, error) {
	ctx, cancel := mongoContext()
	defer cancel()

	session, err := ss.SessionProvider.NewSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(sessionTable)

	var rec sessionRecord
	err = c.FindOne(ctx, bson.M{"ID": sanitize(id), "tenant": sanitize(tenant)}).Decode(&rec)
	if err == mgo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.Session{ID: rec.ID, TenantID: rec.Tenant, CreatedAt: rec.CreatedAt,
		EndedAt: rec.EndedAt, Title: rec.Title, JobIDs: rec.JobIDs}, nil
}

package mongo

import (
	"context"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"go.mongodb.org/mongo-driver/bson"
	mgo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserStore maps auth subjects to users in mongo db
type UserStore struct {
	SessionProvider *SessionProvider
}

//NewUserStore creates UserStore instance
func NewUserStore(sessionProvider *SessionProvider) (*UserStore, error) {
	f := UserStore{SessionProvider: sessionProvider}
	return &f, nil
}

type userRecord struct {
	Subject string `bson:"subject"`
	Tenant  string `bson:"tenant"`
	UserID  string `bson:"userID"`
	Email   string `bson:"email,omitempty"`
	Role    string `bson:"role,omitempty"`
}

// SaveBySubject upserts the user document of the subject
func (ss *UserStore) SaveBySubject(subject string, u *domain.User) error {
	cmdapp.Log.Infof("Saving user %s", u.ID)

	ctx, cancel := mongoContext()
	defer cancel()

	session, err := ss.SessionProvider.NewSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(userTable)

	return c.FindOneAndUpdate(ctx,
		bson.M{"subject": sanitize(subject), "tenant": sanitize(u.TenantID)},
		bson.M{"$set": bson.M{"userID": u.ID, "email": u.Email, "role": string(u.Role)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).Err()
}

// GetBySubject retrieves the subject user, nil is returned when there is none
func (ss *UserStore) GetBySubject(tenant, subject string) (*domain.User, error) {
	ctx, cancel := mongoContext()
	defer cancel()

	session, err := ss.SessionProvider.NewSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(userTable)

	var rec userRecord
	err = c.FindOne(ctx, bson.M{"subject": sanitize(subject), "tenant": sanitize(tenant)}).Decode(&rec)
	if err == mgo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: rec.UserID, TenantID: rec.Tenant, Email: rec.Email,
		Role: domain.Role(rec.Role)}, nil
}

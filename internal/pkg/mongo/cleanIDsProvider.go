package mongo

import (
	"context"
	"time"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//one batch per sweep, the next timer run picks up the rest
const maxCleanBatch = 500

// CleanIDsProvider returns IDs of jobs older than the expiration duration
type CleanIDsProvider struct {
	SessionProvider *SessionProvider
	expireDuration  time.Duration
}

//NewCleanIDsProvider creates CleanIDsProvider instance
func NewCleanIDsProvider(sessionProvider *SessionProvider,
	expireDuration time.Duration) (*CleanIDsProvider, error) {
	if expireDuration <= 0 {
		return nil, errors.New("No expiration duration provided")
	}
	return &CleanIDsProvider{SessionProvider: sessionProvider, expireDuration: expireDuration}, nil
}

// Get returns expired job IDs
func (p *CleanIDsProvider) Get() ([]string, error) {
	expDate := time.Now().Add(-p.expireDuration)
	cmdapp.Log.Infof("Getting jobs older than %s", expDate.Format(time.RFC3339))

	ctx, cancel := mongoContext()
	defer cancel()

	session, err := p.SessionProvider.NewSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(jobTable)

	cursor, err := c.Find(ctx, bson.M{"createdAt": bson.M{"$lt": expDate}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}).
			SetProjection(bson.M{"ID": 1}).SetLimit(maxCleanBatch))
	if err != nil {
		return nil, errors.Wrap(err, "Can't select from "+jobTable)
	}
	defer cursor.Close(ctx)

	res := make([]string, 0)
	for cursor.Next(ctx) {
		var rec jobRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, err
		}
		if rec.ID != "" {
			res = append(res, rec.ID)
		}
	}
	return res, cursor.Err()
}

package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	mgo "go.mongodb.org/mongo-driver/mongo"
)

// JobAudioProvider returns the stored audio path of a job
type JobAudioProvider struct {
	SessionProvider *SessionProvider
}

//NewJobAudioProvider creates JobAudioProvider instance
func NewJobAudioProvider(sessionProvider *SessionProvider) (*JobAudioProvider, error) {
	return &JobAudioProvider{SessionProvider: sessionProvider}, nil
}

// AudioPath returns the audio path of the job, empty when the job is unknown.
// The lookup is by ID only, erasure works across tenants
func (p *JobAudioProvider) AudioPath(ID string) (string, error) {
	ctx, cancel := mongoContext()
	defer cancel()

	session, err := p.SessionProvider.NewSession()
	if err != nil {
		return "", err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(jobTable)

	var rec jobRecord
	err = c.FindOne(ctx, bson.M{"ID": sanitize(ID)}).Decode(&rec)
	if err == mgo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return rec.AudioURL, nil
}

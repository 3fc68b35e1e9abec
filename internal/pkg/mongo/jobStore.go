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

// JobStore saves transcription jobs to mongo db
type JobStore struct {
	SessionProvider *SessionProvider
}

//NewJobStore creates JobStore instance
func NewJobStore(sessionProvider *SessionProvider) (*JobStore, error) {
	f := JobStore{SessionProvider: sessionProvider}
	return &f, nil
}

type jobRecord struct {
	ID             string    `bson:"ID"`
	Tenant         string    `bson:"tenant"`
	CreatedAt      time.Time `bson:"createdAt"`
	Status         string    `bson:"status,omitempty"`
	AudioURL       string    `bson:"audioURL,omitempty"`
	LanguageCode   string    `bson:"languageCode,omitempty"`
	TargetLanguage string    `bson:"targetLanguage,omitempty"`
	ResultText     string    `bson:"resultText,omitempty"`
	TranslatedText string    `bson:"translatedText,omitempty"`
	Error          string    `bson:"error,omitempty"`
}

// Save upserts the job document
func (ss *JobStore) Save(job *domain.TranscriptionJob) error {
	cmdapp.Log.Infof("Saving job %s", job.ID)

	ctx, cancel := mongoContext()
	defer cancel()

	session, err := ss.SessionProvider.NewSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(jobTable)

	return c.FindOneAndUpdate(ctx,
		bson.M{"ID": sanitize(job.ID), "tenant": sanitize(job.TenantID)},
		bson.M{"$set": bson.M{"createdAt": job.CreatedAt, "status": job.Status.String(),
			"audioURL": job.AudioURL, "languageCode": job.LanguageCode,
			"targetLanguage": job.TargetLanguage, "resultText": job.ResultText,
			"translatedText": job.TranslatedText, "error": job.Error}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).Err()
}

// Get retrieves the job, nil is returned when the tenant has no such job
func (ss *JobStore) Get(tenant, id string) (*domain.TranscriptionJob, error) {
	ctx, cancel := mongoContext()
	defer cancel()

	session, err := ss.SessionProvider.NewSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(jobTable)

	var rec jobRecord
	err = c.FindOne(ctx, bson.M{"ID": sanitize(id), "tenant": sanitize(tenant)}).Decode(&rec)
	if err == mgo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapJob(&rec), nil
}

// List retrieves the tenant jobs ordered by creation time
func (ss *JobStore) List(tenant string) ([]*domain.TranscriptionJob, error) {
	ctx, cancel := mongoContext()
	defer cancel()

	session, err := ss.SessionProvider.NewSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(jobTable)

	cursor, err := c.Find(ctx, bson.M{"tenant": sanitize(tenant)},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "ID", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var res []*domain.TranscriptionJob
	for cursor.Next(ctx) {
		var rec jobRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, err
		}
		res = append(res, mapJob(&rec))
	}
	return res, cursor.Err()
}

func mapJob(rec *jobRecord) *domain.TranscriptionJob {
	return &domain.TranscriptionJob{ID: rec.ID, TenantID: rec.Tenant, CreatedAt: rec.CreatedAt,
		Status: status.JobFrom(rec.Status), AudioURL: rec.AudioURL, LanguageCode: rec.LanguageCode,
		TargetLanguage: rec.TargetLanguage, ResultText: rec.ResultText,
		TranslatedText: rec.TranslatedText, Error: rec.Error}
}

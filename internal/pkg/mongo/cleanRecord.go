package mongo

import (
	"context"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// CleanRecord deletes documents of one collection by job ID
type CleanRecord struct {
	SessionProvider *SessionProvider
	Table           string
}

//NewCleanRecords creates cleaners for collections keeping per job data
func NewCleanRecords(sessionProvider *SessionProvider) []*CleanRecord {
	return []*CleanRecord{newCleanRecord(sessionProvider, jobTable)}
}

func newCleanRecord(sessionProvider *SessionProvider, table string) *CleanRecord {
	cmdapp.Log.Infof("Init Mongo table clean for %s", table)
	return &CleanRecord{SessionProvider: sessionProvider, Table: table}
}

// Clean deletes records from the table by ID
func (fs *CleanRecord) Clean(ID string) error {
	cmdapp.Log.Infof("Cleaning records for %s[ID=%s]", fs.Table, ID)

	ctx, cancel := mongoContext()
	defer cancel()

	session, err := fs.SessionProvider.NewSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(fs.Table)

	info, err := c.DeleteMany(ctx, bson.M{"ID": sanitize(ID)})
	if err != nil {
		return errors.Wrap(err, "Can't delete from "+fs.Table)
	}
	cmdapp.Log.Infof("Deleted %d from %s", info.DeletedCount, fs.Table)
	return nil
}

// CleanJobRefs drops job references from a grouping collection.
// Encounters and sessions keep attached job IDs in the jobIDs array
type CleanJobRefs struct {
	SessionProvider *SessionProvider
	Table           string
}

//NewJobRefCleaners creates job reference cleaners for the grouping collections
func NewJobRefCleaners(sessionProvider *SessionProvider) []*CleanJobRefs {
	return []*CleanJobRefs{newCleanJobRefs(sessionProvider, encounterTable),
		newCleanJobRefs(sessionProvider, sessionTable)}
}

func newCleanJobRefs(sessionProvider *SessionProvider, table string) *CleanJobRefs {
	cmdapp.Log.Infof("Init Mongo job reference clean for %s", table)
	return &CleanJobRefs{SessionProvider: sessionProvider, Table: table}
}

// Clean pulls the job ID from all documents referencing it
func (fs *CleanJobRefs) Clean(ID string) error {
	ctx, cancel := mongoContext()
	defer cancel()

	session, err := fs.SessionProvider.NewSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	c := session.Client().Database(store).Collection(fs.Table)

	info, err := c.UpdateMany(ctx, bson.M{"jobIDs": sanitize(ID)},
		bson.M{"$pull": bson.M{"jobIDs": sanitize(ID)}})
	if err != nil {
		return errors.Wrap(err, "Can't update "+fs.Table)
	}
	cmdapp.Log.Infof("Dropped job ref from %d %s", info.ModifiedCount, fs.Table)
	return nil
}

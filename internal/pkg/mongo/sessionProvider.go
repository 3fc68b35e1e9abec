package mongo

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	mgo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//IndexData keeps index creation data
type IndexData struct {
	Table  string
	Fields []string
	Unique bool
}

func newIndexData(table string, unique bool, fields ...string) IndexData {
	return IndexData{Table: table, Fields: fields, Unique: unique}
}

//SessionProvider connects and provides sessions for mongo DB
type SessionProvider struct {
	client  *mgo.Client
	URL     string
	indexes []IndexData
	m       sync.Mutex // struct field mutex
}

//NewSessionProvider creates Mongo session provider
func NewSessionProvider() (*SessionProvider, error) {
	url := cmdapp.Config.GetString("mongo.url")
	if url == "" {
		return nil, errors.New("No Mongo url provided")
	}
	return &SessionProvider{URL: url, indexes: indexData}, nil
}

//Close closes mongo connection
func (sp *SessionProvider) Close() {
	if sp.client != nil {
		_ = sp.client.Disconnect(context.Background())
	}
}

//Healthy checks the mongo connection
func (sp *SessionProvider) Healthy() error {
	client, err := sp.connect()
	if err != nil {
		return err
	}
	ctx, cancel := mongoContext()
	defer cancel()
	return client.Ping(ctx, nil)
}

//NewSession creates mongo session
func (sp *SessionProvider) NewSession() (mgo.Session, error) {
	client, err := sp.connect()
	if err != nil {
		return nil, err
	}
	return client.StartSession()
}

func (sp *SessionProvider) connect() (*mgo.Client, error) {
	sp.m.Lock()
	defer sp.m.Unlock()

	if sp.client == nil {
		cmdapp.Log.Info("Connecting to mongo: " + hidePass(sp.URL))
		ctx, cancel := mongoContext()
		defer cancel()
		client, err := mgo.Connect(ctx, options.Client().ApplyURI(sp.URL))
		if err != nil {
			return nil, errors.Wrap(err, "Can't connect to mongo")
		}
		err = checkIndexes(client, sp.indexes)
		if err != nil {
			return nil, errors.Wrap(err, "Can't create indexes")
		}
		sp.client = client
	}
	return sp.client, nil
}

func checkIndexes(client *mgo.Client, indexes []IndexData) error {
	for _, index := range indexes {
		err := checkIndex(client, index)
		if err != nil {
			return errors.Wrap(err, "Can't create index: "+index.Table)
		}
	}
	return nil
}

func checkIndex(client *mgo.Client, indexData IndexData) error {
	ctx, cancel := mongoContext()
	defer cancel()
	c := client.Database(store).Collection(indexData.Table)
	keys := bson.D{}
	for _, f := range indexData.Fields {
		keys = append(keys, bson.E{Key: f, Value: 1})
	}
	_, err := c.Indexes().CreateOne(ctx, mgo.IndexModel{Keys: keys,
		Options: options.Index().SetUnique(indexData.Unique).SetSparse(true).SetBackground(true)})
	return err
}

func mongoContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '$' || r == 0 {
			return -1
		}
		return r
	}, s)
}

func hidePass(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		cmdapp.Log.Warn("Can't parse mongo url.")
		return ""
	}
	_, ps := u.User.Password()
	if ps {
		u.User = url.UserPassword(u.User.Username(), "----")
	}
	return u.String()
}

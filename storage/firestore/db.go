// Package firestoredb stores the application data in Cloud Firestore.
//
// Layout: users/{uid} holds the account, users/{uid}/{collection}/{id} the rows
// a user owns and users/{uid}/settings/{name} the per user singletons.
package firestoredb

import (
	"context"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/studyflow/studyflow/core"
)

const (
	usersCollection    = "users"
	settingsCollection = "settings"

	assessmentsCollection = "assessments"
	coursesCollection     = "courses"
	assignmentsCollection = "assignments"
	sessionsCollection    = "sessions"

	gradeTargetDoc = "grade-target"
	timerDoc       = "timer-state"
)

// owned lists the collections deleted along with their user.
var owned = []string{assessmentsCollection, coursesCollection, assignmentsCollection, sessionsCollection, settingsCollection}

// DB wraps the Firestore client.
type DB struct {
	*firestore.Client
}

// Open connects to Firestore through a Firebase app.
// FIRESTORE_EMULATOR_HOST, when set, is honoured by the client.
func Open(ctx context.Context, conf *core.Config) (*DB, error) {
	var opts []option.ClientOption
	if conf.Firestore.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(conf.Firestore.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Firestore.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "initializing firebase app")
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "initializing firestore client")
	}
	return &DB{Client: client}, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func (db *DB) userDoc(userID string) *firestore.DocumentRef {
	return db.Collection(usersCollection).Doc(userID)
}

func (db *DB) settingsDoc(userID, name string) *firestore.DocumentRef {
	return db.userDoc(userID).Collection(settingsCollection).Doc(name)
}

// collect decodes every document of q.
func collect[T any](ctx context.Context, q firestore.Query) ([]T, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	rows := make([]T, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var row T
		if err = doc.DataTo(&row); err != nil {
			return nil, errors.Wrapf(err, "decoding %s", doc.Ref.Path)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ownedCollection is a subcollection of rows owned by a user.
type ownedCollection[T any] struct {
	db       *DB
	name     string
	notFound error
}

func (c ownedCollection[T]) ref(userID string) *firestore.CollectionRef {
	return c.db.userDoc(userID).Collection(c.name)
}

func (c ownedCollection[T]) list(ctx context.Context, userID string) ([]T, error) {
	rows, err := collect[T](ctx, c.ref(userID).OrderBy("created_at", firestore.Asc))
	return rows, errors.Wrapf(err, "querying %s", c.name)
}

func (c ownedCollection[T]) get(ctx context.Context, userID, id string) (T, error) {
	var row T
	if id == "" {
		return row, c.notFound
	}
	doc, err := c.ref(userID).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return row, c.notFound
		}
		return row, errors.Wrapf(err, "getting %s", c.name)
	}
	err = doc.DataTo(&row)
	return row, errors.Wrapf(err, "decoding %s", c.name)
}

func (c ownedCollection[T]) create(ctx context.Context, userID, id string, row T) error {
	_, err := c.ref(userID).Doc(id).Create(ctx, row)
	return errors.Wrapf(err, "inserting into %s", c.name)
}

// replace overwrites an existing document.
func (c ownedCollection[T]) replace(ctx context.Context, userID, id string, row T) error {
	ref := c.ref(userID).Doc(id)
	return c.db.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if isNotFound(err) {
				return c.notFound
			}
			return errors.Wrapf(err, "getting %s", c.name)
		}
		return tx.Set(ref, row)
	})
}

func (c ownedCollection[T]) remove(ctx context.Context, userID, id string) error {
	if id == "" {
		return c.notFound
	}
	if _, err := c.ref(userID).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if isNotFound(err) {
			return c.notFound
		}
		return errors.Wrapf(err, "deleting from %s", c.name)
	}
	return nil
}

// getSetting decodes the settings document name of userID.
func getSetting[T any](ctx context.Context, db *DB, userID, name string, notFound error) (T, error) {
	var row T
	doc, err := db.settingsDoc(userID, name).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return row, notFound
		}
		return row, errors.Wrapf(err, "getting %s", name)
	}
	err = doc.DataTo(&row)
	return row, errors.Wrapf(err, "decoding %s", name)
}

func setSetting[T any](ctx context.Context, db *DB, userID, name string, row T) error {
	_, err := db.settingsDoc(userID, name).Set(ctx, row)
	return errors.Wrapf(err, "saving %s", name)
}

// dropOwner queues the deletion of everything userID owns.
func (db *DB) dropOwner(ctx context.Context, writer *firestore.BulkWriter, userID string) ([]*firestore.BulkWriterJob, error) {
	var jobs []*firestore.BulkWriterJob
	for _, name := range owned {
		iter := db.userDoc(userID).Collection(name).DocumentRefs(ctx)
		for {
			ref, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return jobs, errors.Wrapf(err, "listing %s", name)
			}
			job, err := writer.Delete(ref)
			if err != nil {
				return jobs, errors.Wrapf(err, "deleting %s", ref.Path)
			}
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

// awaitJobs returns the first failure among jobs of an ended BulkWriter.
func awaitJobs(jobs []*firestore.BulkWriterJob) error {
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return errors.Wrap(err, "bulk write")
		}
	}
	return nil
}

package firestoredb_test

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	firestoredb "github.com/studyflow/studyflow/storage/firestore"
	"github.com/studyflow/studyflow/storage/storagetest"
)

func TestRepositories(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	storagetest.Run(t, func(t *testing.T) storagetest.Repos {
		client, err := firestore.NewClient(context.Background(), "test-"+uuid.NewString()[:8])
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		db := &firestoredb.DB{Client: client}
		return storagetest.Repos{
			Users:       firestoredb.NewUserRepository(db),
			Grades:      firestoredb.NewGradeRepository(db),
			Courses:     firestoredb.NewCourseRepository(db),
			Assignments: firestoredb.NewAssignmentRepository(db),
			Sessions:    firestoredb.NewSessionRepository(db),
			Timers:      firestoredb.NewTimerRepository(db),
		}
	})
}

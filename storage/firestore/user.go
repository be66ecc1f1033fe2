package firestoredb

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) users() *firestore.CollectionRef {
	return repo.db.Collection(usersCollection)
}

func (repo *userRepository) findOne(ctx context.Context, field, value string) (user.User, bool, error) {
	users, err := collect[user.User](ctx, repo.users().Where(field, "==", value).Limit(1))
	if err != nil {
		return user.User{}, false, errors.Wrap(err, "finding user")
	}
	if len(users) == 0 {
		return user.User{}, false, nil
	}
	return users[0], true, nil
}

func (repo *userRepository) CheckUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	check := func(field, value string, errExists error) error {
		if value == "" {
			return nil
		}
		matches, err := collect[user.User](ctx, repo.users().Where(field, "==", value))
		if err != nil {
			return errors.Wrap(err, "checking user uniqueness")
		}
		for _, usr := range matches {
			if !isExcluded(usr, excludedUsers) {
				return errExists
			}
		}
		return nil
	}

	if err := check("username", username, user.ErrUsernameExists); err != nil {
		return err
	}
	return check("email", email, user.ErrEmailExists)
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if _, err := repo.users().Doc(usr.ID).Create(ctx, usr); err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	if id == "" {
		return user.User{}, user.ErrNotFound
	}
	doc, err := repo.users().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	var usr user.User
	err = doc.DataTo(&usr)
	return usr, errors.Wrap(err, "decoding user")
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	if email == "" {
		return user.User{}, user.ErrNotFound
	}
	usr, found, err := repo.findOne(ctx, "email", email)
	if err != nil {
		return user.User{}, err
	}
	if !found {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) GetUserByUsernameOrEmail(ctx context.Context, uname string) (user.User, error) {
	if uname == "" {
		return user.User{}, user.ErrNotFound
	}
	for _, field := range []string{"username", "email"} {
		usr, found, err := repo.findOne(ctx, field, uname)
		if err != nil {
			return user.User{}, err
		}
		if found {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

// FilterUsers filters in process: Firestore cannot express substring search.
func (repo *userRepository) FilterUsers(ctx context.Context, filter user.QueryFilter, orderings ...core.DBOrdering) ([]user.User, error) {
	q := repo.users().Query
	if filter.IsActive != nil {
		q = q.Where("is_active", "==", *filter.IsActive)
	}
	all, err := collect[user.User](ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}

	users := make([]user.User, 0, len(all))
	for _, usr := range all {
		if filter.Match(usr) {
			users = append(users, usr)
		}
	}
	user.SortUsers(users, orderings...)
	return users, nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	ref := repo.users().Doc(usr.ID)
	err := repo.db.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if isNotFound(err) {
				return user.ErrNotFound
			}
			return errors.Wrap(err, "getting user")
		}
		return tx.Set(ref, usr)
	})
	if err != nil {
		return user.User{}, err
	}
	return usr, nil
}

// DeleteUsersByID deletes the users along with everything they own.
func (repo *userRepository) DeleteUsersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	writer := repo.db.BulkWriter(ctx)

	var jobs []*firestore.BulkWriterJob
	for _, id := range ids {
		owned, err := repo.db.dropOwner(ctx, writer, id)
		jobs = append(jobs, owned...)
		if err != nil {
			writer.End()
			return errors.Wrap(err, "deleting user data")
		}
		job, err := writer.Delete(repo.users().Doc(id))
		if err != nil {
			writer.End()
			return errors.Wrap(err, "deleting user")
		}
		jobs = append(jobs, job)
	}
	writer.End()
	return errors.Wrap(awaitJobs(jobs), "deleting users")
}

func isExcluded(usr user.User, excludedUsers []user.User) bool {
	for _, excl := range excludedUsers {
		if excl.ID == usr.ID {
			return true
		}
	}
	return false
}

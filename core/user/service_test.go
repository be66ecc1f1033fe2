package user_test

import (
	"context"
	"io"
	"log"
	"net/mail"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/user"
	emailsvc "github.com/studyflow/studyflow/services/email"
	logsvc "github.com/studyflow/studyflow/services/logger"
	inmemdb "github.com/studyflow/studyflow/storage/database/inmem"
	"github.com/studyflow/studyflow/testutil"
)

const pwd = "Pwd#2024x"

type fixture struct {
	repo     user.Repository
	svc      user.Service
	mailSvc  *emailsvc.ConsoleServiceMock
	validate *validator.Validate
}

func setup(t *testing.T) fixture {
	t.Helper()

	conf := &core.Config{
		TestMode:                  true,
		AppName:                   "StudyFlow",
		SecretKey:                 "test-secret",
		DefaultFromEmail:          mail.Address{Name: "StudyFlow", Address: "noreply@test.test"},
		FrontendBaseURL:           "http://localhost:3000",
		PasswordResetTimeoutDelta: 24 * time.Hour,
	}
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator, logger)

	repo := inmemdb.NewUserRepository(inmemdb.Open())
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	return fixture{
		repo:     repo,
		svc:      user.NewService(repo, mailSvc, conf),
		mailSvc:  mailSvc,
		validate: validate,
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	nu := user.NewUser{
		Name:            "  Jane Doe ",
		Username:        "Jane",
		Email:           "Jane@Test.test",
		Password:        pwd,
		PasswordConfirm: pwd,
	}
	require.NoError(t, nu.Validate(ctx, f.validate, f.svc))
	assert.Equal(t, "Jane Doe", nu.Name)
	assert.Equal(t, "jane", nu.Username)
	assert.Equal(t, "jane@test.test", nu.Email)

	usr, err := f.svc.Create(ctx, nu)
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)
	assert.True(t, usr.IsActive)
	assert.Equal(t, []string{user.RoleStudent}, usr.Roles)
	assert.NoError(t, usr.CheckPassword(pwd))

	sent := f.mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "welcome", sent[0].TemplateName)
	assert.Contains(t, sent[0].TextContent, "Jane Doe")

	t.Run("uniqueness", func(t *testing.T) {
		dup := user.NewUser{Name: "Jane Bis", Username: "JANE", Password: pwd, PasswordConfirm: pwd}
		err := dup.Validate(ctx, f.validate, f.svc)
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "username", vErr.Fields[0].Field)

		dup = user.NewUser{Name: "Jane Bis", Email: "jane@test.test", Password: pwd, PasswordConfirm: pwd}
		err = dup.Validate(ctx, f.validate, f.svc)
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "email", vErr.Fields[0].Field)
	})

	t.Run("lookups", func(t *testing.T) {
		got, err := f.svc.GetByEmail(ctx, " JANE@test.test")
		require.NoError(t, err)
		assert.Equal(t, usr.ID, got.ID)

		got, err = f.svc.GetByUsernameOrEmail(ctx, "Jane")
		require.NoError(t, err)
		assert.Equal(t, usr.ID, got.ID)

		_, err = f.svc.GetByID(ctx, "missing")
		assert.Equal(t, user.ErrNotFound, err)
	})
}

func TestNewUser_Validate(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	tests := []struct {
		name    string
		nu      user.NewUser
		wantFld string
	}{
		{"no username nor email", user.NewUser{Name: "Jo", Password: pwd, PasswordConfirm: pwd}, "username"},
		{"blank name", user.NewUser{Name: "   ", Username: "jo_1", Password: pwd, PasswordConfirm: pwd}, "name"},
		{"bad username", user.NewUser{Name: "Jo", Username: "jo-1", Password: pwd, PasswordConfirm: pwd}, "username"},
		{"bad email", user.NewUser{Name: "Jo", Email: "jo@", Password: pwd, PasswordConfirm: pwd}, "email"},
		{"passwords mismatch", user.NewUser{Name: "Jo", Username: "jo_1", Password: pwd, PasswordConfirm: pwd + "!"}, "password_confirm"},
		{"short password", user.NewUser{Name: "Jo", Username: "jo_1", Password: "Ab#1", PasswordConfirm: "Ab#1"}, "password"},
		{"weak password", user.NewUser{Name: "Jo", Username: "jo_1", Password: "abcdefgh1", PasswordConfirm: "abcdefgh1"}, "password"},
		{"unknown role", user.NewUser{Name: "Jo", Username: "jo_1", Password: pwd, PasswordConfirm: pwd, Roles: []string{"tutor"}}, "roles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nu.Validate(ctx, f.validate, f.svc)
			var vErrs validator.ValidationErrors
			require.ErrorAs(t, err, &vErrs)

			var fields []string
			for _, fe := range vErrs {
				fields = append(fields, fe.Field())
			}
			assert.Contains(t, fields, tt.wantFld)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	jane := testutil.CreateUser(t, f.repo, "Jane Doe", "jane", "jane@test.test", pwd, []string{user.RoleStudent}, true)
	testutil.CreateUser(t, f.repo, "John Doe", "john", "john@test.test", pwd, []string{user.RoleStudent}, true)

	uu := user.UpdateUser{Username: "john"}
	err := uu.Validate(ctx, jane, f.validate, f.svc)
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr, "username taken")

	inactive := false
	newPwd := "N3w#Secret"
	uu = user.UpdateUser{Name: "Jane Smith", IsActive: &inactive, Password: newPwd, PasswordConfirm: newPwd}
	require.NoError(t, uu.Validate(ctx, jane, f.validate, f.svc))
	assert.Equal(t, "jane", uu.Username, "kept from the original user")

	got, err := f.svc.Update(ctx, jane, uu)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", got.Name)
	assert.Equal(t, "jane@test.test", got.Email)
	assert.False(t, got.IsActive)
	assert.NoError(t, got.CheckPassword(newPwd))

	got, err = f.svc.SetLastLogin(ctx, got)
	require.NoError(t, err)
	assert.False(t, got.LastLogin.IsZero())
}

func TestService_Query(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	zed := testutil.CreateUser(t, f.repo, "Zed", "zed", "zed@test.test", "", []string{user.RoleStudent}, true, base)
	amy := testutil.CreateUser(t, f.repo, "Amy", "amy", "", "", []string{user.RoleAdmin}, true, base.Add(time.Hour))
	bob := testutil.CreateUser(t, f.repo, "Bob", "", "bob@school.test", "", []string{user.RoleStudent}, false, base.Add(2*time.Hour))

	ids := func(users []user.User) []string {
		out := make([]string, 0, len(users))
		for _, u := range users {
			out = append(out, u.ID)
		}
		return out
	}

	users, err := f.svc.Query(ctx, user.QueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{zed.ID, amy.ID, bob.ID}, ids(users))

	users, err = f.svc.Query(ctx, user.QueryFilter{}, core.DBOrdering{Field: "name", Ascending: true}, core.DBOrdering{Field: "password_hash"})
	require.NoError(t, err)
	assert.Equal(t, []string{amy.ID, bob.ID, zed.ID}, ids(users))

	users, err = f.svc.Query(ctx, user.QueryFilter{Search: " TEST "})
	require.NoError(t, err)
	assert.Equal(t, []string{zed.ID, bob.ID}, ids(users))

	active := true
	users, err = f.svc.Query(ctx, user.QueryFilter{Roles: []string{user.RoleStudent}, IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, []string{zed.ID}, ids(users))

	users, err = f.svc.Query(ctx, user.QueryFilter{CreatedFrom: base.Add(30 * time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, []string{amy.ID, bob.ID}, ids(users))

	require.NoError(t, f.svc.Delete(ctx, zed.ID, amy.ID))
	users, err = f.svc.Query(ctx, user.QueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, ids(users))
}

func TestService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	jane := testutil.CreateUser(t, f.repo, "Jane Doe", "jane", "jane@test.test", pwd, []string{user.RoleStudent}, true)
	testutil.CreateUser(t, f.repo, "Idle", "idle", "idle@test.test", pwd, []string{user.RoleStudent}, false)

	assert.Equal(t, user.ErrNotFound, f.svc.RequestPasswordReset(ctx, "nobody@test.test"))

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "idle@test.test"))
	assert.Empty(t, f.mailSvc.SentMessages(), "inactive users get no mail")

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "Jane@test.test"))
	sent := f.mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "password_reset", sent[0].TemplateName)
	assert.Equal(t, "jane@test.test", sent[0].To[0].Address)

	data := sent[0].TemplateData.(map[string]string)
	assert.Equal(t, user.EncodeUID(jane), data["UID"])
	assert.Contains(t, sent[0].TextContent, "/password-reset/"+data["UID"]+"/"+data["Token"])

	newPwd := "N3w#Secret"
	t.Run("invalid link", func(t *testing.T) {
		for _, rp := range []user.ResetUserPassword{
			{UID: "!!", Token: data["Token"], Password: newPwd, PasswordConfirm: newPwd},
			{UID: data["UID"], Token: "bad-token", Password: newPwd, PasswordConfirm: newPwd},
		} {
			err := f.svc.ResetPassword(ctx, rp)
			var vErr *core.ValidationError
			assert.ErrorAs(t, err, &vErr)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		rp := user.ResetUserPassword{UID: data["UID"], Token: data["Token"], Password: "password", PasswordConfirm: "password"}
		var vErrs validator.ValidationErrors
		assert.ErrorAs(t, rp.Validate(f.validate), &vErrs)
	})

	rp := user.ResetUserPassword{UID: data["UID"], Token: data["Token"], Password: newPwd, PasswordConfirm: newPwd}
	require.NoError(t, rp.Validate(f.validate))
	require.NoError(t, f.svc.ResetPassword(ctx, rp))

	got, err := f.svc.GetByID(ctx, jane.ID)
	require.NoError(t, err)
	assert.NoError(t, got.CheckPassword(newPwd))

	// the token is bound to the old password hash
	err = f.svc.ResetPassword(ctx, rp)
	var vErr *core.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

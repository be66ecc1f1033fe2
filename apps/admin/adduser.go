package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/user"
)

func (cli *commandLine) addUserCmd() *cobra.Command {
	var uname, email, name string
	var isAdmin bool

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create or update an active user; the password is prompted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if uname == "" && email == "" {
				_ = cmd.Usage()
				return errHelp
			}
			pwd, err := cli.promptPassword()
			if err != nil {
				return err
			}
			usr, err := cli.addUser(cmd.Context(), name, uname, email, pwd, isAdmin)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cli.out, "user %s saved\n", usr.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&uname, "username", "", "The user's username")
	cmd.Flags().StringVar(&email, "email", "", "The user's email")
	cmd.Flags().StringVar(&name, "name", "", "The user's display name (defaults to the username)")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "Grant the admin role")
	return cmd
}

// addUser updates or creates an active user.User
func (cli *commandLine) addUser(ctx context.Context, name, uname, email, pwd string, isAdmin bool) (user.User, error) {
	stores, err := cli.storage(ctx)
	if err != nil {
		return user.User{}, err
	}
	repo := stores.Users

	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)
	name = core.CleanString(name)

	now := now()
	exists := true
	usr, err := findUser(ctx, repo, uname, email)
	if err != nil {
		if !core.IsNotFound(err) {
			return user.User{}, err
		}
		exists = false
		usr = user.User{ID: uuid.NewString(), Username: uname, Email: email, CreatedAt: now}
	}
	if name != "" {
		usr.Name = name
	} else if usr.Name == "" {
		usr.Name = uname
	}
	usr.Roles = []string{user.RoleStudent}
	if isAdmin {
		usr.Roles = user.AllRoles
	}
	usr.IsActive = true
	usr.UpdatedAt = now
	if err = usr.SetPassword(pwd); err != nil {
		return user.User{}, err
	}

	if exists {
		return repo.UpdateUser(ctx, usr)
	}
	return repo.CreateUser(ctx, usr)
}

func findUser(ctx context.Context, repo user.Repository, identifiers ...string) (user.User, error) {
	for _, id := range identifiers {
		if id == "" {
			continue
		}
		usr, err := repo.GetUserByUsernameOrEmail(ctx, id)
		if err == nil || !core.IsNotFound(err) {
			return usr, err
		}
	}
	return user.User{}, user.ErrNotFound
}

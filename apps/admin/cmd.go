package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/storage"
	"github.com/studyflow/studyflow/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword       // mockable
	gooseRunFunc     = database.RunMigrations // mockable

	errHelp     = errors.New("help provided")
	errNoSQLDB  = errors.New("migrations need the postgres or sqlite engine")
	errPassword = errors.New("password cannot be empty")
)

type commandLine struct {
	conf   *core.Config
	out    io.Writer
	stores *storage.Stores // opened on first use
}

func (cli *commandLine) storage(ctx context.Context) (*storage.Stores, error) {
	if cli.stores == nil {
		stores, err := storage.Open(ctx, cli.conf)
		if err != nil {
			return nil, err
		}
		cli.stores = stores
	}
	return cli.stores, nil
}

func (cli *commandLine) close() error {
	if cli.stores == nil {
		return nil
	}
	return cli.stores.Close()
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "StudyFlow administration commands",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)

	root.AddCommand(cli.migrateCmd())
	root.AddCommand(cli.addUserCmd())
	root.AddCommand(cli.resetPasswordCmd())
	root.AddCommand(cli.predictCmd())
	return root
}

// run executes args, args[0] being the program name.
func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args[1:])
	return root.Execute()
}

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "migrate COMMAND [ARGS...]",
		Short:              "Run a goose command (up, down, status, ...) on the SQL database",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errHelp
			}
			stores, err := cli.storage(cmd.Context())
			if err != nil {
				return err
			}
			return cli.migrate(stores.SQL, args)
		},
	}
}

func (cli *commandLine) migrate(db *sql.DB, args []string) error {
	if db == nil {
		return errNoSQLDB
	}
	return gooseRunFunc(db, cli.conf.Database.Engine, args[0], args[1:]...)
}

// promptPassword reads a password from the terminal without echoing it.
func (cli *commandLine) promptPassword() (string, error) {
	_, _ = fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	_, _ = fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errPassword
	}
	return string(pwd), nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func newCommandLine(conf *core.Config) *commandLine {
	return &commandLine{conf: conf, out: os.Stdout}
}

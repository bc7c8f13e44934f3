package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/studyhub/core/study"
	"github.com/trezcool/studyhub/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db       *sqlx.DB
	store    study.Storage
	usrSvc   *user.Service
	validate *validator.Validate
}

func newCommandLine(db *sqlx.DB, store study.Storage, validate *validator.Validate) *commandLine {
	return &commandLine{
		db:       db,
		store:    store,
		usrSvc:   user.NewService(store, nil),
		validate: validate,
	}
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a migration command (up, up-by-one, up-to, down, down-to, redo, reset, status, version)")
	fmt.Println("  adduser -username USERNAME -email EMAIL -firstname NAME -lastname NAME -program PROGRAM - create a user")
	fmt.Println("  seed - load the demo account and its data")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username. The password will be prompted next.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserFirstName := addUserCmd.String("firstname", "", "The user's first name.")
	addUserLastName := addUserCmd.String("lastname", "", "The user's last name.")
	addUserProgram := addUserCmd.String("program", "", "The user's study program.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" || *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(user.NewUser{
			Username:  *addUserUname,
			Password:  string(pwd),
			FirstName: *addUserFirstName,
			LastName:  *addUserLastName,
			Email:     *addUserEmail,
			Program:   *addUserProgram,
		})
	case "seed":
		return cli.seed()
	default:
		cli.printUsage()
		return errHelp
	}
}

package docsctl

import (
	"errors"
	"flag"
	"fmt"

	"github.com/docsync/userdocs/pkg/config"
	"github.com/docsync/userdocs/pkg/models"
)

const usage = `command required

Usage: docsctl [flags] <command> [command flags]

Commands:
  login     Sign in and remember the session token
  logout    Forget the session token
  status    Print whether a session token is held
  list      Print every record
  create    Create a record
  update    Change fields of a record
  delete    Delete a record
  export    Write every record to an .xlsx file

Examples:
  docsctl login -u alice
  docsctl -base-url http://localhost:9000 list
  docsctl create -company-sig-date 2024-03-01 -company-signature-name Acme \
    -document-name contract.pdf -document-status signed -document-type contract \
    -employee-number 1234 -employee-sig-date 2024-03-02 -employee-signature-name Jane
  docsctl update -id 9b1c2f -document-status archived
  docsctl -session-backend sqlite export -o documents.xlsx`

// Parse reads global flags, loads the configuration they point at and parses
// the sub-command with its own flags.
func Parse(args []string) (Command, *config.Config, error) {
	flagSet := flag.NewFlagSet("docsctl", flag.ContinueOnError)

	var (
		configPath  = flagSet.String("config", "", "Path to a YAML config file (default $"+config.ConfigFileEnv+")")
		baseURL     = flagSet.String("base-url", "", "API base URL")
		backend     = flagSet.String("session-backend", "", "Session storage backend: file or sqlite")
		sessionPath = flagSet.String("session-path", "", "Session storage location")
		logLevel    = flagSet.String("log-level", "", "Log level: debug, info, warn, error")
	)

	if err := flagSet.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, nil, err
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *backend != "" {
		cfg.Session.Backend = *backend
	}
	if *sessionPath != "" {
		cfg.Session.Path = *sessionPath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	remainingArgs := flagSet.Args()
	if len(remainingArgs) == 0 {
		return nil, nil, errors.New(usage)
	}

	cmd, err := parseCommand(remainingArgs[0], remainingArgs[1:])
	if err != nil {
		return nil, nil, err
	}
	return cmd, cfg, nil
}

func parseCommand(name string, args []string) (Command, error) {
	flagSet := flag.NewFlagSet("docsctl "+name, flag.ContinueOnError)

	var (
		cmd      Command
		validate func() error
	)

	switch name {
	case "login":
		c := &LoginCommand{}
		flagSet.StringVar(&c.Username, "u", "", "Username")
		flagSet.StringVar(&c.Password, "p", "", "Password (prompted for when omitted)")
		cmd, validate = c, func() error { return required("-u", c.Username) }
	case "logout":
		cmd = &LogoutCommand{}
	case "status":
		cmd = &StatusCommand{}
	case "list":
		cmd = &ListCommand{}
	case "create":
		c := &CreateCommand{}
		draftFlags(flagSet, &c.Draft)
		cmd = c
	case "update":
		c := &UpdateCommand{}
		flagSet.StringVar(&c.ID, "id", "", "Id of the record to change")
		draftFlags(flagSet, &c.Changes)
		cmd, validate = c, func() error { return required("-id", c.ID) }
	case "delete":
		c := &DeleteCommand{}
		flagSet.StringVar(&c.ID, "id", "", "Id of the record to delete")
		cmd, validate = c, func() error { return required("-id", c.ID) }
	case "export":
		c := &ExportCommand{}
		flagSet.StringVar(&c.Output, "o", "", "Output .xlsx file")
		cmd, validate = c, func() error { return required("-o", c.Output) }
	default:
		return nil, fmt.Errorf("unknown command: %s\n\nValid commands: login, logout, status, list, create, update, delete, export", name)
	}

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	if flagSet.NArg() > 0 {
		return nil, fmt.Errorf("%s: unexpected argument %q", name, flagSet.Arg(0))
	}
	if validate != nil {
		if err := validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return cmd, nil
}

func required(flagName, value string) error {
	if value == "" {
		return fmt.Errorf("flag %s is required", flagName)
	}
	return nil
}

func draftFlags(flagSet *flag.FlagSet, d *models.Draft) {
	flagSet.StringVar(&d.CompanySigDate, "company-sig-date", "", "Company signature date (YYYY-MM-DD)")
	flagSet.StringVar(&d.CompanySignatureName, "company-signature-name", "", "Company signatory")
	flagSet.StringVar(&d.DocumentName, "document-name", "", "Document name")
	flagSet.StringVar(&d.DocumentStatus, "document-status", "", "Document status")
	flagSet.StringVar(&d.DocumentType, "document-type", "", "Document type")
	flagSet.StringVar(&d.EmployeeNumber, "employee-number", "", "Employee number")
	flagSet.StringVar(&d.EmployeeSigDate, "employee-sig-date", "", "Employee signature date (YYYY-MM-DD)")
	flagSet.StringVar(&d.EmployeeSignatureName, "employee-signature-name", "", "Employee signatory")
}

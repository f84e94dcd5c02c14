package docsctl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/docsync/userdocs/pkg/client"
	"github.com/docsync/userdocs/pkg/config"
	"github.com/docsync/userdocs/pkg/constants"
	"github.com/docsync/userdocs/pkg/export"
	"github.com/docsync/userdocs/pkg/logger"
	"github.com/docsync/userdocs/pkg/models"
	"github.com/docsync/userdocs/pkg/session"
	"github.com/docsync/userdocs/pkg/store"
)

// App wires the API client, the session storage and both stores for one invocation.
type App struct {
	config  *config.Config
	logs    *logger.LogData
	storage session.Storage
	auth    *store.AuthStore
	records *store.RecordsStore

	stdout io.Writer
	stdin  io.Reader
}

// New builds an App from cfg. Command output goes to stdout; logs go to the
// configured log file or stderr.
func New(cfg *config.Config, stdout io.Writer) (*App, error) {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	build := logger.New().WithLevel(level)
	if cfg.Log.File != "" {
		build = build.FromPath(cfg.Log.File)
	} else {
		build = build.Pretty()
	}
	logs, err := build.Make()
	if err != nil {
		return nil, err
	}
	log := logs.Logger.With().Str("component", "docsctl").Logger()

	storage, err := session.Open(cfg.Session.Backend, cfg.SessionPath())
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("failed to open session storage: %w", err)
	}

	api := client.New(cfg.BaseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logs.Logger.With().Str("component", "client").Logger()),
	)

	app := &App{
		config:  cfg,
		logs:    logs,
		storage: storage,
		stdout:  stdout,
		stdin:   os.Stdin,
	}
	app.auth = store.NewAuthStore(api, storage, store.WithLogger(log))
	app.records = store.NewRecordsStore(api,
		store.WithLogger(log),
		store.WithOnUnauthorized(app.forceLogout),
	)

	return app, nil
}

// Close releases the session storage and the log file.
func (a *App) Close() error {
	return errors.Join(a.storage.Close(), a.logs.Close())
}

// Execute runs cmd against the stores.
func (a *App) Execute(ctx context.Context, cmd Command) error {
	if requiresAuth(cmd) && a.auth.Status() != store.Authenticated {
		return fmt.Errorf("%s: %w, run docsctl login first", cmd.Name(), constants.ErrNotAuthenticated)
	}

	switch c := cmd.(type) {
	case *LoginCommand:
		return a.login(ctx, c)
	case *LogoutCommand:
		if err := a.auth.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, "logged out")
	case *StatusCommand:
		fmt.Fprintln(a.stdout, a.auth.Status())
	case *ListCommand:
		return a.list(ctx)
	case *CreateCommand:
		rec, err := a.records.Add(ctx, a.auth.Token(), c.Draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "created %s\n", rec.ID)
	case *UpdateCommand:
		return a.update(ctx, c)
	case *DeleteCommand:
		if err := a.records.Load(ctx, a.auth.Token()); err != nil {
			return err
		}
		if err := a.records.Remove(ctx, a.auth.Token(), c.ID); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "deleted %s\n", c.ID)
	case *ExportCommand:
		return a.export(ctx, c)
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}

	return nil
}

func (a *App) login(ctx context.Context, c *LoginCommand) error {
	password := c.Password
	if password == "" {
		var err error
		if password, err = a.readPassword(); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	if err := a.auth.Login(ctx, c.Username, password); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "logged in")
	return nil
}

// readPassword prompts without echo on a terminal and reads one line otherwise.
func (a *App) readPassword() (string, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		return string(b), err
	}

	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *App) list(ctx context.Context) error {
	if err := a.records.Load(ctx, a.auth.Token()); err != nil {
		return err
	}

	table := tablewriter.NewWriter(a.stdout)
	table.SetHeader(export.Header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(export.Rows(a.records.Snapshot().Records))
	table.Render()
	return nil
}

func (a *App) update(ctx context.Context, c *UpdateCommand) error {
	token := a.auth.Token()
	if err := a.records.Load(ctx, token); err != nil {
		return err
	}

	var current *models.Record
	for _, rec := range a.records.Snapshot().Records {
		if rec.ID == c.ID {
			current = &rec
			break
		}
	}
	if current == nil {
		return &store.NotFoundError{ID: c.ID}
	}

	draft := overlay(models.DraftFromRecord(*current), c.Changes)
	if _, err := a.records.Update(ctx, token, c.ID, draft); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "updated %s\n", c.ID)
	return nil
}

func (a *App) export(ctx context.Context, c *ExportCommand) error {
	if err := a.records.Load(ctx, a.auth.Token()); err != nil {
		return err
	}
	records := a.records.Snapshot().Records

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Output, err)
	}
	if err := export.WriteXLSX(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "exported %d records to %s\n", len(records), c.Output)
	return nil
}

func (a *App) forceLogout() {
	a.logs.Logger.Warn().Msg("session rejected by the API, logging out")
	_ = a.auth.Logout()
}

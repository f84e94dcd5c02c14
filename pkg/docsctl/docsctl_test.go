package docsctl

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	"github.com/docsync/userdocs/internal/fakedocs"
	"github.com/docsync/userdocs/pkg/constants"
	"github.com/docsync/userdocs/pkg/export"
	"github.com/docsync/userdocs/pkg/models"
	"github.com/docsync/userdocs/pkg/store"
)

func TestParse(t *testing.T) {
	t.Setenv("USERDOCS_CONFIG", "")

	cmd, cfg, err := Parse([]string{
		"-base-url", "http://localhost:9000",
		"-session-backend", "sqlite",
		"-session-path", "/tmp/s.db",
		"-log-level", "debug",
		"update", "-id", "r1", "-document-status", "archived",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.BaseURL)
	assert.Equal(t, "sqlite", cfg.Session.Backend)
	assert.Equal(t, "/tmp/s.db", cfg.SessionPath())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, &UpdateCommand{ID: "r1", Changes: models.Draft{DocumentStatus: "archived"}}, cmd)

	cmd, cfg, err = Parse([]string{"login", "-u", "alice"})
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, &LoginCommand{Username: "alice"}, cmd)
}

func TestParseErrors(t *testing.T) {
	t.Setenv("USERDOCS_CONFIG", "")

	for name, args := range map[string][]string{
		"no command":      nil,
		"unknown command": {"frobnicate"},
		"login no user":   {"login"},
		"delete no id":    {"delete"},
		"export no file":  {"export"},
		"stray argument":  {"list", "extra"},
		"unknown flag":    {"list", "-x"},
		"bad base url":    {"-base-url", "ftp://docs", "list"},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := Parse(args)
			assert.Error(t, err)
		})
	}
}

func TestOverlay(t *testing.T) {
	base := models.Draft{DocumentName: "a", DocumentStatus: "signed"}
	got := overlay(base, models.Draft{DocumentStatus: "archived"})
	assert.Equal(t, models.Draft{DocumentName: "a", DocumentStatus: "archived"}, got)
}

type DocsctlTestSuite struct {
	suite.Suite
	server *fakedocs.Server
	dir    string
}

func TestDocsctlTestSuite(t *testing.T) {
	suite.Run(t, new(DocsctlTestSuite))
}

func (s *DocsctlTestSuite) SetupTest() {
	s.T().Setenv("USERDOCS_CONFIG", "")
	s.server = fakedocs.NewServer()
	s.server.AddUser("alice", "secret")
	s.server.Start()
	s.dir = s.T().TempDir()
}

func (s *DocsctlTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *DocsctlTestSuite) run(args ...string) (string, error) {
	global := []string{
		"-base-url", s.server.URL(),
		"-session-path", filepath.Join(s.dir, "session.cbor"),
		"-log-level", "error",
	}
	var out bytes.Buffer
	err := Main(context.Background(), append(global, args...), &out)
	return out.String(), err
}

func (s *DocsctlTestSuite) mustRun(args ...string) string {
	out, err := s.run(args...)
	s.Require().NoError(err)
	return out
}

func createArgs() []string {
	return []string{
		"create",
		"-company-sig-date", "2024-03-01",
		"-company-signature-name", "Acme",
		"-document-name", "contract.pdf",
		"-document-status", "signed",
		"-document-type", "contract",
		"-employee-number", "1234",
		"-employee-sig-date", "2024-03-02",
		"-employee-signature-name", "Jane",
	}
}

func (s *DocsctlTestSuite) TestSessionLifecycle() {
	s.Equal("anonymous\n", s.mustRun("status"))

	_, err := s.run("list")
	s.Require().ErrorIs(err, constants.ErrNotAuthenticated)

	_, err = s.run("login", "-u", "alice", "-p", "wrong")
	s.Require().EqualError(err, "invalid credentials")

	s.Equal("logged in\n", s.mustRun("login", "-u", "alice", "-p", "secret"))
	s.Equal("authenticated\n", s.mustRun("status"))

	s.Equal("logged out\n", s.mustRun("logout"))
	s.Equal("anonymous\n", s.mustRun("status"))
}

func (s *DocsctlTestSuite) TestRecordLifecycle() {
	s.mustRun("login", "-u", "alice", "-p", "secret")

	out := s.mustRun("list")
	s.Contains(out, "Document")
	s.NotContains(out, "contract.pdf")

	out = s.mustRun(createArgs()...)
	s.Require().True(strings.HasPrefix(out, "created "))
	id := strings.TrimSpace(strings.TrimPrefix(out, "created "))

	out = s.mustRun("list")
	s.Contains(out, "contract.pdf")
	s.Contains(out, "2024-03-01")

	s.Equal("updated "+id+"\n", s.mustRun("update", "-id", id, "-document-status", "archived"))
	records := s.server.Records()
	s.Require().Len(records, 1)
	s.Equal("archived", records[0].DocumentStatus)
	s.Equal("contract.pdf", records[0].DocumentName)
	s.Equal("2024-03-01", records[0].CompanySigDate.CalendarDate())

	_, err := s.run("update", "-id", "missing", "-document-status", "x")
	s.ErrorIs(err, store.ErrRecordNotFound)

	out = s.mustRun("export", "-o", filepath.Join(s.dir, "docs.xlsx"))
	s.Contains(out, "exported 1 records")

	f, err := excelize.OpenFile(filepath.Join(s.dir, "docs.xlsx"))
	s.Require().NoError(err)
	rows, err := f.GetRows(export.SheetName)
	s.Require().NoError(err)
	s.Require().NoError(f.Close())
	s.Len(rows, 2)

	s.Equal("deleted "+id+"\n", s.mustRun("delete", "-id", id))
	s.Empty(s.server.Records())
}

func (s *DocsctlTestSuite) TestCreateValidation() {
	s.mustRun("login", "-u", "alice", "-p", "secret")

	_, err := s.run("create", "-document-name", "only this")
	s.Require().ErrorIs(err, models.ErrValidation)
	s.Zero(s.server.Requests(fakedocs.OpCreate))
}

func (s *DocsctlTestSuite) TestRevokedSessionLogsOut() {
	s.mustRun("login", "-u", "alice", "-p", "secret")
	s.server.RevokeTokens()

	_, err := s.run("list")
	s.Require().Error(err)
	s.Equal("anonymous\n", s.mustRun("status"))
}

func (s *DocsctlTestSuite) TestPasswordFromStdin() {
	global := []string{
		"-base-url", s.server.URL(),
		"-session-path", filepath.Join(s.dir, "session.cbor"),
	}
	cmd, cfg, err := Parse(append(global, "login", "-u", "alice"))
	s.Require().NoError(err)

	var out bytes.Buffer
	app, err := New(cfg, &out)
	s.Require().NoError(err)
	defer app.Close()
	app.stdin = strings.NewReader("secret\n")

	s.Require().NoError(app.Execute(context.Background(), cmd))
	s.Equal("logged in\n", out.String())
}

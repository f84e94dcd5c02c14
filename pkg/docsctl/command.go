package docsctl

import "github.com/docsync/userdocs/pkg/models"

// Command is a parsed docsctl sub-command.
type Command interface {
	// Name returns the sub-command name as typed on the command line.
	Name() string
}

type LoginCommand struct {
	Username string
	// Password is prompted for when empty.
	Password string
}

func (c *LoginCommand) Name() string { return "login" }

type LogoutCommand struct{}

func (c *LogoutCommand) Name() string { return "logout" }

type StatusCommand struct{}

func (c *StatusCommand) Name() string { return "status" }

type ListCommand struct{}

func (c *ListCommand) Name() string { return "list" }

type CreateCommand struct {
	Draft models.Draft
}

func (c *CreateCommand) Name() string { return "create" }

// UpdateCommand changes the record ID. Empty fields in Changes keep the stored value.
type UpdateCommand struct {
	ID      string
	Changes models.Draft
}

func (c *UpdateCommand) Name() string { return "update" }

type DeleteCommand struct {
	ID string
}

func (c *DeleteCommand) Name() string { return "delete" }

type ExportCommand struct {
	Output string
}

func (c *ExportCommand) Name() string { return "export" }

// requiresAuth reports whether cmd talks to the records endpoints.
func requiresAuth(cmd Command) bool {
	switch cmd.(type) {
	case *LoginCommand, *LogoutCommand, *StatusCommand:
		return false
	default:
		return true
	}
}

// overlay copies the non-empty fields of changes onto d.
func overlay(d models.Draft, changes models.Draft) models.Draft {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&d.CompanySigDate, changes.CompanySigDate)
	set(&d.CompanySignatureName, changes.CompanySignatureName)
	set(&d.DocumentName, changes.DocumentName)
	set(&d.DocumentStatus, changes.DocumentStatus)
	set(&d.DocumentType, changes.DocumentType)
	set(&d.EmployeeNumber, changes.EmployeeNumber)
	set(&d.EmployeeSigDate, changes.EmployeeSigDate)
	set(&d.EmployeeSignatureName, changes.EmployeeSignatureName)
	return d
}

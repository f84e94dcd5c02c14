package models

import (
	"strings"
)

// Draft is the editable form of a Record. Every field is text and both dates are
// calendar dates in DateLayout.
type Draft struct {
	ID                    string `json:"id,omitempty"`
	CompanySigDate        string `json:"companySigDate"`
	CompanySignatureName  string `json:"companySignatureName"`
	DocumentName          string `json:"documentName"`
	DocumentStatus        string `json:"documentStatus"`
	DocumentType          string `json:"documentType"`
	EmployeeNumber        string `json:"employeeNumber"`
	EmployeeSigDate       string `json:"employeeSigDate"`
	EmployeeSignatureName string `json:"employeeSignatureName"`
}

type draftField struct {
	name  string
	value string
}

func (d Draft) fields() []draftField {
	return []draftField{
		{"companySigDate", d.CompanySigDate},
		{"companySignatureName", d.CompanySignatureName},
		{"documentName", d.DocumentName},
		{"documentStatus", d.DocumentStatus},
		{"documentType", d.DocumentType},
		{"employeeNumber", d.EmployeeNumber},
		{"employeeSigDate", d.EmployeeSigDate},
		{"employeeSignatureName", d.EmployeeSignatureName},
	}
}

// Validate checks that every field is non-empty after trimming whitespace.
// ID is not checked: it is absent for new records.
func (d Draft) Validate() error {
	verr := &ValidationError{}
	for _, f := range d.fields() {
		if strings.TrimSpace(f.value) == "" {
			verr.Add(f.name, "is required")
		}
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// Record validates the draft and converts it into a Record, turning both dates
// into timestamps at midnight UTC.
func (d Draft) Record() (Record, error) {
	if err := d.Validate(); err != nil {
		return Record{}, err
	}

	verr := &ValidationError{}
	companyDate, err := ParseDate(d.CompanySigDate)
	if err != nil {
		verr.Add("companySigDate", "must be a date in "+DateLayout+" form")
	}
	employeeDate, err := ParseDate(d.EmployeeSigDate)
	if err != nil {
		verr.Add("employeeSigDate", "must be a date in "+DateLayout+" form")
	}
	if verr.HasErrors() {
		return Record{}, verr
	}

	return Record{
		ID:                    strings.TrimSpace(d.ID),
		CompanySigDate:        companyDate,
		CompanySignatureName:  d.CompanySignatureName,
		DocumentName:          d.DocumentName,
		DocumentStatus:        d.DocumentStatus,
		DocumentType:          d.DocumentType,
		EmployeeNumber:        d.EmployeeNumber,
		EmployeeSigDate:       employeeDate,
		EmployeeSignatureName: d.EmployeeSignatureName,
	}, nil
}

// DraftFromRecord prepares a stored record for editing. Timestamps are truncated to
// calendar dates, so time-of-day does not survive an edit cycle.
func DraftFromRecord(r Record) Draft {
	return Draft{
		ID:                    r.ID,
		CompanySigDate:        r.CompanySigDate.CalendarDate(),
		CompanySignatureName:  r.CompanySignatureName,
		DocumentName:          r.DocumentName,
		DocumentStatus:        r.DocumentStatus,
		DocumentType:          r.DocumentType,
		EmployeeNumber:        r.EmployeeNumber,
		EmployeeSigDate:       r.EmployeeSigDate.CalendarDate(),
		EmployeeSignatureName: r.EmployeeSignatureName,
	}
}

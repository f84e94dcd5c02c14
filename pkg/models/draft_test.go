package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullDraft() Draft {
	return Draft{
		CompanySigDate:        "2024-03-01",
		CompanySignatureName:  "Acme",
		DocumentName:          "contract.pdf",
		DocumentStatus:        "signed",
		DocumentType:          "contract",
		EmployeeNumber:        "1234",
		EmployeeSigDate:       "2024-03-02",
		EmployeeSignatureName: "Ivanov",
	}
}

func TestDraft_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, fullDraft().Validate())

	testcases := []struct {
		name   string
		modify func(d *Draft)
		fields []string
	}{
		{
			name:   "empty field",
			modify: func(d *Draft) { d.DocumentName = "" },
			fields: []string{"documentName"},
		},
		{
			name:   "whitespace only",
			modify: func(d *Draft) { d.EmployeeNumber = " \t\n" },
			fields: []string{"employeeNumber"},
		},
		{
			name: "several fields in form order",
			modify: func(d *Draft) {
				d.EmployeeSignatureName = ""
				d.CompanySigDate = " "
			},
			fields: []string{"companySigDate", "employeeSignatureName"},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			d := fullDraft()
			tc.modify(&d)

			err := d.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.fields, verr.FieldNames())
		})
	}
}

func TestDraft_ValidateIgnoresID(t *testing.T) {
	t.Parallel()

	d := fullDraft()
	d.ID = ""
	assert.NoError(t, d.Validate())
}

func TestDraft_Record(t *testing.T) {
	t.Parallel()

	r, err := fullDraft().Record()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.CompanySigDate.Time)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), r.EmployeeSigDate.Time)
	assert.Equal(t, "contract.pdf", r.DocumentName)
	assert.Empty(t, r.ID)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"companySigDate":"2024-03-01T00:00:00.000Z"`)
	assert.NotContains(t, string(data), `"id"`)
}

func TestDraft_RecordRejectsBadDate(t *testing.T) {
	t.Parallel()

	d := fullDraft()
	d.EmployeeSigDate = "02/03/2024"

	_, err := d.Record()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"employeeSigDate"}, verr.FieldNames())
}

// Not parallel: swaps time.Local.
func TestDraft_DateRoundTripIgnoresLocalZone(t *testing.T) {
	saved := time.Local
	t.Cleanup(func() { time.Local = saved })

	for _, zone := range []*time.Location{
		time.UTC,
		time.FixedZone("UTC-11", -11*60*60),
		time.FixedZone("UTC+14", 14*60*60),
	} {
		t.Run(zone.String(), func(t *testing.T) {
			time.Local = zone

			r, err := fullDraft().Record()
			require.NoError(t, err)

			data, err := json.Marshal(r)
			require.NoError(t, err)

			var fromServer Record
			require.NoError(t, json.Unmarshal(data, &fromServer))

			back := DraftFromRecord(fromServer)
			assert.Equal(t, "2024-03-01", back.CompanySigDate)
			assert.Equal(t, "2024-03-02", back.EmployeeSigDate)
		})
	}
}

func TestDraftFromRecord_DropsTimeOfDay(t *testing.T) {
	t.Parallel()

	r := Record{
		ID:              "abc",
		CompanySigDate:  NewTimestamp(time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)),
		EmployeeSigDate: NewTimestamp(time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)),
		DocumentName:    "a",
	}

	d := DraftFromRecord(r)
	assert.Equal(t, "abc", d.ID)
	assert.Equal(t, "2024-03-01", d.CompanySigDate)

	back, err := Draft{
		ID: d.ID, CompanySigDate: d.CompanySigDate, EmployeeSigDate: d.EmployeeSigDate,
		CompanySignatureName: "x", DocumentName: "a", DocumentStatus: "x", DocumentType: "x",
		EmployeeNumber: "x", EmployeeSignatureName: "x",
	}.Record()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), back.CompanySigDate.Time)
}

func TestRecord_SameContent(t *testing.T) {
	t.Parallel()

	a, err := fullDraft().Record()
	require.NoError(t, err)
	b := a
	b.ID = "server-id"
	assert.True(t, a.SameContent(b))

	b.DocumentStatus = "draft"
	assert.False(t, a.SameContent(b))
}

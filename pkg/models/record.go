package models

// Record is a single document record as exchanged with the API.
// ID is empty until the server has assigned one.
type Record struct {
	ID                    string    `json:"id,omitempty"`
	CompanySigDate        Timestamp `json:"companySigDate"`
	CompanySignatureName  string    `json:"companySignatureName"`
	DocumentName          string    `json:"documentName"`
	DocumentStatus        string    `json:"documentStatus"`
	DocumentType          string    `json:"documentType"`
	EmployeeNumber        string    `json:"employeeNumber"`
	EmployeeSigDate       Timestamp `json:"employeeSigDate"`
	EmployeeSignatureName string    `json:"employeeSignatureName"`
}

// SameContent reports whether r and other carry the same data, ignoring ID.
func (r Record) SameContent(other Record) bool {
	return r.CompanySigDate.Equal(other.CompanySigDate.Time) &&
		r.CompanySignatureName == other.CompanySignatureName &&
		r.DocumentName == other.DocumentName &&
		r.DocumentStatus == other.DocumentStatus &&
		r.DocumentType == other.DocumentType &&
		r.EmployeeNumber == other.EmployeeNumber &&
		r.EmployeeSigDate.Equal(other.EmployeeSigDate.Time) &&
		r.EmployeeSignatureName == other.EmployeeSignatureName
}

// Session is the client's authentication state. An empty Token means anonymous.
type Session struct {
	Token string `json:"token,omitempty" cbor:"token,omitempty"`
}

// Authenticated reports whether the session holds a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

package models

import "time"

// Origin is the community origin selected on the form. Closed enum.
type Origin string

const (
	OriginSephardic Origin = "sephardic"
	OriginAshkenazi Origin = "ashkenazi"
)

func (o Origin) IsValid() bool {
	return o == OriginSephardic || o == OriginAshkenazi
}

// Gender is a closed enum.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// StatusPending is the only status this service ever writes; downstream
// matching workflows own everything after that.
const StatusPending = "pending"

// Request is the untrusted inbound registration payload.
type Request struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	BirthDate     string `json:"birth_date,omitempty"`
	Address       string `json:"address,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Origin        Origin `json:"origin"`
	Gender        Gender `json:"gender"`
	CreateAccount bool   `json:"create_account,omitempty"`
	Password      string `json:"password,omitempty"`
}

// Registration is the sanitized, persistable record. It is never built
// directly from a Request; it only exists after validation passed and the
// sanitizer ran.
type Registration struct {
	ID           string
	FirstName    string
	LastName     string
	BirthDate    string
	Address      string
	Email        string
	Phone        string
	Origin       Origin
	Gender       Gender
	Status       string
	CredentialID string
	CreatedAt    time.Time
}

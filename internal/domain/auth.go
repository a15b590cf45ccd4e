package domain

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type User struct {
	ID          string
	PhoneNumber string
	Name        string
	Surname     string
	Gender      Gender
	ClassID     string
	ClassName   string
	ExamID      string
	ExamName    string
	CreatedAt   string
}

// Registration is the payload for requesting an SMS challenge for a new account.
type Registration struct {
	PhoneNumber string `validate:"required,len=10,numeric"`
	Name        string `validate:"required"`
	Surname     string `validate:"required"`
	ClassID     string `validate:"required"`
	Gender      Gender `validate:"required,oneof=male female"`
}

// SMSChallenge is the backend's answer to login/register/resend: a code was
// sent, valid until ExpiresAt.
type SMSChallenge struct {
	Message   string
	ExpiresAt string
}

type SessionToken struct {
	Token string
}

// AuthResult is what a successful SMS verification yields.
type AuthResult struct {
	Token string
	User  User
}

// Credentials is the durable record: bearer token plus the last-known user
// snapshot used as a synchronous fallback before any network round-trip.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Well-known questionnaire ids the calculators read from a profile.
const (
	QuestionMonthlyExpenses  = "monthly_expenses"
	QuestionMonthlyIncome    = "monthly_income"
	QuestionSavingsCapacity  = "monthly_savings_capacity"
	QuestionCurrentAge       = "current_age"
	QuestionRetirementAge    = "retirement_age"
	QuestionRiskProfile      = "risk_profile"
	QuestionCurrentSavings   = "current_savings"
	QuestionDependents       = "dependents"
	QuestionEmploymentStatus = "employment_status"
)

// Answer is one questionnaire response. Answers are append-only; the latest
// entry for a question id wins.
type Answer struct {
	QuestionID string    `json:"question_id"`
	Value      string    `json:"answer"`
	Timestamp  time.Time `json:"timestamp"`
}

// VersionEntry is one line of a profile's version ledger.
type VersionEntry struct {
	VersionID int       `json:"version_id"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason"`
}

// Profile represents a user's financial profile.
//
// Exactly one canonical in-memory Profile exists per id for the process
// lifetime (see profilestore). Revision is a structural counter bumped on
// every save; the store compares revisions instead of pointer identities
// to detect divergent instances.
type Profile struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Answers  []Answer
	Versions []VersionEntry
	Revision int64
	// VersionSeq is the highest version number ever allocated for this
	// profile. It only grows, so a failed version save burns its number
	// instead of reusing it.
	VersionSeq int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewProfile creates a profile with version 1 in its ledger
func NewProfile(name, email string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:         uuid.New(),
		Name:       name,
		Email:      email,
		Versions:   []VersionEntry{{VersionID: 1, Timestamp: now, Reason: "created"}},
		Revision:   1,
		VersionSeq: 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate ensures the profile adheres to domain rules
func (p *Profile) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "profile name cannot be empty")
	}
	if p.Email == "" {
		return NewValidationError("email", "profile email cannot be empty")
	}
	return nil
}

// AddAnswer appends a questionnaire response
func (p *Profile) AddAnswer(questionID, value string) {
	p.Answers = append(p.Answers, Answer{
		QuestionID: questionID,
		Value:      value,
		Timestamp:  time.Now().UTC(),
	})
	p.UpdatedAt = time.Now().UTC()
}

// Answer returns the most recent response for a question id
func (p *Profile) Answer(questionID string) (string, bool) {
	for i := len(p.Answers) - 1; i >= 0; i-- {
		if p.Answers[i].QuestionID == questionID {
			return p.Answers[i].Value, true
		}
	}
	return "", false
}

// DecimalAnswer parses the latest response for a question id as a decimal.
// Missing or malformed answers return (zero, false): calculators substitute
// parameter defaults rather than failing.
func (p *Profile) DecimalAnswer(questionID string) (decimal.Decimal, bool) {
	raw, ok := p.Answer(questionID)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// IntAnswer parses the latest response for a question id as an integer
func (p *Profile) IntAnswer(questionID string) (int, bool) {
	d, ok := p.DecimalAnswer(questionID)
	if !ok || !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}

// LatestVersion returns the highest version number in the ledger
func (p *Profile) LatestVersion() int {
	if len(p.Versions) == 0 {
		return 0
	}
	return p.Versions[len(p.Versions)-1].VersionID
}

// Clone returns a deep copy. Persisting a clone means later mutation of the
// live object cannot corrupt an already-serialized snapshot.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.Answers = make([]Answer, len(p.Answers))
	copy(cp.Answers, p.Answers)
	cp.Versions = make([]VersionEntry, len(p.Versions))
	copy(cp.Versions, p.Versions)
	return &cp
}

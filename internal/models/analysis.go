package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StringList stores a slice of strings in a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// ContactInfo holds the optional contact fields found in a resume.
// Absent fields stay empty and are omitted from JSON.
type ContactInfo struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (c ContactInfo) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *ContactInfo) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = ContactInfo{}
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into ContactInfo", value)
	}
}

// CandidateProfile is the structured output of entity extraction.
// Collections are deduplicated and sorted; ordering carries no meaning.
type CandidateProfile struct {
	Skills      []string
	Experience  []string
	Education   []string
	ContactInfo ContactInfo
}

// Analysis is one completed resume analysis. It is assembled once by the
// analyzer and never mutated afterwards.
type Analysis struct {
	ID             uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	ExtractedText  string      `gorm:"type:text" json:"extracted_text"`
	Skills         StringList  `gorm:"type:jsonb" json:"skills"`
	Experience     StringList  `gorm:"type:jsonb" json:"experience"`
	Education      StringList  `gorm:"type:jsonb" json:"education"`
	ContactInfo    ContactInfo `gorm:"type:jsonb" json:"contact_info"`
	JobMatchScore  float64     `json:"job_match_score"`
	Suggestions    StringList  `gorm:"type:jsonb" json:"suggestions"`
	ProcessingTime float64     `json:"processing_time"`
	Indexed        bool        `gorm:"default:false" json:"-"`
	CreatedAt      time.Time   `gorm:"type:timestamp;default:now()" json:"timestamp"`
}

func (Analysis) TableName() string {
	return "analyses"
}

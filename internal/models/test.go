package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

type TestType string

const (
	// TestTypeStandard is a test with a pre-fixed difficulty; sessions for
	// standard tests skip the manual difficulty choice.
	TestTypeStandard TestType = "standard"
	TestTypeCustom   TestType = "custom"
)

type TestStatus string

const (
	TestStatusDraft    TestStatus = "Draft"
	TestStatusActive   TestStatus = "Active"
	TestStatusArchived TestStatus = "Archived"
)

// Test is the immutable definition a session is created from. Questions keep
// their authored order for the lifetime of every session.
type Test struct {
	ID         uint             `json:"id" gorm:"primaryKey"`
	Title      string           `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Category   string           `json:"category" gorm:"not null;size:100;index" validate:"required,max=100"`
	Difficulty *DifficultyLevel `json:"difficulty" validate:"omitempty,difficulty_level"`
	Type       TestType         `json:"type" gorm:"default:standard" validate:"omitempty,test_type"`
	Duration   int              `json:"duration" gorm:"not null" validate:"required,min=1,max=300"` // minutes
	Status     TestStatus       `json:"status" gorm:"default:Draft;index" validate:"omitempty,oneof=Draft Active Archived"`

	CreatedBy string         `json:"created_by" gorm:"size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Questions []Question `json:"questions" gorm:"foreignKey:TestID"`

	// Computed fields (not stored)
	QuestionsCount int `json:"questions_count" gorm:"-"`
	TotalMarks     int `json:"total_marks" gorm:"-"`
}

func (Test) TableName() string {
	return "tests"
}

// Question holds the full server-side record including the correct answer and
// explanation. Neither may reach a client before its attempt is scored; use
// ForStudent for anything handed to a live session.
type Question struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	TestID        uint           `json:"test_id" gorm:"not null;index"`
	Order         int            `json:"order" gorm:"not null;default:0"`
	Text          string         `json:"text" gorm:"type:text;not null" validate:"required"`
	Options       datatypes.JSON `json:"options" gorm:"type:jsonb;not null"` // []string, stable order
	CorrectAnswer string         `json:"correct_answer" gorm:"not null;size:500" validate:"required"`
	Explanation   *string        `json:"explanation" gorm:"type:text"`
	Marks         int            `json:"marks" gorm:"not null;default:1" validate:"min=1"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionList decodes the stored options column.
func (q *Question) OptionList() ([]string, error) {
	var options []string
	if err := json.Unmarshal(q.Options, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// StudentQuestion is the redacted view served to active sessions.
type StudentQuestion struct {
	ID      uint     `json:"id"`
	Order   int      `json:"order"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Marks   int      `json:"marks"`
}

// ForStudent strips the correct answer and explanation.
func (q *Question) ForStudent() (*StudentQuestion, error) {
	options, err := q.OptionList()
	if err != nil {
		return nil, err
	}
	return &StudentQuestion{
		ID:      q.ID,
		Order:   q.Order,
		Text:    q.Text,
		Options: options,
		Marks:   q.Marks,
	}, nil
}

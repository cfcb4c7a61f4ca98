package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Task represents an active, uncompleted to-do record. The ID is immutable
// and globally unique for the lifetime of the record, including after it
// moves to history and back.
type Task struct {
	ID           string       `json:"id" validate:"required,uuid4"`
	Text         string       `json:"text" validate:"required,min=1"`
	CategoryPath CategoryPath `json:"categoryPath,omitempty" validate:"max=3,dive,min=1"`
	CreatedAt    time.Time    `json:"createdAt" validate:"required"`
}

// HistoryEntry is a completed task. CompletedAt is the only field added on
// top of the original task; everything else is preserved verbatim so the
// task can be restored with its identity intact.
type HistoryEntry struct {
	Task
	CompletedAt time.Time `json:"completedAt" validate:"required"`
}

// HistoryLedger is the persisted collection of completed tasks for the
// current local day. LastCleared only moves forward; every entry was
// completed on or after the most recent clear boundary.
type HistoryLedger struct {
	Completed   []HistoryEntry `json:"completed"`
	LastCleared time.Time      `json:"lastCleared"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

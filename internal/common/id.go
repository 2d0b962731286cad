package common

import (
	"github.com/google/uuid"
)

// NewEvaluationID generates a unique evaluation report ID with the "eval_" prefix
// Format: eval_<uuid>
func NewEvaluationID() string {
	return "eval_" + uuid.New().String()
}

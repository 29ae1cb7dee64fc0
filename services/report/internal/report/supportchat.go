package report

import (
	"time"

	"github.com/google/uuid"
)

// SupportChat is a customer support conversation opened elsewhere in the
// platform. This service only reads them: a chat counts as a complaint in
// the per-customer insight alongside problem reports.
type SupportChat struct {
	ID         uuid.UUID `json:"id" bson:"_id"`
	CustomerID uuid.UUID `json:"customer_id" bson:"customer_id"`
	Subject    string    `json:"subject" bson:"subject"`
	Status     string    `json:"status" bson:"status"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

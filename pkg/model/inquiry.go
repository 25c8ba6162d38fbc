package model

import "time"

const (
	InquiryStatusNew      = "new"
	InquiryStatusRead     = "read"
	InquiryStatusResolved = "resolved"
)

type Inquiry struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email      string    `json:"email" bson:"email" validate:"required,email"`
	Phone      string    `json:"phone" bson:"phone" validate:"omitempty,min=6,max=20"`
	Subject    string    `json:"subject" bson:"subject" validate:"required,min=2,max=200"`
	Message    string    `json:"message" bson:"message" validate:"required,min=2,max=5000"`
	AdminNotes string    `json:"admin_notes" bson:"admin_notes"`
	Status     string    `json:"status" bson:"status"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type InquiryStatusUpdate struct {
	Status string `json:"status" validate:"required,min=1,max=50"`
}

type InquiryNotesUpdate struct {
	AdminNotes string `json:"admin_notes" validate:"max=2000"`
}

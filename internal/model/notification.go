package model

// NotificationRequest is an ad-hoc message sent by an admin.
type NotificationRequest struct {
	Phone string `json:"phone" validate:"required"`
	Text  string `json:"text" validate:"required"`
}

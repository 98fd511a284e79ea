package entities

// Notification is a fire-and-forget message for a recipient.
type Notification struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// The only producer today is sign-up, which enqueues the activation link.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

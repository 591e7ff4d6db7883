package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for asynchronous
// email (welcome mail and similar notifications). Password-reset mail is
// never queued; the reset flow sends it synchronously so delivery failures
// stay observable.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

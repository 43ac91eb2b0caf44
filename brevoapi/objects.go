package brevoapi

type EmailAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type SendSmtpEmail struct {
	Sender      EmailAddress   `json:"sender"`
	To          []EmailAddress `json:"to"`
	ReplyTo     *EmailAddress  `json:"replyTo,omitempty"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	TextContent string         `json:"textContent,omitempty"`
}

type SendSmtpEmailResponse struct {
	MessageID string `json:"messageId"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

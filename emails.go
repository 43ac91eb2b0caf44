package main

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/rs/zerolog"

	"github.com/scottyowen4683/aspiredentaldemo/brevoapi"
	"github.com/scottyowen4683/aspiredentaldemo/store"
	"github.com/scottyowen4683/aspiredentaldemo/vapi"
)

var contactNotificationTemplate = template.Must(template.New("contact").Parse(`
<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Organisation:</strong> {{.Organisation}}</p>
<p><strong>Message:</strong> {{.Message}}</p>
`))

var councilRequestTemplate = template.Must(template.New("council").Parse(`
<h2>New Council Request – {{.RequestType}}</h2>
<p><strong>Name:</strong> {{.ResidentName}}</p>
<p><strong>Phone:</strong> {{.ResidentPhone}}</p>
<p><strong>Email:</strong> {{.ResidentEmail}}</p>
<p><strong>Address:</strong> {{.Address}}</p>
<p><strong>Preferred contact:</strong> {{.PreferredContactMethod}}</p>
<p><strong>Urgency:</strong> {{.Urgency}}</p>
<p><strong>Details:</strong><br>{{.Details}}</p>
<h3>Extra metadata</h3>
<pre>{{.ExtraMetadata}}</pre>
`))

// CouncilRequest is the normalized structured request forwarded by the
// voice-assistant platform.
type CouncilRequest struct {
	Subject                string
	RequestType            string
	ResidentName           string
	ResidentPhone          string
	ResidentEmail          string
	Address                string
	PreferredContactMethod string
	Urgency                string
	Details                string
	ExtraMetadata          string
}

func CouncilRequestFromArguments(args map[string]any) *CouncilRequest {
	request := &CouncilRequest{
		Subject:                vapi.String(args, "subject"),
		RequestType:            vapi.String(args, "request_type"),
		ResidentName:           vapi.String(args, "resident_name"),
		ResidentPhone:          vapi.String(args, "resident_phone"),
		ResidentEmail:          vapi.String(args, "resident_email"),
		Address:                vapi.String(args, "address"),
		PreferredContactMethod: vapi.String(args, "preferred_contact_method"),
		Urgency:                vapi.String(args, "urgency"),
		Details:                vapi.String(args, "details"),
		ExtraMetadata:          vapi.Pretty(args, "extra_metadata"),
	}
	if request.Subject == "" {
		request.Subject = "New Council Request"
	}
	if request.ResidentEmail == "" {
		request.ResidentEmail = "N/A"
	}
	if request.PreferredContactMethod == "" {
		request.PreferredContactMethod = "N/A"
	}
	if request.Urgency == "" {
		request.Urgency = "Normal"
	}
	return request
}

func SendContactNotification(ctx context.Context, submission *store.ContactSubmission) error {
	body, err := renderEmailBody(contactNotificationTemplate, submission)
	if err != nil {
		return err
	}
	return sendNotificationEmail(ctx, configuration.ContactSenderName, "New Contact Form Submission", body)
}

func SendCouncilRequestEmail(ctx context.Context, request *CouncilRequest) error {
	body, err := renderEmailBody(councilRequestTemplate, request)
	if err != nil {
		return err
	}
	return sendNotificationEmail(ctx, configuration.CouncilSenderName, request.Subject, body)
}

func renderEmailBody(tmpl *template.Template, data any) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email body: %w", err)
	}
	return buf.String(), nil
}

func sendNotificationEmail(ctx context.Context, senderName, subject, htmlBody string) error {
	messageID, err := brevo.SendTransactionalEmail(ctx, &brevoapi.SendSmtpEmail{
		Sender:      brevoapi.EmailAddress{Name: senderName, Email: configuration.SenderEmail},
		To:          []brevoapi.EmailAddress{{Email: configuration.RecipientEmail}},
		Subject:     subject,
		HTMLContent: htmlBody,
	})
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Str("message_id", messageID).Str("subject", subject).Msg("notification email delivered")
	return nil
}

// Package templates renders the HTML bodies of outgoing notification emails.
package templates

import (
	"bytes"
	"html/template"
	"log"
)

// MessageNotificationProps feeds the new-contact-message notification.
type MessageNotificationProps struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
	ReceivedAt  string
}

var messageNotificationTemplate = template.Must(template.New("messageNotification").Parse(`
<!doctype html>
<html lang="en">
  <head>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
    <title>New portfolio message</title>
  </head>
  <body style="font-family: Helvetica, sans-serif; font-size: 16px; line-height: 1.4; background-color: #f4f5f6; margin: 0; padding: 24px;">
    <table role="presentation" border="0" cellpadding="0" cellspacing="0" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 8px;">
      <tr>
        <td style="padding: 24px;">
          <h2 style="margin: 0 0 16px 0; font-size: 20px;">New message from your portfolio</h2>
          <p style="margin: 0 0 8px 0;"><strong>From:</strong> {{.SenderName}} &lt;{{.SenderEmail}}&gt;</p>
          <p style="margin: 0 0 8px 0;"><strong>Subject:</strong> {{.Subject}}</p>
          <p style="margin: 0 0 16px 0; color: #6b7280;">Received {{.ReceivedAt}}</p>
          <div style="padding: 16px; background-color: #f9fafb; border-radius: 4px; white-space: pre-wrap;">{{.Message}}</div>
        </td>
      </tr>
    </table>
  </body>
</html>`))

// GetMessageNotification renders the new-message notification body.
func GetMessageNotification(props MessageNotificationProps) string {
	var buf bytes.Buffer
	if err := messageNotificationTemplate.Execute(&buf, props); err != nil {
		log.Printf("Error executing message notification template: %v", err)
		return ""
	}
	return buf.String()
}

package mail

import (
	"bytes"
	"html/template"
)

// linkEmailTemplate renders the verification / password-reset email. The copy
// and palette follow the product's original transactional emails.
var linkEmailTemplate = template.Must(template.New("link_email").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
    body { font-family: 'Roboto', Arial, sans-serif; background-color: #f3f8fc; margin: 0; padding: 0; color: #333; }
    .email-container { max-width: 600px; margin: 30px auto; background: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 6px 20px rgba(0, 0, 0, 0.1); }
    .header { background: linear-gradient(135deg, #64b5f6, #1e88e5); color: #ffffff; padding: 30px; text-align: center; }
    .header h1 { margin: 0; font-size: 26px; font-weight: bold; }
    .content { padding: 20px 30px; text-align: center; color: #444; }
    .content p { font-size: 16px; line-height: 1.6; margin: 15px 0; color: #555; }
    .button-container { margin: 20px 0; }
    .button { background: linear-gradient(135deg, #1e88e5, #42a5f5); color: #ffffff !important; text-decoration: none; padding: 14px 32px; border-radius: 8px; font-size: 16px; font-weight: bold; display: inline-block; }
    .link { color: #1e88e5; text-decoration: none; font-weight: bold; }
    .footer { background-color: #e3f2fd; color: #555; text-align: center; padding: 15px; font-size: 14px; }
  </style>
</head>
<body>
  <div class="email-container">
    <div class="header">
      <h1>{{.Heading}}</h1>
    </div>
    <div class="content">
      <p>Dear User,</p>
      <p>{{.Intro}}</p>
      <p>Click the button below to {{.Action}}:</p>
      <div class="button-container">
        <a href="{{.Link}}" class="button" target="_blank">{{.ButtonLabel}}</a>
      </div>
      <p>If you cannot access the button, copy and paste this link into your browser:</p>
      <p><a href="{{.Link}}" target="_blank" class="link">{{.Link}}</a></p>
    </div>
    <div class="footer">
      <p>&copy; 2025 Bloggy. All rights reserved.</p>
    </div>
  </div>
</body>
</html>
`))

// LinkEmailData holds the variable parts of a verification or reset email.
type LinkEmailData struct {
	Title       string
	Heading     string
	Intro       string
	Action      string
	ButtonLabel string
	Link        string
}

// RenderLinkEmail renders the HTML body for a verification or reset email.
func RenderLinkEmail(data LinkEmailData) (string, error) {
	var buf bytes.Buffer
	if err := linkEmailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

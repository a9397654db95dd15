package smtp

import (
	"bytes"
	"html/template"
)

// WelcomeSubject is the subject line of the registration email.
const WelcomeSubject = "Welcome to Car System"

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<html>
<body style="font-family: Helvetica, Arial, sans-serif; color: #333;">
  <h2>Car System</h2>
  <p>Welcome to Car System! We're excited to have you on board!</p>
  <p>To login use the following password: <strong>{{.Password}}</strong></p>
  <p>Need help, or have any questions? Just reply to this email.</p>
</body>
</html>`))

// RenderWelcome renders the registration email body carrying the generated
// initial password.
func RenderWelcome(password string) (string, error) {
	var buf bytes.Buffer
	if err := welcomeTmpl.Execute(&buf, struct{ Password string }{Password: password}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package mailer

import (
	"bytes"
	"html/template"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/models"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; color: #333;">
  <p>Bonjour {{.FirstName}},</p>
  <p>Your appointment is confirmed:</p>
  <ul>
    <li><strong>Service:</strong> {{.Service}}</li>
    <li><strong>Date:</strong> {{.Date}}</li>
    <li><strong>Time:</strong> {{.Time}}</li>
  </ul>
  <p>We look forward to seeing you at {{.StudioName}}, {{.StudioAddress}}.</p>
  <p>See you soon,<br>{{.StudioName}}</p>
</body>
</html>
`))

type confirmationData struct {
	FirstName     string
	Service       string
	Date          string
	Time          string
	StudioName    string
	StudioAddress string
}

func renderConfirmation(studioName, studioAddress string, key domain.Key, c models.Client) (string, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, confirmationData{
		FirstName:     c.FirstName,
		Service:       c.Service,
		Date:          key.Date,
		Time:          key.Time,
		StudioName:    studioName,
		StudioAddress: studioAddress,
	})
	return buf.String(), err
}

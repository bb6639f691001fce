// Package notify renders and dispatches quote notification emails.
// Delivery is best-effort end to end: a failure anywhere in this package
// never affects the stored quote or the response to the submitter.
package notify

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/kmiservices/quotetracker/internal/quotes"
)

// Message is one fully rendered outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// quoteEmailTmpl renders the full quote document. The closing line
// differs between the office copy and the customer copy.
var quoteEmailTmpl = template.Must(template.New("quote_email").Parse(`<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      h1 { color: #2563eb; }
      h2 { color: #1e40af; margin-top: 20px; }
      table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
      th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
      th { background-color: #f1f5f9; }
      .total { font-weight: bold; font-size: 1.2em; }
      .quote-id { background-color: #f1f5f9; padding: 10px; border-radius: 5px; margin-bottom: 20px; }
    </style>
  </head>
  <body>
    <div class="container">
      <h1>KMI Services Cleaning Quote</h1>

      <div class="quote-id">
        <strong>Quote ID:</strong> {{.Record.ID}}
      </div>

      <h2>Customer Details</h2>
      <table>
        <tr><th>Name:</th><td>{{.Record.CustomerDetails.Name}}</td></tr>
        <tr><th>Address:</th><td>{{.Record.CustomerDetails.Address}}</td></tr>
        <tr><th>Email:</th><td>{{.Record.CustomerDetails.Email}}</td></tr>
        <tr><th>Phone:</th><td>{{.Record.CustomerDetails.Phone}}</td></tr>
        <tr><th>Preferred Date:</th><td>{{.PreferredDate}}</td></tr>
        <tr><th>Preferred Time:</th><td>{{.Record.CustomerDetails.PreferredTime}}</td></tr>
        <tr><th>Referral Source:</th><td>{{.ReferralSource}}</td></tr>
      </table>

      <h2>Service Details</h2>
      <table>
        <tr><th>Service Type:</th><td>{{.Record.ServiceDetails.ServiceType}}</td></tr>
        <tr><th>Property Size:</th><td>{{.Record.ServiceDetails.PropertySize}}</td></tr>
        <tr><th>Soiling Level:</th><td>{{.Record.ServiceDetails.SoilingLevel}}</td></tr>
        <tr><th>Estimated Time:</th><td>{{.Record.ServiceDetails.EstimatedTime}} hours</td></tr>
        <tr><th>Cleaners Required:</th><td>{{.Record.ServiceDetails.CleanersRequired}}</td></tr>
      </table>

      <h2>Cost Breakdown</h2>
      <table>
        <tr><th>Labour Cost:</th><td>&pound;{{.Record.CostDetails.LabourCost}}</td></tr>
        <tr><th>Material Cost:</th><td>&pound;{{.Record.CostDetails.MaterialCost}}</td></tr>
        <tr><th>Base Cost:</th><td>&pound;{{.Record.CostDetails.BaseCost}}</td></tr>
      </table>

      {{if .Record.CostDetails.ExtrasBreakdown}}<h3>Selected Extras:</h3>
      <ul>
        {{range .Record.CostDetails.ExtrasBreakdown}}<li>{{.Name}}: &pound;{{.Cost}}</li>
        {{end}}
      </ul>{{else}}<p>No extras selected</p>{{end}}

      <table>
        <tr><th>Contractor Price:</th><td>&pound;{{.Record.CostDetails.ContractorPrice}}</td></tr>
        <tr><th>30% Markup:</th><td>&pound;{{.Record.CostDetails.Markup}}</td></tr>
        <tr class="total"><th>Final Price:</th><td>&pound;{{.Record.CostDetails.FinalPrice}}</td></tr>
      </table>

      <h2>Additional Information</h2>
      <p><strong>Notes:</strong> {{.Notes}}</p>
      <p><strong>Site Visit Required:</strong> {{if .Record.AdditionalInfo.SiteVisitRequired}}Yes{{else}}No{{end}}</p>

      <h2>Next Steps</h2>
      <p>{{.NextSteps}}</p>

      <p>{{.ClosingLine}}</p>
    </div>
  </body>
</html>
`))

type emailData struct {
	Record         quotes.Record
	PreferredDate  string
	ReferralSource string
	Notes          string
	NextSteps      string
	ClosingLine    string
}

const (
	closingOffice   = "This quote can be viewed and managed in the KMI Services Quote Tracker system."
	closingCustomer = "Thank you for your interest in KMI Services. We will be in touch shortly to discuss your quote."

	nextStepsSiteVisit = "A site visit needs to be arranged to finalize the quote."
	nextStepsPhotos    = "Please request the customer to send photos to help finalize the quote."
)

// RenderQuoteEmails produces the office copy and, when the customer
// supplied an email address, the customer copy.
func RenderQuoteEmails(rec quotes.Record, officeEmail string) ([]Message, error) {
	data := emailData{
		Record:         rec,
		PreferredDate:  formatPreferredDate(rec.CustomerDetails.PreferredDate),
		ReferralSource: formatReferral(rec.CustomerDetails),
		Notes:          rec.AdditionalInfo.Notes,
		NextSteps:      nextStepsPhotos,
	}
	if data.Notes == "" {
		data.Notes = "None provided"
	}
	if rec.AdditionalInfo.SiteVisitRequired {
		data.NextSteps = nextStepsSiteVisit
	}

	messages := make([]Message, 0, 2)

	data.ClosingLine = closingOffice
	body, err := renderBody(data)
	if err != nil {
		return nil, err
	}
	messages = append(messages, Message{
		To:      officeEmail,
		Subject: fmt.Sprintf("New Cleaning Quote %s - %s", rec.ID, rec.CustomerDetails.Name),
		Body:    body,
	})

	if rec.CustomerDetails.Email != "" {
		data.ClosingLine = closingCustomer
		body, err := renderBody(data)
		if err != nil {
			return nil, err
		}
		messages = append(messages, Message{
			To:      rec.CustomerDetails.Email,
			Subject: fmt.Sprintf("Your KMI Services Cleaning Quote %s", rec.ID),
			Body:    body,
		})
	}

	return messages, nil
}

func renderBody(data emailData) (string, error) {
	var sb strings.Builder
	if err := quoteEmailTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("notify: render quote email: %w", err)
	}
	return sb.String(), nil
}

// formatPreferredDate renders an ISO date as UK day/month/year; any
// other form passes through unchanged.
func formatPreferredDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

func formatReferral(c quotes.CustomerDetails) string {
	if c.OtherReferral != "" {
		return c.ReferralSource + " - " + c.OtherReferral
	}
	return c.ReferralSource
}

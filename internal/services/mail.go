package services

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendReviewDecisionEmail notifies a dataset's contact about a review decision.
// Returns nil without sending when SendGrid is not configured.
func SendReviewDecisionEmail(toEmail, datasetName, decision, comment string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" || toEmail == "" {
		return nil
	}

	from := mail.NewEmail("Dataset Publishing", os.Getenv("MAIL_FROM_ADDRESS"))
	subject := fmt.Sprintf("Your dataset %q was %s", datasetName, decision)
	to := mail.NewEmail("Dataset Contact", toEmail)

	commentBlock := ""
	if comment != "" {
		commentBlock = fmt.Sprintf(`<p><strong>Reviewer comment:</strong> %s</p>`, comment)
	}

	htmlContent := fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h2 style="color: #2c3e50;">Review decision for %s</h2>
			<p>Your dataset <strong>%s</strong> has been <strong>%s</strong>.</p>
			%s
			<p>You can sign in to view the dataset and, if needed, edit and resubmit its metadata.</p>
		</div>
        `, datasetName, datasetName, decision, commentBlock)

	plainTextContent := fmt.Sprintf("Your dataset %q has been %s.", datasetName, decision)
	if comment != "" {
		plainTextContent += " Reviewer comment: " + comment
	}

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	client := sendgrid.NewSendClient(apiKey)
	if _, err := client.Send(message); err != nil {
		return err
	}
	return nil
}

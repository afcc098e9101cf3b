package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/Missarachnid/sick-fits-backend/configs"
)

// SendPasswordResetEmail delivers a reset link to the account's address.
// Failures are the caller's to log; no retry is attempted.
func SendPasswordResetEmail(cfg config.EmailConfig, recipientEmail, resetURL string) error {

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {
		log.Printf("Failed to load AWS SDK config for reset email to %s: %v", recipientEmail, err)
		return fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := ses.NewFromConfig(awsCfg)

	if cfg.SenderEmail == "" {
		return fmt.Errorf("sender email address is not configured in environment variables")
	}
	if recipientEmail == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	subject := "Your password reset link"

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Someone requested a password reset for your account.</p>
            <p><a href="%s">Click here to choose a new password.</a></p>
            <p>If this wasn't you, you can safely ignore this email.</p>
        </body>
        </html>`, resetURL)

	bodyText := fmt.Sprintf(
		"Someone requested a password reset for your account.\n\n"+
			"Open this link to choose a new password:\n%s\n\n"+
			"If this wasn't you, you can safely ignore this email.",
		resetURL)

	input := &ses.SendEmailInput{
		Source: aws.String(cfg.SenderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{recipientEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	_, err = client.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("Failed to send reset email to %s: %v", recipientEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Password reset email sent successfully to %s", recipientEmail)
	return nil
}

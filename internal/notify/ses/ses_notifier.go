package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"foliogate/internal/config"
	"foliogate/internal/notify"
	"foliogate/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	from        string
	frontendURL string
}

// NewSESNotifier creates a new SES-backed ImportNotifier.
func NewSESNotifier(ctx context.Context, cfg *config.EmailConfig) (port.ImportNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesNotifier{
		client:      sesv2.NewFromConfig(awsCfg),
		from:        fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
		frontendURL: cfg.FrontendURL,
	}, nil
}

func (s *sesNotifier) SendImportConfirmation(ctx context.Context, toEmail, toName string, summary port.ImportSummary) error {
	msg := notify.BuildConfirmation(toName, summary, s.frontendURL)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTML)},
					Text: &types.Content{Data: aws.String(msg.Text)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

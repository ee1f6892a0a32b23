// Package ses sends decision reports to loan officers via AWS SES.
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	appConfig "agri-bnpl-engine/internal/config"
	"agri-bnpl-engine/internal/models"
	"agri-bnpl-engine/internal/utils"
)

// Service handles SES email operations.
type Service struct {
	client    *ses.Client
	fromEmail string
}

// EmailParams represents parameters for sending an email.
type EmailParams struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmailResult contains the result of sending an email.
type SendEmailResult struct {
	MessageID string
	SentAt    time.Time
}

// NewService creates a new SES service.
func NewService(ctx context.Context, appCfg *appConfig.Config) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(appCfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Service{
		client:    ses.NewFromConfig(cfg),
		fromEmail: appCfg.SESSenderEmail,
	}, nil
}

// SendEmail sends a basic email.
func (s *Service) SendEmail(ctx context.Context, params EmailParams) (*SendEmailResult, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(params.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}

	if params.HTMLBody != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(params.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}
	if params.TextBody != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(params.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		utils.Logger.Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	utils.Logger.Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", *result.MessageId),
	)

	return &SendEmailResult{
		MessageID: *result.MessageId,
		SentAt:    time.Now(),
	}, nil
}

// SendDecisionReport emails the explanation report for a scored farmer to a
// loan officer.
func (s *Service) SendDecisionReport(ctx context.Context, to string, report *models.ExplanationReport) (*SendEmailResult, error) {
	htmlBody, err := renderDecisionHTML(report)
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("BNPL decision for %s: %s (%s risk)",
		report.FarmerName, report.Decision, report.RiskCategory)

	return s.SendEmail(ctx, EmailParams{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: report.Summary,
	})
}

var decisionTemplate = template.Must(template.New("decision").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>BNPL Credit Decision</h2>
  <p><strong>{{.FarmerName}}</strong> ({{.FarmerID}})</p>
  <p>Risk score: <strong>{{.RiskScore}}</strong>/100 &mdash; {{.RiskCategory}} risk &mdash; <strong>{{.Decision}}</strong></p>
  {{if .BNPLLimit}}<p>Approved limit: {{.BNPLLimit}} AZN over {{.InstallmentMonths}} months</p>{{end}}
  <p>{{.Summary}}</p>
  <table border="0" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
    <tr style="background: #f0f0f0;"><th align="left">Factor</th><th align="left">Value</th><th align="right">Contribution</th></tr>
    {{range .Factors}}
    <tr><td>{{.Factor}}</td><td>{{.Value}}</td><td align="right">+{{.WeightedContribution}} / {{.MaxContribution}}</td></tr>
    {{end}}
  </table>
  <p style="color: #777; font-size: 12px;">Confidence level: {{.ConfidenceLevel}}%. Estimated late-payment probability: {{.LatePaymentProbability}}%.</p>
</body>
</html>`))

func renderDecisionHTML(report *models.ExplanationReport) (string, error) {
	var buf bytes.Buffer
	if err := decisionTemplate.Execute(&buf, report); err != nil {
		return "", err
	}
	return buf.String(), nil
}

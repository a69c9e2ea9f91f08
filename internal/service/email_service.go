package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesClient is the part of *sesv2.Client the email service uses
type sesClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     sesClient
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// QuizResultEmail is the content of a quiz result email
type QuizResultEmail struct {
	Name           string
	Correct        int
	Total          int
	Score          float64
	Grade          string
	XP             int
	Overall        string
	Specific       []string
	WeakCategories []string
}

// NewEmailService creates a new email service. An empty fromEmail yields a
// disabled service that logs and skips every send.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{debug: debug}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service: region=%s from=%s", awsRegion, fromEmail)
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return newEmailService(sesv2.NewFromConfig(cfg), fromEmail, fromName, appBaseURL, debug), nil
}

func newEmailService(client sesClient, fromEmail, fromName, appBaseURL string, debug bool) *EmailService {
	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		enabled:    true,
		debug:      debug,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

var welcomeHTML = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h1 style="color: #1f7a4d;">Welcome to Financial Coach!</h1>
	<p>Hi {{.Name}},</p>
	<p>Your account is ready. Take the literacy quiz to earn XP, then explore the tips and resources picked for your level.</p>
	<p><a href="{{.BaseURL}}/literacy/quiz">Start the quiz</a></p>
	<p style="font-size: 12px; color: #666;">This is an automated email from Financial Coach. Please do not reply.</p>
</body>
</html>
`))

// SendWelcomeEmail sends a welcome email to a newly registered learner
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	var html bytes.Buffer
	data := struct{ Name, BaseURL string }{toName, s.appBaseURL}
	if err := welcomeHTML.Execute(&html, data); err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	text := fmt.Sprintf(`Hi %s,

Your account is ready. Take the literacy quiz to earn XP, then explore the tips and resources picked for your level.

Start the quiz: %s/literacy/quiz

---
This is an automated email from Financial Coach. Please do not reply.
`, toName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, "Welcome to Financial Coach!", html.String(), text)
}

var quizResultHTML = template.Must(template.New("quiz-result").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h1 style="color: #1f7a4d;">Your quiz result: {{.Grade}}</h1>
	<p>Hi {{.Name}},</p>
	<p>You answered <strong>{{.Correct}} of {{.Total}}</strong> questions correctly ({{printf "%.0f" .Score}}%) and earned <strong>{{.XP}} XP</strong>.</p>
	<p>{{.Overall}}</p>
	{{if .Specific}}<ul>{{range .Specific}}<li>{{.}}</li>{{end}}</ul>{{end}}
	<p style="font-size: 12px; color: #666;">This is an automated email from Financial Coach. Please do not reply.</p>
</body>
</html>
`))

// SendQuizResultEmail mails a learner the summary of a submitted quiz
func (s *EmailService) SendQuizResultEmail(ctx context.Context, toEmail string, result QuizResultEmail) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): quiz result to %s", toEmail)
		return nil
	}

	subject, html, text, err := composeQuizResult(result)
	if err != nil {
		return err
	}
	return s.sendEmail(ctx, toEmail, subject, html, text)
}

func composeQuizResult(result QuizResultEmail) (subject, html, text string, err error) {
	var buf bytes.Buffer
	if err := quizResultHTML.Execute(&buf, result); err != nil {
		return "", "", "", fmt.Errorf("failed to render quiz result email: %w", err)
	}

	var tb strings.Builder
	fmt.Fprintf(&tb, "Hi %s,\n\n", result.Name)
	fmt.Fprintf(&tb, "You answered %d of %d questions correctly (%.0f%%) and earned %d XP.\n\n",
		result.Correct, result.Total, result.Score, result.XP)
	fmt.Fprintf(&tb, "%s\n", result.Overall)
	for _, line := range result.Specific {
		fmt.Fprintf(&tb, "- %s\n", line)
	}
	tb.WriteString("\n---\nThis is an automated email from Financial Coach. Please do not reply.\n")

	subject = fmt.Sprintf("Your financial literacy quiz result: %s", result.Grade)
	return subject, buf.String(), tb.String(), nil
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		log.Printf("[DEBUG] Sending email: from=%s to=%s subject=%q html=%d bytes text=%d bytes",
			fromAddress, toEmail, subject, len(htmlBody), len(textBody))
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] SES message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}

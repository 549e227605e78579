package service

import (
	"context"
	"fmt"

	"gearflow-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) Send(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)

	if htmlContent == "" {
		htmlContent = "<p>" + plainText + "</p>"
	}
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "to", toEmail)
	return nil
}

func (s *emailService) SendBookingReturnConfirmation(ctx context.Context, toEmail, employeeName, carLabel, dateOfUse string) error {
	subject := "Car Booking Completed"
	body := fmt.Sprintf("Hello %s,\n\nYour car booking for %s has been marked as completed.", employeeName, dateOfUse)
	if carLabel != "" {
		body += fmt.Sprintf("\n\nVehicle: %s", carLabel)
	}
	body += "\n\nThank you for returning the vehicle.\n\nGearFlow"
	return s.Send(ctx, toEmail, employeeName, subject, body, "")
}

func (s *emailService) SendAdminBookingNotice(ctx context.Context, adminEmail, employeeName, dateOfUse string) error {
	subject := "Car Booking Completed"
	body := fmt.Sprintf("The car booking by %s for %s has been completed and the vehicle returned.\n\nGearFlow", employeeName, dateOfUse)
	return s.Send(ctx, adminEmail, "", subject, body, "")
}

package notifications

import (
	"context"
	"fmt"
	"strings"

	"carrental-server/models"

	"github.com/mailjet/mailjet-apiv3-go"
)

// SendFunc delivers a v3.1 send request.
type SendFunc func(messages *mailjet.MessagesV31) (*mailjet.ResultsV31, error)

type MailjetNotifier struct {
	Send      SendFunc
	FromEmail string
	FromName  string
}

func NewMailjetNotifier(apiKey, secretKey, fromEmail, fromName string) *MailjetNotifier {
	client := mailjet.NewMailjetClient(apiKey, secretKey)
	return &MailjetNotifier{
		Send: func(messages *mailjet.MessagesV31) (*mailjet.ResultsV31, error) {
			return client.SendMailV31(messages)
		},
		FromEmail: fromEmail,
		FromName:  fromName,
	}
}

func (n *MailjetNotifier) ReservationStatusChanged(ctx context.Context, r *models.Reservation, owner *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	messages := mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{statusMessage(n.FromEmail, n.FromName, r, owner)}}
	res, err := n.Send(&messages)
	if err != nil {
		return fmt.Errorf("mailjet send to %s: %w", owner.Email, err)
	}
	for _, m := range res.ResultsV31 {
		if !strings.EqualFold(m.Status, "success") {
			return fmt.Errorf("mailjet send to %s: status %s", owner.Email, m.Status)
		}
	}
	return nil
}

func statusMessage(fromEmail, fromName string, r *models.Reservation, owner *models.User) mailjet.InfoMessagesV31 {
	subject := fmt.Sprintf("Reservation #%d is now %s", r.ReservationID, r.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", owner.FullName)
	fmt.Fprintf(&b, "Your reservation #%d (pickup %s %s, return %s %s) is now %q.\n",
		r.ReservationID, r.PickupDate, r.PickupTime, r.ReturnDate, r.ReturnTime, r.Status)
	if r.AdminNote != "" {
		fmt.Fprintf(&b, "\nNote from our team: %s\n", r.AdminNote)
	}

	return mailjet.InfoMessagesV31{
		From: &mailjet.RecipientV31{Email: fromEmail, Name: fromName},
		To: &mailjet.RecipientsV31{
			mailjet.RecipientV31{Email: owner.Email, Name: owner.FullName},
		},
		Subject:  subject,
		TextPart: b.String(),
	}
}

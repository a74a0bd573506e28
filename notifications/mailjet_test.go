package notifications

import (
	"context"
	"errors"
	"testing"

	"carrental-server/models"

	"github.com/mailjet/mailjet-apiv3-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures() (*models.Reservation, *models.User) {
	r := &models.Reservation{
		ReservationID: 5,
		PickupDate:    "2026-01-10",
		PickupTime:    "09:00",
		ReturnDate:    "2026-01-12",
		ReturnTime:    "18:00",
		Status:        "confirmed",
		AdminNote:     "ok",
	}
	u := &models.User{FullName: "Ada Lovelace", Email: "ada@x.com"}
	return r, u
}

func TestReservationStatusChanged(t *testing.T) {
	var sent *mailjet.MessagesV31
	n := &MailjetNotifier{
		Send: func(m *mailjet.MessagesV31) (*mailjet.ResultsV31, error) {
			sent = m
			return &mailjet.ResultsV31{ResultsV31: []mailjet.ResultV31{{Status: "success"}}}, nil
		},
		FromEmail: "no-reply@rental.example",
		FromName:  "Rental",
	}

	r, u := fixtures()
	require.NoError(t, n.ReservationStatusChanged(context.Background(), r, u))
	require.NotNil(t, sent)
	require.Len(t, sent.Info, 1)

	msg := sent.Info[0]
	assert.Equal(t, "no-reply@rental.example", msg.From.Email)
	require.Len(t, *msg.To, 1)
	assert.Equal(t, "ada@x.com", (*msg.To)[0].Email)
	assert.Equal(t, "Reservation #5 is now confirmed", msg.Subject)
	assert.Contains(t, msg.TextPart, "Hello Ada Lovelace")
	assert.Contains(t, msg.TextPart, "Note from our team: ok")
}

func TestReservationStatusChangedErrors(t *testing.T) {
	r, u := fixtures()

	failing := &MailjetNotifier{Send: func(*mailjet.MessagesV31) (*mailjet.ResultsV31, error) {
		return nil, errors.New("network down")
	}}
	assert.Error(t, failing.ReservationStatusChanged(context.Background(), r, u))

	rejected := &MailjetNotifier{Send: func(*mailjet.MessagesV31) (*mailjet.ResultsV31, error) {
		return &mailjet.ResultsV31{ResultsV31: []mailjet.ResultV31{{Status: "error"}}}, nil
	}}
	assert.Error(t, rejected.ReservationStatusChanged(context.Background(), r, u))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	idle := &MailjetNotifier{Send: func(*mailjet.MessagesV31) (*mailjet.ResultsV31, error) {
		called = true
		return &mailjet.ResultsV31{}, nil
	}}
	assert.ErrorIs(t, idle.ReservationStatusChanged(ctx, r, u), context.Canceled)
	assert.False(t, called)
}

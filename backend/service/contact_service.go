package service

import (
	"context"

	"evidentia/backend/common"
	"evidentia/backend/library/mailer"
	"evidentia/backend/model"
)

// ContactInput is the contact-form payload.
type ContactInput struct {
	Name         string
	Email        string
	Organization string
	Subject      string
	Message      string
}

// MailRelay is the outbound surface the contact flow needs.
type MailRelay interface {
	Send(ctx context.Context, serviceID string, templateID string, params map[string]string) error
}

// ContactStore records contact submissions.
type ContactStore interface {
	InsertContactMessage(ctx context.Context, msg *model.ContactMessage) error
	MarkRelayed(ctx context.Context, msg *model.ContactMessage) error
}

// ContactService records every submission and relays it through the mail
// relay. The record is written before the relay call so a relay outage
// never loses a message.
type ContactService struct {
	store ContactStore
	relay MailRelay
}

func NewContactService(store ContactStore, relay MailRelay) *ContactService {
	return &ContactService{store: store, relay: relay}
}

// Submit stores the message and, when the relay is enabled, forwards it.
// A relay failure is returned after the row is committed.
func (s *ContactService) Submit(ctx context.Context, userID int64, in ContactInput) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		UserID:       userID,
		Name:         in.Name,
		Email:        in.Email,
		Organization: in.Organization,
		Subject:      in.Subject,
		Message:      in.Message,
	}
	if err := s.store.InsertContactMessage(ctx, msg); err != nil {
		return nil, err
	}

	if !common.ContactRelayEnabled {
		return msg, nil
	}

	params := map[string]string{
		"name":         in.Name,
		"email":        in.Email,
		"organization": in.Organization,
		"subject":      in.Subject,
		"message":      in.Message,
	}
	if err := s.relay.Send(ctx, common.MailRelayServiceID, common.MailRelayTemplateID, params); err != nil {
		return msg, err
	}

	msg.Relayed = true
	if err := s.store.MarkRelayed(ctx, msg); err != nil {
		common.SysError("contact message relayed but not marked: " + err.Error())
	}
	return msg, nil
}

type modelContactStore struct{}

func (modelContactStore) InsertContactMessage(_ context.Context, msg *model.ContactMessage) error {
	return msg.Insert()
}

func (modelContactStore) MarkRelayed(_ context.Context, msg *model.ContactMessage) error {
	return msg.Update()
}

// NewDefaultContactService wires the contact flow to the real table and
// the configured relay endpoint.
func NewDefaultContactService() *ContactService {
	return NewContactService(modelContactStore{}, mailer.NewEmailJSClient(common.MailRelayEndpoint, common.MailRelayUserID))
}

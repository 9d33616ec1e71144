package service

import (
	"context"
	"errors"
	"testing"

	"evidentia/backend/common"
	"evidentia/backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContactStore struct {
	messages []*model.ContactMessage
	marked   int
}

func (s *fakeContactStore) InsertContactMessage(_ context.Context, msg *model.ContactMessage) error {
	s.messages = append(s.messages, msg)
	return nil
}

func (s *fakeContactStore) MarkRelayed(_ context.Context, _ *model.ContactMessage) error {
	s.marked++
	return nil
}

type fakeRelay struct {
	sent []map[string]string
	err  error
}

func (r *fakeRelay) Send(_ context.Context, _ string, _ string, params map[string]string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, params)
	return nil
}

func TestContactSubmit_RecordsAndRelays(t *testing.T) {
	common.ContactRelayEnabled = true
	defer func() { common.ContactRelayEnabled = true }()

	store := &fakeContactStore{}
	relay := &fakeRelay{}
	svc := NewContactService(store, relay)

	msg, err := svc.Submit(context.Background(), 3, ContactInput{
		Name:    "Dana",
		Email:   "dana@example.com",
		Subject: "Access request",
		Message: "Please add my colleague.",
	})
	require.NoError(t, err)

	require.Len(t, store.messages, 1)
	assert.Equal(t, int64(3), store.messages[0].UserID)
	assert.True(t, msg.Relayed)
	assert.Equal(t, 1, store.marked)

	require.Len(t, relay.sent, 1)
	assert.Equal(t, "dana@example.com", relay.sent[0]["email"])
	assert.Equal(t, "Access request", relay.sent[0]["subject"])
}

func TestContactSubmit_RelayDisabled(t *testing.T) {
	common.ContactRelayEnabled = false
	defer func() { common.ContactRelayEnabled = true }()

	store := &fakeContactStore{}
	relay := &fakeRelay{}
	svc := NewContactService(store, relay)

	msg, err := svc.Submit(context.Background(), 3, ContactInput{Name: "Dana", Email: "dana@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.False(t, msg.Relayed)
	assert.Empty(t, relay.sent)
	require.Len(t, store.messages, 1)
}

func TestContactSubmit_RelayFailure_RowKept(t *testing.T) {
	common.ContactRelayEnabled = true
	defer func() { common.ContactRelayEnabled = true }()

	store := &fakeContactStore{}
	relay := &fakeRelay{err: errors.New("relay down")}
	svc := NewContactService(store, relay)

	msg, err := svc.Submit(context.Background(), 3, ContactInput{Name: "Dana", Email: "dana@example.com", Message: "hi"})
	require.Error(t, err)
	require.NotNil(t, msg)
	assert.False(t, msg.Relayed)
	require.Len(t, store.messages, 1)
	assert.Equal(t, 0, store.marked)
}

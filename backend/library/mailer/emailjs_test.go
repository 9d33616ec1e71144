package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailJSClient_Send(t *testing.T) {
	var got sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewEmailJSClient(server.URL, "user_abc")
	err := client.Send(context.Background(), "service_1", "template_1", map[string]string{
		"name":    "Dana",
		"message": "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "service_1", got.ServiceID)
	assert.Equal(t, "template_1", got.TemplateID)
	assert.Equal(t, "user_abc", got.UserID)
	assert.Equal(t, "Dana", got.TemplateParams["name"])
	assert.Equal(t, "hello", got.TemplateParams["message"])
}

func TestEmailJSClient_Send_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The service ID is invalid"))
	}))
	defer server.Close()

	client := NewEmailJSClient(server.URL, "user_abc")
	err := client.Send(context.Background(), "bad", "template_1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The service ID is invalid")
}

func TestEmailJSClient_Send_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewEmailJSClient(server.URL, "user_abc")
	err := client.Send(ctx, "service_1", "template_1", nil)
	assert.Error(t, err)
}

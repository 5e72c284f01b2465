package utils

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

type captureSender struct {
	to, subject, body string
}

func (c *captureSender) Send(_ context.Context, to, subject, htmlBody string) error {
	c.to, c.subject, c.body = to, subject, htmlBody
	return nil
}

func TestSendOrderConfirmationEmail(t *testing.T) {
	tests := []struct {
		method models.PaymentMethod
		want   string
	}{
		{models.PaymentCash, "reserved for pickup"},
		{models.PaymentEFT, "as your reference"},
		{models.PaymentCard, "card payment"},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			sender := &captureSender{}
			svc := NewEmailService(sender, nil)

			err := svc.SendOrderConfirmationEmail("t@example.ac.za", models.User{Name: "Thandi"}, models.OrderRecord{
				OrderID: "o-1", Quantity: 2, Total: decimal.RequireFromString("300"), PaymentMethod: tt.method,
			})
			require.NoError(t, err)
			assert.Equal(t, "t@example.ac.za", sender.to)
			assert.Equal(t, "Order Confirmation", sender.subject)
			assert.Contains(t, sender.body, tt.want)
			assert.Contains(t, sender.body, "R300.00")
			assert.Contains(t, sender.body, "Dear Thandi")
		})
	}
}

func TestSendEmailNeedsRecipient(t *testing.T) {
	svc := NewEmailService(&captureSender{}, nil)
	assert.ErrorIs(t, svc.SendEmail(context.Background(), "", "s", "b"), ErrNoRecipient)
}

func TestSendGridSender(t *testing.T) {
	var body map[string]any
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := NewSendGridSender("sg-key", srv.URL, "store@example.ac.za")
	err := sender.Send(context.Background(), "t@example.ac.za", "Order Confirmation", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "/v3/mail/send", path)
	assert.Equal(t, "Bearer sg-key", auth)
	assert.Equal(t, "Order Confirmation", body["subject"])
}

func TestSendGridSenderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewSendGridSender("bad", srv.URL, "store@example.ac.za")
	assert.Error(t, sender.Send(context.Background(), "t@example.ac.za", "s", "b"))
}

func TestSendGridSenderConcurrentSends(t *testing.T) {
	var mu sync.Mutex
	var subjects []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		subject, _ := body["subject"].(string)
		mu.Lock()
		subjects = append(subjects, subject)
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := NewSendGridSender("sg-key", srv.URL, "store@example.ac.za")
	want := []string{"order a", "order b", "order c", "order d", "order e", "order f", "order g", "order h"}

	var wg sync.WaitGroup
	for _, subject := range want {
		wg.Add(1)
		go func(subject string) {
			defer wg.Done()
			to := strings.ReplaceAll(subject, " ", "-") + "@example.ac.za"
			assert.NoError(t, sender.Send(context.Background(), to, subject, "<p>thanks</p>"))
		}(subject)
	}
	wg.Wait()

	sort.Strings(subjects)
	assert.Equal(t, want, subjects)
}

func TestPostmarkSender(t *testing.T) {
	var path, token string
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		token = r.Header.Get("X-Postmark-Server-Token")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &payload)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ErrorCode":0,"Message":"OK","MessageID":"m-1","To":"t@example.ac.za"}`))
	}))
	defer srv.Close()

	sender := NewPostmarkSender("pm-token", "store@example.ac.za")
	sender.client.BaseURL = srv.URL

	require.NoError(t, sender.Send(context.Background(), "t@example.ac.za", "Order Confirmation", "<p>hi</p>"))
	assert.Equal(t, "/email", path)
	assert.Equal(t, "pm-token", token)
	assert.Equal(t, "store@example.ac.za", payload["From"])
}

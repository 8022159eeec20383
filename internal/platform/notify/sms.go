package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// TextMessenger dispatches SMS through an HTTP SMS gateway (MSG91-style
// GET API). The provider is treated as a fire-and-forget sink; callers
// bound the call with their context.
type TextMessenger struct {
	client      *http.Client
	baseURL     string
	authKey     string
	senderID    string
	countryCode string
}

func NewTextMessenger(baseURL, authKey, senderID string) *TextMessenger {
	return &TextMessenger{
		client:      &http.Client{Timeout: 10 * time.Second},
		baseURL:     baseURL,
		authKey:     authKey,
		senderID:    senderID,
		countryCode: "91",
	}
}

func (t *TextMessenger) SendOTP(ctx context.Context, phone, code string) error {
	q := url.Values{}
	q.Set("authkey", t.authKey)
	q.Set("mobile", t.countryCode+phone)
	q.Set("sender", t.senderID)
	q.Set("message", fmt.Sprintf("Your PrajaConnect OTP: %s", code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned %s", resp.Status)
	}
	return nil
}

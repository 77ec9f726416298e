package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"
)

type linePushRequest struct {
	To       string        `json:"to"`
	Messages []lineMessage `json:"messages"`
}

type lineMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// LineSender pushes a text message through the LINE Messaging API.
type LineSender struct {
	client   *http.Client
	endpoint string
	token    string
}

func NewLineSender(client *http.Client, endpoint, channelToken string) (*LineSender, error) {
	if channelToken == "" {
		return nil, errs.New("LINE channel token is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &LineSender{client: client, endpoint: endpoint, token: channelToken}, nil
}

func (s *LineSender) Send(ctx context.Context, n shared.Notification) error {
	body, err := json.Marshal(linePushRequest{
		To:       n.Recipient,
		Messages: []lineMessage{{Type: "text", Text: n.Text}},
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode LINE push request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build LINE push request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "LINE push request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errs.Newf("LINE push rejected: status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}

func (s *LineSender) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/elducche/mddcli/internal/client/notify"
)

// SuccessText raises a success alert when a 200 or 201 JSON object response
// carries a non-empty "text" field. The body is restored for the caller.
func SuccessText(alerts Alerter) Interceptor {
	return func(req *http.Request, next Handler) (*http.Response, error) {
		resp, err := next.Do(req)
		if err != nil || resp == nil {
			return resp, err
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			return resp, nil
		}
		if !strings.Contains(resp.Header.Get("Content-Type"), "json") {
			return resp, nil
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(body))
		if readErr != nil {
			return nil, newTransportError(readErr)
		}

		var payload struct {
			Text string `json:"text"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Text != "" {
			alerts.ShowAlert(notify.Alert{Type: notify.Success, Message: payload.Text})
		}
		return resp, nil
	}
}

package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// maxResponse caps how much of an upstream body is read
const maxResponse = 1 << 20

// upstreamError covers the error bodies of the providers
type upstreamError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// postJSON sends body as JSON and decodes a 200 response into out
func postJSON(ctx context.Context, client *http.Client, url string, header map[string]string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range header {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var upstream upstreamError
		if json.Unmarshal(data, &upstream) == nil {
			if upstream.Error.Message != "" {
				return errors.New(upstream.Error.Message)
			}
			if upstream.Message != "" {
				return errors.New(upstream.Message)
			}
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err = json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "invalid response")
	}

	return nil
}

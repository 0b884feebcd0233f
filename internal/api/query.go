package api

import (
	"context"
	"encoding/json"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/helpchat/internal/errors"
	"github.com/diogo/helpchat/internal/models"
)

// Query posts text to /query and returns the full reply in one shot.
// The reply is the first non-empty of the known reply fields, falling back to
// the raw payload serialization when none is present.
func (c *HelpdeskClient) Query(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apierrors.ErrEmptyReply
	}

	endpoint := c.endpoint(models.PathQuery)

	payload, err := json.Marshal(map[string]string{"message": text})
	if err != nil {
		return "", apierrors.NewParseError("failed to encode query request", text)
	}

	req, err := c.newRequest(http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return "", err
	}
	req = req.WithContext(ctx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkError("query", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := readBody(resp.Body, 1<<20)
	if err != nil {
		return "", apierrors.NewNetworkError("query", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "query failed", string(body))
	}

	return extractReply(body)
}

// extractReply pulls the reply text out of a /query payload.
func extractReply(body []byte) (string, error) {
	trimmed := strings.TrimSpace(string(body))
	if !gjson.Valid(trimmed) {
		return "", apierrors.NewParseError("query payload is not valid JSON", trimmed)
	}

	parsed := gjson.Parse(trimmed)
	for _, field := range models.ReplyFields {
		if v := parsed.Get(field); v.Exists() && v.String() != "" {
			return v.String(), nil
		}
	}

	// No known field: surface the payload itself rather than dropping it.
	return trimmed, nil
}

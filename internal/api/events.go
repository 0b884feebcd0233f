package api

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/url"
	"strings"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/helpchat/internal/errors"
	"github.com/diogo/helpchat/internal/models"
)

// StreamEvents opens the server-sent event connection at /events with the
// user text as the q query parameter and feeds each event payload verbatim to
// fn. A payload equal to the end sentinel terminates the connection normally.
// Cancelling ctx closes the connection; a connection-level failure after the
// stream opened is reported as a StreamError so the caller can append its
// fixed error note.
func (c *HelpdeskClient) StreamEvents(ctx context.Context, text string, fn FragmentFunc) error {
	endpoint := c.endpoint(models.PathEvents) + "?q=" + url.QueryEscape(text)

	req, err := c.newRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req = req.WithContext(ctx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierrors.NewNetworkError("event stream", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := readBody(resp.Body, 4096)
		return apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "event stream rejected", string(body))
	}

	if err := consumeEvents(resp.Body, fn, endpoint); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// consumeEvents reads SSE lines until the end sentinel. EOF before the
// sentinel means the server hung up mid-reply and is reported as a stream
// error, same as a read failure.
func consumeEvents(body io.Reader, fn FragmentFunc, endpoint string) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			// Comments, event/id fields and blank separators carry no payload.
			continue
		}
		payload := strings.TrimPrefix(line, "data:")
		payload = strings.TrimPrefix(payload, " ")
		if payload == models.EndSentinel {
			return nil
		}
		if err := fn(payload); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return apierrors.NewStreamError(endpoint, err)
	}
	return apierrors.NewStreamError(endpoint, apierrors.ErrStreamClosed)
}

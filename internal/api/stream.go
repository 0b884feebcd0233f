package api

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/helpchat/internal/errors"
	"github.com/diogo/helpchat/internal/models"
)

// FragmentFunc receives decoded reply fragments in arrival order. Returning
// an error stops consumption and propagates to the caller.
type FragmentFunc func(fragment string) error

// StreamChat posts text to /chat and feeds each decoded line of the chunked
// body to fn. The decoder is chosen from the X-Chat-Framing response header
// when the server declares one, otherwise framing is sniffed per line. Any
// trailing partial line is flushed through the same decoder. The call runs to
// stream completion; ctx cancels the underlying request.
func (c *HelpdeskClient) StreamChat(ctx context.Context, text string, fn FragmentFunc) error {
	endpoint := c.endpoint(models.PathChat)

	payload, err := json.Marshal(map[string]string{"query": text})
	if err != nil {
		return apierrors.NewParseError("failed to encode chat request", text)
	}

	req, err := c.newRequest(http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierrors.NewNetworkError("chat stream", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := readBody(resp.Body, 4096)
		return apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "chat request failed", string(body))
	}

	decoder := DecoderFor(resp.Header.Get(models.FramingHeader))
	return consumeLines(resp.Body, decoder, fn, endpoint)
}

// consumeLines splits the body on newline boundaries and feeds each decoded
// fragment to fn in order. bufio.Scanner delivers a trailing partial line as
// its final token, so the flush falls out of the same loop.
func consumeLines(body io.Reader, decoder Decoder, fn FragmentFunc, endpoint string) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		fragment, ok := decoder.DecodeLine(scanner.Text())
		if !ok {
			continue
		}
		if err := fn(fragment); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return apierrors.NewStreamError(endpoint, err)
	}
	return nil
}

// readBody drains up to limit bytes from a response body.
func readBody(body io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, limit))
	if err != nil {
		return data, err
	}
	return data, nil
}

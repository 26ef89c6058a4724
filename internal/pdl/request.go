package pdl

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/spigell/prospector/internal/utils"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	notFoundType    = "not_found"
	maxLogBody      = 500
)

// envelope is the provider's response body.
type envelope struct {
	Status int              `json:"status"`
	Total  int              `json:"total"`
	Data   []map[string]any `json:"data"`
	Error  *apiError        `json:"error"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// post sends one search attempt and decodes whatever body came back. A body
// that is not JSON leaves the envelope nil; the status decides what that means.
func (c *Client) post(ctx context.Context, body []byte) (int, http.Header, *envelope, error) {
	url := fmt.Sprintf("%s%s", c.APIURL, searchPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("make request",
		zap.String("url", req.URL.String()),
		zap.String("body", utils.TruncateForLog(string(body), maxLogBody)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return resp.StatusCode, resp.Header, nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return resp.StatusCode, resp.Header, nil, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, resp.Header, nil, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		if resp.StatusCode == http.StatusOK {
			return resp.StatusCode, resp.Header, nil, &FatalError{
				StatusCode: resp.StatusCode,
				Message:    "malformed response body",
				Cause:      err,
			}
		}
		return resp.StatusCode, resp.Header, nil, nil
	}

	return resp.StatusCode, resp.Header, &env, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

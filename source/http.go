package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// HTTP is a ByteSource that reads a remote container with HTTP range requests.
// Cancelling the configured context aborts in-flight and future reads.
type HTTP struct {
	ctx     context.Context
	url     string
	client  *http.Client
	headers http.Header
	size    int64
}

var _ ByteSource = (*HTTP)(nil)

// HTTPOption configures an HTTP source.
type HTTPOption func(*HTTP)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTP) {
		s.client = client
	}
}

// WithHTTPHeader sets a header on every request.
func WithHTTPHeader(key, value string) HTTPOption {
	return func(s *HTTP) {
		if s.headers == nil {
			s.headers = make(http.Header)
		}
		s.headers.Set(key, value)
	}
}

// WithContext binds the source to ctx.
func WithContext(ctx context.Context) HTTPOption {
	return func(s *HTTP) {
		s.ctx = ctx
	}
}

// OpenHTTP probes url with a one-byte range request to learn its size.
func OpenHTTP(url string, opts ...HTTPOption) (*HTTP, error) {
	s := &HTTP{
		ctx:    context.Background(),
		url:    url,
		client: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = http.DefaultClient
	}

	size, err := s.probe()
	if err != nil {
		return nil, err
	}
	s.size = size

	return s, nil
}

// Size returns the remote content length.
func (s *HTTP) Size() int64 {
	return s.size
}

// ReadAt reads len(p) bytes at off with a single range request.
func (s *HTTP) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off < 0 {
		return 0, fmt.Errorf("read at %d: negative offset", off)
	}
	if off >= s.size {
		return 0, io.EOF
	}

	end := off + int64(len(p)) - 1
	expected := len(p)
	if end >= s.size {
		end = s.size - 1
		expected = int(end - off + 1)
	}

	resp, err := s.get(fmt.Sprintf("bytes=%d-%d", off, end))
	if err != nil {
		return 0, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusPartialContent:
	case http.StatusRequestedRangeNotSatisfiable:
		return 0, io.EOF
	case http.StatusOK:
		return 0, errors.New("range requests not supported")
	default:
		return 0, fmt.Errorf("range request failed: %s", resp.Status)
	}

	n, err := io.ReadFull(resp.Body, p[:expected])
	if err != nil {
		return n, err
	}
	if expected < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func (s *HTTP) probe() (int64, error) {
	resp, err := s.get("bytes=0-0")
	if err != nil {
		return 0, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusPartialContent:
	case http.StatusRequestedRangeNotSatisfiable:
		// An empty resource cannot satisfy bytes=0-0.
		return 0, nil
	case http.StatusOK:
		return 0, errors.New("range requests not supported")
	default:
		return 0, fmt.Errorf("range probe failed: %s", resp.Status)
	}

	crange := resp.Header.Get("Content-Range")
	if crange == "" {
		return 0, errors.New("range probe missing Content-Range")
	}

	return parseContentRange(crange)
}

func (s *HTTP) get(rangeHeader string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(s.ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, err
	}
	for key, values := range s.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "identity")
	}
	req.Header.Set("Range", rangeHeader)

	return s.client.Do(req)
}

// parseContentRange extracts the total size from "bytes 0-0/1234".
func parseContentRange(value string) (int64, error) {
	_, total, ok := strings.Cut(value, "/")
	if !ok || total == "*" {
		return 0, fmt.Errorf("invalid Content-Range %q", value)
	}

	size, err := strconv.ParseInt(strings.TrimSpace(total), 10, 64)
	if err != nil || size < 0 {
		return 0, fmt.Errorf("invalid Content-Range %q", value)
	}

	return size, nil
}

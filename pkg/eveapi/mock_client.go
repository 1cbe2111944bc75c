package eveapi

import (
	"context"
	"sync"
)

// MockRequest records one call made through a MockClient.
type MockRequest struct {
	Path   string
	Params map[string]string
}

type MockClient struct {
	mu        sync.Mutex
	err       error
	responses map[string][]byte
	requests  []MockRequest
	block     chan struct{}
}

func NewMockClient() *MockClient {
	return &MockClient{responses: make(map[string][]byte)}
}

func (c *MockClient) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *MockClient) SetResponse(path string, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[path] = []byte(body)
}

// BlockUntil makes every Fetch wait for release to be closed (or the
// context to end) before answering.
func (c *MockClient) BlockUntil(release chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.block = release
}

func (c *MockClient) Requests() []MockRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]MockRequest(nil), c.requests...)
}

func (c *MockClient) Fetch(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	c.mu.Lock()
	c.requests = append(c.requests, MockRequest{Path: path, Params: params})
	block := c.block
	c.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return nil, c.err
	}

	body, ok := c.responses[path]
	if !ok || len(body) == 0 {
		return nil, ErrEmptyResponse
	}

	return body, nil
}

func (c *MockClient) Err(err error) *MockClient {
	c.SetError(err)
	return c
}

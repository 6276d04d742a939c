package api

import (
	"io"
	"net/url"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/bogdanfinn/tls-client/bandwidth"
)

// MockResponseBody is a ReadCloser over canned response data
type MockResponseBody struct {
	data []byte
	pos  int
}

func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{data: data}
}

func (m *MockResponseBody) Read(p []byte) (n int, err error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n = copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

func (m *MockResponseBody) Close() error {
	return nil
}

// mockCall is one canned exchange served by MockHttpClient
type mockCall struct {
	response *fhttp.Response
	err      error
}

// MockHttpClient is a mock implementation of tls_client.HttpClient. It
// serves queued calls in order, repeating the last one when the queue runs
// dry, and records every request URL it saw.
type MockHttpClient struct {
	calls    []mockCall
	Requests []string
	Bodies   []string
	Headers  []fhttp.Header
}

// GetCookies implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetCookies(u *url.URL) []*fhttp.Cookie {
	return nil
}

// SetCookies implements the tls_client.HttpClient interface
func (m *MockHttpClient) SetCookies(u *url.URL, cookies []*fhttp.Cookie) {}

// SetCookieJar implements the tls_client.HttpClient interface
func (m *MockHttpClient) SetCookieJar(jar fhttp.CookieJar) {}

// GetCookieJar implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetCookieJar() fhttp.CookieJar {
	return nil
}

// SetProxy implements the tls_client.HttpClient interface
func (m *MockHttpClient) SetProxy(proxyUrl string) error {
	return nil
}

// GetProxy implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetProxy() string {
	return ""
}

// SetFollowRedirect implements the tls_client.HttpClient interface
func (m *MockHttpClient) SetFollowRedirect(followRedirect bool) {}

// GetFollowRedirect implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetFollowRedirect() bool {
	return false
}

// CloseIdleConnections implements the tls_client.HttpClient interface
func (m *MockHttpClient) CloseIdleConnections() {}

// Do implements the tls_client.HttpClient interface
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.Requests = append(m.Requests, req.URL.String())
	body := ""
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		body = string(b)
	}
	m.Bodies = append(m.Bodies, body)
	m.Headers = append(m.Headers, req.Header)
	return m.next()
}

// Get implements the tls_client.HttpClient interface
func (m *MockHttpClient) Get(url string) (*fhttp.Response, error) {
	m.Requests = append(m.Requests, url)
	return m.next()
}

// Head implements the tls_client.HttpClient interface
func (m *MockHttpClient) Head(url string) (*fhttp.Response, error) {
	m.Requests = append(m.Requests, url)
	return m.next()
}

// Post implements the tls_client.HttpClient interface
func (m *MockHttpClient) Post(url, contentType string, body io.Reader) (*fhttp.Response, error) {
	m.Requests = append(m.Requests, url)
	return m.next()
}

// GetBandwidthTracker implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetBandwidthTracker() bandwidth.BandwidthTracker {
	return nil
}

func (m *MockHttpClient) next() (*fhttp.Response, error) {
	if len(m.calls) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	call := m.calls[0]
	if len(m.calls) > 1 {
		m.calls = m.calls[1:]
	}
	return call.response, call.err
}

// Enqueue adds a canned response to the queue
func (m *MockHttpClient) Enqueue(body []byte, statusCode int) *MockHttpClient {
	m.calls = append(m.calls, mockCall{response: &fhttp.Response{
		StatusCode: statusCode,
		Body:       NewMockResponseBody(body),
		Header:     make(fhttp.Header),
	}})
	return m
}

// EnqueueWithContentType adds a canned response with a Content-Type header
func (m *MockHttpClient) EnqueueWithContentType(body []byte, statusCode int, contentType string) *MockHttpClient {
	header := make(fhttp.Header)
	header.Set("Content-Type", contentType)
	m.calls = append(m.calls, mockCall{response: &fhttp.Response{
		StatusCode: statusCode,
		Body:       NewMockResponseBody(body),
		Header:     header,
	}})
	return m
}

// EnqueueError adds a transport error to the queue
func (m *MockHttpClient) EnqueueError(err error) *MockHttpClient {
	m.calls = append(m.calls, mockCall{err: err})
	return m
}

// NewMockHttpClient creates a MockHttpClient serving a single response
func NewMockHttpClient(body []byte, statusCode int) *MockHttpClient {
	return (&MockHttpClient{}).Enqueue(body, statusCode)
}

// NewMockHttpClientWithError creates a MockHttpClient that fails transport
func NewMockHttpClientWithError(err error) *MockHttpClient {
	return (&MockHttpClient{}).EnqueueError(err)
}

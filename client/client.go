package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"estateinsights/models"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the hosted insights backend.
const DefaultBaseURL = "https://realestate-chatbot-bual.onrender.com/api"

const (
	opQuery    = "query area"
	opUpload   = "upload file"
	opDownload = "download csv"
)

// Client talks to the insights backend's query, upload and download endpoints.
// It does not retry, cache or de-duplicate calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithTimeout sets the transport timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// QueryArea asks the backend for the summary, price trend and rows of an area.
func (c *Client) QueryArea(ctx context.Context, area string) (*models.QueryResult, error) {
	endpoint := c.endpoint("query", url.Values{"area": {area}})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build query request")
	}
	req.Header.Set("Accept", "application/json")

	data, err := c.do(req, opQuery)
	if err != nil {
		return nil, err
	}

	result, err := DecodeQueryResult(data)
	if err != nil {
		return nil, &NetworkOrServerError{Op: opQuery, Err: err}
	}

	log.Debug().
		Str("component", "client").
		Str("area", area).
		Int("summaries", len(result.Summary)).
		Int("rows", len(result.Rows)).
		Msg("query answered")
	return result, nil
}

// UploadFile submits a spreadsheet as multipart field "file". Type and size are not checked here.
func (c *Client) UploadFile(ctx context.Context, filename string, file io.Reader) (*models.UploadAck, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, errors.Wrap(err, "create form file")
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, errors.Wrap(err, "read upload")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "close multipart writer")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("upload", nil), body)
	if err != nil {
		return nil, errors.Wrap(err, "build upload request")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	data, err := c.do(req, opUpload)
	if err != nil {
		return nil, err
	}

	// The acknowledgment shape is backend-defined; a body we cannot read is not a failure.
	ack := DecodeUploadAck(data)
	log.Debug().
		Str("component", "client").
		Str("filename", filename).
		Str("status", ack.Status).
		Int("rows", ack.Rows).
		Msg("upload acknowledged")
	return ack, nil
}

// DownloadCSV fetches the filtered dataset of an area as CSV bytes.
// Saving them is the caller's job.
func (c *Client) DownloadCSV(ctx context.Context, area string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("download", url.Values{"area": {area}}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build download request")
	}
	return c.do(req, opDownload)
}

func (c *Client) endpoint(name string, params url.Values) string {
	u := c.baseURL + "/" + name + "/"
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkOrServerError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkOrServerError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, suggestions := decodeBackendError(data)
		return nil, &NetworkOrServerError{
			Op:          op,
			StatusCode:  resp.StatusCode,
			Message:     msg,
			Suggestions: suggestions,
		}
	}
	return data, nil
}

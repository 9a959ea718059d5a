package tissue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tissueplus/tissue/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "tissue-tui/1.0"
)

// Client implements domain.VideoRepository, domain.StatusRepository,
// domain.DownloadRepository and domain.VersionRepository for a TISSUE+ server
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new TISSUE+ API client
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// BaseURL returns the normalized server URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an authenticated HTTP request and returns the envelope payload
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (json.RawMessage, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("tissue request", "method", method, "url", reqURL, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("tissue request failed", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrAuthFailed
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("tissue request error", "request_id", requestID, "status", resp.StatusCode, "body", string(respBody))
		return nil, &domain.APIError{Status: resp.StatusCode, Message: envelopeMessage(respBody)}
	}

	return c.parseEnvelope(resp.StatusCode, respBody)
}

// parseEnvelope unwraps the {success, message, data} envelope
func (c *Client) parseEnvelope(status int, body []byte) (json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if !env.Success {
		return nil, &domain.APIError{Status: status, Message: env.Message}
	}
	return env.Data, nil
}

// envelopeMessage extracts a message from an error body, if it has one
func envelopeMessage(body []byte) string {
	var env struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Detail
}

// decode unmarshals an envelope payload into dest
func decode(data json.RawMessage, dest interface{}) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}

// Ping checks that the server answers and the token is accepted
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GetVersion(ctx)
	return err
}

// GetVideos returns every video in the library
func (c *Client) GetVideos(ctx context.Context) ([]domain.Video, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/api/video/", nil, nil)
	if err != nil {
		return nil, err
	}

	var dtos []VideoDTO
	if err := decode(data, &dtos); err != nil {
		return nil, err
	}

	return MapVideos(dtos, c.baseURL), nil
}

// BatchDownloadStatus resolves the download status of a batch of numbers
func (c *Client) BatchDownloadStatus(ctx context.Context, nums []string) (domain.StatusMap, error) {
	if len(nums) == 0 {
		return domain.StatusMap{}, nil
	}

	data, err := c.doRequest(ctx, http.MethodPost, "/api/download/status/batch", nil, numsRequest{Nums: nums})
	if err != nil {
		return nil, err
	}

	var raw map[string]string
	if err := decode(data, &raw); err != nil {
		return nil, err
	}

	return MapStatuses(raw), nil
}

// QueueDownloads asks the server to search and download the given numbers
func (c *Client) QueueDownloads(ctx context.Context, nums []string) error {
	if len(nums) == 0 {
		return nil
	}
	_, err := c.doRequest(ctx, http.MethodPost, "/api/download/batch", nil, numsRequest{Nums: nums})
	return err
}

// GetDownloads returns the torrents tracked by the server's downloader
func (c *Client) GetDownloads(ctx context.Context) ([]domain.Download, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/api/download/", nil, nil)
	if err != nil {
		return nil, err
	}

	var dtos []DownloadDTO
	if err := decode(data, &dtos); err != nil {
		return nil, err
	}

	return MapDownloads(dtos), nil
}

// CompleteDownloads marks the given torrents as handled
func (c *Client) CompleteDownloads(ctx context.Context, hashes []string) error {
	if len(hashes) == 0 {
		return nil
	}
	_, err := c.doRequest(ctx, http.MethodPost, "/api/download/complete", nil, hashesRequest{Hashes: hashes})
	return err
}

// GetVersion returns the running and latest server versions
func (c *Client) GetVersion(ctx context.Context) (domain.VersionInfo, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/api/common/version", nil, nil)
	if err != nil {
		return domain.VersionInfo{}, err
	}

	var dto VersionDTO
	if err := decode(data, &dto); err != nil {
		return domain.VersionInfo{}, err
	}

	return domain.VersionInfo{Current: dto.Current, Latest: dto.Latest}, nil
}

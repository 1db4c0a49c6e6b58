// Package remote implements the HTTP clients for the measurement and
// upload collaborators.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/tvoss/image-measure-go/domain/measure"
)

// ScalePayload carries the active unit and conversion factor on the wire.
type ScalePayload struct {
	UnitName      string  `json:"unit_name"`
	UnitsPerPixel float64 `json:"units_per_pixel"`
}

// MeasureRequest is the payload submitted to the measurement service.
type MeasureRequest struct {
	Points    []measure.Point `json:"points"`
	Closed    bool            `json:"closed"`
	Scale     ScalePayload    `json:"scale"`
	SessionID string          `json:"session_id,omitempty"`
	Persist   bool            `json:"persist,omitempty"`
}

// MeasureResponse wraps the measurement returned by the service.
type MeasureResponse struct {
	SessionID   string               `json:"session_id"`
	Measurement *measure.Measurement `json:"measurement"`
}

// UploadResult is the structured response of a successful image upload.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Client talks to the measurement backend. A zero timeout leaves external
// calls unbounded.
type Client struct {
	base   string
	hc     *http.Client
	logger *slog.Logger
}

// NewClient returns a client for the service rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		hc:     &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Measure submits the point sequence and scale, returning the computed
// measurement. A response without a well-formed measurement object is an
// error, as is any non-success status.
func (c *Client) Measure(ctx context.Context, req MeasureRequest) (*measure.Measurement, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode measure request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/measure", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(data, "measurement request failed", resp.StatusCode)
	}
	var out MeasureResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode measure response: %w", err)
	}
	if out.Measurement == nil {
		return nil, errors.New("measurement response missing measurement object")
	}
	if c.logger != nil {
		c.logger.Debug("measure ok",
			"points", len(req.Points),
			"closed", req.Closed,
			"total_pixels", out.Measurement.TotalPixels,
		)
	}
	return out.Measurement, nil
}

// Upload submits one binary image payload as a multipart form and returns
// the stored image address. A success response lacking an address is
// treated as a failure.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadResult{}, err
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/upload", &buf)
	if err != nil {
		return UploadResult{}, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return UploadResult{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return UploadResult{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return UploadResult{}, statusError(data, "upload failed", resp.StatusCode)
	}
	var out UploadResult
	if err := json.Unmarshal(data, &out); err != nil {
		return UploadResult{}, fmt.Errorf("decode upload response: %w", err)
	}
	if out.URL == "" {
		return UploadResult{}, errors.New("upload response missing image address")
	}
	if c.logger != nil {
		c.logger.Info("upload ok", "filename", out.Filename, "url", out.URL)
	}
	return out, nil
}

// statusError surfaces the server's detail text verbatim when present so
// the UI can show it unchanged, otherwise a generic message.
func statusError(body []byte, fallback string, status int) error {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Detail != "" {
		return errors.New(er.Detail)
	}
	return fmt.Errorf("%s: status %d", fallback, status)
}

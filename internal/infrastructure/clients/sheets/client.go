package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Row is one hospital row as published by the sheet API. Numeric columns arrive as strings.
type Row struct {
	ID          string `json:"ID"`
	Name        string `json:"Name"`
	Location    string `json:"Location"`
	Lat         string `json:"Lat"`
	Long        string `json:"Long"`
	Treatment   string `json:"Treatment"`
	Price       string `json:"Price"`
	Rating      string `json:"Rating"`
	Type        string `json:"Type"`
	Description string `json:"Description"`
	BookingLink string `json:"BookingLink,omitempty"`
	Address     string `json:"Address,omitempty"`
	Contact     string `json:"Contact,omitempty"`
	Facilities  string `json:"Facilities,omitempty"`
	Email       string `json:"Email,omitempty"`
}

// BookingRequest is the payload posted to the sheet's booking endpoint
type BookingRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Hospital  string `json:"hospital"`
	Treatment string `json:"treatment,omitempty"`
}

// StatusError is returned when the sheet API answers with a non-2xx status
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sheet api returned status %d", e.StatusCode)
}

type Client interface {
	FetchRows(ctx context.Context) ([]Row, error)
	SubmitBooking(ctx context.Context, req BookingRequest) error
}

type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) FetchRows(ctx context.Context) ([]Row, error) {
	var rows []Row
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint, nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to fetch hospital rows: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) SubmitBooking(ctx context.Context, req BookingRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint+"/booking", bytes.NewReader(payload), nil); err != nil {
		return fmt.Errorf("failed to submit booking: %w", err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, body io.Reader, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

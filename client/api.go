// Package client talks to the camera HTTP API and keeps a local copy of the
// fleet for a dashboard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/devsparksuporte-web/PotencialCameras/models"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type API struct {
	baseURL string
	http    *http.Client
}

// NewAPI returns a client for the server at baseURL. A nil httpClient gets
// a default with a 10s timeout.
func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &API{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    httpClient,
	}
}

func (a *API) List(ctx context.Context) ([]models.Camera, error) {
	var out struct {
		Cameras []models.Camera `json:"cameras"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/cameras", nil, &out); err != nil {
		return nil, err
	}
	if out.Cameras == nil {
		out.Cameras = []models.Camera{}
	}
	return out.Cameras, nil
}

func (a *API) Create(ctx context.Context, form models.CameraFormData) (*models.Camera, error) {
	var out struct {
		Camera *models.Camera `json:"camera"`
	}
	if err := a.do(ctx, http.MethodPost, "/api/cameras", form, &out); err != nil {
		return nil, err
	}
	return out.Camera, nil
}

// Update sends the present fields of patch. The result is nil when the
// server has no camera with the id.
func (a *API) Update(ctx context.Context, id uint, patch models.CameraPatch) (*models.Camera, error) {
	var out struct {
		Camera *models.Camera `json:"camera"`
	}
	if err := a.do(ctx, http.MethodPut, cameraPath(id), patch, &out); err != nil {
		return nil, err
	}
	return out.Camera, nil
}

func (a *API) Delete(ctx context.Context, id uint) error {
	var out struct {
		Success bool `json:"success"`
	}
	if err := a.do(ctx, http.MethodDelete, cameraPath(id), nil, &out); err != nil {
		return err
	}
	if !out.Success {
		return &APIError{Status: http.StatusOK, Message: "delete not acknowledged"}
	}
	return nil
}

func cameraPath(id uint) string {
	return "/api/cameras/" + strconv.FormatUint(uint64(id), 10)
}

func (a *API) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(b, resp.Status)}
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(body []byte, fallback string) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return fallback
}

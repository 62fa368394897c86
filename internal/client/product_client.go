package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"product-catalog/internal/logger"
	"product-catalog/internal/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var ProductAPITracer = otel.Tracer("ProductAPI")

// APIError is a non-success response from the server, carrying the message
// body. Transport failures are returned as plain wrapped errors instead, so
// callers can tell a rejection from an unreachable server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// ProductAPI is a typed client for the product REST surface.
type ProductAPI struct {
	client  *http.Client
	baseURL string
}

func NewProductAPI(baseURL string, timeout time.Duration) *ProductAPI {
	return &ProductAPI{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *ProductAPI) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *ProductAPI) Create(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodPost, "/products", in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *ProductAPI) Update(ctx context.Context, id string, in model.ProductInput) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+id, in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *ProductAPI) Delete(ctx context.Context, id string) (*model.Product, error) {
	var out struct {
		Message        string        `json:"message"`
		DeletedProduct model.Product `json:"deletedProduct"`
	}
	if err := c.do(ctx, http.MethodDelete, "/products/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.DeletedProduct, nil
}

func (c *ProductAPI) do(ctx context.Context, method, path string, body, result any) error {
	ctx, span := ProductAPITracer.Start(ctx, "ProductAPI "+method+" "+path)
	defer span.End()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	req.Header.Set("X-Trace-ID", span.SpanContext().TraceID().String())

	logger.Info(ctx, "ProductAPI request",
		slog.String("method", method),
		slog.String("url", req.URL.String()),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil || payload.Message == "" {
			payload.Message = strings.TrimSpace(string(raw))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

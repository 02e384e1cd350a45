package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/MKhiriev/go-todo-sync/internal/validators"
	"github.com/MKhiriev/go-todo-sync/models"
	"github.com/go-resty/resty/v2"
)

type httpRemoteStore struct {
	client   *utils.HTTPClient
	endpoint string

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs a REST implementation of [RemoteStore] bound
// to endpoint.APIURL. Every request is bounded by adapterCfg.RequestTimeout.
//
// Returns an error if the API URL is empty or cannot be parsed as a valid URL.
func NewHTTPRemoteStore(endpoint config.Endpoint, adapterCfg config.ClientAdapter, log *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(endpoint.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	return &httpRemoteStore{client: client, endpoint: baseURL, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Endpoint implements [RemoteStore].
func (h *httpRemoteStore) Endpoint() string {
	return h.endpoint
}

// List implements [RemoteStore]. It GETs the collection URL and decodes the
// body as an ordered array of items. A null body decodes to an empty
// snapshot.
func (h *httpRemoteStore) List(ctx context.Context) (models.Snapshot, error) {
	const op = "list"

	resp, err := h.request(ctx).Get("")
	if err != nil {
		return nil, newTransportError(op, err)
	}
	if err = mapHTTPError(op, resp); err != nil {
		return nil, err
	}

	var items models.Snapshot
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, &TransportError{Op: op, Kind: KindDecode, StatusCode: resp.StatusCode(), Err: err}
	}

	h.logger.Debug().Int("items", len(items)).Str("endpoint", h.endpoint).Msg("listed items")
	return items.Clone(), nil
}

// Create implements [RemoteStore]. An empty or whitespace-only title is
// rejected with [ErrValidation] before any request is issued.
func (h *httpRemoteStore) Create(ctx context.Context, title string) (models.Item, error) {
	const op = "create"

	title = strings.TrimSpace(title)
	if err := validators.ValidateTitle(title); err != nil {
		return models.Item{}, fmt.Errorf("%s: %w: %w", op, ErrValidation, err)
	}

	var created models.Item
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.CreateItemRequest{Title: title}).
		Post("")
	if err != nil {
		return models.Item{}, newTransportError(op, err)
	}
	if err = mapHTTPError(op, resp); err != nil {
		return models.Item{}, err
	}

	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return models.Item{}, &TransportError{Op: op, Kind: KindDecode, StatusCode: resp.StatusCode(), Err: err}
	}

	h.logger.Debug().Str("id", created.ID.String()).Msg("created item")
	return created, nil
}

// Update implements [RemoteStore]. It PUTs {title, completed} to
// {base}/{id}; partial updates are never sent.
func (h *httpRemoteStore) Update(ctx context.Context, item models.Item) error {
	const op = "update"

	if item.ID == "" {
		return fmt.Errorf("%s: %w: %w", op, ErrValidation, validators.ErrInvalidItemID)
	}

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", item.ID.String()).
		SetBody(models.UpdateItemRequest{Title: item.Title, Completed: item.Completed}).
		Put("/{id}")
	if err != nil {
		return newTransportError(op, err)
	}

	return mapHTTPError(op, resp)
}

// Delete implements [RemoteStore]. It sends DELETE {base}/{id}.
func (h *httpRemoteStore) Delete(ctx context.Context, id models.ItemID) error {
	const op = "delete"

	if id == "" {
		return fmt.Errorf("%s: %w: %w", op, ErrValidation, validators.ErrInvalidItemID)
	}

	resp, err := h.request(ctx).
		SetPathParam("id", id.String()).
		Delete("/{id}")
	if err != nil {
		return newTransportError(op, err)
	}

	return mapHTTPError(op, resp)
}

func (h *httpRemoteStore) request(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetError(&utils.ErrorResponse{})
}

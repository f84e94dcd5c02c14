package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/docsync/userdocs/pkg/constants"
	"github.com/docsync/userdocs/pkg/models"
)

// FetchRecords lists every record visible to token, in server order.
func (c *Client) FetchRecords(ctx context.Context, token string) ([]models.Record, error) {
	if token == "" {
		return nil, &FetchError{Op: "fetch", Reason: reasonFetch, Err: constants.ErrNoToken}
	}

	env, status, err := c.do(ctx, http.MethodGet, constants.FetchPath, token, nil)
	if err == nil {
		err = upstreamError(env)
	}
	if err != nil {
		return nil, &FetchError{Op: "fetch", StatusCode: status, Reason: reasonFetch, Err: err}
	}

	records := []models.Record{}
	if env.hasData() {
		if err := json.Unmarshal(env.Data, &records); err != nil {
			return nil, &FetchError{
				Op:         "fetch",
				StatusCode: status,
				Reason:     reasonFetch,
				Err:        fmt.Errorf("%w: %w", constants.InvalidResponse, err),
			}
		}
	}

	return records, nil
}

// CreateRecord stores a new record and returns it as the server saved it,
// including the id the server assigned.
func (c *Client) CreateRecord(ctx context.Context, token string, record models.Record) (models.Record, error) {
	if token == "" {
		return models.Record{}, &WriteError{Op: "create", Reason: reasonCreate, Err: constants.ErrNoToken}
	}

	env, status, err := c.do(ctx, http.MethodPost, constants.CreatePath, token, record)
	stored, err := decodeRecord(env, err)
	if err != nil {
		return models.Record{}, &WriteError{Op: "create", StatusCode: status, Reason: reasonCreate, Err: err}
	}
	return stored, nil
}

// UpdateRecord replaces the record with the given id and returns the stored result.
func (c *Client) UpdateRecord(ctx context.Context, token, id string, record models.Record) (models.Record, error) {
	if err := checkWrite(token, id); err != nil {
		return models.Record{}, &WriteError{Op: "update", ID: id, Reason: reasonUpdate, Err: err}
	}

	env, status, err := c.do(ctx, http.MethodPost, constants.UpdatePath+url.PathEscape(id), token, record)
	stored, err := decodeRecord(env, err)
	if err != nil {
		return models.Record{}, &WriteError{Op: "update", ID: id, StatusCode: status, Reason: reasonUpdate, Err: err}
	}
	return stored, nil
}

// DeleteRecord removes the record with the given id.
func (c *Client) DeleteRecord(ctx context.Context, token, id string) error {
	if err := checkWrite(token, id); err != nil {
		return &WriteError{Op: "delete", ID: id, Reason: reasonDelete, Err: err}
	}

	env, status, err := c.do(ctx, http.MethodPost, constants.DeletePath+url.PathEscape(id), token, nil)
	if err == nil {
		err = upstreamError(env)
	}
	if err != nil {
		return &WriteError{Op: "delete", ID: id, StatusCode: status, Reason: reasonDelete, Err: err}
	}
	return nil
}

func checkWrite(token, id string) error {
	if token == "" {
		return constants.ErrNoToken
	}
	if id == "" {
		return constants.ErrNoRecordID
	}
	return nil
}

func decodeRecord(env *envelope, err error) (models.Record, error) {
	if err != nil {
		return models.Record{}, err
	}
	if err := upstreamError(env); err != nil {
		return models.Record{}, err
	}
	if !env.hasData() {
		return models.Record{}, fmt.Errorf("%w: response has no data", constants.InvalidResponse)
	}

	var record models.Record
	if err := json.Unmarshal(env.Data, &record); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", constants.InvalidResponse, err)
	}
	return record, nil
}

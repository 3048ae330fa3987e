package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

const auditAPIVersion = "7.1-preview.1"

// auditBatchSize is the page size requested from the audit service. The
// service paginates with continuation tokens regardless of batch size, so
// this only bounds the number of round trips.
const auditBatchSize = 1000

// AuditLogsClient implements azdo.AuditLogsClient. Audit logs live on a
// dedicated service with its own hostname, are read-only, and never enter
// the state store.
type AuditLogsClient struct {
	client *Client
}

// List fetches every audit log entry between start and end, following
// continuation tokens until the service reports no more pages.
func (c *AuditLogsClient) List(ctx context.Context, start time.Time, end time.Time) ([]*azdo.AuditLog, error) {
	logs := []*azdo.AuditLog{}
	continuationToken := ""

	for {
		page, token, err := c.page(ctx, start, end, continuationToken)
		if err != nil {
			return nil, err
		}

		logs = append(logs, page...)

		if token == "" {
			return logs, nil
		}

		continuationToken = token
	}
}

// ListByArea returns the entries between start and end whose area matches,
// such as "Git" or "Pipelines".
func (c *AuditLogsClient) ListByArea(ctx context.Context, area string, start time.Time, end time.Time) ([]*azdo.AuditLog, error) {
	logs, err := c.List(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return filter(logs, func(l *azdo.AuditLog) bool { return l.Area == area }), nil
}

// ListByCategory returns the entries between start and end whose category
// matches, such as "modify" or "remove".
func (c *AuditLogsClient) ListByCategory(ctx context.Context, category string, start time.Time, end time.Time) ([]*azdo.AuditLog, error) {
	logs, err := c.List(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return filter(logs, func(l *azdo.AuditLog) bool { return l.Category == category }), nil
}

// ListByScopeType returns the entries between start and end whose scope type
// matches, such as "organization" or "project".
func (c *AuditLogsClient) ListByScopeType(ctx context.Context, scopeType string, start time.Time, end time.Time) ([]*azdo.AuditLog, error) {
	logs, err := c.List(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return filter(logs, func(l *azdo.AuditLog) bool { return strings.EqualFold(l.ScopeType, scopeType) }), nil
}

func (c *AuditLogsClient) page(ctx context.Context, start time.Time, end time.Time, continuationToken string) ([]*azdo.AuditLog, string, error) {
	query := url.Values{}
	query.Set("batchSize", fmt.Sprint(auditBatchSize))
	query.Set("startTime", start.Format(time.RFC3339))
	query.Set("endTime", end.Format(time.RFC3339))
	query.Set("api-version", auditAPIVersion)

	if continuationToken != "" {
		query.Set("continuationToken", continuationToken)
	}

	rawURL := c.client.auditPrefix + "/_apis/audit/auditlog"

	resp, err := c.client.session.Get(ctx, rawURL, query)
	if err != nil {
		return nil, "", fmt.Errorf("fetching audit logs: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, "", &azdo.PermissionError{Kind: azdo.KindAuditLog, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, "", &azdo.RequestError{Kind: azdo.KindAuditLog, Operation: "listing", StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var envelope struct {
		DecoratedAuditLogEntries []*azdo.AuditLog `json:"decoratedAuditLogEntries"`
		HasMore                  bool             `json:"hasMore"`
		ContinuationToken        string           `json:"continuationToken"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, "", fmt.Errorf("parsing audit log page: %w", err)
	}

	if !envelope.HasMore {
		return envelope.DecoratedAuditLogEntries, "", nil
	}

	return envelope.DecoratedAuditLogEntries, envelope.ContinuationToken, nil
}

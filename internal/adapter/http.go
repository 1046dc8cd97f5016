package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-list-keeper/internal/config"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/utils"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client  *utils.HTTPClient
	baseURL string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter returns the resty implementation of [ServerAdapter].
// A base URL without a scheme is treated as http.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("api call")
		return nil
	})

	return &httpServerAdapter{client: client, baseURL: baseURL, logger: logger}, nil
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

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.Token, error) {
	return h.authenticate(ctx, "/api/user/register", user)
}

func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	return h.authenticate(ctx, "/api/user/login", user)
}

// authenticate posts credentials and keeps the bearer token from the
// Authorization response header.
func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(user).
		Post(path)
	if err != nil {
		return models.Token{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("%s parse bearer token: %w", path, err)
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("%s parse user id: %w", path, err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: userID}, nil
}

func (h *httpServerAdapter) GetVersion(ctx context.Context) (models.AppInfo, error) {
	return call[models.AppInfo](h.client.R().SetContext(ctx), http.MethodGet, "/api/version/")
}

func (h *httpServerAdapter) GetProfile(ctx context.Context) (models.Profile, error) {
	return callAuthed[models.Profile](ctx, h, http.MethodGet, "/api/profile", nil)
}

func (h *httpServerAdapter) UpsertProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	return callAuthed[models.Profile](ctx, h, http.MethodPut, "/api/profile", profile)
}

func (h *httpServerAdapter) GetLists(ctx context.Context) ([]models.List, error) {
	return callAuthed[[]models.List](ctx, h, http.MethodGet, "/api/lists", nil)
}

func (h *httpServerAdapter) CreateList(ctx context.Context, list models.List) (models.List, error) {
	return callAuthed[models.List](ctx, h, http.MethodPost, "/api/lists", list)
}

func (h *httpServerAdapter) GetList(ctx context.Context, listID int64) (models.List, error) {
	return callAuthed[models.List](ctx, h, http.MethodGet, listPath(listID, ""), nil)
}

func (h *httpServerAdapter) UpdateList(ctx context.Context, update models.ListUpdate) (models.List, error) {
	return callAuthed[models.List](ctx, h, http.MethodPatch, listPath(update.ID, ""), update)
}

func (h *httpServerAdapter) DeleteList(ctx context.Context, listID int64) error {
	return h.callNoContent(ctx, http.MethodDelete, listPath(listID, ""))
}

// migrationFailure is the body the server sends when a schema migration
// stops part way.
type migrationFailure struct {
	Error     string                 `json:"error"`
	Migration models.MigrationResult `json:"migration"`
}

func (h *httpServerAdapter) UpdateListFields(ctx context.Context, update models.ListFieldsUpdate) (models.SchemaUpdate, error) {
	resp, err := h.authedRequest(ctx).
		SetBody(update).
		Put(listPath(update.ListID, "/fields"))
	if err != nil {
		return models.SchemaUpdate{}, fmt.Errorf("update list fields request: %w", err)
	}

	if err = mapHTTPError(resp); err != nil {
		var failure migrationFailure
		if json.Unmarshal(resp.Body(), &failure) == nil && failure.Migration.JobID != 0 {
			return models.SchemaUpdate{Migration: failure.Migration}, fmt.Errorf("%w (job %d)", err, failure.Migration.JobID)
		}
		return models.SchemaUpdate{}, err
	}

	var result models.SchemaUpdate
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.SchemaUpdate{}, fmt.Errorf("decode schema update: %w", err)
	}
	return result, nil
}

func (h *httpServerAdapter) AnalyzeFields(ctx context.Context, update models.ListFieldsUpdate) ([]models.FieldChange, error) {
	return callAuthed[[]models.FieldChange](ctx, h, http.MethodPost, listPath(update.ListID, "/fields/analyze"), update)
}

func (h *httpServerAdapter) UploadListIcon(ctx context.Context, listID int64, fileName string, data []byte) (models.List, error) {
	req := h.authedRequest(ctx).SetFileReader("file", fileName, bytes.NewReader(data))
	return call[models.List](req, http.MethodPost, listPath(listID, "/icon"))
}

// GetEntries sends only the filter fields that differ from their zero value.
func (h *httpServerAdapter) GetEntries(ctx context.Context, filter models.EntryFilter) ([]models.Entry, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.MinRating != nil {
		query.Set("min_rating", strconv.FormatFloat(*filter.MinRating, 'f', -1, 64))
	}
	if filter.OrderBy != "" {
		query.Set("order_by", filter.OrderBy)
	}
	if filter.Descending {
		query.Set("desc", "true")
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.FormatUint(filter.Limit, 10))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.FormatUint(filter.Offset, 10))
	}

	req := h.authedRequest(ctx).SetQueryParamsFromValues(query)
	return call[[]models.Entry](req, http.MethodGet, listPath(filter.ListID, "/entries"))
}

func (h *httpServerAdapter) CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	return callAuthed[models.Entry](ctx, h, http.MethodPost, listPath(entry.ListID, "/entries"), entry)
}

func (h *httpServerAdapter) GetEntry(ctx context.Context, entryID int64) (models.Entry, error) {
	return callAuthed[models.Entry](ctx, h, http.MethodGet, entryPath(entryID, ""), nil)
}

func (h *httpServerAdapter) GetRecentEntries(ctx context.Context, limit uint64) ([]models.Entry, error) {
	req := h.authedRequest(ctx)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.FormatUint(limit, 10))
	}
	return call[[]models.Entry](req, http.MethodGet, "/api/entries/recent")
}

func (h *httpServerAdapter) UpdateEntry(ctx context.Context, update models.EntryUpdate) (models.Entry, error) {
	return callAuthed[models.Entry](ctx, h, http.MethodPatch, entryPath(update.ID, ""), update)
}

func (h *httpServerAdapter) DeleteEntry(ctx context.Context, entryID int64) error {
	return h.callNoContent(ctx, http.MethodDelete, entryPath(entryID, ""))
}

func (h *httpServerAdapter) GetRatingDisplay(ctx context.Context, entryID int64) (models.RatingDisplay, error) {
	return callAuthed[models.RatingDisplay](ctx, h, http.MethodGet, entryPath(entryID, "/rating"), nil)
}

func (h *httpServerAdapter) ShareList(ctx context.Context, listID int64) (models.SharedList, error) {
	return callAuthed[models.SharedList](ctx, h, http.MethodPost, listPath(listID, "/share"), nil)
}

func (h *httpServerAdapter) UnshareList(ctx context.Context, listID int64) error {
	return h.callNoContent(ctx, http.MethodDelete, listPath(listID, "/share"))
}

func (h *httpServerAdapter) GetSharedList(ctx context.Context, code string) (models.SharedListView, error) {
	return call[models.SharedListView](h.client.R().SetContext(ctx), http.MethodGet, "/api/shared/"+url.PathEscape(code))
}

func (h *httpServerAdapter) Subscribe(ctx context.Context, listID int64) (models.ListSubscription, error) {
	return callAuthed[models.ListSubscription](ctx, h, http.MethodPost, listPath(listID, "/subscription"), nil)
}

func (h *httpServerAdapter) Unsubscribe(ctx context.Context, listID int64) error {
	return h.callNoContent(ctx, http.MethodDelete, listPath(listID, "/subscription"))
}

func (h *httpServerAdapter) GetSubscriptions(ctx context.Context) ([]models.ListSubscription, error) {
	return callAuthed[[]models.ListSubscription](ctx, h, http.MethodGet, "/api/subscriptions", nil)
}

func (h *httpServerAdapter) GetMigrationJob(ctx context.Context, jobID int64) (models.MigrationJob, error) {
	return callAuthed[models.MigrationJob](ctx, h, http.MethodGet, fmt.Sprintf("/api/migrations/%d", jobID), nil)
}

func (h *httpServerAdapter) ResumeMigration(ctx context.Context, jobID int64) (models.MigrationResult, error) {
	return callAuthed[models.MigrationResult](ctx, h, http.MethodPost, fmt.Sprintf("/api/migrations/%d/resume", jobID), nil)
}

func (h *httpServerAdapter) StreamEvents(ctx context.Context, handle func(models.EntityChanged)) error {
	token := h.Token()
	if token == "" {
		return ErrNoToken
	}

	wsURL := "ws" + strings.TrimPrefix(h.baseURL, "http") + "/api/events"
	conn, resp, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: http.Header{"Authorization": []string{"Bearer " + token}},
	})
	if err != nil {
		if resp != nil {
			if statusErr := mapStatus(resp.StatusCode, nil); statusErr != nil {
				return statusErr
			}
		}
		return fmt.Errorf("events dial: %w", err)
	}
	defer conn.CloseNow()

	for {
		var evt models.EntityChanged
		if err = wsjson.Read(ctx, conn, &evt); err != nil {
			if ctx.Err() != nil || websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return nil
			}
			return fmt.Errorf("events read: %w", err)
		}
		handle(evt)
	}
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (h *httpServerAdapter) callNoContent(ctx context.Context, method, path string) error {
	resp, err := h.authedRequest(ctx).Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", method, path, err)
	}
	return mapHTTPError(resp)
}

func callAuthed[T any](ctx context.Context, h *httpServerAdapter, method, path string, body any) (T, error) {
	req := h.authedRequest(ctx)
	if body != nil {
		req.SetBody(body)
	}
	return call[T](req, method, path)
}

// call executes req and decodes a 2xx JSON body into T.
func call[T any](req *resty.Request, method, path string) (T, error) {
	var result T

	resp, err := req.Execute(method, path)
	if err != nil {
		return result, fmt.Errorf("%s %s request: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return result, err
	}

	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return result, fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return result, nil
}

func listPath(listID int64, suffix string) string {
	return fmt.Sprintf("/api/lists/%d%s", listID, suffix)
}

func entryPath(entryID int64, suffix string) string {
	return fmt.Sprintf("/api/entries/%d%s", entryID, suffix)
}

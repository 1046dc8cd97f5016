package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-list-keeper/internal/adapter"
	"github.com/MKhiriev/go-list-keeper/internal/render"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	adapter.ServerAdapter

	token   string
	filters []models.EntryFilter
	updates []models.EntryUpdate
}

func (f *fakeServer) SetToken(token string) { f.token = token }
func (f *fakeServer) Token() string         { return f.token }

func (f *fakeServer) Login(_ context.Context, user models.User) (models.Token, error) {
	if user.Password != "secret" {
		return models.Token{}, adapter.ErrUnauthorized
	}
	f.token = "signed-token"
	return models.Token{SignedString: f.token}, nil
}

func (f *fakeServer) GetList(_ context.Context, listID int64) (models.List, error) {
	return models.List{ID: listID, Name: "Restaurants", RatingType: models.RatingStars}, nil
}

func (f *fakeServer) GetEntries(_ context.Context, filter models.EntryFilter) ([]models.Entry, error) {
	f.filters = append(f.filters, filter)
	return []models.Entry{{ID: 1, ListID: filter.ListID, Name: "Pho Bar"}}, nil
}

func (f *fakeServer) UpdateEntry(_ context.Context, update models.EntryUpdate) (models.Entry, error) {
	f.updates = append(f.updates, update)
	return models.Entry{ID: update.ID}, nil
}

func (f *fakeServer) GetRatingDisplay(context.Context, int64) (models.RatingDisplay, error) {
	return models.RatingDisplay{Type: models.RatingPoints, Text: "80 / 100"}, nil
}

func (f *fakeServer) ShareList(_ context.Context, listID int64) (models.SharedList, error) {
	return models.SharedList{ListID: listID, ShareCode: "abc123"}, nil
}

func newTestCommands(t *testing.T) (*commands, *fakeServer, *bytes.Buffer) {
	t.Helper()
	server := &fakeServer{}
	out := &bytes.Buffer{}
	return &commands{
		server:    server,
		theme:     render.NewTheme(lipgloss.NewRenderer(out)),
		out:       out,
		tokenFile: filepath.Join(t.TempDir(), "token"),
		baseURL:   "http://localhost:8080/",
	}, server, out
}

func TestRun_Usage(t *testing.T) {
	c, _, _ := newTestCommands(t)

	assert.ErrorIs(t, c.run(context.Background(), nil), errUsage)
	assert.ErrorIs(t, c.run(context.Background(), []string{"login", "only-login"}), errUsage)
}

func TestRun_RequiresLogin(t *testing.T) {
	c, _, _ := newTestCommands(t)

	err := c.run(context.Background(), []string{"lists"})

	assert.ErrorIs(t, err, adapter.ErrNoToken)
}

func TestRun_LoginStoresToken(t *testing.T) {
	c, server, out := newTestCommands(t)

	require.NoError(t, c.run(context.Background(), []string{"login", "ana", "secret"}))

	saved, err := os.ReadFile(c.tokenFile)
	require.NoError(t, err)
	assert.Equal(t, "signed-token", string(saved))
	assert.Contains(t, out.String(), "logged in as ana")

	server.token = ""
	require.NoError(t, c.loadToken())
	assert.Equal(t, "signed-token", server.token)
}

func TestRun_LoginFailure(t *testing.T) {
	c, _, _ := newTestCommands(t)

	err := c.run(context.Background(), []string{"login", "ana", "wrong"})

	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.NoFileExists(t, c.tokenFile)
}

func loggedIn(t *testing.T, c *commands) {
	t.Helper()
	require.NoError(t, os.WriteFile(c.tokenFile, []byte("signed-token\n"), 0o600))
}

func TestRun_List(t *testing.T) {
	c, server, out := newTestCommands(t)
	loggedIn(t, c)

	require.NoError(t, c.run(context.Background(), []string{"list", "7"}))
	require.NoError(t, c.run(context.Background(), []string{"list", "7", "pho", "bar"}))

	require.Len(t, server.filters, 2)
	assert.Equal(t, models.EntryFilter{ListID: 7}, server.filters[0])
	assert.Equal(t, "pho bar", server.filters[1].Search)
	assert.Equal(t, models.EntryOrderRating, server.filters[1].OrderBy)
	assert.Contains(t, out.String(), "Pho Bar")
}

func TestRun_Rate(t *testing.T) {
	c, server, out := newTestCommands(t)
	loggedIn(t, c)

	require.NoError(t, c.run(context.Background(), []string{"rate", "5", "80"}))
	require.NoError(t, c.run(context.Background(), []string{"rate", "5", "none"}))
	assert.ErrorIs(t, c.run(context.Background(), []string{"rate", "5", "lots"}), errBadValue)
	assert.ErrorIs(t, c.run(context.Background(), []string{"rate", "-1", "3"}), errBadValue)

	require.Len(t, server.updates, 2)
	assert.Equal(t, 80.0, *server.updates[0].Rating)
	assert.True(t, server.updates[1].ClearRating)
	assert.Contains(t, out.String(), "80 / 100")
}

func stubClipboard(t *testing.T) {
	original := copyToClipboard
	t.Cleanup(func() { copyToClipboard = original })
}

func TestRun_ShareCopiesLink(t *testing.T) {
	c, _, out := newTestCommands(t)
	loggedIn(t, c)

	stubClipboard(t)
	var copied string
	copyToClipboard = func(text string) error {
		copied = text
		return nil
	}

	require.NoError(t, c.run(context.Background(), []string{"share", "7"}))

	assert.Equal(t, "http://localhost:8080/api/shared/abc123", copied)
	assert.Contains(t, out.String(), "link copied to clipboard")
}

func TestRun_ShareWithoutClipboard(t *testing.T) {
	c, _, out := newTestCommands(t)
	loggedIn(t, c)

	stubClipboard(t)
	copyToClipboard = func(string) error { return errors.New("no clipboard utilities available") }

	require.NoError(t, c.run(context.Background(), []string{"share", "7"}))

	assert.Contains(t, out.String(), "http://localhost:8080/api/shared/abc123")
	assert.Contains(t, out.String(), "copy to clipboard")
}

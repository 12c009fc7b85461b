package ui

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-portal/internal/catalog"
	"game-portal/internal/library"
)

// gameServer serves a catalog with one downloadable game.
func gameServer(t *testing.T, title string) *httptest.Server {
	t.Helper()
	var archive bytes.Buffer
	zw := zip.NewWriter(&archive)
	for name, body := range map[string]string{
		title + "/" + library.LauncherFile: "MZ",
		title + "/cheats/guide.md":         "# Walkthrough",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	games, err := json.Marshal([]catalog.Game{{ID: "1", Title: title, DownloadURL: srv.URL + "/game.zip"}})
	require.NoError(t, err)
	mux.HandleFunc("/games.json", func(w http.ResponseWriter, _ *http.Request) { w.Write(games) }) //nolint:errcheck
	mux.HandleFunc("/game.zip", func(w http.ResponseWriter, _ *http.Request) { w.Write(archive.Bytes()) }) //nolint:errcheck
	return srv
}

type fakeGamePicker struct {
	offered []catalog.Game
	cancel  bool
}

func (p *fakeGamePicker) pick(games []catalog.Game, onPicked func(catalog.Game)) {
	p.offered = games
	if !p.cancel && len(games) > 0 {
		onPicked(games[0])
	}
}

func TestDownloadHiddenWithoutCatalog(t *testing.T) {
	f := newFixture(t)
	f.c.Show(ScreenDeveloper)

	assert.Nil(t, findButton(f.win.Content(), "Download Game"))
}

func TestDownloadGame(t *testing.T) {
	srv := gameServer(t, "Stay Tuned for Danger")
	picker := &fakeGamePicker{}
	games := catalog.New("", srv.URL+"/games.json", zerolog.Nop())
	f := newFixture(t, WithCatalog(games), WithGamePicker(picker.pick))
	f.c.Show(ScreenDeveloper)

	f.tap(t, "Download Game")

	require.Len(t, picker.offered, 1)
	assert.Empty(t, f.notify.errors)
	assert.Equal(t, []string{"Success: Downloaded Stay Tuned for Danger to root directory."}, f.notify.infos)

	f.c.Show(ScreenPlayer)
	rows := gameRows(t, f.win.Content())
	require.Contains(t, rows, "Stay Tuned for Danger")
	assert.NotNil(t, findButton(rows["Stay Tuned for Danger"], "Guide"))

	f.c.Show(ScreenDeveloper)
	f.tap(t, "Download Game")
	require.Len(t, f.notify.errors, 1)
	assert.Equal(t, "Directory already exists.", f.notify.errors[0].Error())
}

func TestDownloadGameCancelled(t *testing.T) {
	srv := gameServer(t, "Message in a Haunted Mansion")
	picker := &fakeGamePicker{cancel: true}
	games := catalog.New("", srv.URL+"/games.json", zerolog.Nop())
	f := newFixture(t, WithCatalog(games), WithGamePicker(picker.pick))
	f.c.Show(ScreenDeveloper)

	f.tap(t, "Download Game")

	assert.Len(t, picker.offered, 1)
	assert.Empty(t, f.notify.errors)
	assert.Empty(t, f.notify.infos)
	entries, err := os.ReadDir(f.lib.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownloadCatalogUnavailable(t *testing.T) {
	picker := &fakeGamePicker{}
	games := catalog.New(filepath.Join(t.TempDir(), catalog.FileName), "", zerolog.Nop())
	f := newFixture(t, WithCatalog(games), WithGamePicker(picker.pick))
	f.c.Show(ScreenDeveloper)

	f.tap(t, "Download Game")

	assert.Nil(t, picker.offered)
	require.Len(t, f.notify.errors, 1)
	assert.Equal(t, "Could not load the game list.", f.notify.errors[0].Error())
	assert.ErrorIs(t, f.notify.errors[0], catalog.ErrUnavailable)
}

func TestDownloadEmptyCatalog(t *testing.T) {
	local := filepath.Join(t.TempDir(), catalog.FileName)
	require.NoError(t, os.WriteFile(local, []byte("[]"), 0644))
	picker := &fakeGamePicker{}
	f := newFixture(t, WithCatalog(catalog.New(local, "", zerolog.Nop())), WithGamePicker(picker.pick))
	f.c.Show(ScreenDeveloper)

	f.tap(t, "Download Game")

	assert.Nil(t, picker.offered)
	assert.Equal(t, []string{"Download Game: No games available."}, f.notify.infos)
}

package mts

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lineStringFeature = `{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[45.6,42.53],[49.758,48]]}}`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// uploadClient builds a client whose token claims the test account, which
// UploadSource requires.
func uploadClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	c := serverClient(t, handler)
	c.token = "sk." + base64.RawURLEncoding.EncodeToString([]byte(`{"u":"user"}`)) + ".sig"
	return c
}

func TestUploadSource(t *testing.T) {
	fixture := writeFixture(t, "feature.geojson", lineStringFeature)

	c := uploadClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/tilesets/v1/sources/user/buildings", r.URL.Path)

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		var lines int
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			var f map[string]interface{}
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &f), "each line must be a JSON feature")
			lines++
		}
		assert.Equal(t, 1, lines)

		w.Write([]byte(`{"id":"mapbox://tileset-source/user/buildings","files":1,"size":152,"size_nice":"152B"}`))
	}))

	src, err := c.UploadSource(context.Background(), "buildings", []string{fixture}, UploadSourceOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, src.Files)
	assert.Equal(t, "152B", src.SizeNice)
}

func TestUploadSourceReplaceUsesPut(t *testing.T) {
	fixture := writeFixture(t, "feature.geojson", lineStringFeature)

	c := uploadClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		w.Write([]byte(`{"id":"mapbox://tileset-source/user/buildings","files":1}`))
	}))

	_, err := c.UploadSource(context.Background(), "buildings", []string{fixture}, UploadSourceOptions{Replace: true})
	require.NoError(t, err)
}

func TestUploadSourceRejectsBadID(t *testing.T) {
	c := testClient(t)

	_, err := c.UploadSource(context.Background(), "bad id!", nil, UploadSourceOptions{})
	var idErr *InvalidIDError
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, "source", idErr.Kind)
}

func TestUploadSourceRejectsMismatchedToken(t *testing.T) {
	token := "sk." + base64.RawURLEncoding.EncodeToString([]byte(`{"u":"someoneelse"}`)) + ".sig"
	c, err := New("user", token)
	require.NoError(t, err)

	_, err = c.UploadSource(context.Background(), "buildings", nil, UploadSourceOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestUploadSourceValidatesFeatures(t *testing.T) {
	fixture := writeFixture(t, "empty.geojson",
		`{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[]}}`)

	c := uploadClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	_, err := c.UploadSource(context.Background(), "buildings", []string{fixture}, UploadSourceOptions{})
	require.Error(t, err)

	// The same file goes through with validation disabled.
	_, err = c.UploadSource(context.Background(), "buildings", []string{fixture}, UploadSourceOptions{SkipValidation: true})
	require.NoError(t, err)
}

func TestGetSource(t *testing.T) {
	c := serverClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tilesets/v1/sources/user/buildings", r.URL.Path)
		w.Write([]byte(`{"id":"mapbox://tileset-source/user/buildings","files":3,"size":1024}`))
	}))

	src, err := c.GetSource(context.Background(), "buildings")
	require.NoError(t, err)
	assert.Equal(t, 3, src.Files)
	assert.Equal(t, int64(1024), src.Size)
}

func TestDeleteSource(t *testing.T) {
	c := serverClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.DeleteSource(context.Background(), "buildings"))
}

func TestListSources(t *testing.T) {
	c := serverClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tilesets/v1/sources/user", r.URL.Path)
		w.Write([]byte(`[{"id":"a"},{"id":"b"}]`))
	}))

	sources, err := c.ListSources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 2)
}

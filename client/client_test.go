package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-directory/config"
	"school-directory/controllers"
	"school-directory/driver"
	"school-directory/models"
)

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	gifBytes = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
	pdfBytes = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
)

type testAPI struct {
	*Client
	server *httptest.Server
	db     interface{ Close() error }
}

// newTestAPI serves the real router over a fresh SQLite store.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	cfg := &config.Config{DBDriver: "sqlite3", DBPath: filepath.Join(t.TempDir(), "schools.db")}
	db, err := driver.ConnectDB(cfg)
	require.NoError(t, err)
	require.NoError(t, driver.Migrate(db, "sqlite3"))

	srv := httptest.NewServer(controllers.NewRouter(db, 8<<20))
	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})
	return &testAPI{Client: New(srv.URL, srv.Client()), server: srv, db: db}
}

func seed(t *testing.T, c *Client, schools ...models.SchoolInput) {
	t.Helper()
	for _, in := range schools {
		_, err := c.CreateSchool(context.Background(), in)
		require.NoError(t, err)
	}
}

func school(name, address, city, state string) models.SchoolInput {
	return models.SchoolInput{Name: name, Address: address, City: city, State: state, Contact: "1234567890"}
}

func TestClientListEmpty(t *testing.T) {
	api := newTestAPI(t)

	schools, err := api.ListSchools(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, schools)
	assert.Empty(t, schools)
}

func TestClientCreateListDelete(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	msg, err := api.CreateSchool(ctx, school("Greenwood High", "12 Park Street", "Pune", "Maharashtra"))
	require.NoError(t, err)
	assert.Equal(t, "School added successfully", msg)

	schools, err := api.ListSchools(ctx)
	require.NoError(t, err)
	require.Len(t, schools, 1)

	msg, err = api.DeleteSchool(ctx, "999")
	require.NoError(t, err)
	assert.Equal(t, "School deleted successfully", msg)
	schools, err = api.ListSchools(ctx)
	require.NoError(t, err)
	assert.Len(t, schools, 1)

	_, err = api.DeleteSchool(ctx, strconv.Itoa(schools[0].ID))
	require.NoError(t, err)
	schools, err = api.ListSchools(ctx)
	require.NoError(t, err)
	assert.Empty(t, schools)
}

func TestClientAPIError(t *testing.T) {
	api := newTestAPI(t)

	_, err := api.CreateSchool(context.Background(), models.SchoolInput{Name: "Only a name"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Missing required fields", apiErr.Message)
	assert.True(t, IsAPIError(err))
}

func TestClientStoreErrorCarriesDetail(t *testing.T) {
	api := newTestAPI(t)
	require.NoError(t, api.db.Close())

	_, err := api.ListSchools(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Failed to fetch schools", apiErr.Message)
	assert.Equal(t, "sql: database is closed", apiErr.Detail)
}

func TestClientTransportError(t *testing.T) {
	api := newTestAPI(t)
	api.server.Close()

	_, err := api.ListSchools(context.Background())
	require.Error(t, err)
	assert.False(t, IsAPIError(err))
}

func TestClientNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL+"/", nil).ListSchools(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Message)
}

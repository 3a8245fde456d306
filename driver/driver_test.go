package driver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-directory/config"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{DBDriver: "sqlite3", DBPath: filepath.Join(t.TempDir(), "schools.db")}
}

func TestConnectAndMigrate(t *testing.T) {
	db, err := ConnectDB(sqliteConfig(t))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, "sqlite3"))
	// already at the latest version
	require.NoError(t, Migrate(db, "sqlite3"))

	_, err = db.Exec(`INSERT INTO schools (name, address, city, state, contact) VALUES ('A', 'B', 'C', 'D', '1234567890')`)
	require.NoError(t, err)

	var id int
	var emailID, facilities interface{}
	require.NoError(t, db.QueryRow(`SELECT id, email_id, facilities FROM schools`).Scan(&id, &emailID, &facilities))
	assert.Equal(t, 1, id)
	assert.Nil(t, facilities)
}

func TestIDsAreNotReused(t *testing.T) {
	db, err := ConnectDB(sqliteConfig(t))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(db, "sqlite3"))

	insert := `INSERT INTO schools (name, address, city, state, contact) VALUES ('A', 'B', 'C', 'D', '1234567890')`
	_, err = db.Exec(insert)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM schools WHERE id = 1`)
	require.NoError(t, err)
	res, err := db.Exec(insert)
	require.NoError(t, err)

	id, err := res.LastInsertId()
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

func TestMigrateUnsupportedDriver(t *testing.T) {
	db, err := ConnectDB(sqliteConfig(t))
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, Migrate(db, "postgres"))
}

func TestConnectDBUnknownDriver(t *testing.T) {
	_, err := ConnectDB(&config.Config{DBDriver: "nope"})
	assert.Error(t, err)
}

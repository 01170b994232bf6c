// Package testutil - общие помощники для тестов: in-memory база,
// фикстуры и запись отправленных писем.
package testutil

import (
	"fmt"
	"testing"

	"collabhub_backend/internal/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB открывает отдельную in-memory базу SQLite на тест и мигрирует схему.
// Пул ограничен одним соединением: транзакция держит его целиком, поэтому код
// внутри db.Transaction не должен обращаться к внешнему *gorm.DB.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig("test"))
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db), "migrate schema")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

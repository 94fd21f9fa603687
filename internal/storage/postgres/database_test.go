package postgres

import (
	"testing"

	"github.com/VitaminP8/linkery/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDBWithConnection(t *testing.T) {
	// Сохраняем текущее значение DB
	originalDB := DB
	defer InitDBWithConnection(originalDB)

	// Создаем тестовую БД
	testDB, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer testDB.Close()

	// Устанавливаем соединение через функцию
	InitDBWithConnection(testDB)

	// GetDB и глобальная DB указывают на тестовое соединение
	assert.Equal(t, testDB, DB)
	assert.Equal(t, testDB, GetDB())
}

func TestMigrationCreatesDomainTables(t *testing.T) {
	originalDB := DB
	defer InitDBWithConnection(originalDB)

	testDB, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer testDB.Close()

	err = testDB.AutoMigrate(&models.User{}, &models.Link{}, &models.Vote{}).Error
	require.NoError(t, err)

	assert.True(t, testDB.HasTable(&models.User{}))
	assert.True(t, testDB.HasTable(&models.Link{}))
	assert.True(t, testDB.HasTable(&models.Vote{}))
}

// CloseDB с незаданным соединением не должен падать
func TestCloseDBWithNilDB(t *testing.T) {
	originalDB := DB
	DB = nil
	defer InitDBWithConnection(originalDB)

	err := CloseDB()
	assert.NoError(t, err)
}

// Примечание: Тесты InitDB с реальным подключением не включены, так как они требуют настоящую PostgreSQL базу данных.

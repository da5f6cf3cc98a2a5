package request

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taimeline/taimeline-service/migrations"
)

// Каждая колонка, которую репозиторий читает и пишет, должна быть
// объявлена в схеме таблицы booking_requests
func TestRequestColumns_MatchSchema(t *testing.T) {
	ddl := bookingRequestsDDL(t)

	for _, column := range requestColumns {
		pattern := regexp.MustCompile(fmt.Sprintf(`(?m)^\s+%s\s`, regexp.QuoteMeta(column)))
		require.True(t, pattern.MatchString(ddl),
			"колонка %q отсутствует в определении таблицы booking_requests", column)
	}
}

// bookingRequestsDDL вырезает определение таблицы booking_requests из миграции
func bookingRequestsDDL(t *testing.T) string {
	t.Helper()

	raw, err := migrations.FS.ReadFile("000001_init.up.sql")
	require.NoError(t, err)

	tableRe := regexp.MustCompile(`(?s)CREATE TABLE booking_requests \(.*?\n\);`)
	match := tableRe.FindString(string(raw))
	require.NotEmpty(t, match, "таблица booking_requests не найдена в миграции")

	return match
}

package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func memOpts() Opts {
	return Opts{
		Driver:       "sqlite",
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}
}

func TestProviderLazyOpenOnce(t *testing.T) {
	calls := 0
	p := NewProvider(memOpts(), func(db *gorm.DB) error {
		calls++
		return Migrate(db)
	})
	assert.Equal(t, 0, calls, "nothing opened before first use")

	a, err := p.DB(context.Background())
	require.NoError(t, err)
	b, err := p.DB(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, a.Migrator().HasTable("posts"))
	assert.True(t, b.Migrator().HasTable("users"))

	require.NoError(t, p.Close())
	_, err = p.DB(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestProviderUnsupportedDriver(t *testing.T) {
	p := NewProvider(Opts{Driver: "oracle"}, nil)
	_, err := p.DB(context.Background())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
	// 失败不缓存
	_, err = p.DB(context.Background())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNormalizeMySQLDSN(t *testing.T) {
	got := normalizeMySQLDSN("jdbc:mysql://root:pw@db:3306/ace?useSSL=false&serverTimezone=UTC", "", "")
	assert.Equal(t, "root:pw@tcp(db:3306)/ace?charset=utf8mb4&loc=UTC&parseTime=true&tls=false", got)

	got = normalizeMySQLDSN("mysql://db:3306/ace", "u", "p")
	assert.Equal(t, "u:p@tcp(db:3306)/ace?charset=utf8mb4&parseTime=true", got)

	raw := "u:p@tcp(db:3306)/ace"
	assert.Equal(t, raw, normalizeMySQLDSN(raw, "x", "y"))
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "root:****@tcp(db)/x", maskDSN("root:pw@tcp(db)/x"))
	assert.Equal(t, "file:x.db", maskDSN("file:x.db"))
}

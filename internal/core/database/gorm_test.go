package database

import (
	"testing"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass string
		wantUser, wantPass   string
		wantAddr, wantDB     string
	}{
		{"native dsn", "root:pw@tcp(db:3306)/shop", "", "", "root", "pw", "db:3306", "shop"},
		{"url form", "mysql://root:pw@db:3306/shop", "", "", "root", "pw", "db:3306", "shop"},
		{"overrides win", "mysql://db:3306/glimmr?charset=utf8mb4", "app", "secret", "app", "secret", "db:3306", "glimmr"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dsn, err := mysqlDSN(tc.in, tc.user, tc.pass)
			require.NoError(t, err)
			cfg, err := mysqldrv.ParseDSN(dsn)
			require.NoError(t, err)
			assert.Equal(t, tc.wantUser, cfg.User)
			assert.Equal(t, tc.wantPass, cfg.Passwd)
			assert.Equal(t, tc.wantAddr, cfg.Addr)
			assert.Equal(t, tc.wantDB, cfg.DBName)
			assert.True(t, cfg.ParseTime)
		})
	}

	_, err := mysqlDSN("mysql://%zz", "", "")
	assert.Error(t, err)
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "root:****@tcp(db:3306)/shop", maskDSN("root:pw@tcp(db:3306)/shop"))
	assert.Equal(t, "tcp(db:3306)/shop", maskDSN("tcp(db:3306)/shop"))
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "sqlite"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

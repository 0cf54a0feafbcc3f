package database

import (
	"go.uber.org/zap"

	"ace-marketplace/internal/core/config"
)

// OptsFromConfig 把 db 配置段转成连接参数
func OptsFromConfig(c config.DB, l *zap.Logger) Opts {
	return Opts{
		Driver:             c.Driver,
		DSN:                c.DSN,
		Username:           c.Username,
		Password:           c.Password,
		MaxOpenConns:       c.MaxOpenConns,
		MaxIdleConns:       c.MaxIdleConns,
		ConnMaxLifetimeMin: c.ConnMaxLifetimeMin,
		LogLevel:           c.LogLevel,
		Log:                l,
	}
}

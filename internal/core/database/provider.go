package database

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
)

var ErrClosed = errors.New("database: provider closed")

// Provider 进程级共享连接：首次使用时建立，之后复用；Close 在退出时释放。
// 建连失败不缓存，下一次调用会重试。
type Provider struct {
	opts    Opts
	migrate func(*gorm.DB) error

	mu     sync.Mutex
	db     *gorm.DB
	closed bool
}

func NewProvider(o Opts, migrate func(*gorm.DB) error) *Provider {
	return &Provider{opts: o, migrate: migrate}
}

// FromDB 包装一个已打开的连接（测试、迁移工具）
func FromDB(db *gorm.DB) *Provider { return &Provider{db: db} }

func (p *Provider) DB(ctx context.Context) (*gorm.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	if p.db == nil {
		db, err := NewGorm(p.opts)
		if err != nil {
			return nil, err
		}
		if p.migrate != nil {
			if err := p.migrate(db); err != nil {
				closeDB(db)
				return nil, err
			}
		}
		p.db = db
	}
	return p.db.WithContext(ctx), nil
}

func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.db == nil {
		return nil
	}
	err := closeDB(p.db)
	p.db = nil
	return err
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

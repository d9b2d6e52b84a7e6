// Package orm is a thin chainable wrapper over gorm. It keeps repositories
// terse, adds query-latency metrics, and exposes a read-through cache for
// read-mostly catalog data.
package orm

import (
	"time"

	"gorm.io/gorm"

	"github.com/mcreations/storefront/pkg/cache"
	"github.com/mcreations/storefront/pkg/database"
	"github.com/mcreations/storefront/pkg/metrics"
)

type Query struct {
	db *gorm.DB
}

// DB starts a query chain on the application database.
func DB() *Query {
	return &Query{db: database.DB}
}

// With starts a query chain on an explicit handle — used inside
// transactions and by tests.
func With(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Preload(name string) *Query {
	return &Query{db: q.db.Preload(name)}
}

func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

func (q *Query) Count(n *int64) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Count(n).Error
}

func (q *Query) Create(v interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return q.db.Save(v).Error
}

func (q *Query) Delete(v interface{}) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	return q.db.Delete(v).Error
}

// Pagination describes one page of a larger result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// GetWithPagination runs the query twice: once for the total row count and
// once for the requested page. Page and limit are clamped to sane values.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := q.Count(&total); err != nil {
		return Pagination{}, err
	}

	defer metrics.ObserveDBQuery("select", time.Now())
	err := q.db.Offset((page - 1) * limit).Limit(limit).Find(dest).Error

	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}, err
}

// Cache is a read-through cache for Get: on a hit dest is filled from Redis,
// on a miss the query runs and the result is cached for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	err := q.Get(dest)
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl)
	return nil
}

// Transaction runs fn inside a database transaction; any error rolls the
// whole unit back. The order commit pipeline relies on this for its
// all-or-nothing guarantee.
func Transaction(fn func(tx *gorm.DB) error) error {
	return database.DB.Transaction(fn)
}

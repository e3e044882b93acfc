// Package repository holds the gorm-backed implementations of the domain
// repository interfaces. All multi-row reads sort newest-first unless the
// interface says otherwise; soft-deleted rows stay queryable by primary key
// and disappear only from default list scopes.
package repository

import "math"

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

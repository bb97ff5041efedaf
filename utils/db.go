package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	sharedDB *gorm.DB
	initOnce sync.Once
	dbMu     sync.RWMutex
)

// InitDB stores the process-wide database handle. Later calls are no-ops.
func InitDB(database *gorm.DB) {
	initOnce.Do(func() {
		dbMu.Lock()
		sharedDB = database
		dbMu.Unlock()
	})
}

// GetDB returns the handle stored by InitDB.
func GetDB() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return sharedDB
}

package stor

import (
	"sync/atomic"

	"gorm.io/gorm"
)

var txRetry atomic.Int32

func init() {
	txRetry.Store(3)
}

// SetTxRetry sets how often WithTxRetry attempts a transaction. Values
// below 3 are raised to 3.
func SetTxRetry(n int) {
	if n < 3 {
		n = 3
	}
	txRetry.Store(int32(n))
}

func WithTxRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error

	retryCount := int(txRetry.Load())
	for i := 0; i < retryCount; i++ {
		err = db.Transaction(fn)
		if err == nil {
			break
		}
	}

	return err
}

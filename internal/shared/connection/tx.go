package connection

import (
	"database/sql"

	"gorm.io/gorm"
)

// BindTx returns a gorm handle whose statements execute on tx instead of
// the connection pool, so repository calls join the caller's transaction
// and roll back with it. gorm cannot begin a nested transaction on a
// *sql.Tx, so its default per-write transaction is skipped on the result.
//
// Passing Context forces the session to clone its Statement; without it
// the session shares the parent's Statement and rebinding the ConnPool
// would corrupt the pooled handle.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	session := db.Session(&gorm.Session{NewDB: true, Context: db.Statement.Context})
	session.Statement.ConnPool = tx
	return session
}

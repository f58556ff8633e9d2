// Package testdb opens migrated databases for tests.
//
// By default every call to Open returns a private in-memory SQLite database,
// so store tests need no external services. When TASKAPI_TEST_DATABASE_URL
// points at PostgreSQL, Open instead creates a throwaway schema on that
// server, migrates it, and drops it when the test ends.
//
//	func TestSomething(t *testing.T) {
//	    db, _ := testdb.Open(t)
//	    s := sqldb.NewTaskStore(db, nil)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        // work through s.WithTx(tx); it is rolled back afterwards
//	    })
//	}
package testdb

package sqlite

import "database/sql"

func RunMigrations(db *sql.DB) error {
	stmts := []string{

		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			method TEXT NOT NULL,
			amount TEXT NOT NULL,
			currency TEXT NOT NULL,
			country TEXT NOT NULL DEFAULT '',
			success INTEGER NOT NULL,
			processing_time_ns INTEGER NOT NULL,
			error_code TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);`,

		`CREATE INDEX IF NOT EXISTS idx_transactions_method_created
			ON transactions (method, created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

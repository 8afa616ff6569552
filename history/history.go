/*
Package history keeps a local ledger of training runs so successive runs on
the same data can be compared without re-reading console output.
*/
package history

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go-ml.dev/pkg/zorros"

	"go-ml.dev/pkg/wqnn/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	started    TIMESTAMP NOT NULL,
	samples    INTEGER NOT NULL,
	removed    INTEGER NOT NULL,
	train_size INTEGER NOT NULL,
	test_size  INTEGER NOT NULL,
	iterations INTEGER NOT NULL,
	train_mse  REAL NOT NULL,
	train_mae  REAL NOT NULL,
	train_rmse REAL NOT NULL,
	test_mse   REAL NOT NULL,
	test_mae   REAL NOT NULL,
	test_rmse  REAL NOT NULL
)`

// Store is a sqlite-backed run ledger.
type Store struct {
	db *sql.DB
}

// RunRecord is one training run.
type RunRecord struct {
	Started    time.Time
	Samples    int // valid rows after filtering
	Removed    int // rows dropped by the filter
	TrainSize  int
	TestSize   int
	Iterations int
	Train      model.Metrics
	Test       model.Metrics
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, zorros.Trace(err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Append records one run.
func (s *Store) Append(r RunRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (started, samples, removed, train_size, test_size, iterations,
			train_mse, train_mae, train_rmse, test_mse, test_mae, test_rmse)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Started, r.Samples, r.Removed, r.TrainSize, r.TestSize, r.Iterations,
		r.Train.MSE, r.Train.MAE, r.Train.RMSE,
		r.Test.MSE, r.Test.MAE, r.Test.RMSE)
	if err != nil {
		return zorros.Trace(err)
	}
	return nil
}

// Last returns up to n most recent runs, newest first.
func (s *Store) Last(n int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT started, samples, removed, train_size, test_size, iterations,
			train_mse, train_mae, train_rmse, test_mse, test_mae, test_rmse
		 FROM runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rows.Close()

	var rs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err = rows.Scan(&r.Started, &r.Samples, &r.Removed, &r.TrainSize, &r.TestSize, &r.Iterations,
			&r.Train.MSE, &r.Train.MAE, &r.Train.RMSE,
			&r.Test.MSE, &r.Test.MAE, &r.Test.RMSE); err != nil {
			return nil, zorros.Trace(err)
		}
		rs = append(rs, r)
	}
	if err = rows.Err(); err != nil {
		return nil, zorros.Trace(err)
	}
	return rs, nil
}

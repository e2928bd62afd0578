// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package blockstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteStore is a NodeStore implementation keeping all blocks in a single
// table of an SQLite database file.
type sqliteStore struct {
	db     *sql.DB
	get    *sql.Stmt
	insert *sql.Stmt
}

func newSqliteStore(file string) (_ *sqliteStore, err error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, db.Close())
		}
	}()

	// SQLite serializes writers; a single connection avoids lock contention.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS blocks (id BLOB PRIMARY KEY, data BLOB NOT NULL)`); err != nil {
		return nil, fmt.Errorf("failed to create block table: %w", err)
	}
	get, err := db.Prepare(`SELECT data FROM blocks WHERE id = ?`)
	if err != nil {
		return nil, err
	}
	insert, err := db.Prepare(`INSERT OR REPLACE INTO blocks (id, data) VALUES (?, ?)`)
	if err != nil {
		return nil, errors.Join(err, get.Close())
	}
	return &sqliteStore{db: db, get: get, insert: insert}, nil
}

func (s *sqliteStore) Get(key []byte) ([]byte, error) {
	var data []byte
	err := s.get.QueryRow(key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *sqliteStore) Set(key []byte, value []byte) error {
	_, err := s.insert.Exec(key, value)
	return err
}

func (s *sqliteStore) Flush() error {
	// Every statement is committed in its own implicit transaction.
	return nil
}

func (s *sqliteStore) Close() error {
	return errors.Join(
		s.get.Close(),
		s.insert.Close(),
		s.db.Close(),
	)
}

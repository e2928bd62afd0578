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
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// levelDbStore is a NodeStore implementation using LevelDB.
type levelDbStore struct {
	db *leveldb.DB
}

func newLevelDbStore(path string) (*levelDbStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &levelDbStore{db: db}, nil
}

func (s *levelDbStore) Get(key []byte) ([]byte, error) {
	data, err := s.db.Get(key, &opt.ReadOptions{})
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	if err == leveldb.ErrClosed {
		return nil, ErrClosed
	}
	return data, err
}

func (s *levelDbStore) Set(key []byte, value []byte) error {
	err := s.db.Put(key, value, &opt.WriteOptions{})
	if err == leveldb.ErrClosed {
		return ErrClosed
	}
	return err
}

func (s *levelDbStore) Flush() error {
	// Writes are appended to the LevelDB journal immediately.
	return nil
}

func (s *levelDbStore) Close() error {
	return s.db.Close()
}

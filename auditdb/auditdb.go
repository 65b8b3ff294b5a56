// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auditdb

import (
	"context"
	"database/sql"
	"math/big"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Goodnessmbakara/nomadlink-contract/log"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
)

var logger = log.WithContext("pkg", "auditdb")

const eventTableSchema = `CREATE TABLE IF NOT EXISTS stake_event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	account BLOB(20) NOT NULL,
	stakeIndex INTEGER NOT NULL,
	amount TEXT NOT NULL,
	reward TEXT,
	eventTime INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS stake_event_account ON stake_event(account);`

// Event kinds.
const (
	KindOpened = "opened"
	KindClosed = "closed"
)

// Event one audit entry of the stake ledger.
type Event struct {
	Kind    string
	Account nomad.Address
	Index   uint64
	Amount  *big.Int
	Reward  *big.Int
	Time    uint64
}

// AuditDB records stake lifecycle events into sqlite. It implements the
// vault's Auditor interface; write failures are logged and swallowed, the
// audit trail never vetoes a ledger operation.
type AuditDB struct {
	path string
	db   *sql.DB
}

// New create or open audit db at given path.
func New(path string) (auditDB *AuditDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if auditDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}
	return &AuditDB{path, db}, nil
}

// NewMem create an audit db in ram.
func NewMem() (*AuditDB, error) {
	return New(":memory:")
}

// Close close the audit db.
func (db *AuditDB) Close() {
	db.db.Close()
}

func (db *AuditDB) Path() string {
	return db.path
}

// StakeOpened implements stakevault.Auditor.
func (db *AuditDB) StakeOpened(account nomad.Address, index uint64, amount *big.Int, lockedUntil uint64) {
	db.insert(&Event{
		Kind:    KindOpened,
		Account: account,
		Index:   index,
		Amount:  amount,
		Time:    lockedUntil,
	})
}

// StakeClosed implements stakevault.Auditor.
func (db *AuditDB) StakeClosed(account nomad.Address, index uint64, principal, reward *big.Int, at uint64) {
	db.insert(&Event{
		Kind:    KindClosed,
		Account: account,
		Index:   index,
		Amount:  principal,
		Reward:  reward,
		Time:    at,
	})
}

func (db *AuditDB) insert(ev *Event) {
	var reward any
	if ev.Reward != nil {
		reward = ev.Reward.String()
	}
	_, err := db.db.Exec(
		"INSERT INTO stake_event(kind, account, stakeIndex, amount, reward, eventTime) VALUES(?,?,?,?,?,?)",
		ev.Kind, ev.Account.Bytes(), int64(ev.Index), ev.Amount.String(), reward, int64(ev.Time),
	)
	if err != nil {
		logger.Warn("failed to record audit event", "kind", ev.Kind, "account", ev.Account, "err", err)
	}
}

// EventsOf returns all recorded events of an account, in insertion order.
func (db *AuditDB) EventsOf(ctx context.Context, account nomad.Address) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx,
		"SELECT kind, account, stakeIndex, amount, reward, eventTime FROM stake_event WHERE account = ? ORDER BY seq",
		account.Bytes(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			ev      Event
			acc     []byte
			index   int64
			amount  string
			reward  sql.NullString
			evTime  int64
		)
		if err := rows.Scan(&ev.Kind, &acc, &index, &amount, &reward, &evTime); err != nil {
			return nil, err
		}
		ev.Account = nomad.BytesToAddress(acc)
		ev.Index = uint64(index)
		ev.Amount, _ = new(big.Int).SetString(amount, 10)
		if reward.Valid {
			ev.Reward, _ = new(big.Int).SetString(reward.String, 10)
		}
		ev.Time = uint64(evTime)
		events = append(events, &ev)
	}
	return events, rows.Err()
}

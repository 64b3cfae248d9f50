// Package domain defines the records exchanged between the HTTP layer and the store.
package domain

import "time"

// RecentWindow is the number of most recent commands a digest covers.
const RecentWindow = 500

// Command represents one executed shell command reported by a session.
type Command struct {
	ID        int64     `json:"id"` // assigned by the store on insert
	SessionID string    `json:"session_id"`
	Index     uint32    `json:"index"` // client's own sequence number, not unique
	Command   string    `json:"command"`
	Pwd       string    `json:"pwd"`
	Status    uint32    `json:"status"`
	Timestamp time.Time `json:"timestamp"` // server receipt time, UTC
}

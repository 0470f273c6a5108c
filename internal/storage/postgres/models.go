// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package postgres

import (
	"time"

	"github.com/uptrace/bun"
)

// DBSessionToken represents one stored token of a browser session
type DBSessionToken struct {
	bun.BaseModel `bun:"table:session_tokens,alias:st"`

	SessionID string    `bun:"session_id,pk"`
	Field     string    `bun:"field,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

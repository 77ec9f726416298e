package account

import (
	"time"

	"github.com/google/uuid"
)

// Account links a LINE user to the internal identity embedded in issued tokens.
type Account struct {
	id         uuid.UUID
	lineUserID LineUserID
	createdAt  time.Time
}

func NewAccount(lineUserID LineUserID, createdAt time.Time) *Account {
	return &Account{
		id:         uuid.New(),
		lineUserID: lineUserID,
		createdAt:  createdAt,
	}
}

func ReconstructAccount(id uuid.UUID, lineUserID LineUserID, createdAt time.Time) *Account {
	return &Account{
		id:         id,
		lineUserID: lineUserID,
		createdAt:  createdAt,
	}
}

func (a *Account) ID() uuid.UUID          { return a.id }
func (a *Account) LineUserID() LineUserID { return a.lineUserID }
func (a *Account) CreatedAt() time.Time   { return a.createdAt }

// backend/src/parsers/parser.go
package parsers

import (
	"github.com/username/tradejournal/backend/src/models"
	"github.com/username/tradejournal/backend/src/parsers/mapping"
)

// Parser maps an already-read table of one vendor export to canonical trades.
type Parser interface {
	Profile() mapping.Profile
	Parse(table models.Table, accountID, userID string) (mapping.Result, error)
}

package sqlstore

import (
	"encoding/json"

	"annals/internal/domain"
)

// entryRow holds the columns of an entries query for scanning.
// Column order must match the SELECT lists in every Dialect.
type entryRow struct {
	ID      int64
	Name    string
	Details []byte
}

func (r *entryRow) scanArgs() []any {
	return []any{&r.ID, &r.Name, &r.Details}
}

func (r *entryRow) toDomain() *domain.Entry {
	return &domain.Entry{
		ID:      r.ID,
		Name:    r.Name,
		Details: json.RawMessage(r.Details),
	}
}

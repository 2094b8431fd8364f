package orders

import (
	"sort"
	"time"

	"github.com/and161185/bookdesk/internal/model"
	"github.com/and161185/bookdesk/internal/utils"
)

func NormalizeBlockedUsers(records []model.RawRecord) []model.BlockedUser {
	out := make([]model.BlockedUser, 0, len(records))
	for _, rec := range records {
		id := stringField(rec, "", "identifier", "deviceId", "phone", "ip")
		if id == "" {
			continue
		}
		out = append(out, model.BlockedUser{
			Identifier:     id,
			IdentifierKind: utils.ClassifyIdentifier(id),
			Note:           stringField(rec, "", "note", "reason"),
			BlockedAt:      timeField(rec, time.Time{}, "blockedAt", "createdAt"),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].BlockedAt.After(out[j].BlockedAt) })
	return out
}

package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"bunganutz/internal/domain/member"
)

// seedRoster is the founding family roster created on first boot. IDs are
// fixed so reseeding never duplicates anyone.
var seedRoster = []member.Member{
	{ID: "member-kathy", FirstName: "Kathy"},
	{ID: "member-wayne", FirstName: "Wayne"},
}

// SeedMembersDeps holds dependencies for SeedMembers.
type SeedMembersDeps struct {
	MemberStore MemberStore
}

// ExecuteSeedMembers creates the founding roster entries that do not
// exist yet. Existing entries are left untouched so edits survive
// restarts.
// PRE: none
// POST: Every seed roster id exists
func ExecuteSeedMembers(ctx context.Context, deps SeedMembersDeps) error {
	created := 0
	for _, m := range seedRoster {
		if _, err := deps.MemberStore.GetByID(ctx, m.ID); err == nil {
			continue
		}

		m.CreatedAt = time.Now()
		if err := deps.MemberStore.Save(ctx, m); err != nil {
			return err
		}
		created++
	}

	if created > 0 {
		slog.Info("member_event", "event", "roster_seeded", "created", created)
	}
	return nil
}

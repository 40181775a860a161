package models

// GuildRelation identifies one of the three guild-to-user reference sets.
// Each relation is backed by its own junction table; a (guild, user) pair
// appears at most once per relation but may appear in any subset of the
// three at the same time.
type GuildRelation string

const (
	RelationMember    GuildRelation = "member"
	RelationAdmin     GuildRelation = "admin"
	RelationBlacklist GuildRelation = "blacklist"
)

// Valid reports whether r is one of the known relations.
func (r GuildRelation) Valid() bool {
	switch r {
	case RelationMember, RelationAdmin, RelationBlacklist:
		return true
	}
	return false
}

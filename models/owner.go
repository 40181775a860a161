package models

// Owner is a standalone allowlist entry for an application administrator.
type Owner struct {
	OwnerID   int64  `db:"owner_id"`
	OwnerName string `db:"owner_name"`
}

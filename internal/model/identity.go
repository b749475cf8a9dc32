package model

// Identity is the acting party of a call. It has exactly two variants, Owner and
// Guest; use a type switch to tell them apart.
type Identity interface {
	// DatasetOwner returns the owner id whose dataset this identity addresses.
	DatasetOwner() string
	// CanEdit reports whether the identity may add or delete records.
	CanEdit() bool

	isIdentity()
}

// Owner acts on its own dataset with full rights.
type Owner struct {
	ID    string
	Label string
}

func (o Owner) DatasetOwner() string { return o.ID }
func (Owner) CanEdit() bool          { return true }
func (Owner) isIdentity()            {}

// Guest acts on someone else's dataset through a share token. GuestID is fresh on
// every resolution and never persisted.
type Guest struct {
	GuestID    string
	OwnerID    string
	Permission Permission
	OwnerLabel string
}

func (g Guest) DatasetOwner() string { return g.OwnerID }
func (g Guest) CanEdit() bool        { return g.Permission.CanEdit() }
func (Guest) isIdentity()            {}

// OwnerLabelFor renders the human-readable label guests see for an owner.
func OwnerLabelFor(ownerID string) string {
	return "user " + ownerID
}

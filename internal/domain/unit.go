package domain

// Unit represents a rentable property (cabin, apartment) of a tenant.
// Capacity is read-only for the engine; units are managed by the CRUD layer.
type Unit struct {
	ID       string
	TenantID string
	Name     string
	Capacity int
}

// Fits returns true if the unit alone can host the party
func (u *Unit) Fits(occupants int) bool {
	return u.Capacity >= occupants
}

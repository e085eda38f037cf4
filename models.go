package registry

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Owner is the vehicle owner model. The password hash never leaves the
// process: it is excluded from JSON and from the public profile.
type Owner struct {
	bun.BaseModel `bun:"table:vehicle_owners,alias:own"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Document      string     `bun:"document,notnull,unique" json:"document,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Address       string     `bun:"address" json:"address,omitempty"`
	State         string     `bun:"state" json:"state,omitempty"`
	City          string     `bun:"city" json:"city,omitempty"`
	Phone         string     `bun:"phone" json:"phone,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`

	Vehicles []*Vehicle `bun:"rel:has-many,join:id=owner_id" json:"vehicles,omitempty"`
}

// PublicProfile returns the owner attributes that are safe to embed in
// tokens and API responses.
func (o *Owner) PublicProfile() OwnerProfile {
	if o == nil {
		return OwnerProfile{}
	}
	return OwnerProfile{
		ID:       o.ID.String(),
		Document: o.Document,
		Email:    o.Email,
		Address:  o.Address,
		State:    o.State,
		City:     o.City,
		Phone:    o.Phone,
	}
}

// OwnerProfile is the public projection of an Owner. It is what tokens
// carry and what /vehicle_owners/me returns.
type OwnerProfile struct {
	ID       string `json:"id,omitempty"`
	Document string `json:"document,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	State    string `json:"state,omitempty"`
	City     string `json:"city,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Vehicle belongs to exactly one Owner and is only reachable through the
// owning account's credentials.
type Vehicle struct {
	bun.BaseModel `bun:"table:vehicles,alias:veh"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	OwnerID       uuid.UUID `bun:"owner_id,notnull,type:uuid" json:"owner_id,omitempty"`
	Owner         *Owner    `bun:"rel:belongs-to,join:owner_id=id" json:"-"`

	LicensePlate      string `bun:"license_plate,notnull" json:"license_plate"`
	LicensePlateCity  string `bun:"license_plate_city" json:"license_plate_city"`
	LicensePlateState string `bun:"license_plate_state" json:"license_plate_state"`
	Type              string `bun:"v_type" json:"v_type"`
	Make              string `bun:"v_make" json:"v_make"`
	Color             string `bun:"color" json:"color"`
	Year              int    `bun:"year" json:"year"`
	Renavam           string `bun:"renavam" json:"renavam"`
	Chassis           string `bun:"chassis" json:"chassis"`
	AxlesNumber       int    `bun:"axles_number" json:"axles_number"`

	DateCreated     *time.Time `bun:"date_created,nullzero,default:current_timestamp" json:"date_created,omitempty"`
	DateLastUpdated *time.Time `bun:"date_last_updated,nullzero,default:current_timestamp" json:"date_last_updated,omitempty"`
}

// Overwrite replaces every mutable field with the values from src and
// refreshes the last-updated stamp. Vehicle updates are full replaces,
// never partial patches.
func (v *Vehicle) Overwrite(src *Vehicle) {
	v.LicensePlate = src.LicensePlate
	v.LicensePlateCity = src.LicensePlateCity
	v.LicensePlateState = src.LicensePlateState
	v.Type = src.Type
	v.Make = src.Make
	v.Color = src.Color
	v.Year = src.Year
	v.Renavam = src.Renavam
	v.Chassis = src.Chassis
	v.AxlesNumber = src.AxlesNumber
	now := time.Now()
	v.DateLastUpdated = &now
}

package models

import "time"

// PropertyType is the closed set of property categories a listing can have.
type PropertyType string

const (
	PropertyTypePlot     PropertyType = "plot"
	PropertyTypeBuilding PropertyType = "building"
)

// Valid reports whether the property type is one of the two known values.
func (t PropertyType) Valid() bool {
	return t == PropertyTypePlot || t == PropertyTypeBuilding
}

// ListingStatus tracks the moderation state of a listing.
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
)

// Utilities describes which utility connections a property has.
type Utilities struct {
	Water       bool `bson:"water" json:"water"`
	Electricity bool `bson:"electricity" json:"electricity"`
	Sewer       bool `bson:"sewer" json:"sewer"`
	Gas         bool `bson:"gas" json:"gas"`
}

// ListingOwner identifies the user who registered a listing.
type ListingOwner struct {
	Email    string `bson:"email" json:"email"`
	Name     string `bson:"name" json:"name"`
	PhotoURL string `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
}

// Listing is a single property-for-lease record stored in the document store.
//
// LeaseType is deliberately free text (e.g. "Lease", "Long-term rental",
// "Rental with Option to buy") and is matched by keyword heuristics in the
// search package, not by enum equality.
type Listing struct {
	ID          string       `bson:"_id,omitempty" json:"id"`
	Type        PropertyType `bson:"type" json:"type"`
	Location    string       `bson:"location" json:"location"`
	Title       string       `bson:"title" json:"title"`
	Description string       `bson:"description" json:"description"`
	Price       float64      `bson:"price" json:"price"`
	LeaseType   string       `bson:"leaseType" json:"leaseType"`
	Utilities   Utilities    `bson:"utilities" json:"utilities"`

	Accessibility  string   `bson:"accessibility,omitempty" json:"accessibility,omitempty"`
	PublicLighting bool     `bson:"publicLighting" json:"publicLighting"`
	Sidewalk       bool     `bson:"sidewalk" json:"sidewalk"`
	Photos         []string `bson:"photos" json:"photos"`

	// FullValue is only set when LeaseType is "Rental with Option to buy".
	FullValue *float64 `bson:"fullValueOfProperty,omitempty" json:"fullValueOfProperty,omitempty"`

	// DevelopmentPlan applies to plots, BuildingType to buildings.
	DevelopmentPlan []string `bson:"developmentPlan,omitempty" json:"developmentPlan,omitempty"`
	BuildingType    string   `bson:"buildingType,omitempty" json:"buildingType,omitempty"`

	Status     ListingStatus `bson:"status" json:"status"`
	ApprovedAt *time.Time    `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	ApprovedBy string        `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	RejectedAt *time.Time    `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
	RejectedBy string        `bson:"rejectedBy,omitempty" json:"rejectedBy,omitempty"`

	CreatedBy ListingOwner `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time    `bson:"createdAt" json:"createdAt"`
}

package model

// RequesterRole identifies the team that asked for a build.
type RequesterRole string

// Requester roles.
const (
	RoleVM    RequesterRole = "VM"    // visual merchandising
	RoleID    RequesterRole = "ID"    // interior design
	RoleSales RequesterRole = "Sales" // sales / co-worker
)

var rolePriority = map[RequesterRole]int{
	RoleVM:    0,
	RoleID:    1,
	RoleSales: 2,
}

// Priority returns the ranking weight of the role. Lower ranks first and
// unrecognized roles rank after all known ones.
func (r RequesterRole) Priority() int {
	if p, ok := rolePriority[r]; ok {
		return p
	}
	return len(rolePriority)
}

// SizeCategory is the handling size of the item.
type SizeCategory string

// Size categories.
const (
	SizeSmall      SizeCategory = "Small"
	SizeMedium     SizeCategory = "Medium"
	SizeLargeHeavy SizeCategory = "Large/Heavy"
)

// PickupMethod is how the finished build leaves the build room.
type PickupMethod string

// Pickup methods.
const (
	PickupSelfServe PickupMethod = "SS"
	PickupFullServe PickupMethod = "FS"
)

// Flag names an operational annotation that can be toggled on a request.
type Flag string

// Request flags.
const (
	FlagMissingStock Flag = "missingStock"
	FlagLateDelivery Flag = "lateDelivery"
)

// Valid reports whether f is a known flag.
func (f Flag) Valid() bool {
	return f == FlagMissingStock || f == FlagLateDelivery
}

// BuildRequest is a work item on the board. The item fields are a snapshot
// taken at creation; only Status and the flags change afterwards.
type BuildRequest struct {
	ID                string        `json:"id"`
	ArticleNumber     string        `json:"articleNumber"`
	ItemName          string        `json:"itemName"`
	WarehouseLocation string        `json:"warehouseLocation"`
	StockStatus       StockStatus   `json:"stockStatus"`
	ProjectDueDate    Date          `json:"projectDueDate"`
	Status            Status        `json:"status"`
	RequesterRole     RequesterRole `json:"requesterRole"`
	ProjectName       string        `json:"projectName"`
	SizeCategory      SizeCategory  `json:"sizeCategory"`
	PickupMethod      PickupMethod  `json:"pickupMethod"`
	DeliveryWindow    string        `json:"deliveryWindow,omitempty"`
	MissingStock      bool          `json:"missingStock,omitempty"`
	LateDelivery      bool          `json:"lateDelivery,omitempty"`
}

// HasFlag returns the current value of f.
func (r *BuildRequest) HasFlag(f Flag) bool {
	switch f {
	case FlagMissingStock:
		return r.MissingStock
	case FlagLateDelivery:
		return r.LateDelivery
	}
	return false
}

// ToggleFlag flips f and returns the new value.
func (r *BuildRequest) ToggleFlag(f Flag) bool {
	switch f {
	case FlagMissingStock:
		r.MissingStock = !r.MissingStock
		return r.MissingStock
	case FlagLateDelivery:
		r.LateDelivery = !r.LateDelivery
		return r.LateDelivery
	}
	return false
}

// NewBuildRequest is a build request before the store assigns its id and
// initial status.
type NewBuildRequest struct {
	ArticleNumber     string
	ItemName          string
	WarehouseLocation string
	StockStatus       StockStatus
	ProjectName       string
	ProjectDueDate    Date
	RequesterRole     RequesterRole
	SizeCategory      SizeCategory
	PickupMethod      PickupMethod
	DeliveryWindow    string
}

// NewBuildRequestFor copies the item fields of it into a new request.
func NewBuildRequestFor(it Item) NewBuildRequest {
	return NewBuildRequest{
		ArticleNumber:     it.ArticleNumber,
		ItemName:          it.Name,
		WarehouseLocation: it.WarehouseLocation,
		StockStatus:       it.StockStatus,
	}
}

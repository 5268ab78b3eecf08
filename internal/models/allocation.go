package models

// Outcome separates the HR-facing cases of one allocation call:
// no kit (create one), short (restock), already assigned (wait or inspect).
type Outcome string

const (
	OutcomeAssigned          Outcome = "assigned"
	OutcomePartiallyAssigned Outcome = "partially_assigned"
	OutcomeOutOfStock        Outcome = "out_of_stock"
	OutcomeNoKitConfigured   Outcome = "no_kit_configured"
	OutcomeAlreadyAssigned   Outcome = "already_assigned"
	OutcomeStoreUnavailable  Outcome = "store_unavailable"
	OutcomeInvalidRequest    Outcome = "invalid_request"
)

// AssignedAsset is one unit committed by an allocation.
type AssignedAsset struct {
	AssetID     string   `json:"assetId"`
	AssetType   string   `json:"assetType,omitempty"`
	Category    string   `json:"category,omitempty"`
	Line        int      `json:"line"`
	IsEssential bool     `json:"isEssential"`
	Priority    Priority `json:"priority"`
}

// AllocationResult is returned to the onboarding workflow; it is never persisted.
type AllocationResult struct {
	Success            bool            `json:"success"`
	Outcome            Outcome         `json:"outcome"`
	AssignedCount      int             `json:"assignedCount"`
	MissingAssets      []string        `json:"missingAssets"`
	MaintenanceWarning string          `json:"maintenanceWarning,omitempty"`
	KitLabel           string          `json:"kitLabel,omitempty"`
	Assigned           []AssignedAsset `json:"assigned,omitempty"`
	ExistingAssets     []string        `json:"existingAssets,omitempty"`
	Error              string          `json:"error,omitempty"`

	Err error `json:"-"`
}

// AssignmentNotice is handed to the notifier after a successful allocation.
type AssignmentNotice struct {
	EmployeeID         string   `json:"employeeId"`
	EmployeeName       string   `json:"employeeName"`
	AssignedCount      int      `json:"assignedCount"`
	KitLabel           string   `json:"kitLabel"`
	AssetIDs           []string `json:"assetIds,omitempty"`
	MissingAssets      []string `json:"missingAssets,omitempty"`
	MaintenanceWarning string   `json:"maintenanceWarning,omitempty"`
}

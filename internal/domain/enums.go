package domain

// DeliveryRegime identifies who is liable for import duty on a shipment.
// Exactly two regimes exist; code switching on a regime must handle both.
type DeliveryRegime string

const (
	// RegimeDutyPaid (DDP): the seller collects and remits import charges,
	// the buyer pays one all-inclusive price.
	RegimeDutyPaid DeliveryRegime = "ddp"
	// RegimeDutyUnpaid (DDU): the buyer settles import charges at delivery.
	RegimeDutyUnpaid DeliveryRegime = "ddu"
)

// StoreTier is the seller's marketplace subscription level. Higher tiers
// earn a discount on the success-fee rate.
type StoreTier string

const (
	StoreTierNone       StoreTier = "none"
	StoreTierBasic      StoreTier = "basic"
	StoreTierPremium    StoreTier = "premium"
	StoreTierAnchor     StoreTier = "anchor"
	StoreTierEnterprise StoreTier = "enterprise"
)

// StoreTierDiscounts maps each tier to its success-fee rate discount.
var StoreTierDiscounts = map[StoreTier]float64{
	StoreTierNone:       0,
	StoreTierBasic:      0.04,
	StoreTierPremium:    0.06,
	StoreTierAnchor:     0.08,
	StoreTierEnterprise: 0.09,
}

// Confidence labels a regime recommendation.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// UserRole defines the role hierarchy carried in access tokens.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// CalculationStatus records the outcome of an audited calculation.
type CalculationStatus string

const (
	CalculationStatusSucceeded CalculationStatus = "succeeded"
	CalculationStatusFailed    CalculationStatus = "failed"
)

// RecalcJobStatus is the lifecycle of a queued price recalculation.
type RecalcJobStatus string

const (
	RecalcJobPending    RecalcJobStatus = "pending"
	RecalcJobProcessing RecalcJobStatus = "processing"
	RecalcJobDone       RecalcJobStatus = "done"
	RecalcJobFailed     RecalcJobStatus = "failed"
)

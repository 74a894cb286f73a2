package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CalculationInput is the immutable per-call input to the pricing engine.
// SourcingCost and RefundableFeeAllowance are in the home currency; weights
// are kilograms and dimensions centimeters.
type CalculationInput struct {
	SourcingCost           float64   `json:"sourcing_cost" binding:"required,gt=0"`
	ActualWeight           float64   `json:"actual_weight" binding:"required,gt=0"`
	Length                 float64   `json:"length" binding:"required,gt=0"`
	Width                  float64   `json:"width" binding:"required,gt=0"`
	Height                 float64   `json:"height" binding:"required,gt=0"`
	DestinationCountry     string    `json:"destination_country" binding:"required"`
	OriginCountry          string    `json:"origin_country" binding:"required"`
	TariffCode             string    `json:"tariff_code"`
	StoreTier              StoreTier `json:"store_tier"`
	RefundableFeeAllowance float64   `json:"refundable_fee_allowance"`
}

// ExchangeRate is the home→computation currency rate with a safety buffer.
type ExchangeRate struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Spot       float64   `db:"spot" json:"spot"`
	BufferPct  float64   `db:"buffer_pct" json:"buffer_pct"`
	CapturedAt time.Time `db:"captured_at" json:"captured_at"`
}

// SafeRate returns the spot rate shrunk by the safety buffer. Converting
// costs with a smaller rate overestimates them, so the buffer errs toward
// conservative pricing.
func (r ExchangeRate) SafeRate() float64 {
	return r.Spot * (1 - r.BufferPct)
}

// TariffRecord is one row of the tariff classification table.
type TariffRecord struct {
	Code              string  `db:"code" json:"code"`
	Description       string  `db:"description" json:"description"`
	BaseRate          float64 `db:"base_rate" json:"base_rate"`
	HasTradeRemedy    bool    `db:"has_trade_remedy" json:"has_trade_remedy"`
	TradeRemedyRate   float64 `db:"trade_remedy_rate" json:"trade_remedy_rate"`
	TradeRemedyOrigin string  `db:"trade_remedy_origin" json:"trade_remedy_origin"`
}

// ResolvedTariff is the outcome of a tariff lookup for one shipment.
type ResolvedTariff struct {
	Code               string  `json:"code"`
	Description        string  `json:"description"`
	Rate               float64 `json:"rate"`
	BaseRate           float64 `json:"base_rate"`
	TradeRemedyApplied bool    `json:"trade_remedy_applied"`
	UsedFallback       bool    `json:"used_fallback"`
}

// ShippingZone is one destination entry of a shipping policy. Costs are in
// the computation currency. DDPHandlingFee is nil for zones where duty-paid
// delivery is not offered.
type ShippingZone struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PolicyID       uuid.UUID `db:"policy_id" json:"policy_id"`
	ZoneCode       string    `db:"zone_code" json:"zone_code"`
	ActualCost     float64   `db:"actual_cost" json:"actual_cost"`
	DisplayedCost  float64   `db:"displayed_cost" json:"displayed_cost"`
	DDPHandlingFee *float64  `db:"ddp_handling_fee" json:"ddp_handling_fee"`
	DDUHandlingFee float64   `db:"ddu_handling_fee" json:"ddu_handling_fee"`
	SortOrder      int       `db:"sort_order" json:"sort_order"`
}

// ShippingPolicy groups zones under a weight band and price band.
type ShippingPolicy struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	MinWeight float64        `db:"min_weight" json:"min_weight"`
	MaxWeight float64        `db:"max_weight" json:"max_weight"`
	MinPrice  float64        `db:"min_price" json:"min_price"`
	MaxPrice  float64        `db:"max_price" json:"max_price"`
	IsActive  bool           `db:"is_active" json:"is_active"`
	Zones     []ShippingZone `json:"zones"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// Covers reports whether the policy's weight and price bands both contain
// the given shipment.
func (p ShippingPolicy) Covers(weight, price float64) bool {
	return weight >= p.MinWeight && weight <= p.MaxWeight &&
		price >= p.MinPrice && price <= p.MaxPrice
}

// CategoryFeeSchedule is the marketplace fee structure for one listing
// category. FeeCap is nil for uncapped categories.
type CategoryFeeSchedule struct {
	Category       string   `db:"category" json:"category"`
	SuccessFeeRate float64  `db:"success_fee_rate" json:"success_fee_rate"`
	FeeCap         *float64 `db:"fee_cap" json:"fee_cap"`
	ListingFee     float64  `db:"listing_fee" json:"listing_fee"`
}

// MarginPolicy is an advisory margin configuration. Category and Country
// narrow its scope; a nil pair with IsDefault set is the fallback policy.
// Floors and caps are returned with results, never enforced as errors.
type MarginPolicy struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Category     *string   `db:"category" json:"category"`
	Country      *string   `db:"country" json:"country"`
	TargetMargin float64   `db:"target_margin" json:"target_margin"`
	MinMargin    float64   `db:"min_margin" json:"min_margin"`
	MinProfit    float64   `db:"min_profit" json:"min_profit"`
	MaxMargin    float64   `db:"max_margin" json:"max_margin"`
	IsDefault    bool      `db:"is_default" json:"is_default"`
	IsActive     bool      `db:"is_active" json:"is_active"`
}

// WeightFigures are the derived weight numbers for a package.
type WeightFigures struct {
	Actual     float64 `json:"actual"`
	Volumetric float64 `json:"volumetric"`
	Billable   float64 `json:"billable"`
	VolumeCm3  float64 `json:"volume_cm3"`
	PortEntry  bool    `json:"port_entry"`
}

// ImportCharges itemizes the import-side costs of one regime. Under the
// duty-unpaid regime only Duty is populated.
type ImportCharges struct {
	Duty          float64 `json:"duty"`
	ProcessingFee float64 `json:"processing_fee"`
	HarborFee     float64 `json:"harbor_fee"`
	ProgramFee    float64 `json:"program_fee"`
	Total         float64 `json:"total"`
}

// RefundEstimate is the home-country input-tax refund on sourcing cost plus
// refundable marketplace fees. Approximate is set when the refundable-fee
// figure came from an assumed-markup revenue estimate rather than caller data.
type RefundEstimate struct {
	TaxableAmount  float64 `json:"taxable_amount"`
	RefundableFees float64 `json:"refundable_fees"`
	Refund         float64 `json:"refund"`
	EffectiveCost  float64 `json:"effective_cost"`
	Approximate    bool    `json:"approximate"`
}

// CostBreakdown itemizes every cost behind a solved price, in the
// computation currency.
type CostBreakdown struct {
	SourcingCost   float64       `json:"sourcing_cost"`
	CarrierCost    float64       `json:"carrier_cost"`
	HandlingFee    float64       `json:"handling_fee"`
	Import         ImportCharges `json:"import"`
	ListingFee     float64       `json:"listing_fee"`
	SuccessFee     float64       `json:"success_fee"`
	PaymentFee     float64       `json:"payment_fee"`
	AdvertisingFee float64       `json:"advertising_fee"`
	FXBufferCost   float64       `json:"fx_buffer_cost"`
	CrossBorderFee float64       `json:"cross_border_fee"`
}

// RegimeOutcome is the full pipeline result under one delivery regime.
type RegimeOutcome struct {
	Regime            DeliveryRegime `json:"regime"`
	ListingPrice      float64        `json:"listing_price"`
	DisplayedShipping float64        `json:"displayed_shipping"`
	HandlingFee       float64        `json:"handling_fee"`
	TotalRevenue      float64        `json:"total_revenue"`
	Profit            float64        `json:"profit"`
	ProfitHome        float64        `json:"profit_home"`
	ProfitWithRefund  float64        `json:"profit_with_refund"`
	RealizedMargin    float64        `json:"realized_margin"`
	Breakdown         CostBreakdown  `json:"breakdown"`
	Available         bool           `json:"available"`
	UnavailableReason string         `json:"unavailable_reason,omitempty"`
}

// Recommendation is the comparator's verdict across the two regimes.
type Recommendation struct {
	Regime     DeliveryRegime `json:"regime"`
	Confidence Confidence     `json:"confidence"`
	Rule       string         `json:"rule"`
	Reason     string         `json:"reason"`
}

// CalculationResult is the engine's output: the applicable regime's figures
// promoted to the top level, both regime outcomes, and the recommendation.
type CalculationResult struct {
	Regime               DeliveryRegime `json:"regime"`
	ListingPrice         float64        `json:"listing_price"`
	DisplayedShipping    float64        `json:"displayed_shipping"`
	HandlingFee          float64        `json:"handling_fee"`
	TotalRevenue         float64        `json:"total_revenue"`
	Profit               float64        `json:"profit"`
	ProfitHome           float64        `json:"profit_home"`
	ProfitWithRefund     float64        `json:"profit_with_refund"`
	ProfitHomeWithRefund float64        `json:"profit_home_with_refund"`
	RealizedMargin       float64        `json:"realized_margin"`
	TargetMargin         float64        `json:"target_margin"`
	Breakdown            CostBreakdown  `json:"breakdown"`
	Weight               WeightFigures  `json:"weight"`
	Tariff               ResolvedTariff `json:"tariff"`
	UsedFallbackTariff   bool           `json:"used_fallback_tariff"`
	Refund               RefundEstimate `json:"refund"`
	PolicyName           string         `json:"policy_name"`
	ZoneCode             string         `json:"zone_code"`
	ExchangeRateUsed     float64        `json:"exchange_rate_used"`
	MarginPolicy         MarginPolicy   `json:"margin_policy"`
	DutyPaid             *RegimeOutcome `json:"duty_paid"`
	DutyUnpaid           *RegimeOutcome `json:"duty_unpaid"`
	Recommendation       Recommendation `json:"recommendation"`
	Steps                []string       `json:"steps"`
}

// CalculationRecord is one append-only audit row, written for every
// invocation whether it succeeded or failed.
type CalculationRecord struct {
	ID                 uuid.UUID         `db:"id" json:"id"`
	DestinationCountry string            `db:"destination_country" json:"destination_country"`
	TariffCode         string            `db:"tariff_code" json:"tariff_code"`
	StoreTier          StoreTier         `db:"store_tier" json:"store_tier"`
	Category           string            `db:"category" json:"category"`
	Status             CalculationStatus `db:"status" json:"status"`
	ErrorCode          string            `db:"error_code" json:"error_code,omitempty"`
	ListingPrice       *float64          `db:"listing_price" json:"listing_price,omitempty"`
	Input              json.RawMessage   `db:"input" json:"input"`
	Result             json.RawMessage   `db:"result" json:"result,omitempty"`
	DurationMS         int64             `db:"duration_ms" json:"duration_ms"`
	CreatedAt          time.Time         `db:"created_at" json:"created_at"`
}

// RecalcJob is a queued price recalculation, enqueued when a product's
// sourcing cost changes.
type RecalcJob struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	ProductRef string          `db:"product_ref" json:"product_ref"`
	Category   string          `db:"category" json:"category"`
	Input      json.RawMessage `db:"input" json:"input"`
	Status     RecalcJobStatus `db:"status" json:"status"`
	Attempts   int             `db:"attempts" json:"attempts"`
	LastError  string          `db:"last_error" json:"last_error,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

package service

const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 1000.0 // annual %
	MaxTermMonths   = 600    // 50 years
	MinTermMonths   = 1

	// widest term range a recommendation evaluates
	MaxTermRangeMonths = 120
)

// Affordability guideline: share of gross monthly income available for
// debt service.
const PaymentCapacityRatio = 0.28

// Annual rates (percent) per credit tier.
const (
	RateExcellent = 2.9
	RateGood      = 4.5
	RateFair      = 6.5
	RatePoor      = 8.9
	RateNoCredit  = 12.0
)

// DTI bands (percent, inclusive upper bounds).
const (
	DTIExcellentMax  = 28.0
	DTIGoodMax       = 36.0
	DTIAcceptableMax = 43.0
)

// Income bands (monthly, inclusive lower bounds).
const (
	IncomeStrongMin   = 5000.0
	IncomeGoodMin     = 3000.0
	IncomeAdequateMin = 2000.0
)

// Approval score thresholds and displayed-percentage caps.
const (
	ApprovalHighScore   = 80
	ApprovalMediumScore = 60
	ApprovalHighCap     = 95
	ApprovalMediumCap   = 85
	ApprovalLowCap      = 70
)

// UsedVehiclePriceThreshold triggers the "consider used vehicles" hint.
const UsedVehiclePriceThreshold = 10000.0

// Inventory defaults.
const (
	DefaultPageSize     = 12
	MaxPageSize         = 100
	DefaultSimilarLimit = 4
)

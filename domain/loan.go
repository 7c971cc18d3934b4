package domain

// FinancingInput describes financing a specific vehicle.
type FinancingInput struct {
	VehiclePrice float64 `json:"vehiclePrice"`
	DownPayment  float64 `json:"downPayment"`
	InterestRate float64 `json:"interestRate"` // annual, percent
	TermMonths   int     `json:"termMonths"`
}

type FinancingResult struct {
	LoanAmount     float64 `json:"loanAmount"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

// CreditTier is a coarse proxy for creditworthiness.
type CreditTier string

const (
	CreditExcellent CreditTier = "excellent"
	CreditGood      CreditTier = "good"
	CreditFair      CreditTier = "fair"
	CreditPoor      CreditTier = "poor"
	CreditNone      CreditTier = "no-credit"
)

// ParseCreditTier returns the matching tier, or CreditGood when s is not a
// known tier.
func ParseCreditTier(s string) CreditTier {
	switch t := CreditTier(s); t {
	case CreditExcellent, CreditGood, CreditFair, CreditPoor, CreditNone:
		return t
	}
	return CreditGood
}

// AffordabilityInput is the input of the loan affordability estimator.
type AffordabilityInput struct {
	MonthlyIncome  float64    `json:"monthlyIncome"`
	MonthlyDebt    float64    `json:"monthlyDebt"`
	CreditTier     CreditTier `json:"creditTier"`
	DownPayment    float64    `json:"downPayment"`
	LoanTermMonths int        `json:"loanTermMonths"`
}

type ApprovalLevel string

const (
	ApprovalHigh   ApprovalLevel = "High"
	ApprovalMedium ApprovalLevel = "Medium"
	ApprovalLow    ApprovalLevel = "Low"
)

type ApprovalLikelihood struct {
	Level      ApprovalLevel `json:"level"`
	Percentage int           `json:"percentage"`
	Score      int           `json:"score"`
	Factors    []string      `json:"factors"`
}

type AffordabilityResult struct {
	MaxLoanAmount      float64            `json:"maxLoanAmount"`
	MaxVehiclePrice    float64            `json:"maxVehiclePrice"`
	MonthlyPayment     float64            `json:"monthlyPayment"`
	TotalInterest      float64            `json:"totalInterest"`
	DebtToIncomeRatio  float64            `json:"debtToIncomeRatio"`
	PaymentCapacity    float64            `json:"paymentCapacity"`
	InterestRate       float64            `json:"interestRate"`
	ApprovalLikelihood ApprovalLikelihood `json:"approvalLikelihood"`
	Recommendations    []string           `json:"recommendations"`
}

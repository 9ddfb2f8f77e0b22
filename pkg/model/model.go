// Package model defines the normalized company record produced by the
// decoder. Every optional field carries a fixed default; a decoded record
// never contains a null or unset value, which keeps the shape stable across
// records for columnar export.
package model

// Sentinel defaults for absent or null values. The sink relies on these
// being identical across every record, so they are defined once here.
const (
	// NotFound marks absent firmographic fields.
	NotFound = "None found"

	// NotAvailable marks absent nested data (ratings, compliance detail).
	NotAvailable = "Not available"
)

// Company is the normalized company record.
type Company struct {
	ID                    ID     `json:"id"`
	DUNS                  string `json:"duns"`
	DisplayName           string `json:"display_name"`
	CountryOfRegistration string `json:"country_of_registration"`
	Homepage              string `json:"homepage"`
	ShortDescription      string `json:"short_description"`
	CompanyType           string `json:"company_type"`

	CreditScore CreditScore       `json:"credit_score"`
	Compliance  ComplianceProfile `json:"compliance_data"`

	SecurityRatings []SecurityRating `json:"security_ratings"`

	// Latest* mirror the first security ratings entry so the sink can keep
	// scalar columns without unpacking the list.
	LatestSecurityGrade string `json:"latest_security_rating_grade"`
	LatestSecurityDate  string `json:"latest_security_rating_date"`

	// FinancialRatios is nil when the API omitted the section and an empty
	// non-nil slice when the API returned an empty list. The two marshal
	// differently (null vs []) and downstream treats them differently.
	FinancialRatios []FinancialRatio `json:"financial_ratios"`
}

// CreditScore wraps the current credit rating.
type CreditScore struct {
	CurrentCreditRating CreditRating `json:"current_credit_rating"`
}

// CreditRating is the rating value/description pair.
type CreditRating struct {
	CommonValue       string `json:"common_value"`
	CommonDescription string `json:"common_description"`
}

// SecurityRating is one entry of the security ratings history, newest first.
type SecurityRating struct {
	Score    float64 `json:"score"`
	Grade    string  `json:"grade"`
	Datetime string  `json:"datetime"`
}

// FinancialRatio is one ratio snapshot for a reporting period.
type FinancialRatio struct {
	PeriodEndDate  string  `json:"period_end_date"`
	PeriodType     string  `json:"period_type"`
	CurrentRatio   float64 `json:"current_ratio"`
	QuickRatio     float64 `json:"quick_ratio"`
	DebtToEquity   float64 `json:"debt_to_equity"`
	ReturnOnAssets float64 `json:"return_on_assets"`
}

// DefaultCreditRating returns the neutral rating used when the API has no
// credit data for a company.
func DefaultCreditRating() CreditRating {
	return CreditRating{
		CommonValue:       NotAvailable,
		CommonDescription: NotAvailable,
	}
}

// DefaultCreditScore returns a fully-defaulted credit score.
func DefaultCreditScore() CreditScore {
	return CreditScore{CurrentCreditRating: DefaultCreditRating()}
}

// DefaultSecurityRating returns the neutral ratings entry used when the API
// has no security ratings for a company.
func DefaultSecurityRating() SecurityRating {
	return SecurityRating{
		Score:    0,
		Grade:    NotAvailable,
		Datetime: NotAvailable,
	}
}

// DefaultCompany returns a record with every field at its documented
// default. The decoder starts from this shape and overwrites what the
// payload actually carries.
func DefaultCompany() Company {
	c := Company{
		DUNS:                  NotFound,
		DisplayName:           NotFound,
		CountryOfRegistration: NotFound,
		Homepage:              NotFound,
		ShortDescription:      NotFound,
		CompanyType:           NotFound,
		CreditScore:           DefaultCreditScore(),
		SecurityRatings:       []SecurityRating{DefaultSecurityRating()},
	}
	c.Compliance.Normalize()
	c.syncLatestSecurityRating()
	return c
}

// syncLatestSecurityRating refreshes the scalar convenience fields from the
// first ratings entry.
func (c *Company) syncLatestSecurityRating() {
	if len(c.SecurityRatings) == 0 {
		c.SecurityRatings = []SecurityRating{DefaultSecurityRating()}
	}
	c.LatestSecurityGrade = c.SecurityRatings[0].Grade
	c.LatestSecurityDate = c.SecurityRatings[0].Datetime
}

// Normalize re-derives every computed field from the underlying data. The
// decoder calls this once after defaulting; callers that mutate a record
// must call it again before handing the record downstream.
func (c *Company) Normalize() {
	c.Compliance.Normalize()
	c.syncLatestSecurityRating()
}

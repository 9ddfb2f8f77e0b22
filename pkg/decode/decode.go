// Package decode converts raw GraphQL response payloads into normalized
// company records. Defaulting is total: every optional field that arrives
// null or absent is replaced with its documented default, independently at
// every nesting level, so no null ever reaches the sink.
package decode

import (
	"encoding/json"
	"fmt"

	"companyfetch/pkg/model"
)

// Error is returned when a payload cannot yield a record at all: the body
// is not JSON, the company wrapper is structurally missing, or the API
// reported a top-level error instead of an entity. Sparse-but-present
// entities never produce an Error; they decode with defaults.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode: %s: %v", e.Message, e.Err)
	}
	return "decode: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// envelope is the wire shape: {data: {company: {...}}, error?: string}.
type envelope struct {
	Data *struct {
		Company *companyPayload `json:"company"`
	} `json:"data"`
	APIError string `json:"error"`
}

// companyPayload mirrors the external field names. Pointer fields
// distinguish null/absent from present, which is what drives defaulting.
type companyPayload struct {
	ID               *model.ID           `json:"id"`
	DUNS             *string             `json:"duns"`
	DisplayName      *string             `json:"displayName"`
	Country          *string             `json:"countryOfRegistration"`
	Homepage         *string             `json:"homepage"`
	ShortDescription *string             `json:"shortDescription"`
	CompanyType      *string             `json:"companyType"`
	CreditScore      *creditScorePayload `json:"creditScore"`
	ComplianceData   *compliancePayload  `json:"complianceData"`
	SecurityRatings  []securityPayload   `json:"securityRatings"`
	FinancialRatios  []financialPayload  `json:"financialRatios"`
}

type creditScorePayload struct {
	CurrentCreditRating *creditRatingPayload `json:"currentCreditRating"`
}

type creditRatingPayload struct {
	CommonValue       *string `json:"commonValue"`
	CommonDescription *string `json:"commonDescription"`
}

type compliancePayload struct {
	Datasets []string `json:"datasets"`
}

type securityPayload struct {
	Score    *float64 `json:"score"`
	Grade    *string  `json:"grade"`
	Datetime *string  `json:"datetime"`
}

type financialPayload struct {
	PeriodEndDate  *string  `json:"periodEndDate"`
	PeriodType     *string  `json:"periodType"`
	CurrentRatio   *float64 `json:"currentRatio"`
	QuickRatio     *float64 `json:"quickRatio"`
	DebtToEquity   *float64 `json:"debtToEquity"`
	ReturnOnAssets *float64 `json:"returnOnAssets"`
}

// Decode converts one raw payload into a normalized company record.
func Decode(raw []byte) (*model.Company, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Error{Message: "response body is not valid JSON", Err: err}
	}

	if env.Data == nil || env.Data.Company == nil {
		if env.APIError != "" {
			return nil, &Error{Message: "API error: " + env.APIError}
		}
		return nil, &Error{Message: "company object missing from response"}
	}

	c := buildCompany(env.Data.Company)
	return &c, nil
}

// buildCompany applies the default table to one company payload. Defaults
// apply at every level: a null nested object becomes a fully-defaulted
// nested object, never a zero struct with empty strings.
func buildCompany(p *companyPayload) model.Company {
	c := model.DefaultCompany()

	if p.ID != nil {
		c.ID = *p.ID
	}
	c.DUNS = str(p.DUNS, model.NotFound)
	c.DisplayName = str(p.DisplayName, model.NotFound)
	c.CountryOfRegistration = str(p.Country, model.NotFound)
	c.Homepage = str(p.Homepage, model.NotFound)
	c.ShortDescription = str(p.ShortDescription, model.NotFound)
	c.CompanyType = str(p.CompanyType, model.NotFound)

	c.CreditScore = buildCreditScore(p.CreditScore)
	c.Compliance.SetDatasets(buildDatasets(p.ComplianceData))
	c.SecurityRatings = buildSecurityRatings(p.SecurityRatings)
	c.FinancialRatios = buildFinancialRatios(p.FinancialRatios)

	c.Normalize()
	return c
}

func buildCreditScore(p *creditScorePayload) model.CreditScore {
	if p == nil {
		return model.DefaultCreditScore()
	}
	return model.CreditScore{CurrentCreditRating: buildCreditRating(p.CurrentCreditRating)}
}

func buildCreditRating(p *creditRatingPayload) model.CreditRating {
	if p == nil {
		return model.DefaultCreditRating()
	}
	return model.CreditRating{
		CommonValue:       str(p.CommonValue, model.NotAvailable),
		CommonDescription: str(p.CommonDescription, model.NotAvailable),
	}
}

func buildDatasets(p *compliancePayload) []string {
	if p == nil || p.Datasets == nil {
		return []string{}
	}
	return p.Datasets
}

func buildSecurityRatings(entries []securityPayload) []model.SecurityRating {
	if len(entries) == 0 {
		return []model.SecurityRating{model.DefaultSecurityRating()}
	}
	out := make([]model.SecurityRating, len(entries))
	for i, e := range entries {
		out[i] = model.SecurityRating{
			Score:    f64(e.Score, 0),
			Grade:    str(e.Grade, model.NotAvailable),
			Datetime: str(e.Datetime, model.NotAvailable),
		}
	}
	return out
}

func buildFinancialRatios(entries []financialPayload) []model.FinancialRatio {
	if entries == nil {
		// Absent section stays nil; an empty list decodes to empty non-nil.
		return nil
	}
	out := make([]model.FinancialRatio, len(entries))
	for i, e := range entries {
		out[i] = model.FinancialRatio{
			PeriodEndDate:  str(e.PeriodEndDate, model.NotAvailable),
			PeriodType:     str(e.PeriodType, model.NotAvailable),
			CurrentRatio:   f64(e.CurrentRatio, 0),
			QuickRatio:     f64(e.QuickRatio, 0),
			DebtToEquity:   f64(e.DebtToEquity, 0),
			ReturnOnAssets: f64(e.ReturnOnAssets, 0),
		}
	}
	return out
}

func str(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func f64(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

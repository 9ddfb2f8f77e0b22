// Package export materializes normalized company records into tabular
// sinks. Nested lists are dropped or summarized here: the record's latest
// security rating scalars and compliance flags stand in for the lists, so
// every row has the same columns.
package export

import (
	"companyfetch/pkg/client"
)

// Row is one flat table row. Column order matches Columns.
type Row struct {
	ID                    string
	DUNS                  string
	DisplayName           string
	CountryOfRegistration string
	Homepage              string
	ShortDescription      string
	CompanyType           string
	CreditRatingValue     string
	CreditRatingDesc      string
	FlagAdverseMedia      bool
	FlagEnforcements      bool
	FlagStateOwned        bool
	FlagPersonsOfInterest bool
	FlagCurrentSanctions  bool
	FlagFormerSanctions   bool
	FlagCurrentPEPs       bool
	FlagFormerPEPs        bool
	LatestSecurityGrade   string
	LatestSecurityDate    string
}

// Columns lists the column names in row order.
var Columns = []string{
	"id",
	"duns",
	"display_name",
	"country_of_registration",
	"homepage",
	"short_description",
	"company_type",
	"credit_rating_value",
	"credit_rating_description",
	"compliance_flag_adverse_media",
	"compliance_flag_enforcements",
	"compliance_flag_state_owned",
	"compliance_flag_persons_of_interest",
	"compliance_flag_current_sanctions",
	"compliance_flag_former_sanctions",
	"compliance_flag_current_peps",
	"compliance_flag_former_peps",
	"latest_security_rating_grade",
	"latest_security_rating_date",
}

// values returns the row's values in column order.
func (r Row) values() []any {
	return []any{
		r.ID,
		r.DUNS,
		r.DisplayName,
		r.CountryOfRegistration,
		r.Homepage,
		r.ShortDescription,
		r.CompanyType,
		r.CreditRatingValue,
		r.CreditRatingDesc,
		r.FlagAdverseMedia,
		r.FlagEnforcements,
		r.FlagStateOwned,
		r.FlagPersonsOfInterest,
		r.FlagCurrentSanctions,
		r.FlagFormerSanctions,
		r.FlagCurrentPEPs,
		r.FlagFormerPEPs,
		r.LatestSecurityGrade,
		r.LatestSecurityDate,
	}
}

// Flatten converts the successful outcomes into table rows, preserving
// order. Failures are skipped; the caller decides how to report them.
func Flatten(outcomes []client.Outcome) []Row {
	rows := make([]Row, 0, len(outcomes))
	for _, out := range outcomes {
		if !out.Success() {
			continue
		}
		c := out.Record
		rows = append(rows, Row{
			ID:                    c.ID.String(),
			DUNS:                  c.DUNS,
			DisplayName:           c.DisplayName,
			CountryOfRegistration: c.CountryOfRegistration,
			Homepage:              c.Homepage,
			ShortDescription:      c.ShortDescription,
			CompanyType:           c.CompanyType,
			CreditRatingValue:     c.CreditScore.CurrentCreditRating.CommonValue,
			CreditRatingDesc:      c.CreditScore.CurrentCreditRating.CommonDescription,
			FlagAdverseMedia:      c.Compliance.FlagAdverseMedia,
			FlagEnforcements:      c.Compliance.FlagEnforcements,
			FlagStateOwned:        c.Compliance.FlagStateOwned,
			FlagPersonsOfInterest: c.Compliance.FlagPersonsOfInterest,
			FlagCurrentSanctions:  c.Compliance.FlagCurrentSanctions,
			FlagFormerSanctions:   c.Compliance.FlagFormerSanctions,
			FlagCurrentPEPs:       c.Compliance.FlagCurrentPEPs,
			FlagFormerPEPs:        c.Compliance.FlagFormerPEPs,
			LatestSecurityGrade:   c.LatestSecurityGrade,
			LatestSecurityDate:    c.LatestSecurityDate,
		})
	}
	return rows
}

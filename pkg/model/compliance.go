package model

// Dataset codes the compliance source can attach to a company. Closed
// vocabulary; anything outside this list is carried through untouched but
// never produces a flag.
const (
	DatasetAdverseMedia      = "RRE"
	DatasetEnforcements      = "REL"
	DatasetStateOwned        = "SOE"
	DatasetPersonsOfInterest = "POI"
	DatasetInsolvency        = "INS"
	DatasetCurrentSanctions  = "SAN-CURRENT"
	DatasetFormerSanctions   = "SAN-FORMER"
	DatasetFormerPEPs        = "PEP-FORMER"
	DatasetCurrentPEPs       = "PEP-CURRENT"
)

// KnownDatasets lists every dataset code the source emits.
var KnownDatasets = []string{
	DatasetAdverseMedia,
	DatasetEnforcements,
	DatasetStateOwned,
	DatasetPersonsOfInterest,
	DatasetInsolvency,
	DatasetCurrentSanctions,
	DatasetFormerSanctions,
	DatasetFormerPEPs,
	DatasetCurrentPEPs,
}

// ComplianceProfile holds the dataset-code list for a company plus one
// derived boolean per monitored code. The flags are pure functions of
// Datasets: they are never unmarshalled from input and Normalize recomputes
// them, so they cannot diverge from the list.
type ComplianceProfile struct {
	Datasets []string `json:"datasets"`

	FlagAdverseMedia      bool `json:"compliance_flag_adverse_media"`
	FlagEnforcements      bool `json:"compliance_flag_enforcements"`
	FlagStateOwned        bool `json:"compliance_flag_state_owned"`
	FlagPersonsOfInterest bool `json:"compliance_flag_persons_of_interest"`
	FlagCurrentSanctions  bool `json:"compliance_flag_current_sanctions"`
	FlagFormerSanctions   bool `json:"compliance_flag_former_sanctions"`
	FlagCurrentPEPs       bool `json:"compliance_flag_current_peps"`
	FlagFormerPEPs        bool `json:"compliance_flag_former_peps"`
}

// SetDatasets replaces the dataset list and recomputes the flags.
func (p *ComplianceProfile) SetDatasets(codes []string) {
	p.Datasets = codes
	p.Normalize()
}

// Has reports whether a dataset code is present in the profile.
func (p *ComplianceProfile) Has(code string) bool {
	for _, d := range p.Datasets {
		if d == code {
			return true
		}
	}
	return false
}

// Normalize recomputes every derived flag from the dataset list and
// guarantees the list itself is non-nil.
func (p *ComplianceProfile) Normalize() {
	if p.Datasets == nil {
		p.Datasets = []string{}
	}
	p.FlagAdverseMedia = p.Has(DatasetAdverseMedia)
	p.FlagEnforcements = p.Has(DatasetEnforcements)
	p.FlagStateOwned = p.Has(DatasetStateOwned)
	p.FlagPersonsOfInterest = p.Has(DatasetPersonsOfInterest)
	p.FlagCurrentSanctions = p.Has(DatasetCurrentSanctions)
	p.FlagFormerSanctions = p.Has(DatasetFormerSanctions)
	p.FlagCurrentPEPs = p.Has(DatasetCurrentPEPs)
	p.FlagFormerPEPs = p.Has(DatasetFormerPEPs)
}

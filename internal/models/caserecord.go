package models

// PersonInfo describes the victim or the suspect of a case.
type PersonInfo struct {
	Name         string
	DateOfBirth  string
	Address      string
	Phone        string
	Relationship string
	Agency       string
}

// OfficerInfo identifies the officer conducting the screening.
type OfficerInfo struct {
	FullName    string
	BadgeNumber string
	CaseNumber  string
}

// ScreeningResult is the officer's or the protocol's decision about referring the victim to services.
type ScreeningResult string

const (
	ScreeningProtocol ScreeningResult = "protocol"
	ScreeningOfficer  ScreeningResult = "officer"
	ScreeningNone     ScreeningResult = "none"
)

// ParseScreeningResult maps form values to a ScreeningResult. Unknown values mean the victim did not screen in.
func ParseScreeningResult(s string) ScreeningResult {
	switch ScreeningResult(s) {
	case ScreeningProtocol:
		return ScreeningProtocol
	case ScreeningOfficer:
		return ScreeningOfficer
	case ScreeningNone:
		return ScreeningNone
	default:
		return ScreeningNone
	}
}

// ScreenedIn reports whether the victim screened in either by protocol or by officer belief.
func (s ScreeningResult) ScreenedIn() bool {
	return s == ScreeningProtocol || s == ScreeningOfficer
}

// ProtocolInfo holds the protocol follow-up after the questions have been asked.
type ProtocolInfo struct {
	AdditionalConcerns string
	ScreeningResult    ScreeningResult
	ContactedProgram   bool
	ContactReason      string
	SpokeWithAdvocate  bool
}

// CaseRecord groups everything about the case that is not a question answer.
type CaseRecord struct {
	Officer  OfficerInfo
	Victim   PersonInfo
	Suspect  PersonInfo
	Protocol ProtocolInfo
}

// NewCaseRecord returns an empty record. The screening result defaults to ScreeningNone.
func NewCaseRecord() CaseRecord {
	return CaseRecord{
		Officer: OfficerInfo{},
		Victim:  PersonInfo{},
		Suspect: PersonInfo{},
		Protocol: ProtocolInfo{
			AdditionalConcerns: "",
			ScreeningResult:    ScreeningNone,
			ContactedProgram:   false,
			ContactReason:      "",
			SpokeWithAdvocate:  false,
		},
	}
}

// Agencies are the law enforcement agencies participating in the program.
var Agencies = []string{ //nolint:gochecknoglobals // read-only list
	"Absentee Shawnee Tribal Police",
	"Asher Police Department",
	"Citizen Potawatomi Nation Tribal Police",
	"Maud Police Department",
	"McLoud Police Department",
	"Oklahoma Highway Patrol – Troop A",
	"Pottawatomie County Sheriff's Office",
	"Sac and Fox Nation Police",
	"Shawnee Police Department",
	"Tecumseh Police Department",
}

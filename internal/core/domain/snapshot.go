package domain

// CaseSnapshot is everything known about an accident case at transcription
// time. It is assembled and validated upstream (wizard + extraction review)
// and handed to the engine as a finished value; the engine never mutates it.
//
// Every field is optional. Dates are carried as the strings the upstream
// collected them in (usually ISO "YYYY-MM-DD", sometimes "DD.MM.YYYY") and
// normalised by the encoders at write time.
type CaseSnapshot struct {
	Personal       PersonalData        `json:"personal"`
	Addresses      Addresses           `json:"addresses"`
	Business       BusinessData        `json:"business"`
	Accident       AccidentData        `json:"accident"`
	Representative *RepresentativeData `json:"representative,omitempty"`
	Witnesses      []Witness           `json:"witnesses,omitempty"`
	Attachments    Attachments         `json:"attachments"`
	SignatureDate  string              `json:"signature_date,omitempty"`
}

// PersonalData identifies the injured person.
type PersonalData struct {
	PESEL            string           `json:"pesel,omitempty"`
	IdentityDocument IdentityDocument `json:"identity_document"`
	GivenName        string           `json:"given_name,omitempty"`
	FamilyName       string           `json:"family_name,omitempty"`
	BirthDate        string           `json:"birth_date,omitempty"`
	BirthPlace       string           `json:"birth_place,omitempty"`
	Phone            string           `json:"phone,omitempty"`
	Email            string           `json:"email,omitempty"`
}

// IdentityDocument is the identity paper used when no PESEL is available.
type IdentityDocument struct {
	Kind   string `json:"kind,omitempty"` // e.g. "dowód osobisty", "paszport"
	Series string `json:"series,omitempty"`
	Number string `json:"number,omitempty"`
}

// Address is a structured Polish address.
type Address struct {
	Street      string `json:"street,omitempty"`
	HouseNumber string `json:"house_number,omitempty"`
	UnitNumber  string `json:"unit_number,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// CorrespondenceKind discriminates the correspondence-address variant.
type CorrespondenceKind string

const (
	CorrespondenceAddress      CorrespondenceKind = "address"
	CorrespondencePosteRestant CorrespondenceKind = "poste_restante"
	CorrespondencePOBox        CorrespondenceKind = "po_box"
	CorrespondencePOBoxTypeP   CorrespondenceKind = "po_box_type_p"
)

// Correspondence is where the agency should send replies. Exactly one shape
// is populated, selected by Kind.
type Correspondence struct {
	Kind CorrespondenceKind `json:"kind"`

	// Kind == CorrespondenceAddress
	Address *Address `json:"address,omitempty"`

	// Kind == CorrespondencePosteRestant, CorrespondencePOBox, CorrespondencePOBoxTypeP
	BoxNumber  string `json:"box_number,omitempty"` // unused for poste restante
	PostalCode string `json:"postal_code,omitempty"`
	OfficeName string `json:"office_name,omitempty"`
}

// Addresses groups every address attached to the case.
type Addresses struct {
	Residential             Address         `json:"residential"`
	Business                Address         `json:"business"`
	LastResidentialInPoland *Address        `json:"last_residential_in_poland,omitempty"`
	Correspondence          *Correspondence `json:"correspondence,omitempty"`
	Childcare               *Address        `json:"childcare,omitempty"`
}

// BusinessData describes the insured person's business activity.
type BusinessData struct {
	NIP           string `json:"nip,omitempty"`
	REGON         string `json:"regon,omitempty"`
	PKDCode       string `json:"pkd_code,omitempty"`
	ActivityScope string `json:"activity_scope,omitempty"`
}

// LegalElement is one of the four statutory elements of a workplace
// accident (suddenness, external cause, injury, work relation).
type LegalElement struct {
	Confirmed      *bool  `json:"confirmed,omitempty"`
	Classification string `json:"classification,omitempty"`
	Description    string `json:"description,omitempty"`
}

// FirstAid records medical attention given right after the accident.
type FirstAid struct {
	Given        *bool  `json:"given,omitempty"`
	FacilityName string `json:"facility_name,omitempty"`
	Details      string `json:"details,omitempty"`
}

// AuthorityProceedings records any investigation by police or prosecutor.
type AuthorityProceedings struct {
	Conducted     *bool  `json:"conducted,omitempty"`
	AuthorityName string `json:"authority_name,omitempty"`
	CaseNumber    string `json:"case_number,omitempty"`
}

// Machinery describes equipment involved in the accident.
type Machinery struct {
	Involved    *bool  `json:"involved,omitempty"`
	Description string `json:"description,omitempty"`
	Condition   string `json:"condition,omitempty"`
}

// AccidentData is the accident itself.
type AccidentData struct {
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	Place       string `json:"place,omitempty"`
	Description string `json:"description,omitempty"`
	Injuries    string `json:"injuries,omitempty"`

	Suddenness    LegalElement `json:"suddenness"`
	ExternalCause LegalElement `json:"external_cause"`
	Injury        LegalElement `json:"injury"`
	WorkRelation  LegalElement `json:"work_relation"`

	FirstAid    *FirstAid             `json:"first_aid,omitempty"`
	Proceedings *AuthorityProceedings `json:"proceedings,omitempty"`
	Machinery   *Machinery            `json:"machinery,omitempty"`
}

// RepresentativeData is present only when a third party files on the
// victim's behalf.
type RepresentativeData struct {
	Personal  PersonalData `json:"personal"`
	Addresses Addresses    `json:"addresses"`
}

// Witness is one accident witness. Templates carry a fixed number of
// witness blocks; entries beyond that capacity are not representable.
type Witness struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Country string `json:"country,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// DeliveryMethod says how the filled notification reaches the agency.
type DeliveryMethod string

const (
	DeliveryInPerson DeliveryMethod = "in_person"
	DeliveryPost     DeliveryMethod = "post"
	DeliveryPUE      DeliveryMethod = "pue"
)

// Attachments lists the documents accompanying the notification.
type Attachments struct {
	MedicalRecord      *bool  `json:"medical_record,omitempty"`
	ProsecutorDecision *bool  `json:"prosecutor_decision,omitempty"`
	DeathCertificate   *bool  `json:"death_certificate,omitempty"`
	PowerOfAttorney    *bool  `json:"power_of_attorney,omitempty"`
	Other              *bool  `json:"other,omitempty"`
	OtherDescription   string `json:"other_description,omitempty"`

	DeliveryMethod DeliveryMethod `json:"delivery_method,omitempty"`

	// Commitments are the fixed template checkboxes where the filer
	// promises to deliver listed documents later. Index-aligned with the
	// template's commitment rows.
	Commitments []*bool `json:"commitments,omitempty"`
}

package domain

//RelevanceLabel classifies a transcript segment by clinical value
type RelevanceLabel string

const (
	//RelevanceClinicalCore value
	RelevanceClinicalCore RelevanceLabel = "CLINICAL_CORE"
	//RelevanceClinicalContext value
	RelevanceClinicalContext RelevanceLabel = "CLINICAL_CONTEXT"
	//RelevanceBackground value
	RelevanceBackground RelevanceLabel = "BACKGROUND"
	//RelevanceSmallTalk value
	RelevanceSmallTalk RelevanceLabel = "SMALL_TALK"
	//RelevanceOther value
	RelevanceOther RelevanceLabel = "OTHER"
)

//SpeakerRole marks who is speaking in a segment
type SpeakerRole string

const (
	//SpeakerClinician value
	SpeakerClinician SpeakerRole = "CLINICIAN"
	//SpeakerPatient value
	SpeakerPatient SpeakerRole = "PATIENT"
	//SpeakerOther value
	SpeakerOther SpeakerRole = "OTHER"
)

//EmotionLabel marks the detected emotional tone of a segment
type EmotionLabel string

const (
	//EmotionNeutral value
	EmotionNeutral EmotionLabel = "NEUTRAL"
	//EmotionPositive value
	EmotionPositive EmotionLabel = "POSITIVE"
	//EmotionNegative value
	EmotionNegative EmotionLabel = "NEGATIVE"
	//EmotionDistressed value
	EmotionDistressed EmotionLabel = "DISTRESSED"
)

//AccentLabel classifies the expected accent group of an audio source
type AccentLabel string

const (
	//AccentUnknown value
	AccentUnknown AccentLabel = "UNKNOWN"
	//AccentEastAfricanEnglish value
	AccentEastAfricanEnglish AccentLabel = "EAST_AFRICAN_ENGLISH"
	//AccentWestAfricanEnglish value
	AccentWestAfricanEnglish AccentLabel = "WEST_AFRICAN_ENGLISH"
	//AccentAfricanAmericanEnglish value
	AccentAfricanAmericanEnglish AccentLabel = "AFRICAN_AMERICAN_ENGLISH"
	//AccentCaribbeanEnglish value
	AccentCaribbeanEnglish AccentLabel = "CARIBBEAN_ENGLISH"
	//AccentArabEnglish value
	AccentArabEnglish AccentLabel = "ARAB_ENGLISH"
	//AccentIndianEnglish value
	AccentIndianEnglish AccentLabel = "INDIAN_ENGLISH"
	//AccentIndigenousLanguage value
	AccentIndigenousLanguage AccentLabel = "INDIGENOUS_LANGUAGE"
)

//ClinicalEntity is one extracted mention with an optional assigned code
type ClinicalEntity struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Code  string `json:"code,omitempty"`
}

//ClinicalEntities groups extracted mentions by category
type ClinicalEntities struct {
	Diagnoses   []ClinicalEntity `json:"diagnoses"`
	Medications []ClinicalEntity `json:"medications"`
	Symptoms    []ClinicalEntity `json:"symptoms"`
	Vitals      []ClinicalEntity `json:"vitals"`
}

//SOAPSection is one section of a SOAP note
type SOAPSection struct {
	Text string `json:"text"`
}

//SOAPNote is a structured clinical note draft produced by the pipeline
type SOAPNote struct {
	Subjective SOAPSection `json:"subjective"`
	Objective  SOAPSection `json:"objective"`
	Assessment SOAPSection `json:"assessment"`
	Plan       SOAPSection `json:"plan"`
}

//TranscriptSegment is one annotated piece of a transcript
type TranscriptSegment struct {
	Text       string         `json:"text"`
	StartMS    *int64         `json:"start_ms,omitempty"`
	EndMS      *int64         `json:"end_ms,omitempty"`
	Relevance  RelevanceLabel `json:"relevance"`
	Speaker    SpeakerRole    `json:"speaker,omitempty"`
	Emotion    EmotionLabel   `json:"emotion,omitempty"`
	Confidence *float64       `json:"confidence,omitempty"`
}

//SuggestionType classifies a decision support suggestion
type SuggestionType string

const (
	//SuggestionDifferential value
	SuggestionDifferential SuggestionType = "DIFFERENTIAL"
	//SuggestionRedFlag value
	SuggestionRedFlag SuggestionType = "RED_FLAG"
	//SuggestionMedAdjustment value
	SuggestionMedAdjustment SuggestionType = "MED_ADJUSTMENT"
	//SuggestionContraindication value
	SuggestionContraindication SuggestionType = "CONTRAINDICATION"
)

//SuggestionSeverity ranks a decision support suggestion
type SuggestionSeverity string

const (
	//SeverityInfo value
	SeverityInfo SuggestionSeverity = "INFO"
	//SeverityWarning value
	SeverityWarning SuggestionSeverity = "WARNING"
	//SeverityCritical value
	SeverityCritical SuggestionSeverity = "CRITICAL"
)

//DecisionSupportSuggestion is one non regulated advisory hint for a clinician
type DecisionSupportSuggestion struct {
	ID           string             `json:"id"`
	Type         SuggestionType     `json:"type"`
	Severity     SuggestionSeverity `json:"severity"`
	Summary      string             `json:"summary"`
	Details      string             `json:"details,omitempty"`
	EvidenceRefs []string           `json:"evidence_refs"`
	Source       string             `json:"source"`
	Regulated    bool               `json:"regulated"`
}

//CodeSystem names the terminology a code belongs to
type CodeSystem string

const (
	//CodeSystemICD10 value
	CodeSystemICD10 CodeSystem = "ICD10"
	//CodeSystemCPT value
	CodeSystemCPT CodeSystem = "CPT"
	//CodeSystemSNOMED value
	CodeSystemSNOMED CodeSystem = "SNOMED"
	//CodeSystemOther value
	CodeSystemOther CodeSystem = "OTHER"
)

//CodeAssignment binds a billing or terminology code to an extracted entity
type CodeAssignment struct {
	CodeSystem        CodeSystem `json:"code_system"`
	Code              string     `json:"code"`
	Display           string     `json:"display,omitempty"`
	SourceEntityLabel string     `json:"source_entity_label,omitempty"`
	SourceText        string     `json:"source_text"`
	Confidence        *float64   `json:"confidence,omitempty"`
	Category          string     `json:"category,omitempty"`
}

//BillingRiskLevel ranks coding completeness risk
type BillingRiskLevel string

const (
	//BillingRiskLow value
	BillingRiskLow BillingRiskLevel = "LOW"
	//BillingRiskMedium value
	BillingRiskMedium BillingRiskLevel = "MEDIUM"
	//BillingRiskHigh value
	BillingRiskHigh BillingRiskLevel = "HIGH"
)

//BillingRiskSummary describes under or over coding risk for a note
type BillingRiskSummary struct {
	Level            BillingRiskLevel `json:"level"`
	Reasons          []string         `json:"reasons"`
	SuggestedActions []string         `json:"suggested_actions"`
}

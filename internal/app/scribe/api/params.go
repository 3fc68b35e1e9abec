package api

const (
	//PrmFile parameter
	PrmFile = "file"
	//PrmLanguageCode parameter
	PrmLanguageCode = "language_code"
	//PrmTargetLanguage parameter
	PrmTargetLanguage = "target_language"
	//PrmSessionID parameter
	PrmSessionID = "session_id"
	//PrmEncounterID parameter
	PrmEncounterID = "encounter_id"
	//PrmPatientID parameter
	PrmPatientID = "patient_id"
	//PrmClinicianID parameter
	PrmClinicianID = "clinician_id"
	//PrmStatus parameter
	PrmStatus = "status"
)

package mongo

const (
	store          = "scribe"
	jobTable       = "jobs"
	encounterTable = "encounters"
	noteTable      = "notes"
	sessionTable   = "sessions"
	userTable      = "users"
)

var indexData = []IndexData{
	newIndexData(jobTable, true, "tenant", "ID"),
	newIndexData(encounterTable, true, "tenant", "ID"),
	newIndexData(noteTable, true, "tenant", "encounterID"),
	newIndexData(sessionTable, true, "tenant", "ID"),
	newIndexData(userTable, true, "tenant", "subject")}

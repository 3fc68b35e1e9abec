package status

import "encoding/json"

//Job represents transcription job status
type Job int

const (
	//JobPending value
	JobPending Job = iota + 1
	//JobProcessing value
	JobProcessing
	//JobCompleted value
	JobCompleted
	//JobFailed value
	JobFailed
)

var (
	jobName = map[Job]string{JobPending: "PENDING", JobProcessing: "PROCESSING",
		JobCompleted: "COMPLETED", JobFailed: "FAILED"}
	nameJob = map[string]Job{"PENDING": JobPending, "PROCESSING": JobProcessing,
		"COMPLETED": JobCompleted, "FAILED": JobFailed}
)

func (st Job) String() string {
	return jobName[st]
}

//JobFrom restores the status from its name
func JobFrom(st string) Job {
	return nameJob[st]
}

//MarshalJSON writes the status name
func (st Job) MarshalJSON() ([]byte, error) {
	return json.Marshal(st.String())
}

//UnmarshalJSON reads the status name
func (st *Job) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*st = JobFrom(s)
	return nil
}

//JobCanChange tests if a job status transition is allowed
func JobCanChange(from, to Job) bool {
	switch from {
	case JobPending:
		return to == JobProcessing
	case JobProcessing:
		return to == JobCompleted || to == JobFailed
	}
	return false
}

//Encounter represents encounter lifecycle status
type Encounter int

const (
	//EncCreated value
	EncCreated Encounter = iota + 1
	//EncInProgress value
	EncInProgress
	//EncReadyForReview value
	EncReadyForReview
	//EncFinalized value
	EncFinalized
)

var (
	encName = map[Encounter]string{EncCreated: "CREATED", EncInProgress: "IN_PROGRESS",
		EncReadyForReview: "READY_FOR_REVIEW", EncFinalized: "FINALIZED"}
	nameEnc = map[string]Encounter{"CREATED": EncCreated, "IN_PROGRESS": EncInProgress,
		"READY_FOR_REVIEW": EncReadyForReview, "FINALIZED": EncFinalized}
)

func (st Encounter) String() string {
	return encName[st]
}

//EncounterFrom restores the status from its name
func EncounterFrom(st string) Encounter {
	return nameEnc[st]
}

//MarshalJSON writes the status name
func (st Encounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(st.String())
}

//UnmarshalJSON reads the status name
func (st *Encounter) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*st = EncounterFrom(s)
	return nil
}

//EncounterCanChange tests if an encounter status transition is allowed.
//Statuses move forward only, skipping steps is allowed, FINALIZED is terminal.
func EncounterCanChange(from, to Encounter) bool {
	if from == EncFinalized {
		return false
	}
	return to > from
}

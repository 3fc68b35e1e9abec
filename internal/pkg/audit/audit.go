package audit

import (
	"encoding/json"
	"time"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/pkg/errors"
)

//Event is one structured audit record
//The payload stays minimal and avoids transcript or note content:
//identifiers, types, actions, counts
type Event struct {
	Timestamp    string                 `json:"timestamp"`
	Action       string                 `json:"action"`
	ResourceType string                 `json:"resource_type"`
	ResourceID   string                 `json:"resource_id,omitempty"`
	Subject      string                 `json:"subject,omitempty"`
	Extra        map[string]interface{} `json:"extra,omitempty"`
}

//Logger logs audit events
type Logger interface {
	Log(ev Event)
}

//Sender passes serialized audit events to an external sink
type Sender interface {
	Send(data interface{}, queue string) error
}

//Service writes audit events to the log and forwards them to an optional sender
type Service struct {
	sender Sender
	queue  string
}

//NewService creates an audit service. sender may be nil
func NewService(sender Sender) *Service {
	res := &Service{sender: sender}
	res.queue = cmdapp.Config.GetString("audit.queue")
	if res.queue == "" {
		res.queue = "audit"
	}
	return res
}

//Log records the event. Delivery is best effort, failures are logged and dropped
func (s *Service) Log(ev Event) {
	if ev.Timestamp == "" {
		ev.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(ev)
	if err != nil {
		ev.Extra = nil
		data, err = json.Marshal(ev)
	}
	if err != nil {
		cmdapp.Log.Error(errors.Wrap(err, "Can't marshal audit event"))
		return
	}
	cmdapp.Log.Infof("Audit: %s", string(data))
	if s.sender == nil {
		return
	}
	if err := s.sender.Send(data, s.queue); err != nil {
		cmdapp.Log.Error(errors.Wrap(err, "Can't send audit event"))
	}
}

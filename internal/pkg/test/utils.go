package test

import (
	"sync"

	"github.com/equiscribe/scribego/internal/pkg/audit"
)

//Events is a fake audit logger collecting events for assertions
type Events struct {
	m   sync.Mutex
	evs []audit.Event
}

func (e *Events) Log(ev audit.Event) {
	e.m.Lock()
	defer e.m.Unlock()
	e.evs = append(e.evs, ev)
}

//Get returns collected events
func (e *Events) Get() []audit.Event {
	e.m.Lock()
	defer e.m.Unlock()
	res := make([]audit.Event, len(e.evs))
	copy(res, e.evs)
	return res
}

//Last returns the newest event or an empty one
func (e *Events) Last() audit.Event {
	e.m.Lock()
	defer e.m.Unlock()
	if len(e.evs) == 0 {
		return audit.Event{}
	}
	return e.evs[len(e.evs)-1]
}

//Actions returns collected event actions in order
func (e *Events) Actions() []string {
	e.m.Lock()
	defer e.m.Unlock()
	res := make([]string, 0, len(e.evs))
	for _, ev := range e.evs {
		res = append(res, ev.Action)
	}
	return res
}

//Contains checks if the slice contains the value
func Contains(s []string, v string) bool {
	for _, a := range s {
		if a == v {
			return true
		}
	}
	return false
}

package nlp

import (
	"github.com/equiscribe/scribego/internal/pkg/audit"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/pkg/errors"
)

//BiasAuditor records aggregate suggestion severity counts so that later
//analytics can inspect potential imbalances across populations.
//Nothing is blocked or mutated here
type BiasAuditor struct {
	events audit.Logger
}

//NewBiasAuditor creates BiasAuditor instance
func NewBiasAuditor(events audit.Logger) (*BiasAuditor, error) {
	if events == nil {
		return nil, errors.New("No audit logger provided")
	}
	return &BiasAuditor{events: events}, nil
}

//Audit emits one audit event with severity counts
func (b *BiasAuditor) Audit(suggestions []domain.DecisionSupportSuggestion) {
	if len(suggestions) == 0 {
		return
	}
	counts := make(map[string]interface{})
	for _, s := range suggestions {
		v, _ := counts[string(s.Severity)].(int)
		counts[string(s.Severity)] = v + 1
	}
	b.events.Log(audit.Event{
		Action:       "cds_bias_audit",
		ResourceType: "decision_support_suggestions",
		Extra:        map[string]interface{}{"severity_counts": counts},
	})
}

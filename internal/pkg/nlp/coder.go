package nlp

import (
	"strings"

	"github.com/equiscribe/scribego/internal/pkg/domain"
)

//DemoCoder codes the demo diabetes diagnosis to ICD-10 E11 so that the
//export flow has at least one coded condition
type DemoCoder struct {
}

//NewDemoCoder creates DemoCoder instance
func NewDemoCoder() *DemoCoder {
	return &DemoCoder{}
}

//Code fills codes on known demo diagnoses
func (c *DemoCoder) Code(entities domain.ClinicalEntities) (domain.ClinicalEntities, error) {
	for i := range entities.Diagnoses {
		d := &entities.Diagnoses[i]
		if strings.ToLower(d.Text) == "diabetes" && d.Code == "" {
			d.Code = "E11"
		}
	}
	return entities, nil
}

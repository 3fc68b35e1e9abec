package nlp

import (
	"strings"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/equiscribe/scribego/internal/pkg/errs"
)

//Extractor extracts structured clinical entities from free text
type Extractor interface {
	Extract(text string) (domain.ClinicalEntities, error)
}

//Coder fills code fields on extracted entities where possible
type Coder interface {
	Code(entities domain.ClinicalEntities) (domain.ClinicalEntities, error)
}

//SOAPGenerator builds a structured note from text and entities
type SOAPGenerator interface {
	Generate(text string, entities domain.ClinicalEntities) (domain.SOAPNote, error)
}

//NewExtractor creates an extractor selected by the nlp.ner setting
func NewExtractor() (Extractor, error) {
	name := strings.ToLower(cmdapp.Config.GetString("nlp.ner"))
	switch name {
	case "", "demo":
		return NewDemoExtractor(), nil
	}
	return nil, errs.Errorf(errs.Configuration, "Unknown NER backend '%s'", name)
}

//NewCoder creates a coder selected by the nlp.coding setting
func NewCoder() (Coder, error) {
	name := strings.ToLower(cmdapp.Config.GetString("nlp.coding"))
	switch name {
	case "", "demo":
		return NewDemoCoder(), nil
	case "file":
		return NewFileCoder(cmdapp.Config.GetString("nlp.codingFile"))
	}
	return nil, errs.Errorf(errs.Configuration, "Unknown coding backend '%s'", name)
}

//NewSOAPGenerator creates a generator selected by the nlp.soap setting
func NewSOAPGenerator() (SOAPGenerator, error) {
	name := strings.ToLower(cmdapp.Config.GetString("nlp.soap"))
	switch name {
	case "", "demo":
		return NewDemoSOAPGenerator(), nil
	}
	return nil, errs.Errorf(errs.Configuration, "Unknown SOAP backend '%s'", name)
}

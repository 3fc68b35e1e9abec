package nlp

import (
	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/consent"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/pkg/errors"
)

//Service is the clinical NLP pipeline. It runs consent gated phrase
//normalization, entity extraction, coding and SOAP generation
type Service struct {
	extractor  Extractor
	coder      Coder
	soap       SOAPGenerator
	cultural   *CulturalNormalizer
	indigenous *IndigenousNormalizer
}

//NewService creates the pipeline from its stages
func NewService(extractor Extractor, coder Coder, soap SOAPGenerator,
	cultural *CulturalNormalizer, indigenous *IndigenousNormalizer) (*Service, error) {
	if extractor == nil {
		return nil, errors.New("No extractor provided")
	}
	if coder == nil {
		return nil, errors.New("No coder provided")
	}
	if soap == nil {
		return nil, errors.New("No SOAP generator provided")
	}
	if cultural == nil {
		return nil, errors.New("No cultural normalizer provided")
	}
	if indigenous == nil {
		return nil, errors.New("No indigenous normalizer provided")
	}
	return &Service{extractor: extractor, coder: coder, soap: soap,
		cultural: cultural, indigenous: indigenous}, nil
}

//Analyze runs the pipeline over a transcript.
//Patient metadata is optional, without it a default permissive consent
//context applies
func (s *Service) Analyze(tenantID, transcript string,
	md *domain.PatientMetadata) (domain.ClinicalEntities, domain.SOAPNote, error) {
	cmdapp.Log.Debugf("Analyzing %d b of transcript", len(transcript))
	cc := consent.Evaluate(tenantID, md)

	text := transcript
	if cc.CulturalAIAllowed {
		text = s.cultural.Normalize(text, &cc)
		text = s.indigenous.Normalize(text, &cc)
	}

	entities, err := s.extractor.Extract(text)
	if err != nil {
		return domain.ClinicalEntities{}, domain.SOAPNote{}, errors.Wrap(err, "Can't extract entities")
	}
	entities, err = s.coder.Code(entities)
	if err != nil {
		return domain.ClinicalEntities{}, domain.SOAPNote{}, errors.Wrap(err, "Can't code entities")
	}
	note, err := s.soap.Generate(text, entities)
	if err != nil {
		return domain.ClinicalEntities{}, domain.SOAPNote{}, errors.Wrap(err, "Can't generate note")
	}
	return entities, note, nil
}

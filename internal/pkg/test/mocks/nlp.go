package mocks

import (
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/stretchr/testify/mock"
)

//Extractor is a mocked object
type Extractor struct {
	mock.Mock
}

//Extract mock
func (m *Extractor) Extract(text string) (domain.ClinicalEntities, error) {
	args := m.Mock.Called(text)
	return args.Get(0).(domain.ClinicalEntities), args.Error(1)
}

//Coder is a mocked object
type Coder struct {
	mock.Mock
}

//Code mock
func (m *Coder) Code(entities domain.ClinicalEntities) (domain.ClinicalEntities, error) {
	args := m.Mock.Called(entities)
	return args.Get(0).(domain.ClinicalEntities), args.Error(1)
}

//SOAPGenerator is a mocked object
type SOAPGenerator struct {
	mock.Mock
}

//Generate mock
func (m *SOAPGenerator) Generate(text string, entities domain.ClinicalEntities) (domain.SOAPNote, error) {
	args := m.Mock.Called(text, entities)
	return args.Get(0).(domain.SOAPNote), args.Error(1)
}

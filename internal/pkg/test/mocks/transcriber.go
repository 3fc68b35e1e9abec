package mocks

import "github.com/stretchr/testify/mock"

//Transcriber is a mock
type Transcriber struct {
	mock.Mock
}

//Transcribe is a mocked Transcribe function
func (m *Transcriber) Transcribe(audioPath, languageCode string) (string, error) {
	args := m.Mock.Called(audioPath, languageCode)
	return args.String(0), args.Error(1)
}

//Translator is a mock
type Translator struct {
	mock.Mock
}

//Translate is a mocked Translate function
func (m *Translator) Translate(text, sourceLanguage, targetLanguage string) (string, error) {
	args := m.Mock.Called(text, sourceLanguage, targetLanguage)
	return args.String(0), args.Error(1)
}

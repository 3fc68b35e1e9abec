package mocks

import "github.com/stretchr/testify/mock"

//Cleaner is a mock
type Cleaner struct {
	mock.Mock
}

//Clean is a mocked Clean function
func (m *Cleaner) Clean(ID string) error {
	args := m.Mock.Called(ID)
	return args.Error(0)
}

//OldIDsProvider is a mock
type OldIDsProvider struct {
	mock.Mock
}

//Get is a mocked Get function
func (m *OldIDsProvider) Get() ([]string, error) {
	args := m.Mock.Called()
	var res []string
	if args.Get(0) != nil {
		res = args.Get(0).([]string)
	}
	return res, args.Error(1)
}

//AudioPathProvider is a mock
type AudioPathProvider struct {
	mock.Mock
}

//AudioPath is a mocked AudioPath function
func (m *AudioPathProvider) AudioPath(ID string) (string, error) {
	args := m.Mock.Called(ID)
	return args.String(0), args.Error(1)
}

package clean

import (
	"testing"
	"time"

	"github.com/equiscribe/scribego/internal/pkg/test/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var idsProviderMock *mocks.OldIDsProvider

func initTimerTest(t *testing.T) {
	t.Helper()
	cleanerMock = &mocks.Cleaner{}
	cleanerMock.On("Clean", mock.Anything).Return(nil)
	idsProviderMock = &mocks.OldIDsProvider{}
	idsProviderMock.On("Get").Return([]string{}, nil)
}

func TestInvokesOnStartup(t *testing.T) {
	initTimerTest(t)
	d := newtData()

	startCleanTimer(d)

	go close(d.qChan)
	<-d.workWaitChan
	idsProviderMock.AssertNumberOfCalls(t, "Get", 1)
}

func TestInvokesOnTimer(t *testing.T) {
	initTimerTest(t)
	d := newtData()
	d.runEvery = time.Millisecond * 5

	startCleanTimer(d)

	time.Sleep(30 * time.Millisecond)
	go close(d.qChan)
	<-d.workWaitChan
	assert.GreaterOrEqual(t, callCount(&idsProviderMock.Mock, "Get"), 3)
}

func TestInvokesCleaner(t *testing.T) {
	initTimerTest(t)
	d := newtData()
	idsProviderMock = &mocks.OldIDsProvider{}
	idsProviderMock.On("Get").Return([]string{"1", "2"}, nil)
	d.idsProvider = idsProviderMock

	startCleanTimer(d)

	go close(d.qChan)
	<-d.workWaitChan
	cleanerMock.AssertNumberOfCalls(t, "Clean", 2)
}

func TestInvokesCleanerWithFailure(t *testing.T) {
	initTimerTest(t)
	d := newtData()
	idsProviderMock = &mocks.OldIDsProvider{}
	idsProviderMock.On("Get").Return([]string{"1", "2"}, nil)
	d.idsProvider = idsProviderMock
	cleanerMock = &mocks.Cleaner{}
	cleanerMock.On("Clean", mock.Anything).Return(errors.New("olia"))
	d.cleaner = cleanerMock

	startCleanTimer(d)

	go close(d.qChan)
	<-d.workWaitChan
	cleanerMock.AssertNumberOfCalls(t, "Clean", 2)
}

func TestContinuesOnProviderError(t *testing.T) {
	initTimerTest(t)
	d := newtData()
	idsProviderMock = &mocks.OldIDsProvider{}
	idsProviderMock.On("Get").Return(nil, errors.New("olia"))
	d.idsProvider = idsProviderMock
	d.runEvery = time.Millisecond * 10

	startCleanTimer(d)

	time.Sleep(55 * time.Millisecond)
	go close(d.qChan)
	<-d.workWaitChan
	assert.GreaterOrEqual(t, callCount(&idsProviderMock.Mock, "Get"), 3)
}

func callCount(m *mock.Mock, method string) int {
	res := 0
	for _, c := range m.Calls {
		if c.Method == method {
			res++
		}
	}
	return res
}

func newtData() *timerServiceData {
	data := timerServiceData{}
	data.workWaitChan = make(chan struct{})
	data.qChan = make(chan struct{})
	data.runEvery = time.Minute
	data.cleaner = cleanerMock
	data.idsProvider = idsProviderMock
	return &data
}

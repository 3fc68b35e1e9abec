package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

//Kind classifies an error for mapping to an HTTP response
type Kind int

const (
	//Unknown is an unclassified internal failure
	Unknown Kind = iota
	//Validation indicates a rejected input
	Validation
	//Configuration indicates a wrong or missing setting
	Configuration
	//Backend indicates a failure of an external processing backend
	Backend
	//Authorization indicates the caller may not act on the resource
	Authorization
	//NotFound indicates the resource does not exist for the caller
	NotFound
	//Conflict indicates the resource is not in a state allowing the operation
	Conflict
)

var kindName = map[Kind]string{Unknown: "UNKNOWN", Validation: "VALIDATION",
	Configuration: "CONFIGURATION", Backend: "BACKEND", Authorization: "AUTHORIZATION",
	NotFound: "NOT_FOUND", Conflict: "CONFLICT"}

func (k Kind) String() string {
	if n, ok := kindName[k]; ok {
		return n
	}
	return "UNKNOWN"
}

type kindError struct {
	kind Kind
	msg  string
}

func (e *kindError) Error() string {
	return e.msg
}

//New creates an error of the kind
func New(kind Kind, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

//Errorf creates an error of the kind with a formatted message
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

//KindOf extracts the kind from an error, looking through wrapping
func KindOf(err error) Kind {
	if err == nil {
		return Unknown
	}
	if ke, ok := errors.Cause(err).(*kindError); ok {
		return ke.kind
	}
	return Unknown
}

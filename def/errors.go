package def

import (
	"github.com/spacemonkeygo/errors"
)

// grouping, do not instantiate
var Error *errors.ErrorClass = errors.NewClass("ConfigError")

/*
	Raised when a task configuration cannot be parsed at all --
	malformed yaml, or a document shape the decoder can't map onto
	the config structs.
*/
var ParseError *errors.ErrorClass = Error.NewClass("ConfigParseError")

/*
	Validation errors cover configuration that parsed but is
	unacceptable in content: a missing clients map, an unsupported
	python version, a role string that doesn't name a client, etc.

	These are always raised before any remote interaction happens.
*/
var ValidationError *errors.ErrorClass = Error.NewClass("ValidationError")

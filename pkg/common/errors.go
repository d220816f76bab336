package common

import "errors"

var (
	//ErrConnectionRequired is returned when an operation needs an active connection
	ErrConnectionRequired = errors.New("Connection required")
	//ErrAlreadyConnected is returned when Connect is called on an open connection
	ErrAlreadyConnected = errors.New("Already connected")
	//ErrChallengeTimeout is returned when no challenge arrived within the configured window
	ErrChallengeTimeout = errors.New("Challenge timeout")
	//ErrTimeout is returned when a read deadline elapses without data
	ErrTimeout = errors.New("Connection timeout")
	//ErrNoAddress is returned when no remote address was configured
	ErrNoAddress = errors.New("No remote address configured")
	//ErrUnknownMode is returned for a security mode outside rcon_secure 0..2
	ErrUnknownMode = errors.New("Unknown security mode")
)

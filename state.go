package nsduck

import "github.com/orsinium-labs/enum"

// State is the lifecycle state of a Session.
type State enum.Member[string]

var (
	StateUnopened  = State{Value: "unopened"}
	StateOpened    = State{Value: "opened"}
	StateConnected = State{Value: "connected"}
	StateClosed    = State{Value: "closed"}

	States = enum.New(StateUnopened, StateOpened, StateConnected, StateClosed)
)

// String returns the state name.
func (s State) String() string {
	return s.Value
}

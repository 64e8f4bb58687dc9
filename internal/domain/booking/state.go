package booking

import (
	"strings"

	"shareit/internal/pkg/errs"
)

var ErrInvalidState = errs.New("invalid booking state")

// State is the query-time bucket a listing request asks for. It is never
// persisted; CURRENT/PAST/FUTURE are evaluated against a single "now"
// captured per call, WAITING/REJECTED filter on Status.
type State int

const (
	StateAll State = iota
	StateCurrent
	StatePast
	StateFuture
	StateWaiting
	StateRejected
)

var stateNames = map[State]string{
	StateAll:      "ALL",
	StateCurrent:  "CURRENT",
	StatePast:     "PAST",
	StateFuture:   "FUTURE",
	StateWaiting:  "WAITING",
	StateRejected: "REJECTED",
}

var statesByName = func() map[string]State {
	m := make(map[string]State, len(stateNames))
	for s, n := range stateNames {
		m[n] = s
	}
	return m
}()

func (s State) String() string {
	return stateNames[s]
}

// StateFrom classifies a raw state token. Blank means ALL; anything else
// must match one of the six buckets case-insensitively.
func StateFrom(raw string) (State, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return StateAll, nil
	}

	state, ok := statesByName[strings.ToUpper(token)]
	if !ok {
		return StateAll, errs.Mark(
			errs.Newf("invalid booking state %q, expected one of ALL, CURRENT, PAST, FUTURE, WAITING, REJECTED", token),
			ErrInvalidState,
		)
	}
	return state, nil
}

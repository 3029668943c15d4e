package indexer

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseFetchingBalances
	PhaseFetchingMetadata
	PhasePublished
)

var phaseNames = map[Phase]string{
	PhaseIdle:             "idle",
	PhaseValidating:       "validating",
	PhaseFetchingBalances: "fetching-balances",
	PhaseFetchingMetadata: "fetching-metadata",
	PhasePublished:        "published",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

type EventKind int

const (
	EventConnected EventKind = iota
	EventConnectFailed
	EventStarted
	EventValidated
	EventBalancesFetched
	EventPublished
	EventFailed
)

// Event drives Transition. Address is set for Connected, Started and
// Validated, Count for BalancesFetched, Results for Published, Err for
// Failed and ConnectFailed.
type Event struct {
	Kind    EventKind
	Address string
	Count   int
	Results []Holding
	Err     error
}

// State is an immutable snapshot of the component. Results is shared between
// snapshots and must not be modified.
type State struct {
	Phase            Phase
	Busy             bool
	ConnectedAddress string
	// Address is the effective address of the latest query.
	Address string
	// Pending is the number of balances awaiting metadata.
	Pending int
	Results []Holding
	Queried bool
	Err     error
}

// Transition returns the state that follows s after ev. Events from
// overlapping queries are applied as they arrive; the last publish wins.
func Transition(s State, ev Event) State {
	next := s
	switch ev.Kind {
	case EventConnected:
		next.ConnectedAddress = ev.Address
	case EventConnectFailed:
		next.Err = ev.Err
	case EventStarted:
		next.Phase = PhaseValidating
		next.Busy = true
		next.Address = ev.Address
		next.Pending = 0
		next.Err = nil
	case EventValidated:
		next.Phase = PhaseFetchingBalances
		next.Address = ev.Address
	case EventBalancesFetched:
		next.Phase = PhaseFetchingMetadata
		next.Pending = ev.Count
	case EventPublished:
		next.Phase = PhasePublished
		next.Busy = false
		next.Pending = 0
		next.Results = ev.Results
		next.Queried = true
	case EventFailed:
		// the previously published results stay visible
		next.Phase = PhaseIdle
		next.Busy = false
		next.Pending = 0
		next.Err = ev.Err
	}
	return next
}

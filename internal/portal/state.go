package portal

// State is a stage of a fetch
type State string

const (
	StateIdle         State = "idle"
	StateRequesting   State = "requesting"
	StateValidating   State = "validating"
	StateAccumulating State = "accumulating"
	StateFailed       State = "failed"
	StateDone         State = "done"
)

// Event reports a state transition of a fetch
type Event struct {
	State State
	// Token is the period token or page label of the current request
	Token string
	// Rows is the number of records accumulated so far
	Rows int
	Err  error
}

// Observer receives every state transition of every fetch made by a Client.
// It is called synchronously from the fetching goroutine.
type Observer func(Event)

type run struct {
	client   *Client
	endpoint string
	state    State
	rows     int
}

func (c *Client) newRun(endpoint string) *run {
	return &run{client: c, state: StateIdle, endpoint: endpoint}
}

func (r *run) transition(state State, token string, err error) {
	r.state = state
	r.client.logger.Debug("fetch state",
		"endpoint", r.endpoint,
		"state", state,
		"token", token,
		"rows", r.rows)
	if r.client.observer != nil {
		r.client.observer(Event{State: state, Token: token, Rows: r.rows, Err: err})
	}
}

func (r *run) fail(token string, err error) error {
	r.transition(StateFailed, token, err)
	return err
}

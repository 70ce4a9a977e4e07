package outbox

import "context"

// closedCh is returned by Done on a nil Ticket
var closedCh = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Ticket reports the outcome of one queued command. A nil *Ticket stands for
// work that was never queued and is always complete with no error.
type Ticket struct {
	done chan struct{}
	err  error
}

func newTicket() *Ticket {
	return &Ticket{done: make(chan struct{})}
}

// Resolved returns a ticket that is already complete with err
func Resolved(err error) *Ticket {
	t := newTicket()
	t.resolve(err)
	return t
}

func (t *Ticket) resolve(err error) {
	t.err = err
	close(t.done)
}

// Done is closed once the command has finished, successfully or not
func (t *Ticket) Done() <-chan struct{} {
	if t == nil {
		return closedCh
	}
	return t.done
}

// Err returns the final error of the command. It is only meaningful after Done is closed.
func (t *Ticket) Err() error {
	if t == nil {
		return nil
	}
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the command finishes or ctx is cancelled
func (t *Ticket) Wait(ctx context.Context) error {
	if t == nil {
		return nil
	}
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

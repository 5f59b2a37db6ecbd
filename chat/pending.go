package chat

import "context"

// Result is the outcome of a question: either a reply or an error.
type Result struct {
	Reply string
	Err   error
}

// Ok is a predicate: did the question get a reply?
func (r Result) Ok() bool {
	return r.Err == nil
}

// Pending is an answer still on its way. Its result is delivered exactly
// once; a render loop polls Done without blocking.
type Pending struct {
	done   chan struct{}
	result Result
	cancel context.CancelFunc
}

func newPending(cancel context.CancelFunc) *Pending {
	return &Pending{done: make(chan struct{}), cancel: cancel}
}

func (p *Pending) resolve(r Result) {
	p.result = r
	p.cancel()
	close(p.done)
}

// Done returns a channel closed as soon as the result is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the result is available and returns it.
func (p *Pending) Wait() Result {
	<-p.done
	return p.result
}

// Poll returns the result if it is available.
func (p *Pending) Poll() (Result, bool) {
	select {
	case <-p.done:
		return p.result, true
	default:
		return Result{}, false
	}
}

// Cancel abandons the question. The result will carry context.Canceled
// unless the reply had already arrived.
func (p *Pending) Cancel() {
	p.cancel()
}

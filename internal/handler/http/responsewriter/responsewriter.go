// Package responsewriter records the status and body size of a response
// so that access logs, metrics and spans can report them after the handler returns.
package responsewriter

import (
	"net/http"
)

// Recorder wraps an http.ResponseWriter. The first status written wins.
type Recorder struct {
	http.ResponseWriter
	status  int
	size    int
	written bool
}

// Wrap returns w unchanged when it is already a Recorder, so nested
// middleware share a single set of counters.
func Wrap(w http.ResponseWriter) *Recorder {
	if rec, ok := w.(*Recorder); ok {
		return rec
	}
	return &Recorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *Recorder) WriteHeader(status int) {
	if r.written {
		return
	}
	r.status = status
	r.written = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *Recorder) Write(b []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Flush forwards to the underlying writer when it supports streaming.
func (r *Recorder) Flush() {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Status is the recorded status code, 200 if nothing was written.
func (r *Recorder) Status() int { return r.status }

// Size is the number of body bytes written.
func (r *Recorder) Size() int { return r.size }

// Written reports whether the header has been sent.
func (r *Recorder) Written() bool { return r.written }

// Unwrap exposes the wrapped writer to http.ResponseController.
func (r *Recorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

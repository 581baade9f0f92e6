package logger

// Diagnostics are collected asynchronously as modules build and generate,
// then drained in one deterministic batch so that output does not depend on
// scheduling order.

import (
	"sort"
	"sync"
)

type Log struct {
	AddMsg    func(Msg)
	HasErrors func() bool
	Done      func() []Msg
}

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
)

func (kind MsgKind) String() string {
	switch kind {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		panic("Internal error")
	}
}

type Msg struct {
	Kind MsgKind
	Text string
}

// NewDeferLog buffers all messages and returns them sorted from Done. It is
// safe to add messages from multiple goroutines.
func NewDeferLog() Log {
	var msgs []Msg
	var mutex sync.Mutex
	var hasErrors bool

	return Log{
		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return hasErrors
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			sort.SliceStable(msgs, func(i int, j int) bool {
				if msgs[i].Kind != msgs[j].Kind {
					return msgs[i].Kind < msgs[j].Kind
				}
				return msgs[i].Text < msgs[j].Text
			})
			return msgs
		},
	}
}

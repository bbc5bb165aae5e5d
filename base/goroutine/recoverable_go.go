// Package goroutine runs long lived loops that must not take the process down on panic.
package goroutine

import (
	"runtime/debug"

	"github.com/x-xyz/dustsweep/base/log"
)

type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type options struct {
	beforeStart    func()
	afterEnded     func()
	afterRecovered func(p interface{}, stack []byte)
}

type Option func(*options)

func WithBeforeStart(f func()) Option {
	return func(o *options) { o.beforeStart = f }
}

// WithAfterEnded runs once f returns or panics, before any recovery hook
func WithAfterEnded(f func()) Option {
	return func(o *options) { o.afterEnded = f }
}

func WithAfterRecovered(f func(p interface{}, stack []byte)) Option {
	return func(o *options) { o.afterRecovered = f }
}

// RecoverableGo runs f in a goroutine. The returned channel yields the panic, or is closed on a clean return.
func RecoverableGo(f func(), opts ...Option) <-chan *PanicEvent {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	panicChan := make(chan *PanicEvent, 1)
	go func() {
		defer func() {
			if o.afterEnded != nil {
				o.afterEnded()
			}

			p := recover()
			if p == nil {
				close(panicChan)
				return
			}
			stack := debug.Stack()
			log.Log().WithFields(log.Fields{
				"err":   p,
				"stack": string(stack),
			}).Error("panic")
			if o.afterRecovered != nil {
				o.afterRecovered(p, stack)
			}
			panicChan <- &PanicEvent{p, stack}
		}()

		if o.beforeStart != nil {
			o.beforeStart()
		}
		f()
	}()
	return panicChan
}

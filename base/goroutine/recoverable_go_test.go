package goroutine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecoverableGo(t *testing.T) {
	req := require.New(t)
	res := []string{}

	ev := <-RecoverableGo(
		func() {
			res = append(res, "run task")
			panic("boom")
		},
		WithBeforeStart(func() {
			res = append(res, "before start")
		}),
		WithAfterEnded(func() {
			res = append(res, "after ended")
		}),
		WithAfterRecovered(func(p interface{}, stack []byte) {
			res = append(res, "after recovered", p.(string))
		}),
	)

	req.NotNil(ev)
	req.Equal("boom", ev.Panic)
	req.NotEmpty(ev.Stack)
	req.Equal([]string{"before start", "run task", "after ended", "after recovered", "boom"}, res)
}

func TestRecoverableGoCleanExit(t *testing.T) {
	req := require.New(t)
	ran := false
	ev, ok := <-RecoverableGo(func() { ran = true })
	req.False(ok)
	req.Nil(ev)
	req.True(ran)
}

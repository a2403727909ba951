package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceRunsPhasesInOrderWithCarryOver(t *testing.T) {
	var log []string
	seq := NewSequence(
		Phase{Name: "open", Duration: 1, OnDone: func() { log = append(log, "open") }},
		Do("launch", func() { log = append(log, "launch") }),
		Phase{Name: "hold", Delay: 0.5, Duration: 0.5, OnDone: func() { log = append(log, "close") }},
	)

	seq.Update(0.6)
	assert.Equal(t, "open", seq.Current())
	assert.Empty(t, log)

	seq.Update(0.6) // 0.2 carries into hold
	assert.Equal(t, []string{"open", "launch"}, log)
	assert.Equal(t, "hold", seq.Current())
	assert.InDelta(t, 0.2, seq.Elapsed(), 1e-9)

	seq.Update(1)
	assert.Equal(t, []string{"open", "launch", "close"}, log)
	assert.True(t, seq.Done())
}

func TestSequenceStepReportsProgressAfterDelay(t *testing.T) {
	var got []float64
	seq := NewSequence(Phase{Delay: 1, Duration: 2, OnStep: func(p float64) { got = append(got, p) }})

	seq.Update(0.5)
	assert.Empty(t, got)
	seq.Update(1.5)
	seq.Update(5)
	assert.Equal(t, []float64{0.5, 1}, got)
}

func TestSequenceWaitUntilHoldsWithoutConsumingTime(t *testing.T) {
	open := false
	fired := 0
	seq := NewSequence(
		WaitUntil("open", func() bool { return open }),
		Do("fire", func() { fired++ }),
	)

	seq.Update(10)
	assert.Equal(t, 0, fired)
	open = true
	seq.Update(0)
	assert.Equal(t, 1, fired)
	assert.True(t, seq.Done())
}

func TestSchedulerDropsFinishedAndDefersNewSequences(t *testing.T) {
	var sc Scheduler
	ran := 0
	sc.Run(Do("spawn", func() {
		sc.Run(Do("child", func() { ran++ }))
	}))

	sc.Update(0.1)
	assert.Equal(t, 0, ran)
	assert.Equal(t, 1, sc.Active())

	sc.Update(0.1)
	assert.Equal(t, 1, ran)
	assert.Equal(t, 0, sc.Active())
}

package gravity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
)

func TestTimerZeroValueIsStopped(t *testing.T) {
	var tm Timer
	assert.False(t, tm.Running())
	assert.Nil(t, tm.C())
	assert.Zero(t, tm.Period())
	tm.Stop() // no-op
}

func TestTimerTicks(t *testing.T) {
	var tm Timer
	tm.Reset(5 * time.Millisecond)
	defer tm.Stop()

	require.True(t, tm.Running())
	assert.Equal(t, 5*time.Millisecond, tm.Period())

	select {
	case <-tm.C():
	case <-time.After(time.Second):
		t.Fatal("timer never ticked")
	}
}

func TestTimerResetReplacesTicker(t *testing.T) {
	var tm Timer
	tm.Reset(time.Hour)
	first := tm.C()

	tm.Reset(5 * time.Millisecond)
	defer tm.Stop()
	assert.NotEqual(t, first, tm.C(), "reset must not reuse the old ticker")

	select {
	case <-tm.C():
	case <-time.After(time.Second):
		t.Fatal("restarted timer never ticked")
	}
}

func TestTimerStopSilencesSelect(t *testing.T) {
	var tm Timer
	tm.Reset(time.Millisecond)
	tm.Stop()

	select {
	case <-tm.C():
		t.Fatal("stopped timer delivered a tick")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestTimerAdjust(t *testing.T) {
	var tm Timer
	tm.Adjust(time.Second)
	assert.False(t, tm.Running(), "adjust must not start a stopped timer")

	tm.Reset(time.Second)
	defer tm.Stop()
	c := tm.C()

	tm.Adjust(time.Second)
	assert.Equal(t, c, tm.C(), "same period keeps the ticker")

	tm.Adjust(500 * time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, tm.Period())
	assert.NotEqual(t, c, tm.C())
}

func TestTimerNonPositiveStops(t *testing.T) {
	var tm Timer
	tm.Reset(time.Second)
	tm.Reset(0)
	assert.False(t, tm.Running())
}

func TestClockGenerations(t *testing.T) {
	var c Clock
	assert.False(t, c.Running())
	assert.False(t, c.Valid(0))

	first := c.Restart()
	assert.True(t, c.Valid(first))

	second := c.Restart()
	assert.False(t, c.Valid(first), "restart must invalidate earlier ticks")
	assert.True(t, c.Valid(second))
	assert.Equal(t, second, c.Current())

	c.Stop()
	assert.False(t, c.Running())
	assert.False(t, c.Valid(second))

	third := c.Restart()
	assert.True(t, c.Valid(third))
	assert.NotEqual(t, second, third)
}

func TestScheduleDefaults(t *testing.T) {
	cfg := config.Default()
	s := NewSchedule(cfg.Gravity, cfg.Difficulty)

	assert.Equal(t, time.Second, s.Base())
	assert.Equal(t, time.Second, s.Interval(0, 0))
	assert.Equal(t, time.Second, s.Interval(500, 200))
}

func TestScheduleProgression(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, config.ApplyPreset(&cfg, config.DifficultyEasy))
	s := NewSchedule(cfg.Gravity, cfg.Difficulty)

	assert.Equal(t, time.Second, s.Interval(0, 0))
	assert.Less(t, s.Interval(150, 0), time.Second)
	// Full speed is 1 + speed_multiplier times the base rate.
	assert.Equal(t, 250*time.Millisecond, s.Interval(100000, 0))
	assert.GreaterOrEqual(t, s.Interval(100000, 0), cfg.Gravity.MinInterval())
}

func TestScheduleSanitizes(t *testing.T) {
	s := NewSchedule(config.GravityConfig{}, config.DifficultyConfig{})
	assert.Equal(t, time.Second, s.Interval(0, 0))

	f := Fixed(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, f.Interval(1000, 1000))
}

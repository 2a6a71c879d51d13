package buff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type log struct {
	calls []string
}

type recorder struct {
	Base[*log]
	kind      Type
	cancelAt  int
	middles   int
	onDamaged Reaction
}

func (r *recorder) Type() Type { return r.kind }

func (r *recorder) ApplyStart(l *log) { l.calls = append(l.calls, string(r.kind)+":start") }

func (r *recorder) ApplyMiddle(l *log, _ int) bool {
	r.middles++
	l.calls = append(l.calls, string(r.kind)+":middle")
	return r.cancelAt > 0 && r.middles >= r.cancelAt
}

func (r *recorder) ApplyEnd(l *log) { l.calls = append(l.calls, string(r.kind)+":end") }

func (r *recorder) HandleEvent(ev Event) Reaction {
	if ev.Kind == EventPlayerDamaged {
		return r.onDamaged
	}
	return NoReaction
}

func TestLifecycle(t *testing.T) {
	var l List[*log]
	ctx := &log{}
	l.Apply(&recorder{kind: "a"}, 100)

	l.Tick(ctx, 16)
	assert.Equal(t, []string{"a:start"}, ctx.calls)

	l.Tick(ctx, 16)
	assert.Equal(t, []string{"a:start", "a:middle"}, ctx.calls)

	l.Tick(ctx, 100)
	assert.Equal(t, []string{"a:start", "a:middle", "a:end"}, ctx.calls)
	assert.Equal(t, 0, l.Len())

	l.Tick(ctx, 16)
	assert.Len(t, ctx.calls, 3, "no hooks after end")
}

func TestReapplyRefreshesDuration(t *testing.T) {
	var l List[*log]
	ctx := &log{}
	first := &recorder{kind: "stun"}
	l.Apply(first, 500)
	l.Tick(ctx, 200)

	l.Apply(&recorder{kind: "stun"}, 900)
	require.Equal(t, 1, l.Len())

	a, ok := l.Get("stun")
	require.True(t, ok)
	ms, finite := a.Remaining()
	assert.True(t, finite)
	assert.Equal(t, 900, ms)
	assert.Same(t, first, a.Effect())
	assert.True(t, a.Started(), "refresh keeps the running instance")
}

func TestInfiniteNeverExpires(t *testing.T) {
	var l List[*log]
	ctx := &log{}
	l.ApplyInfinite(&recorder{kind: "aura"})
	for range 100 {
		l.Tick(ctx, 1000)
	}
	assert.True(t, l.Has("aura"))

	require.True(t, l.Cancel("aura"))
	l.Tick(ctx, 16)
	assert.False(t, l.Has("aura"))
	assert.Equal(t, "aura:end", ctx.calls[len(ctx.calls)-1])
}

func TestForceCancelHonouredNextTick(t *testing.T) {
	var l List[*log]
	ctx := &log{}
	l.Apply(&recorder{kind: "sneak", cancelAt: 1}, 10_000)

	l.Tick(ctx, 16) // start
	l.Tick(ctx, 16) // middle asks to cancel
	assert.True(t, l.Has("sneak"))

	l.Tick(ctx, 16)
	assert.False(t, l.Has("sneak"))
	assert.Equal(t, []string{"sneak:start", "sneak:middle", "sneak:end"}, ctx.calls)
}

func TestEventReactions(t *testing.T) {
	var l List[*log]
	ctx := &log{}
	l.Apply(&recorder{kind: "sneak", onDamaged: Cancel()}, 10_000)
	l.Apply(&recorder{kind: "rage", onDamaged: Extend(250)}, 1000)
	l.Apply(&recorder{kind: "calm"}, 1000)
	l.Tick(ctx, 0)

	l.HandleEvent(Event{Kind: EventPlayerDamaged, Amount: 3})

	sneak, _ := l.Get("sneak")
	assert.True(t, sneak.Cancelled())
	rage, _ := l.Get("rage")
	ms, _ := rage.Remaining()
	assert.Equal(t, 1250, ms)
	calm, _ := l.Get("calm")
	ms, _ = calm.Remaining()
	assert.Equal(t, 1000, ms)

	l.Tick(ctx, 16)
	assert.False(t, l.Has("sneak"))
	assert.Equal(t, 2, l.Len())
}

func TestZeroDurationStartsThenEnds(t *testing.T) {
	var l List[*log]
	ctx := &log{}
	l.Apply(&recorder{kind: "blink"}, 0)
	l.Tick(ctx, 16)
	l.Tick(ctx, 16)
	assert.Equal(t, []string{"blink:start", "blink:end"}, ctx.calls)
}

// chainTarget is a buff context that exposes its own buff list, the way a
// game entity hands itself to its effects.
type chainTarget struct {
	buffs *List[*chainTarget]
	ended []Type
}

type chain struct {
	Base[*chainTarget]
	kind Type
	next Type
}

func (c *chain) Type() Type { return c.kind }

func (c *chain) ApplyEnd(target *chainTarget) {
	target.ended = append(target.ended, c.kind)
	if c.next != "" {
		target.buffs.Apply(&chain{kind: c.next}, 100)
	}
}

func TestEndHookMayApplyBuffs(t *testing.T) {
	l := &List[*chainTarget]{}
	target := &chainTarget{buffs: l}
	l.Apply(&chain{kind: "charge", next: "stun"}, 0)

	l.Tick(target, 16)
	l.Tick(target, 16)
	assert.False(t, l.Has("charge"))
	assert.True(t, l.Has("stun"))
	assert.Equal(t, []Type{"charge"}, target.ended)
	assert.Equal(t, 1, l.Len())

	stun, ok := l.Get("stun")
	require.True(t, ok)
	assert.False(t, stun.Started())
	l.Tick(target, 16)
	assert.True(t, stun.Started())

	l.Tick(target, 100)
	assert.False(t, l.Has("stun"))
	assert.Equal(t, []Type{"charge", "stun"}, target.ended)
}

func TestNegativeDurationPanics(t *testing.T) {
	var l List[*log]
	assert.Panics(t, func() { l.Apply(&recorder{kind: "x"}, -1) })
}

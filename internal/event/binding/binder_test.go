package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/evbind/internal/event/handlers"
)

func TestBindAll_EndToEnd(t *testing.T) {
	var j journal
	var created handlers.Slot[string, handlers.Empty]

	s := NewScope(testSpace)
	Event(s.Container("Post"), "Created", idCreated, &created)
	program := s.Container("Program")
	Handles(program, "H1", j.handler("H1"), idCreated)
	Handles(program, "H2", j.handler("H2"), idCreated)

	report := BindAll(s)
	require.True(t, report.OK(), "%v", report.Err())
	assert.Equal(t, StateInstalled, report.State)

	require.NoError(t, created.Fire("post-1", handlers.Empty{}))
	assert.Equal(t, []invocation{
		{"H1", "post-1", handlers.Empty{}},
		{"H2", "post-1", handlers.Empty{}},
	}, j.calls)
}

func TestBindAll_NoHandlerIsNoop(t *testing.T) {
	var closed handlers.Slot[string, handlers.Empty]

	s := NewScope(testSpace)
	Event(s.Container("Post"), "Closed", idClosed, &closed)

	report := BindAll(s)
	require.True(t, report.OK())

	b, ok := report.Lookup(idClosed)
	require.True(t, ok)
	assert.Empty(t, b.Consumers)
	assert.True(t, closed.Installed())
	assert.Zero(t, closed.Len())
	assert.NoError(t, handlers.FireEmpty(&closed, "post-1"))
}

func TestBindAll_OrderPreservation(t *testing.T) {
	var j journal
	var created handlers.Slot[string, handlers.Empty]

	s := NewScope(testSpace)
	program := s.Container("Program")
	Handles(program, "C1", j.handler("C1"), idCreated)
	Handles(program, "C2", j.handler("C2"), idCreated)
	Event(s.Container("Post"), "Created", idCreated, &created)
	Handles(program, "C3", j.handler("C3"), idCreated)

	require.True(t, BindAll(s).OK())
	for i := 0; i < 3; i++ {
		require.NoError(t, handlers.FireEmpty(&created, "p"))
	}
	assert.Equal(t, []string{"C1", "C2", "C3", "C1", "C2", "C3", "C1", "C2", "C3"}, j.names())
}

func TestBindAll_Determinism(t *testing.T) {
	declare := func(j *journal, slot *handlers.Slot[string, handlers.Empty]) *Scope {
		s := NewScope(testSpace)
		Handles(s.Container("B"), "X", j.handler("B.X"), idCreated)
		Event(s.Container("Post"), "Created", idCreated, slot)
		Handles(s.Container("A"), "Y", j.handler("A.Y"), idCreated)
		Handles(s.Container("B"), "Z", j.handler("B.Z"), idCreated)
		return s
	}

	var runs [][]string
	for i := 0; i < 5; i++ {
		var j journal
		var slot handlers.Slot[string, handlers.Empty]
		report := BindAll(declare(&j, &slot))
		require.True(t, report.OK())
		require.NoError(t, handlers.FireEmpty(&slot, "p"))
		runs = append(runs, j.names())
	}

	for _, run := range runs {
		assert.Equal(t, []string{"B.X", "B.Z", "A.Y"}, run)
	}
}

func TestBindAll_AmbiguityInstallsNothingForIdentifier(t *testing.T) {
	var j journal
	var a, b, deleted handlers.Slot[string, handlers.Empty]

	s := NewScope(testSpace)
	Event(s.Container("Post"), "Created", idCreated, &a)
	Event(s.Container("Draft"), "Created", idCreated, &b)
	Event(s.Container("Post"), "Deleted", idDeleted, &deleted)
	Handles(s.Container("Program"), "C1", j.handler("C1"), idCreated, idDeleted)

	report := BindAll(s)
	assert.Equal(t, 1, report.Count(KindAmbiguousProducer))
	assert.Equal(t, StateInstalled, report.State)

	_, ok := report.Lookup(idCreated)
	assert.False(t, ok)
	assert.False(t, a.Installed())
	assert.False(t, b.Installed())

	assert.True(t, deleted.Installed())
	require.NoError(t, handlers.FireEmpty(&deleted, "p"))
	assert.Equal(t, []string{"C1"}, j.names())
}

func TestBindAll_UnresolvedIsReported(t *testing.T) {
	var j journal
	s := NewScope(testSpace)
	Handles(s.Container("Program"), "Orphan", j.handler("Orphan"), idEdited)

	report := BindAll(s)
	require.False(t, report.OK())
	assert.Equal(t, 1, report.Count(KindUnresolvedIdentifier))
	assert.Contains(t, report.Err().Error(), "Program.Orphan handles post.edited")
}

func TestBindAll_StopOnFailure(t *testing.T) {
	var j journal
	var created handlers.Slot[string, handlers.Empty]

	s := NewScope(testSpace)
	Event(s.Container("Post"), "Created", idCreated, &created)
	program := s.Container("Program")
	Handles(program, "C1", j.handler("C1"), idCreated)
	Handles(program, "C2", j.failing("C2", errBoom), idCreated)
	Handles(program, "C3", j.handler("C3"), idCreated)

	require.True(t, BindAll(s).OK())

	err := handlers.FireEmpty(&created, "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, KindHandlerFailure, KindOf(err))
	assert.Equal(t, []string{"C1", "C2"}, j.names())

	var herr *handlers.HandlerError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "Program.C2", herr.Handler)
	assert.Equal(t, idCreated, herr.ID)
}

func TestBindAll_MultiIdentifierConsumer(t *testing.T) {
	var j journal
	var created, deleted handlers.Slot[string, handlers.Empty]

	s := NewScope(testSpace)
	Event(s.Container("Post"), "Created", idCreated, &created)
	Event(s.Container("Post"), "Deleted", idDeleted, &deleted)
	Handles(s.Container("Program"), "Both", j.handler("Both"), idCreated, idDeleted)

	require.True(t, BindAll(s).OK())

	require.NoError(t, handlers.FireEmpty(&created, "created"))
	require.NoError(t, handlers.FireEmpty(&deleted, "deleted"))
	assert.Equal(t, []invocation{
		{"Both", "created", handlers.Empty{}},
		{"Both", "deleted", handlers.Empty{}},
	}, j.calls)
}

func TestBindAll_TypedPayload(t *testing.T) {
	var edited handlers.Slot[*testPost, editedArgs]
	var got []string

	s := NewScope(testSpace)
	Event(s.Container("Post"), "Edited", idEdited, &edited)
	Handles(s.Container("Program"), "Typed", func(p *testPost, args editedArgs) error {
		got = append(got, args.OldTitle+" -> "+p.Title)
		return nil
	}, idEdited)
	Handles(s.Container("Program"), "Loose", func(sender any, args any) error {
		got = append(got, "loose "+args.(editedArgs).OldTitle)
		return nil
	}, idEdited)

	require.True(t, BindAll(s).OK())
	require.NoError(t, edited.Fire(&testPost{Title: "new"}, editedArgs{OldTitle: "old"}))
	assert.Equal(t, []string{"old -> new", "loose old"}, got)
}

func TestBindAll_ReflectiveAdapterPropagatesErrors(t *testing.T) {
	var edited handlers.Slot[*testPost, editedArgs]

	s := NewScope(testSpace)
	Event(s.Container("Post"), "Edited", idEdited, &edited)
	Handles(s.Container("Program"), "Loose", func(sender any, args any) error { return errBoom }, idEdited)

	require.True(t, BindAll(s).OK())
	err := edited.Fire(nil, editedArgs{})
	assert.ErrorIs(t, err, errBoom)
}

func TestBindAll_Strict(t *testing.T) {
	var j journal
	var created, previous handlers.Slot[string, handlers.Empty]
	previous.Install(handlers.NewSet([]handlers.Handler[string, handlers.Empty]{{Name: "old", Fn: j.handler("old")}}))

	s := NewScope(testSpace)
	Event(s.Container("Post"), "Created", idCreated, &created)
	Event(s.Container("Post"), "Deleted", idDeleted, &previous)
	Handles(s.Container("Program"), "C1", j.handler("C1"), idCreated, idEdited)

	b := NewBinder(s, WithStrict(true))
	report := b.BindAll()

	assert.Equal(t, StateRejected, b.State())
	assert.Equal(t, StateRejected, report.State)
	assert.Empty(t, report.Bindings)
	assert.Equal(t, 1, report.Count(KindUnresolvedIdentifier))
	assert.False(t, created.Installed())

	require.NoError(t, handlers.FireEmpty(&previous, "p"))
	assert.Equal(t, []string{"old"}, j.names())
}

func TestBinder_StateMachine(t *testing.T) {
	var created handlers.Slot[string, handlers.Empty]
	s := NewScope(testSpace)
	Event(s.Container("Post"), "Created", idCreated, &created)

	b := NewBinder(s)
	assert.Equal(t, StateUninitialized, b.State())

	b.BindAll()
	assert.Equal(t, StateInstalled, b.State())
	assert.True(t, created.Installed())

	b.Teardown()
	assert.Equal(t, StateUninitialized, b.State())
	assert.False(t, created.Installed())
}

func TestBinder_RebindOverwrites(t *testing.T) {
	var j journal
	var created handlers.Slot[string, handlers.Empty]

	s := NewScope(testSpace)
	Event(s.Container("Post"), "Created", idCreated, &created)
	Handles(s.Container("Program"), "C1", j.handler("C1"), idCreated)

	b := NewBinder(s)
	first := b.BindAll()
	Handles(s.Container("Program"), "C2", j.handler("C2"), idCreated)
	second := b.BindAll()

	assert.NotEqual(t, first.ID, second.ID)
	require.NoError(t, handlers.FireEmpty(&created, "p"))
	assert.Equal(t, []string{"C1", "C2"}, j.names())
}

func TestBinder_TeardownKeepsLaterInstall(t *testing.T) {
	var j journal
	var created handlers.Slot[string, handlers.Empty]

	s1 := NewScope(testSpace)
	Event(s1.Container("Post"), "Created", idCreated, &created)
	Handles(s1.Container("Program"), "First", j.handler("first"), idCreated)

	s2 := NewScope(testSpace)
	Event(s2.Container("Post"), "Created", idCreated, &created)
	Handles(s2.Container("Audit"), "Second", j.handler("second"), idCreated)

	b1, b2 := NewBinder(s1), NewBinder(s2)
	require.True(t, b1.BindAll().OK())
	require.True(t, b2.BindAll().OK())

	b1.Teardown()
	require.True(t, created.Installed(), "the second binder's set survives")
	require.NoError(t, handlers.FireEmpty(&created, "p"))
	assert.Equal(t, []string{"second"}, j.names())

	b2.Teardown()
	assert.False(t, created.Installed())
}

func TestBinder_TeardownAfterRebind(t *testing.T) {
	var j journal
	var created handlers.Slot[string, handlers.Empty]

	s := NewScope(testSpace)
	Event(s.Container("Post"), "Created", idCreated, &created)
	Handles(s.Container("Program"), "C1", j.handler("C1"), idCreated)

	b := NewBinder(s)
	b.BindAll()
	b.BindAll()

	b.Teardown()
	assert.False(t, created.Installed(), "the latest pass's set is released")
}

func TestBindAll_NilScope(t *testing.T) {
	report := BindAll(nil)
	assert.True(t, report.OK())
	assert.Empty(t, report.Bindings)
	assert.Equal(t, StateInstalled, report.State)
}

func TestBindAll_Logging(t *testing.T) {
	var j journal
	var created handlers.Slot[string, handlers.Empty]
	core, logs := observer.New(zapcore.DebugLevel)

	s := NewScope(testSpace)
	Event(s.Container("Post"), "Created", idCreated, &created)
	Handles(s.Container("Program"), "C1", j.handler("C1"), idCreated)
	Handles(s.Container("Program"), "Orphan", j.handler("Orphan"), idEdited)

	report := BindAll(s, WithLogger(zap.New(core)))

	warn := logs.FilterMessage("binding error").All()
	require.Len(t, warn, 1)
	assert.Equal(t, string(KindUnresolvedIdentifier), warn[0].ContextMap()["kind"])

	installed := logs.FilterMessage("binding installed").All()
	require.Len(t, installed, 1)
	assert.Equal(t, "post.created", installed[0].ContextMap()["id"])

	summary := logs.FilterMessage("binding pass complete").All()
	require.Len(t, summary, 1)
	assert.Equal(t, report.ID, summary[0].ContextMap()["pass"])
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "scanning", StateScanning.String())
	assert.Equal(t, "resolving", StateResolving.String())
	assert.Equal(t, "installed", StateInstalled.String())
	assert.Equal(t, "rejected", StateRejected.String())
	assert.Equal(t, "unknown", State(42).String())
}

package handlers_test

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/vestige/content"
	"github.com/cory-johannsen/vestige/internal/frontend/handlers"
	"github.com/cory-johannsen/vestige/internal/frontend/telnet"
	"github.com/cory-johannsen/vestige/internal/game/actor"
	amocks "github.com/cory-johannsen/vestige/internal/game/assembly/mocks"
	"github.com/cory-johannsen/vestige/internal/game/character"
	"github.com/cory-johannsen/vestige/internal/game/dice"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
	"github.com/cory-johannsen/vestige/internal/testutil"
	"github.com/cory-johannsen/vestige/internal/wizard"
	wmocks "github.com/cory-johannsen/vestige/internal/wizard/mocks"
)

type fixture struct {
	actors *amocks.MockActorStore
	state  *wmocks.MockStateStore
	svc    wizard.Services
}

func newFixture(t *testing.T, withState bool) *fixture {
	t.Helper()
	tables, err := ruleset.LoadTables(content.FS)
	require.NoError(t, err)
	ctrl := gomock.NewController(t)
	logger := zaptest.NewLogger(t)
	f := &fixture{actors: amocks.NewMockActorStore(ctrl)}
	f.svc = wizard.Services{
		Tables: tables,
		Dice:   dice.NewLoggedRoller(dice.NewSequenceSource(9), logger),
		Actors: f.actors,
		Logger: logger,
	}
	if withState {
		f.state = wmocks.NewMockStateStore(ctrl)
		f.svc.State = f.state
	}
	return f
}

// run starts a session over an in-memory pipe and returns the client and the
// channel receiving HandleSession's result.
func (f *fixture) run(t *testing.T, ctx context.Context) (*testutil.TelnetClient, <-chan error) {
	t.Helper()
	server, client := net.Pipe()
	conn := telnet.NewConn("session-test", server, 0, 2*time.Second)
	h := handlers.NewCreatorHandler(f.svc, wizard.Options{}, zap.NewNop())
	done := make(chan error, 1)
	go func() {
		done <- h.HandleSession(ctx, conn)
		_ = conn.Close()
	}()
	return testutil.WrapTelnetConn(t, client), done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("session did not end")
		return nil
	}
}

func TestCreatorHandler_CreatesAgent(t *testing.T) {
	f := newFixture(t, false)
	var created actor.Actor
	f.actors.EXPECT().CreateActor(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a actor.Actor) (*actor.Record, error) {
			created = a
			return &actor.Record{ID: "actor-1", Name: a.Name, Kind: actor.TypeCharacter}, nil
		})
	f.actors.EXPECT().CreateEmbedded(gomock.Any(), "actor-1", gomock.Any()).
		Return([]actor.Record{{ID: "item"}}, nil).AnyTimes()

	c, done := f.run(t, context.Background())
	c.Expect("Step 1 of 7: Attributes")

	c.Send("roll")
	c.Expect("VGR  Vigor")
	c.Send("name Mara Quill")
	c.Expect("Name: Mara Quill")
	c.Send("array 65 50 50 45")
	c.Expect("(VGR GRC INS PRS)")
	c.Send("next")
	c.Expect("Step 2 of 7: Path")

	c.Send("profession agent")
	c.Send("upbringing average")
	c.Send("next")
	c.Expect("Step 3 of 7: Benefits & Burdens")

	c.Send("benefit ironBody")
	c.Send("benefit quickReflexes")
	c.Send("next")
	c.Expect("Cannot select more than 1 benefits")
	c.Send("benefit quickReflexes")
	c.Send("next")
	c.Expect("Step 4 of 7: Skills")

	c.Send("elective Close Combat")
	c.Send("elective deception")
	c.Send("next")
	c.Expect("Type required for elective skill Close Combat")
	c.Send("elective close combat: Boxing")
	c.Send("next")
	c.Expect("Step 5 of 7: Ties")
	c.Expect("Create 2 ties totalling 90 points")

	c.Send("tie 3 Cal | Rival | 10")
	c.Expect("Tie number must be between 1 and 2")
	c.Send("tie 1 Ana | Sister | 45")
	c.Send("tie 2 Ben | Old partner | 40")
	c.Send("next")
	c.Expect("Total strength must equal 90 (currently 85)")
	c.Send("tie 2 Ben | Old partner | 45")
	c.Send("next")
	c.Expect("Step 6 of 7: Final Details")

	c.Send("detail age 34")
	c.Send("detail motivation Find the missing")
	c.Send("next")
	c.Expect("Mara Quill has been created.")
	c.Expect("HLT 13")
	c.Expect("Goodbye.")

	require.NoError(t, waitDone(t, done))
	assert.Equal(t, "Mara Quill", created.Name)
	assert.Equal(t, 65, created.System.PrimaryAttributes["vgr"].Value)
	assert.Contains(t, created.System.Biography, "34")
}

func TestCreatorHandler_RejectsProfessionBelowCoreMinimum(t *testing.T) {
	f := newFixture(t, false)
	c, done := f.run(t, context.Background())
	c.Expect("Step 1 of 7")

	c.Send("set vgr 40")
	c.Expect("Vigor")
	c.Send("next")
	c.Expect("Step 2 of 7: Path")
	c.Send("profession agent")
	c.Expect("Agent requires VGR of 50 or higher (current: 40)")

	c.Send("back")
	c.Expect("Step 1 of 7: Attributes")
	c.Send("quit")
	c.Expect("Goodbye.")
	require.NoError(t, waitDone(t, done))
}

func TestCreatorHandler_UsageErrors(t *testing.T) {
	f := newFixture(t, false)
	c, done := f.run(t, context.Background())
	c.Expect("Step 1 of 7")

	c.Send("fly")
	c.Expect(`Unknown command "fly"`)
	c.Send("array 65 50")
	c.Expect("Usage: array <vgr> <grc> <ins> <prs>")
	c.Send("array 65 65 50 45")
	c.Expect("Assign each standard array value (65, 50, 50, 45) exactly once")
	c.Send("set luck 9")
	c.Expect("Unknown attribute: luck")
	c.Send("help")
	c.Expect("validate this step and continue")
	c.Send("back")
	c.Expect("That command is not available at this step.")

	c.Send("quit")
	require.NoError(t, waitDone(t, done))
}

func TestCreatorHandler_OffersRestore(t *testing.T) {
	f := newFixture(t, true)
	d := character.NewDraft(50)
	d.Name = "Mara"
	d.Path = character.Path{Profession: "agent", Upbringing: "average"}
	payload, err := json.Marshal(map[string]any{"step": "path", "draft": d})
	require.NoError(t, err)
	f.state.EXPECT().Get(gomock.Any(), wizard.DefaultStateNamespace, "state-Mara").Return(payload, true, nil)
	f.state.EXPECT().Get(gomock.Any(), wizard.DefaultStateNamespace, "state-Nobody").Return(nil, false, nil).AnyTimes()
	f.state.EXPECT().Set(gomock.Any(), wizard.DefaultStateNamespace, gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	c, done := f.run(t, context.Background())
	c.Expect("Enter a saved character name to resume")
	c.Send("Mara")
	c.Expect("Resumed Mara.")
	c.Expect("Step 2 of 7: Path")
	c.Send("quit")
	c.Expect("Your progress has been saved.")
	require.NoError(t, waitDone(t, done))

	c, done = f.run(t, context.Background())
	c.Expect("Enter a saved character name to resume")
	c.Send("Nobody")
	c.Expect("No saved draft for Nobody. Starting fresh.")
	c.Expect("Step 1 of 7: Attributes")
	c.Send("quit")
	require.NoError(t, waitDone(t, done))
}

func TestCreatorHandler_CancelledContextEndsSession(t *testing.T) {
	f := newFixture(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	c, done := f.run(t, ctx)
	c.Expect("> ")

	cancel()
	err := waitDone(t, done)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseCommand(t *testing.T) {
	assert.Equal(t, handlers.Command{Verb: "elective", Args: "Close Combat: Boxing"}, handlers.ParseCommand("  Elective   Close Combat: Boxing "))
	assert.Equal(t, handlers.Command{Verb: "next"}, handlers.ParseCommand("NEXT"))
	assert.Equal(t, handlers.Command{}, handlers.ParseCommand("   "))
}

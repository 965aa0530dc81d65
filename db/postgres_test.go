package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/fabianojp06/pelada-hero/containers"
	"github.com/fabianojp06/pelada-hero/model"
)

var (
	// A test global db instance to use for all of the tests instead of setting up a new one each time.
	testDB DB

	// a counter to generate new ids for each test. To help keep them separated.
	idCtr = int32(0)
)

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	container := containers.NewDBContainer()

	clock := clock.New()

	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if container != nil {
				container.Shutdown()
			}
			fmt.Println("panic")
		}
	}()

	var err error
	testDB, err = New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	container.Shutdown()
	os.Exit(code)
}

func TestDB_savePlayerAndLoad(t *testing.T) {
	ctx := context.Background()
	p := getPlayer("Rafa")

	err := testDB.SavePlayer(ctx, p)
	assertFatalf(t, err == nil, "error saving player: %v", err)

	res, err := testDB.GetPlayer(ctx, p.ID)
	assertFatalf(t, err == nil, "error retrieving player: %v", err)

	assertEquals(t, "ID", p.ID, res.ID)
	assertEquals(t, "Name", p.Name, res.Name)
	assertEquals(t, "Nickname", p.Nickname, res.Nickname)
	assertEquals(t, "Position", p.Position, res.Position)
	assertEquals(t, "Overall", p.Overall, res.Overall)
	assertEquals(t, "Attributes", p.Attributes, res.Attributes)
	assertEquals(t, "AvatarURL", p.AvatarURL, res.AvatarURL)
	if res.Created.IsZero() {
		t.Errorf("expected created time to not be zero")
	}

	// Saving again with a changed rating should update in place.
	p.Overall = p.Overall + 3
	err = testDB.SavePlayer(ctx, p)
	assertFatalf(t, err == nil, "error saving player after update: %v", err)

	res2, err := testDB.GetPlayer(ctx, p.ID)
	assertFatalf(t, err == nil, "error getting updated player: %v", err)
	assertEquals(t, "Overall", p.Overall, res2.Overall)

	// Lookup a player that doesn't exist
	res3, err := testDB.GetPlayer(ctx, "no-such-player")
	assertFatalf(t, err != nil, "should have had an error searching for player")
	assertEquals(t, "error type", true, errors.Is(err, ErrPlayerNotFound))
	if res3 != nil {
		t.Errorf("expected res3 to be nil, but was %v", res3)
	}
}

func TestDB_matchLifecycle(t *testing.T) {
	ctx := context.Background()
	organizer := mustSavePlayer(t, "organizer")

	m := getMatch(organizer.ID)
	err := testDB.AddMatch(ctx, m)
	assertFatalf(t, err == nil, "error adding match: %v", err)
	assertFatalf(t, m.ID != "", "expected match id to be assigned")

	res, err := testDB.GetMatch(ctx, m.ID)
	assertFatalf(t, err == nil, "error getting match: %v", err)
	assertEquals(t, "Title", m.Title, res.Title)
	assertEquals(t, "Location", m.Location, res.Location)
	assertEquals(t, "Price", m.Price, res.Price)
	assertEquals(t, "MaxPlayers", m.MaxPlayers, res.MaxPlayers)
	assertEquals(t, "PlayersPerSide", m.PlayersPerSide, res.PlayersPerSide)
	assertEquals(t, "Public", m.Public, res.Public)
	assertEquals(t, "OrganizerID", organizer.ID, res.OrganizerID)

	res.Title = "Pelada remarcada"
	res.Price = 2000
	err = testDB.UpdateMatch(ctx, res)
	assertFatalf(t, err == nil, "error updating match: %v", err)

	res2, err := testDB.GetMatch(ctx, m.ID)
	assertFatalf(t, err == nil, "error getting match after update: %v", err)
	assertEquals(t, "Title", "Pelada remarcada", res2.Title)
	assertEquals(t, "Price", 2000, res2.Price)

	err = testDB.DeleteMatch(ctx, m.ID)
	assertFatalf(t, err == nil, "error deleting match: %v", err)

	_, err = testDB.GetMatch(ctx, m.ID)
	assertEquals(t, "error type", true, errors.Is(err, ErrMatchNotFound))

	// Deleting again reports not found
	err = testDB.DeleteMatch(ctx, m.ID)
	assertEquals(t, "error type", true, errors.Is(err, ErrMatchNotFound))
}

func TestDB_listMatches(t *testing.T) {
	ctx := context.Background()
	organizer := mustSavePlayer(t, "listOrganizer")
	member := mustSavePlayer(t, "listMember")

	public := getMatch(organizer.ID)
	private := getMatch(organizer.ID)
	private.Public = false

	e1 := testDB.AddMatch(ctx, public)
	e2 := testDB.AddMatch(ctx, private)
	if err := errors.Join(e1, e2); err != nil {
		t.Fatalf("error inserting matches: %v", err)
	}

	all, err := testDB.ListMatches(ctx, false)
	assertFatalf(t, err == nil, "error listing matches: %v", err)
	assertEquals(t, "all contains public", true, containsMatch(all, public.ID))
	assertEquals(t, "all contains private", true, containsMatch(all, private.ID))

	publicOnly, err := testDB.ListMatches(ctx, true)
	assertFatalf(t, err == nil, "error listing public matches: %v", err)
	assertEquals(t, "publicOnly contains public", true, containsMatch(publicOnly, public.ID))
	assertEquals(t, "publicOnly contains private", false, containsMatch(publicOnly, private.ID))

	// The member only appears in the private match's roster.
	err = testDB.AddParticipation(ctx, &model.Participation{
		MatchID: private.ID,
		UserID:  member.ID,
		Status:  model.StatusConfirmed,
	})
	assertFatalf(t, err == nil, "error adding participation: %v", err)

	mine, err := testDB.ListMatchesForUser(ctx, member.ID)
	assertFatalf(t, err == nil, "error listing matches for user: %v", err)
	assertEquals(t, "mine contains private", true, containsMatch(mine, private.ID))
	assertEquals(t, "mine contains public", false, containsMatch(mine, public.ID))

	organizers, err := testDB.ListMatchesForUser(ctx, organizer.ID)
	assertFatalf(t, err == nil, "error listing matches for organizer: %v", err)
	assertEquals(t, "organizers contains public", true, containsMatch(organizers, public.ID))
	assertEquals(t, "organizers contains private", true, containsMatch(organizers, private.ID))
}

func TestDB_rosterTransitions(t *testing.T) {
	ctx := context.Background()
	organizer := mustSavePlayer(t, "rosterOrganizer")
	user := mustSavePlayer(t, "rosterUser")

	m := getMatch(organizer.ID)
	err := testDB.AddMatch(ctx, m)
	assertFatalf(t, err == nil, "error adding match: %v", err)

	p := &model.Participation{MatchID: m.ID, UserID: user.ID, Status: model.StatusWaiting}
	err = testDB.AddParticipation(ctx, p)
	assertFatalf(t, err == nil, "error adding participation: %v", err)
	assertFatalf(t, p.ID != "", "expected participation id to be assigned")

	// A second row for the same pair must be rejected by the constraint.
	dup := &model.Participation{MatchID: m.ID, UserID: user.ID, Status: model.StatusWaiting}
	err = testDB.AddParticipation(ctx, dup)
	assertEquals(t, "error type", true, errors.Is(err, ErrDuplicateParticipation))

	got, err := testDB.GetParticipation(ctx, m.ID, p.ID)
	assertFatalf(t, err == nil, "error getting participation: %v", err)
	assertEquals(t, "Status", model.StatusWaiting, got.Status)
	assertEquals(t, "Paid", false, got.Paid)

	// Payment cannot be flagged while the row is still waiting.
	err = testDB.SetParticipationPaid(ctx, m.ID, p.ID, true)
	assertEquals(t, "error type", true, errors.Is(err, ErrParticipationNotFound))

	err = testDB.ConfirmParticipation(ctx, m.ID, p.ID, m.MaxPlayers)
	assertFatalf(t, err == nil, "error confirming participation: %v", err)

	got2, err := testDB.GetParticipation(ctx, m.ID, p.ID)
	assertFatalf(t, err == nil, "error getting confirmed participation: %v", err)
	assertEquals(t, "Status", model.StatusConfirmed, got2.Status)

	// Confirming a row that is no longer waiting reports it as missing.
	err = testDB.ConfirmParticipation(ctx, m.ID, p.ID, m.MaxPlayers)
	assertEquals(t, "error type", true, errors.Is(err, ErrParticipationNotFound))

	// A reject-style delete only matches waiting rows; the confirmed row
	// survives a stale reject untouched.
	err = testDB.DeleteParticipation(ctx, m.ID, p.ID)
	assertEquals(t, "error type", true, errors.Is(err, ErrParticipationNotFound))
	survived, err := testDB.GetParticipation(ctx, m.ID, p.ID)
	assertFatalf(t, err == nil, "error getting participation after stale reject: %v", err)
	assertEquals(t, "Status", model.StatusConfirmed, survived.Status)

	err = testDB.SetParticipationPaid(ctx, m.ID, p.ID, true)
	assertFatalf(t, err == nil, "error setting paid: %v", err)

	got3, err := testDB.GetParticipation(ctx, m.ID, p.ID)
	assertFatalf(t, err == nil, "error getting paid participation: %v", err)
	assertEquals(t, "Paid", true, got3.Paid)

	err = testDB.DeleteParticipationForUser(ctx, m.ID, user.ID)
	assertFatalf(t, err == nil, "error deleting participation: %v", err)

	_, err = testDB.GetParticipation(ctx, m.ID, p.ID)
	assertEquals(t, "error type", true, errors.Is(err, ErrParticipationNotFound))

	err = testDB.DeleteParticipationForUser(ctx, m.ID, user.ID)
	assertEquals(t, "error type", true, errors.Is(err, ErrParticipationNotFound))
}

func TestDB_confirmStopsAtCapacity(t *testing.T) {
	ctx := context.Background()
	organizer := mustSavePlayer(t, "capOrganizer")

	m := getMatch(organizer.ID)
	m.PlayersPerSide = 1
	m.MaxPlayers = 2
	err := testDB.AddMatch(ctx, m)
	assertFatalf(t, err == nil, "error adding match: %v", err)

	rows := make([]*model.Participation, 0, 3)
	for i := 0; i < 3; i++ {
		u := mustSavePlayer(t, fmt.Sprintf("capUser%d", i))
		p := &model.Participation{MatchID: m.ID, UserID: u.ID, Status: model.StatusWaiting}
		err := testDB.AddParticipation(ctx, p)
		assertFatalf(t, err == nil, "error adding participation %d: %v", i, err)
		rows = append(rows, p)
	}

	e1 := testDB.ConfirmParticipation(ctx, m.ID, rows[0].ID, m.MaxPlayers)
	e2 := testDB.ConfirmParticipation(ctx, m.ID, rows[1].ID, m.MaxPlayers)
	if err := errors.Join(e1, e2); err != nil {
		t.Fatalf("error confirming first two rows: %v", err)
	}

	// The third confirm finds the roster full; its row stays waiting.
	err = testDB.ConfirmParticipation(ctx, m.ID, rows[2].ID, m.MaxPlayers)
	assertEquals(t, "error type", true, errors.Is(err, ErrMatchFull))

	got, err := testDB.GetParticipation(ctx, m.ID, rows[2].ID)
	assertFatalf(t, err == nil, "error getting overflow row: %v", err)
	assertEquals(t, "Status", model.StatusWaiting, got.Status)

	// A slot freeing up lets the waiting row through.
	err = testDB.DeleteParticipationForUser(ctx, m.ID, rows[0].UserID)
	assertFatalf(t, err == nil, "error removing confirmed row: %v", err)

	err = testDB.ConfirmParticipation(ctx, m.ID, rows[2].ID, m.MaxPlayers)
	assertFatalf(t, err == nil, "error confirming after slot opened: %v", err)
}

// Two confirms race for the last open slot from separate goroutines. The
// match-row lock serializes them, so exactly one lands and the loser sees the
// roster full; without the lock both guards would pass against snapshots
// missing each other's confirm.
func TestDB_racingConfirmsOnLastSlot(t *testing.T) {
	ctx := context.Background()
	organizer := mustSavePlayer(t, "raceOrganizer")

	m := getMatch(organizer.ID)
	m.PlayersPerSide = 1
	m.MaxPlayers = 2
	err := testDB.AddMatch(ctx, m)
	assertFatalf(t, err == nil, "error adding match: %v", err)

	rows := make([]*model.Participation, 0, 3)
	for i := 0; i < 3; i++ {
		u := mustSavePlayer(t, fmt.Sprintf("raceUser%d", i))
		p := &model.Participation{MatchID: m.ID, UserID: u.ID, Status: model.StatusWaiting}
		err := testDB.AddParticipation(ctx, p)
		assertFatalf(t, err == nil, "error adding participation %d: %v", i, err)
		rows = append(rows, p)
	}

	// Fill all but the last slot.
	err = testDB.ConfirmParticipation(ctx, m.ID, rows[0].ID, m.MaxPlayers)
	assertFatalf(t, err == nil, "error confirming first row: %v", err)

	start := make(chan struct{})
	results := make(chan error, 2)
	for _, id := range []string{rows[1].ID, rows[2].ID} {
		id := id
		go func() {
			<-start
			results <- testDB.ConfirmParticipation(ctx, m.ID, id, m.MaxPlayers)
		}()
	}
	close(start)

	confirmed, full := 0, 0
	for i := 0; i < 2; i++ {
		switch err := <-results; {
		case err == nil:
			confirmed++
		case errors.Is(err, ErrMatchFull):
			full++
		default:
			t.Fatalf("unexpected error from racing confirm: %v", err)
		}
	}
	assertEquals(t, "confirmed", 1, confirmed)
	assertEquals(t, "full", 1, full)

	players, err := testDB.ListConfirmedPlayers(ctx, m.ID)
	assertFatalf(t, err == nil, "error listing confirmed players: %v", err)
	assertEquals(t, "len(players)", m.MaxPlayers, len(players))
}

func TestDB_listConfirmedPlayersInJoinOrder(t *testing.T) {
	ctx := context.Background()
	organizer := mustSavePlayer(t, "orderOrganizer")

	m := getMatch(organizer.ID)
	err := testDB.AddMatch(ctx, m)
	assertFatalf(t, err == nil, "error adding match: %v", err)

	names := []string{"Pedrao", "Careca", "Dudu"}
	ids := make([]string, 0, len(names))
	for _, n := range names {
		u := mustSavePlayer(t, n)
		p := &model.Participation{MatchID: m.ID, UserID: u.ID, Status: model.StatusConfirmed}
		err := testDB.AddParticipation(ctx, p)
		assertFatalf(t, err == nil, "error adding participation for %s: %v", n, err)
		ids = append(ids, u.ID)
		// joined_at has to differ for the ordering to be observable
		time.Sleep(5 * time.Millisecond)
	}

	// One waiting row that must not show up.
	w := mustSavePlayer(t, "waitingGuy")
	err = testDB.AddParticipation(ctx, &model.Participation{MatchID: m.ID, UserID: w.ID, Status: model.StatusWaiting})
	assertFatalf(t, err == nil, "error adding waiting participation: %v", err)

	players, err := testDB.ListConfirmedPlayers(ctx, m.ID)
	assertFatalf(t, err == nil, "error listing confirmed players: %v", err)
	assertEquals(t, "len(players)", len(ids), len(players))
	for i, id := range ids {
		assertEquals(t, fmt.Sprintf("players[%d].ID", i), id, players[i].ID)
	}
}

func TestDB_matchDetails(t *testing.T) {
	ctx := context.Background()
	organizer := mustSavePlayer(t, "detailsOrganizer")
	confirmed := mustSavePlayer(t, "detailsConfirmed")
	waiting := mustSavePlayer(t, "detailsWaiting")

	m := getMatch(organizer.ID)
	err := testDB.AddMatch(ctx, m)
	assertFatalf(t, err == nil, "error adding match: %v", err)

	e1 := testDB.AddParticipation(ctx, &model.Participation{MatchID: m.ID, UserID: confirmed.ID, Status: model.StatusConfirmed})
	e2 := testDB.AddParticipation(ctx, &model.Participation{MatchID: m.ID, UserID: waiting.ID, Status: model.StatusWaiting})
	if err := errors.Join(e1, e2); err != nil {
		t.Fatalf("error adding participations: %v", err)
	}

	details, err := testDB.GetMatchDetails(ctx, m.ID)
	assertFatalf(t, err == nil, "error getting match details: %v", err)
	assertEquals(t, "Title", m.Title, details.Title)
	assertEquals(t, "len(Participants)", 2, len(details.Participants))
	assertEquals(t, "ConfirmedCount", 1, details.ConfirmedCount())
	assertEquals(t, "len(WaitingList)", 1, len(details.WaitingList()))
	for i, p := range details.Participants {
		if p.Player == nil {
			t.Errorf("Participants[%d].Player - expected joined profile, got nil", i)
		}
	}

	// Deleting the match cascades the roster away.
	err = testDB.DeleteMatch(ctx, m.ID)
	assertFatalf(t, err == nil, "error deleting match: %v", err)

	_, err = testDB.GetMatchDetails(ctx, m.ID)
	assertEquals(t, "error type", true, errors.Is(err, ErrMatchNotFound))
}

func TestDB_feedPostsAndReactions(t *testing.T) {
	ctx := context.Background()
	organizer := mustSavePlayer(t, "feedOrganizer")
	viewer := mustSavePlayer(t, "feedViewer")

	m := getMatch(organizer.ID)
	err := testDB.AddMatch(ctx, m)
	assertFatalf(t, err == nil, "error adding match: %v", err)

	first := &model.FeedPost{MatchID: m.ID, AuthorID: organizer.ID, Content: "Jogo confirmado!"}
	err = testDB.AddFeedPost(ctx, first)
	assertFatalf(t, err == nil, "error adding first post: %v", err)
	time.Sleep(5 * time.Millisecond)

	second := &model.FeedPost{MatchID: m.ID, AuthorID: organizer.ID, Content: "Levem agua"}
	err = testDB.AddFeedPost(ctx, second)
	assertFatalf(t, err == nil, "error adding second post: %v", err)

	got, err := testDB.GetFeedPost(ctx, first.ID)
	assertFatalf(t, err == nil, "error getting post: %v", err)
	assertEquals(t, "Content", "Jogo confirmado!", got.Content)

	_, err = testDB.GetFeedPost(ctx, "no-such-post")
	assertEquals(t, "error type", true, errors.Is(err, ErrPostNotFound))

	// Toggle through the full cycle: set, replace, clear.
	kind, err := testDB.ToggleReaction(ctx, first.ID, viewer.ID, model.ReactionBall)
	assertFatalf(t, err == nil, "error setting reaction: %v", err)
	assertEquals(t, "kind after set", model.ReactionBall, kind)

	kind, err = testDB.ToggleReaction(ctx, first.ID, viewer.ID, model.ReactionApplause)
	assertFatalf(t, err == nil, "error replacing reaction: %v", err)
	assertEquals(t, "kind after replace", model.ReactionApplause, kind)

	posts, err := testDB.ListFeedPosts(ctx, m.ID, viewer.ID)
	assertFatalf(t, err == nil, "error listing posts: %v", err)
	assertEquals(t, "len(posts)", 2, len(posts))
	// Newest first
	assertEquals(t, "posts[0].ID", second.ID, posts[0].ID)
	assertEquals(t, "posts[1].ID", first.ID, posts[1].ID)
	assertEquals(t, "posts[1].UserReaction", model.ReactionApplause, posts[1].UserReaction)
	assertEquals(t, "posts[1].Reactions[applause]", 1, posts[1].Reactions[model.ReactionApplause])
	assertEquals(t, "posts[1].Reactions[ball]", 0, posts[1].Reactions[model.ReactionBall])
	if posts[1].Author == nil {
		t.Error("posts[1].Author - expected joined author, got nil")
	}

	kind, err = testDB.ToggleReaction(ctx, first.ID, viewer.ID, model.ReactionApplause)
	assertFatalf(t, err == nil, "error clearing reaction: %v", err)
	assertEquals(t, "kind after clear", model.ReactionUnknown, kind)

	posts, err = testDB.ListFeedPosts(ctx, m.ID, viewer.ID)
	assertFatalf(t, err == nil, "error listing posts after clear: %v", err)
	assertEquals(t, "posts[1].UserReaction", model.ReactionUnknown, posts[1].UserReaction)
	assertEquals(t, "posts[1].Reactions[applause]", 0, posts[1].Reactions[model.ReactionApplause])
}

func getPlayer(name string) *model.Player {
	id := atomic.AddInt32(&idCtr, 1)

	return &model.Player{
		ID:       fmt.Sprintf("player-%d", id),
		Name:     name,
		Nickname: "",
		Position: model.POS_MEI,
		Overall:  80,
		Attributes: model.Attributes{
			Pace:      78,
			Shooting:  75,
			Passing:   84,
			Dribbling: 82,
			Defending: 70,
			Physical:  76,
		},
	}
}

func getMatch(organizerID string) *model.Match {
	return &model.Match{
		Title:          "Pelada de quinta",
		Location:       "Arena Society",
		Address:        "Rua das Laranjeiras, 100",
		Date:           time.Date(2026, 6, 20, 20, 0, 0, 0, time.UTC),
		Price:          1500,
		MaxPlayers:     10,
		PlayersPerSide: 5,
		Public:         true,
		OrganizerID:    organizerID,
	}
}

func mustSavePlayer(t *testing.T, name string) *model.Player {
	t.Helper()
	p := getPlayer(name)
	if err := testDB.SavePlayer(context.Background(), p); err != nil {
		t.Fatalf("error saving player %s: %v", name, err)
	}
	return p
}

func containsMatch(matches []model.Match, id string) bool {
	for _, m := range matches {
		if m.ID == id {
			return true
		}
	}
	return false
}

func assertFatalf(t *testing.T, c bool, f string, args ...any) {
	if !c {
		t.Fatalf(f, args...)
	}
}

func assertEquals(t *testing.T, field string, expected, actual any) {
	if expected != actual {
		t.Errorf("%s - expected: '%v', got: '%v'", field, expected, actual)
	}
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"jumble/internal/models"
)

type fakeStore struct {
	mu       sync.Mutex
	nextID   int
	sessions map[int]*models.GameSession
	answers  map[int][]*models.SessionAnswer
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: map[int]*models.GameSession{},
		answers:  map[int][]*models.SessionAnswer{},
	}
}

func (s *fakeStore) ActiveSessionByChannel(_ context.Context, channelID int64) (*models.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, session := range s.sessions {
		if session.ChannelID == channelID && session.DateEnded == nil {
			return session, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) SessionByID(_ context.Context, sessionID int) (*models.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[sessionID], nil
}

func (s *fakeStore) CreateSession(_ context.Context, session *models.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	session.ID = s.nextID
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeStore) SaveHints(_ context.Context, _ *models.GameSession) error { return nil }
func (s *fakeStore) UpdateJumbled(_ context.Context, _ *models.GameSession) error { return nil }
func (s *fakeStore) UpdateMessageID(_ context.Context, _ *models.GameSession) error { return nil }

func (s *fakeStore) AppendAnswer(_ context.Context, session *models.GameSession, answer *models.SessionAnswer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[session.ID] = append(s.answers[session.ID], answer)
	return nil
}

func (s *fakeStore) MarkEnded(_ context.Context, _ *models.GameSession) error { return nil }

func (s *fakeStore) CountSessionsStartedSince(_ context.Context, userID int64, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, session := range s.sessions {
		if session.StarterUserID == userID && !session.DateStarted.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) RecentTargets(_ context.Context, userID int64, since time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var targets []string
	for _, session := range s.sessions {
		if session.StarterUserID == userID && !session.DateStarted.Before(since) {
			targets = append(targets, session.CorrectAnswer)
		}
	}
	return targets, nil
}

func (s *fakeStore) UserStats(_ context.Context, _ int64) (*models.JumbleUserStats, error) {
	return nil, nil
}

func (s *fakeStore) answersFor(sessionID int) []*models.SessionAnswer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.SessionAnswer(nil), s.answers[sessionID]...)
}

type fakeContent struct {
	artists []models.TopEntry
	albums  []models.TopEntry
	cover   []byte
}

func (c *fakeContent) TopArtists(_ context.Context, _ string) ([]models.TopEntry, error) {
	return c.artists, nil
}

func (c *fakeContent) TopAlbums(_ context.Context, _ string) ([]models.TopEntry, error) {
	return c.albums, nil
}

func (c *fakeContent) CoverImage(_ context.Context, _ string) ([]byte, error) {
	return c.cover, nil
}

type fakeCatalog struct {
	artists map[string]*models.Artist
	albums  map[string]*models.Album
}

func (c *fakeCatalog) ArtistByName(_ context.Context, name string) (*models.Artist, error) {
	return c.artists[name], nil
}

func (c *fakeCatalog) AlbumByName(_ context.Context, _ string, name string) (*models.Album, error) {
	return c.albums[name], nil
}

func (c *fakeCatalog) StoreArtist(_ context.Context, artist *models.Artist) error {
	c.artists[artist.Name] = artist
	return nil
}

func (c *fakeCatalog) StoreAlbum(_ context.Context, album *models.Album) error {
	c.albums[album.Name] = album
	return nil
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for x := 0; x < 40; x++ {
		for y := 0; y < 40; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 6), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testEngine(t *testing.T) (*ServiceGame, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	content := &fakeContent{
		artists: []models.TopEntry{
			{Name: "Portishead", PlayCount: 800},
			{Name: "Massive Attack", PlayCount: 500},
			{Name: "Tricky", PlayCount: 300},
			{Name: "Lamb", PlayCount: 200},
			{Name: "Morcheeba", PlayCount: 120},
			{Name: "Sneaker Pimps", PlayCount: 90},
			{Name: "Moloko", PlayCount: 60},
		},
		albums: []models.TopEntry{
			{Name: "Dummy", ArtistName: "Portishead", PlayCount: 400, CoverURL: "http://covers/dummy"},
			{Name: "Mezzanine", ArtistName: "Massive Attack", PlayCount: 300, CoverURL: "http://covers/mezzanine"},
			{Name: "Maxinquaye", ArtistName: "Tricky", PlayCount: 200, CoverURL: "http://covers/maxinquaye"},
			{Name: "Fear of Fours", ArtistName: "Lamb", PlayCount: 120, CoverURL: "http://covers/fours"},
			{Name: "Big Calm", ArtistName: "Morcheeba", PlayCount: 90, CoverURL: "http://covers/bigcalm"},
			{Name: "Becoming X", ArtistName: "Sneaker Pimps", PlayCount: 70, CoverURL: "http://covers/becomingx"},
		},
		cover: testPNG(t),
	}
	catalog := &fakeCatalog{
		artists: map[string]*models.Artist{},
		albums:  map[string]*models.Album{},
	}
	for _, entry := range content.artists {
		catalog.artists[entry.Name] = &models.Artist{Name: entry.Name, CountryCode: "GB", Genres: "trip hop"}
	}
	for _, entry := range content.albums {
		catalog.albums[entry.Name] = &models.Album{Name: entry.Name, ArtistName: entry.ArtistName, CoverURL: entry.CoverURL}
	}

	countries, err := NewServiceCountry()
	if err != nil {
		t.Fatal(err)
	}

	return newServiceGame(store, content, catalog, countries, nil, nil), store
}

func testUser() *models.User {
	return &models.User{ID: 42, Username: "listener", LastfmUsername: "listener_fm"}
}

func TestStartJumbleCreatesSession(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()

	resp, err := engine.StartJumble(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != models.StatusOK {
		t.Fatalf("status = %s, want ok", resp.Status)
	}
	if resp.Jumbled == "" {
		t.Fatal("no jumbled answer in response")
	}
	if resp.Actions == nil || !resp.Actions.Reshuffle || !resp.Actions.GiveUp {
		t.Fatalf("unexpected actions: %+v", resp.Actions)
	}
	if resp.CorrectAnswer != "" {
		t.Error("active response leaked the answer")
	}

	session, err := store.SessionByID(ctx, resp.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if session == nil {
		t.Fatal("session not persisted")
	}
	if session.Ended() {
		t.Error("fresh session marked ended")
	}
	if strings.EqualFold(session.JumbledAnswer, session.CorrectAnswer) && len(session.CorrectAnswer) > 1 {
		t.Errorf("jumbled %q equals the answer", session.JumbledAnswer)
	}
	if session.HintsShown() != FREE_HINTS {
		t.Errorf("fresh session shows %d hints, want %d", session.HintsShown(), FREE_HINTS)
	}
	if session.GuessSeconds != DEFAULT_JUMBLE_SECONDS_TO_GUESS {
		t.Errorf("guess window %d, want %d", session.GuessSeconds, DEFAULT_JUMBLE_SECONDS_TO_GUESS)
	}
}

func TestStartSecondGameCooldown(t *testing.T) {
	engine, _ := testEngine(t)
	ctx := context.Background()

	first, err := engine.StartJumble(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}
	if first.Status != models.StatusOK {
		t.Fatalf("first start status = %s", first.Status)
	}

	second, err := engine.StartJumble(ctx, 555, &models.User{ID: 7, Username: "other", LastfmUsername: "other_fm"})
	if err != nil {
		t.Fatal(err)
	}
	if second.Status != models.StatusCooldown {
		t.Fatalf("second start status = %s, want cooldown", second.Status)
	}
}

func TestStartDifferentChannelsIndependent(t *testing.T) {
	engine, _ := testEngine(t)
	ctx := context.Background()

	first, err := engine.StartJumble(ctx, 1, testUser())
	if err != nil {
		t.Fatal(err)
	}
	second, err := engine.StartJumble(ctx, 2, &models.User{ID: 7, Username: "other", LastfmUsername: "other_fm"})
	if err != nil {
		t.Fatal(err)
	}
	if first.Status != models.StatusOK || second.Status != models.StatusOK {
		t.Fatalf("statuses = %s, %s; want ok, ok", first.Status, second.Status)
	}
}

func TestStartForcesOutStaleSession(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()

	stale := &models.GameSession{
		PublicID:      "stale",
		Type:          models.GameTypeJumble,
		ChannelID:     555,
		StarterUserID: 7,
		CorrectAnswer: "Portishead",
		DateStarted:   time.Now().Add(-10 * time.Minute),
		GuessSeconds:  DEFAULT_JUMBLE_SECONDS_TO_GUESS,
	}
	if err := store.CreateSession(ctx, stale); err != nil {
		t.Fatal(err)
	}

	resp, err := engine.StartJumble(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != models.StatusOK {
		t.Fatalf("start over stale session status = %s, want ok", resp.Status)
	}
	if !stale.Ended() || stale.EndReason != models.EndReasonTimedOut {
		t.Errorf("stale session not force-ended: ended=%v reason=%s", stale.Ended(), stale.EndReason)
	}
}

func TestStartInsufficientHistory(t *testing.T) {
	engine, store := testEngine(t)
	engine.content = &fakeContent{
		artists: []models.TopEntry{
			{Name: "Portishead", PlayCount: 40},
			{Name: "Tricky", PlayCount: 5},
		},
	}
	ctx := context.Background()

	resp, err := engine.StartJumble(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != models.StatusNoHistory {
		t.Fatalf("status = %s, want no_history", resp.Status)
	}

	active, err := store.ActiveSessionByChannel(ctx, 555)
	if err != nil {
		t.Fatal(err)
	}
	if active != nil {
		t.Error("rejection still created a session")
	}
}

func TestDailyLimit(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()
	user := testUser()

	for i := 0; i < DEFAULT_DAILY_GAME_LIMIT; i++ {
		session := &models.GameSession{
			Type:          models.GameTypeJumble,
			ChannelID:     int64(1000 + i),
			StarterUserID: user.ID,
			DateStarted:   time.Now().Add(-time.Hour),
		}
		if err := store.CreateSession(ctx, session); err != nil {
			t.Fatal(err)
		}
		now := time.Now()
		session.DateEnded = &now
	}

	resp, err := engine.StartJumble(ctx, 555, user)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != models.StatusRateLimited {
		t.Fatalf("status = %s, want rate_limited", resp.Status)
	}
}

func TestSolveFlow(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()

	start, err := engine.StartJumble(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}
	session, _ := store.SessionByID(ctx, start.SessionID)

	guesser := &models.User{ID: 9, Username: "guesser"}
	result, err := engine.ProcessAnswer(ctx, 555, guesser, strings.ToLower(session.CorrectAnswer))
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != models.AnswerOutcomeCorrect {
		t.Fatalf("outcome = %s, want correct", result.Outcome)
	}
	if result.Response == nil {
		t.Fatal("winning answer produced no response")
	}
	if result.Response.CorrectAnswer != session.CorrectAnswer {
		t.Errorf("ended response answer = %q, want %q", result.Response.CorrectAnswer, session.CorrectAnswer)
	}
	if !strings.Contains(result.Response.Announcement, guesser.Username) {
		t.Errorf("announcement %q doesn't name the winner", result.Response.Announcement)
	}
	if !session.Ended() || session.EndReason != models.EndReasonSolved {
		t.Errorf("session ended=%v reason=%s, want solved", session.Ended(), session.EndReason)
	}

	answers := store.answersFor(session.ID)
	if len(answers) != 1 || !answers[0].Correct {
		t.Fatalf("logged answers = %+v, want one correct", answers)
	}

	late, err := engine.ProcessAnswer(ctx, 555, guesser, session.CorrectAnswer)
	if err != nil {
		t.Fatal(err)
	}
	if late.Outcome != models.AnswerOutcomeIgnored {
		t.Errorf("post-end answer outcome = %s, want ignored", late.Outcome)
	}
}

func TestConcurrentCorrectAnswersSingleWinner(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()

	start, err := engine.StartJumble(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}
	session, _ := store.SessionByID(ctx, start.SessionID)

	const racers = 16
	outcomes := make(chan models.AnswerOutcome, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			user := &models.User{ID: 100 + id, Username: "racer"}
			result, err := engine.ProcessAnswer(ctx, 555, user, session.CorrectAnswer)
			if err != nil {
				t.Error(err)
				return
			}
			outcomes <- result.Outcome
		}(int64(i))
	}
	wg.Wait()
	close(outcomes)

	correct := 0
	for outcome := range outcomes {
		if outcome == models.AnswerOutcomeCorrect {
			correct++
		} else if outcome != models.AnswerOutcomeIgnored {
			t.Errorf("unexpected outcome %s", outcome)
		}
	}
	if correct != 1 {
		t.Fatalf("%d winners, want exactly 1", correct)
	}

	winners := 0
	for _, answer := range store.answersFor(session.ID) {
		if answer.Correct {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("%d correct answers logged, want exactly 1", winners)
	}
}

func TestNearMiss(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()

	start, err := engine.StartJumble(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}
	session, _ := store.SessionByID(ctx, start.SessionID)

	// off by the final rune
	guess := session.CorrectAnswer[:len(session.CorrectAnswer)-1] + "#"
	result, err := engine.ProcessAnswer(ctx, 555, &models.User{ID: 9, Username: "guesser"}, guess)
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != models.AnswerOutcomeVeryClose {
		t.Fatalf("outcome = %s, want very_close", result.Outcome)
	}
	if session.Ended() {
		t.Error("near miss ended the session")
	}

	answers := store.answersFor(session.ID)
	if len(answers) != 1 {
		t.Fatalf("logged %d answers, want 1", len(answers))
	}
	if answers[0].Correct {
		t.Error("near miss logged as correct")
	}
	if answers[0].Distance == nil || *answers[0].Distance != 1 {
		t.Errorf("near miss distance = %v, want 1", answers[0].Distance)
	}
}

func TestOutOfWindowGuessNotLogged(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()

	start, err := engine.StartJumble(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}

	result, err := engine.ProcessAnswer(ctx, 555, &models.User{ID: 9, Username: "guesser"}, strings.Repeat("z", 80))
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != models.AnswerOutcomeWrong {
		t.Fatalf("outcome = %s, want wrong", result.Outcome)
	}
	if got := len(store.answersFor(start.SessionID)); got != 0 {
		t.Errorf("out-of-window guess logged %d answers", got)
	}
}

func TestEmptyGuessIgnored(t *testing.T) {
	engine, _ := testEngine(t)
	ctx := context.Background()

	if _, err := engine.StartJumble(ctx, 555, testUser()); err != nil {
		t.Fatal(err)
	}

	result, err := engine.ProcessAnswer(ctx, 555, &models.User{ID: 9, Username: "guesser"}, "   ")
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != models.AnswerOutcomeIgnored {
		t.Fatalf("outcome = %s, want ignored", result.Outcome)
	}
}

func TestGiveUpPermission(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()
	starter := testUser()

	start, err := engine.StartJumble(ctx, 555, starter)
	if err != nil {
		t.Fatal(err)
	}
	session, _ := store.SessionByID(ctx, start.SessionID)

	denied, err := engine.GiveUp(ctx, start.SessionID, &models.User{ID: 9, Username: "bystander"})
	if err != nil {
		t.Fatal(err)
	}
	if denied.Status != models.StatusNoPermission {
		t.Fatalf("non-starter give-up status = %s, want no_permission", denied.Status)
	}
	if session.Ended() {
		t.Fatal("denied give-up ended the session")
	}

	allowed, err := engine.GiveUp(ctx, start.SessionID, starter)
	if err != nil {
		t.Fatal(err)
	}
	if allowed.Status != models.StatusOK {
		t.Fatalf("starter give-up status = %s, want ok", allowed.Status)
	}
	if allowed.CorrectAnswer != session.CorrectAnswer {
		t.Errorf("give-up response answer = %q, want %q", allowed.CorrectAnswer, session.CorrectAnswer)
	}
	if !session.Ended() || session.EndReason != models.EndReasonSurrendered {
		t.Errorf("session ended=%v reason=%s, want surrendered", session.Ended(), session.EndReason)
	}
}

func TestExpireIdempotent(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()

	start, err := engine.StartJumble(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}
	session, _ := store.SessionByID(ctx, start.SessionID)

	first, err := engine.TimeExpired(ctx, start.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if first.Status != models.StatusOK {
		t.Fatalf("first expiry status = %s, want ok", first.Status)
	}
	if !session.Ended() || session.EndReason != models.EndReasonTimedOut {
		t.Fatalf("session ended=%v reason=%s, want timed_out", session.Ended(), session.EndReason)
	}
	endedAt := *session.DateEnded

	second, err := engine.TimeExpired(ctx, start.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if second.Status != models.StatusNotFound {
		t.Fatalf("second expiry status = %s, want not_found", second.Status)
	}
	if !session.DateEnded.Equal(endedAt) || session.EndReason != models.EndReasonTimedOut {
		t.Error("second expiry mutated the ended session")
	}
}

func TestExpireAfterSolveIsNoOp(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()

	start, err := engine.StartJumble(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}
	session, _ := store.SessionByID(ctx, start.SessionID)

	if _, err := engine.ProcessAnswer(ctx, 555, &models.User{ID: 9, Username: "guesser"}, session.CorrectAnswer); err != nil {
		t.Fatal(err)
	}

	resp, err := engine.TimeExpired(ctx, start.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != models.StatusNotFound {
		t.Fatalf("expiry after solve status = %s, want not_found", resp.Status)
	}
	if session.EndReason != models.EndReasonSolved {
		t.Errorf("end reason = %s, want solved", session.EndReason)
	}
}

func TestAddHintProgression(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()

	start, err := engine.StartJumble(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}
	session, _ := store.SessionByID(ctx, start.SessionID)
	total := len(session.Hints)

	for want := FREE_HINTS + 1; want <= total; want++ {
		resp, err := engine.AddHint(ctx, start.SessionID)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Status != models.StatusOK {
			t.Fatalf("add hint status = %s", resp.Status)
		}
		if session.HintsShown() != want {
			t.Fatalf("shown = %d, want %d", session.HintsShown(), want)
		}
	}

	resp, err := engine.AddHint(ctx, start.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != models.StatusOK {
		t.Fatalf("exhausted add hint status = %s", resp.Status)
	}
	if session.HintsShown() != total {
		t.Errorf("shown = %d exceeds total %d", session.HintsShown(), total)
	}
	if resp.Actions.AddHint {
		t.Error("actions still offer a hint with everything revealed")
	}
}

func TestReshuffleKeepsTarget(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()

	start, err := engine.StartJumble(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}
	session, _ := store.SessionByID(ctx, start.SessionID)
	answer := session.CorrectAnswer

	resp, err := engine.Reshuffle(ctx, start.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != models.StatusOK {
		t.Fatalf("reshuffle status = %s", resp.Status)
	}
	if session.CorrectAnswer != answer {
		t.Error("reshuffle changed the target")
	}
	if runesSorted(resp.Jumbled) != runesSorted(answer) {
		t.Errorf("reshuffled %q is not a permutation of %q", resp.Jumbled, answer)
	}
}

func TestSessionByChannelReturnsCopy(t *testing.T) {
	engine, _ := testEngine(t)
	ctx := context.Background()

	resp, err := engine.StartJumble(ctx, 808, testUser())
	if err != nil {
		t.Fatal(err)
	}

	before, err := engine.SessionByChannel(ctx, 808)
	if err != nil || before == nil {
		t.Fatalf("session lookup: %v, %v", before, err)
	}

	if _, err := engine.AddHint(ctx, resp.SessionID); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Reshuffle(ctx, resp.SessionID); err != nil {
		t.Fatal(err)
	}

	if got := before.HintsShown(); got != FREE_HINTS {
		t.Errorf("snapshot hints shown = %d after a later reveal, want %d", got, FREE_HINTS)
	}
	if before.JumbledAnswer != resp.Jumbled {
		t.Error("snapshot jumbled display mutated by a later reshuffle")
	}

	after, err := engine.SessionByChannel(ctx, 808)
	if err != nil || after == nil {
		t.Fatalf("session lookup: %v, %v", after, err)
	}
	if got := after.HintsShown(); got != FREE_HINTS+1 {
		t.Errorf("hints shown = %d, want %d", got, FREE_HINTS+1)
	}
}

func TestSessionReadsDuringMutation(t *testing.T) {
	engine, _ := testEngine(t)
	ctx := context.Background()

	resp, err := engine.StartJumble(ctx, 909, testUser())
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			session, err := engine.SessionByChannel(ctx, 909)
			if err != nil {
				t.Error(err)
				return
			}
			if session == nil {
				continue
			}
			if _, err := json.Marshal(session); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		defer close(done)
		for i := 0; i < 200; i++ {
			if _, err := engine.AddHint(ctx, resp.SessionID); err != nil {
				t.Error(err)
				return
			}
			if _, err := engine.Reshuffle(ctx, resp.SessionID); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	wg.Wait()
}

func TestStartBackfillsCatalog(t *testing.T) {
	store := newFakeStore()
	content := &fakeContent{
		albums: []models.TopEntry{
			{Name: "Dummy", ArtistName: "Portishead", PlayCount: 400, CoverURL: "http://covers/dummy"},
			{Name: "Mezzanine", ArtistName: "Massive Attack", PlayCount: 300, CoverURL: "http://covers/mezzanine"},
			{Name: "Maxinquaye", ArtistName: "Tricky", PlayCount: 200, CoverURL: "http://covers/maxinquaye"},
			{Name: "Fear of Fours", ArtistName: "Lamb", PlayCount: 120, CoverURL: "http://covers/fours"},
			{Name: "Big Calm", ArtistName: "Morcheeba", PlayCount: 90, CoverURL: "http://covers/bigcalm"},
			{Name: "Becoming X", ArtistName: "Sneaker Pimps", PlayCount: 70, CoverURL: "http://covers/becomingx"},
		},
		cover: testPNG(t),
	}
	catalog := &fakeCatalog{
		artists: map[string]*models.Artist{},
		albums:  map[string]*models.Album{},
	}
	countries, err := NewServiceCountry()
	if err != nil {
		t.Fatal(err)
	}
	engine := newServiceGame(store, content, catalog, countries, nil, nil)
	ctx := context.Background()

	resp, err := engine.StartPixelation(ctx, 321, testUser())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != models.StatusOK {
		t.Fatalf("status = %s, want ok", resp.Status)
	}

	session, _ := store.SessionByID(ctx, resp.SessionID)
	album := catalog.albums[session.AlbumName]
	if album == nil {
		t.Fatalf("album %q not backfilled into the catalog", session.AlbumName)
	}
	if album.CoverURL == "" {
		t.Error("backfilled album lost its cover url")
	}
	if album.ArtistName != session.ArtistName {
		t.Errorf("backfilled artist name = %q, want %q", album.ArtistName, session.ArtistName)
	}
}

func TestStartPixelation(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()

	resp, err := engine.StartPixelation(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != models.StatusOK {
		t.Fatalf("status = %s, want ok", resp.Status)
	}
	if len(resp.Image) == 0 {
		t.Fatal("no obfuscated image in response")
	}
	if resp.Jumbled != "" {
		t.Error("pixelation response carries a jumbled string")
	}
	if resp.Actions == nil || resp.Actions.Reshuffle {
		t.Errorf("unexpected actions: %+v", resp.Actions)
	}

	session, _ := store.SessionByID(ctx, resp.SessionID)
	if session.Type != models.GameTypePixelation {
		t.Fatalf("session type = %s", session.Type)
	}
	if session.AlbumName == "" || session.CorrectAnswer != session.AlbumName {
		t.Errorf("album target not set: %q vs %q", session.AlbumName, session.CorrectAnswer)
	}
	if session.GuessSeconds != DEFAULT_PIXELATION_SECONDS_TO_GUESS {
		t.Errorf("guess window %d, want %d", session.GuessSeconds, DEFAULT_PIXELATION_SECONDS_TO_GUESS)
	}
}

func TestAbandonFreesChannel(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()

	start, err := engine.StartJumble(ctx, 555, testUser())
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Abandon(ctx, start.SessionID); err != nil {
		t.Fatal(err)
	}

	session, _ := store.SessionByID(ctx, start.SessionID)
	if !session.Ended() || session.EndReason != models.EndReasonAbandoned {
		t.Fatalf("session ended=%v reason=%s, want abandoned", session.Ended(), session.EndReason)
	}

	// second abandon is a no-op
	if err := engine.Abandon(ctx, start.SessionID); err != nil {
		t.Fatal(err)
	}

	resp, err := engine.StartJumble(ctx, 555, &models.User{ID: 7, Username: "other", LastfmUsername: "other_fm"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != models.StatusOK {
		t.Fatalf("start after abandon status = %s, want ok", resp.Status)
	}
}

func TestRecentTargetsExcluded(t *testing.T) {
	engine, store := testEngine(t)
	ctx := context.Background()
	user := testUser()

	// everything except one artist was already used today
	for _, name := range []string{"Portishead", "Massive Attack", "Tricky", "Lamb", "Morcheeba", "Sneaker Pimps"} {
		session := &models.GameSession{
			Type:          models.GameTypeJumble,
			ChannelID:     999,
			StarterUserID: user.ID,
			CorrectAnswer: name,
			DateStarted:   time.Now().Add(-time.Minute),
		}
		if err := store.CreateSession(ctx, session); err != nil {
			t.Fatal(err)
		}
		now := time.Now()
		session.DateEnded = &now
	}

	resp, err := engine.StartJumble(ctx, 555, user)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != models.StatusOK {
		t.Fatalf("status = %s, want ok", resp.Status)
	}
	session, _ := store.SessionByID(ctx, resp.SessionID)
	if session.CorrectAnswer != "Moloko" {
		t.Errorf("picked %q, want the only unplayed artist", session.CorrectAnswer)
	}
}

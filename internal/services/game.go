package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"

	"jumble/internal/interfaces"
	"jumble/internal/models"
	"jumble/internal/pkg"
	"jumble/internal/pkg/fuzzy"
	"jumble/internal/pkg/pixelate"
)

// ServiceGame is the session state machine: one active game per
// channel, hint reveals, answer adjudication and timeout expiry. All
// chat rendering happens elsewhere; this service only produces
// GameResponse payloads.
type ServiceGame struct {
	store     interfaces.SessionStore
	content   interfaces.ContentSource
	catalog   interfaces.Catalog
	countries interfaces.CountryLookup
	config    *ServiceConfig
	rs        *redsync.Redsync

	mu        sync.Mutex
	live      map[int]*liveGame
	byChannel map[int64]int

	onExpire func(session *models.GameSession, resp *models.GameResponse)
}

// liveGame pairs a session aggregate with its own exclusion scope and
// the cancellation handle for the armed timeout. Different channels'
// games never contend.
type liveGame struct {
	mu      sync.Mutex
	session *models.GameSession
	cancel  context.CancelFunc
}

func NewServiceGame(container *do.Injector) (*ServiceGame, error) {
	store, err := do.Invoke[interfaces.SessionStore](container)
	if err != nil {
		return nil, err
	}

	content, err := do.Invoke[interfaces.ContentSource](container)
	if err != nil {
		return nil, err
	}

	catalog, err := do.Invoke[interfaces.Catalog](container)
	if err != nil {
		return nil, err
	}

	countries, err := do.Invoke[interfaces.CountryLookup](container)
	if err != nil {
		return nil, err
	}

	config, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	return newServiceGame(store, content, catalog, countries, config, rs), nil
}

func newServiceGame(store interfaces.SessionStore, content interfaces.ContentSource, catalog interfaces.Catalog, countries interfaces.CountryLookup, config *ServiceConfig, rs *redsync.Redsync) *ServiceGame {
	return &ServiceGame{
		store:     store,
		content:   content,
		catalog:   catalog,
		countries: countries,
		config:    config,
		rs:        rs,
		live:      map[int]*liveGame{},
		byChannel: map[int64]int{},
	}
}

// SetExpiryHandler registers the fire-and-forget callback invoked
// after a timeout transition commits.
func (service *ServiceGame) SetExpiryHandler(fn func(session *models.GameSession, resp *models.GameResponse)) {
	service.onExpire = fn
}

func (service *ServiceGame) StartJumble(ctx context.Context, channelID int64, user *models.User) (*models.GameResponse, error) {
	return service.startGame(ctx, channelID, user, models.GameTypeJumble)
}

func (service *ServiceGame) StartPixelation(ctx context.Context, channelID int64, user *models.User) (*models.GameResponse, error) {
	return service.startGame(ctx, channelID, user, models.GameTypePixelation)
}

func (service *ServiceGame) startGame(ctx context.Context, channelID int64, user *models.User, gameType models.GameType) (*models.GameResponse, error) {
	if user.LastfmUsername == "" {
		return nil, errorx.Wrap(ErrLastfmNotConnected, errorx.Validation)
	}

	unlock, err := service.lockChannel(channelID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := time.Now()

	existing, err := service.store.ActiveSessionByChannel(ctx, channelID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if existing != nil && !existing.Ended() {
		if now.Sub(existing.DateStarted) < existing.GuessWindow()+GRACE_PERIOD {
			return &models.GameResponse{Status: models.StatusCooldown}, nil
		}

		// Stale game nobody resolved; force-end before starting fresh.
		stale := service.adopt(existing)
		stale.mu.Lock()
		service.finish(ctx, stale, models.EndReasonTimedOut)
		stale.mu.Unlock()
	}

	limit := service.dailyLimit(ctx)
	played, err := service.store.CountSessionsStartedSince(ctx, user.ID, pkg.StartOfDay(now))
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if played >= limit {
		return &models.GameResponse{
			Status: models.StatusRateLimited,
			Footer: fmt.Sprintf("You've used up all your %d games of today. Come back tomorrow.", limit),
		}, nil
	}

	pick, resp, err := service.pickTarget(ctx, user, gameType)
	if err != nil || resp != nil {
		return resp, err
	}

	session := &models.GameSession{
		PublicID:      uuid.NewString(),
		Type:          gameType,
		ChannelID:     channelID,
		StarterUserID: user.ID,
		DateStarted:   now,
		GuessSeconds:  service.guessSeconds(ctx, gameType),
	}

	// name-derived hints still work when the catalog has no metadata
	artist := pick.artist
	if artist == nil {
		artist = &models.Artist{Name: pick.entry.Name}
	}
	album := pick.album
	if album == nil {
		album = &models.Album{Name: pick.entry.Name, ArtistName: pick.entry.ArtistName}
	}

	var image []byte
	switch gameType {
	case models.GameTypeJumble:
		session.CorrectAnswer = pick.entry.Name
		session.ArtistName = pick.entry.Name
		session.JumbledAnswer = Scramble(session.CorrectAnswer)
		session.Hints = BuildArtistHints(artist, pick.entry.PlayCount, service.countryOf(pick.artist))
	case models.GameTypePixelation:
		session.CorrectAnswer = pick.entry.Name
		session.ArtistName = pick.entry.ArtistName
		session.AlbumName = pick.entry.Name
		session.Hints = BuildAlbumHints(album, pick.artist, pick.entry.PlayCount, service.countryOf(pick.artist))

		image, err = service.obfuscatedCover(ctx, pick)
		if err != nil {
			log.Printf("pixelation cover for channel %d: %v", channelID, err)
			return &models.GameResponse{Status: models.StatusError}, nil
		}
	}

	if err := service.store.CreateSession(ctx, session); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if err := service.store.SaveHints(ctx, session); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	service.backfillCatalog(ctx, pick, gameType)

	live := service.adopt(session)
	service.armTimeout(live)

	response := service.activeResponse(session)
	response.Image = image
	if image != nil {
		response.ImageName = fmt.Sprintf("pixelation-%d-%v.png", session.ID, PIXELATION_INTENSITY)
	}

	return response, nil
}

type pickedTarget struct {
	entry  models.TopEntry
	artist *models.Artist
	album  *models.Album
}

// pickTarget runs the candidate selection with its precondition gates.
// A non-nil response means a rejection that must reach the user; no
// session exists yet at that point and no rate-limit budget was spent.
func (service *ServiceGame) pickTarget(ctx context.Context, user *models.User, gameType models.GameType) (*pickedTarget, *models.GameResponse, error) {
	var entries []models.TopEntry
	var err error
	minPlays, minPool := ARTIST_MIN_PLAYCOUNT, ARTIST_MIN_POOL
	if gameType == models.GameTypePixelation {
		minPlays, minPool = ALBUM_MIN_PLAYCOUNT, ALBUM_MIN_POOL
		entries, err = service.content.TopAlbums(ctx, user.LastfmUsername)
	} else {
		entries, err = service.content.TopArtists(ctx, user.LastfmUsername)
	}
	if err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}

	if QualifyingCount(entries, minPlays) <= minPool {
		return nil, &models.GameResponse{
			Status: models.StatusNoHistory,
			Footer: "Sorry, you haven't listened to enough music yet to play. Scrobble more and try again later.",
		}, nil
	}

	recent, err := service.store.RecentTargets(ctx, user.ID, time.Now().Add(-TARGET_LOOKBACK))
	if err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}
	exclude := ExcludeSet(recent)

	entry := PickCandidate(entries, minPlays, exclude)
	if entry == nil {
		return nil, &models.GameResponse{
			Status: models.StatusNoCandidate,
			Footer: "You've played every game available to you today. Come back tomorrow or scrobble more music.",
		}, nil
	}

	pick, found, err := service.resolveMetadata(ctx, entry, gameType)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		// One retry with a different candidate; the failed pick never
		// re-enters the pool.
		exclude[entry.Name] = true
		if retry := PickCandidate(entries, minPlays, exclude); retry != nil {
			entry = retry
			pick, _, err = service.resolveMetadata(ctx, entry, gameType)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	return pick, nil, nil
}

func (service *ServiceGame) resolveMetadata(ctx context.Context, entry *models.TopEntry, gameType models.GameType) (*pickedTarget, bool, error) {
	pick := &pickedTarget{entry: *entry}

	artistName := entry.Name
	if gameType == models.GameTypePixelation {
		artistName = entry.ArtistName

		album, err := service.catalog.AlbumByName(ctx, entry.ArtistName, entry.Name)
		if err != nil {
			return nil, false, errorx.Wrap(err, errorx.Service)
		}
		pick.album = album
	}

	artist, err := service.catalog.ArtistByName(ctx, artistName)
	if err != nil {
		return nil, false, errorx.Wrap(err, errorx.Service)
	}
	pick.artist = artist

	if gameType == models.GameTypePixelation {
		return pick, pick.album != nil, nil
	}
	return pick, pick.artist != nil, nil
}

// backfillCatalog records targets the catalog didn't know about yet.
// Best-effort; a failed write never blocks the game.
func (service *ServiceGame) backfillCatalog(ctx context.Context, pick *pickedTarget, gameType models.GameType) {
	if gameType == models.GameTypePixelation {
		if pick.album != nil {
			return
		}
		album := &models.Album{
			Name:       pick.entry.Name,
			ArtistName: pick.entry.ArtistName,
			CoverURL:   pick.entry.CoverURL,
		}
		if err := service.catalog.StoreAlbum(ctx, album); err != nil {
			log.Printf("catalog backfill album %q: %v", pick.entry.Name, err)
		}
		return
	}

	if pick.artist == nil {
		if err := service.catalog.StoreArtist(ctx, &models.Artist{Name: pick.entry.Name}); err != nil {
			log.Printf("catalog backfill artist %q: %v", pick.entry.Name, err)
		}
	}
}

func (service *ServiceGame) obfuscatedCover(ctx context.Context, pick *pickedTarget) ([]byte, error) {
	coverURL := pick.entry.CoverURL
	if pick.album != nil && pick.album.CoverURL != "" {
		coverURL = pick.album.CoverURL
	}
	if coverURL == "" {
		return nil, errors.New("no cover art available")
	}

	raw, err := service.content.CoverImage(ctx, coverURL)
	if err != nil {
		return nil, err
	}

	return pixelate.Pixelate(raw, PIXELATION_INTENSITY)
}

// AddHint reveals the next hidden hint. Ended or unknown sessions are
// a silent no-op; so is a session with everything already revealed.
func (service *ServiceGame) AddHint(ctx context.Context, sessionID int) (*models.GameResponse, error) {
	live, err := service.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if live == nil {
		return &models.GameResponse{Status: models.StatusNotFound}, nil
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	if live.session.Ended() {
		return &models.GameResponse{Status: models.StatusNotFound}, nil
	}

	if RevealNextHint(live.session.Hints) {
		if err := service.store.SaveHints(ctx, live.session); err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}
	}

	return service.activeResponse(live.session), nil
}

// Reshuffle regenerates the scrambled display of a jumble session
// without touching the target or the hint list.
func (service *ServiceGame) Reshuffle(ctx context.Context, sessionID int) (*models.GameResponse, error) {
	live, err := service.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if live == nil {
		return &models.GameResponse{Status: models.StatusNotFound}, nil
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	if live.session.Ended() || live.session.Type != models.GameTypeJumble {
		return &models.GameResponse{Status: models.StatusNotFound}, nil
	}

	live.session.JumbledAnswer = Scramble(live.session.CorrectAnswer)
	if err := service.store.UpdateJumbled(ctx, live.session); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return service.activeResponse(live.session), nil
}

// GiveUp ends the session early. Only the starter may do it; everyone
// else gets a permission denial with no state change.
func (service *ServiceGame) GiveUp(ctx context.Context, sessionID int, user *models.User) (*models.GameResponse, error) {
	live, err := service.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if live == nil {
		return &models.GameResponse{Status: models.StatusNotFound}, nil
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	if live.session.Ended() {
		return &models.GameResponse{Status: models.StatusNotFound}, nil
	}

	if live.session.StarterUserID != user.ID {
		return &models.GameResponse{
			Status: models.StatusNoPermission,
			Footer: "You can't give up on someone else their game.",
		}, nil
	}

	service.finish(ctx, live, models.EndReasonSurrendered)

	resp := service.endedResponse(live.session)
	resp.Title = fmt.Sprintf("%s gave up!", user.Username)
	if len(live.session.Answers) >= 1 {
		resp.Announcement = fmt.Sprintf("**%s** gave up! The correct answer was `%s`", user.Username, live.session.CorrectAnswer)
	}

	return resp, nil
}

// ProcessAnswer adjudicates one free-text guess against the channel's
// active session. The first correct submission wins; once the end
// transition is taken every later attempt observes Ended and changes
// nothing.
func (service *ServiceGame) ProcessAnswer(ctx context.Context, channelID int64, user *models.User, text string) (*models.AnswerResult, error) {
	live, err := service.resolveByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if live == nil {
		return &models.AnswerResult{Outcome: models.AnswerOutcomeIgnored}, nil
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	session := live.session
	if session.Ended() {
		return &models.AnswerResult{Outcome: models.AnswerOutcomeIgnored}, nil
	}

	if fuzzy.Normalize(text) == "" {
		return &models.AnswerResult{Outcome: models.AnswerOutcomeIgnored}, nil
	}

	now := time.Now()

	if fuzzy.Matches(text, session.CorrectAnswer) {
		answer := &models.SessionAnswer{
			UserID:     user.ID,
			Content:    text,
			Correct:    true,
			AnsweredAt: now,
		}
		if err := service.store.AppendAnswer(ctx, session, answer); err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}
		session.Answers = append(session.Answers, answer)

		service.finish(ctx, live, models.EndReasonSolved)

		resp := service.endedResponse(session)
		taken := now.Sub(session.DateStarted).Seconds()
		resp.Announcement = fmt.Sprintf("**%s** got it right! The answer was `%s`", user.Username, session.CorrectAnswer)
		resp.Footer = fmt.Sprintf("Answered in %.1fs", taken)

		return &models.AnswerResult{Outcome: models.AnswerOutcomeCorrect, Response: resp}, nil
	}

	if !fuzzy.WithinDistanceWindow(text, session.CorrectAnswer) {
		return &models.AnswerResult{Outcome: models.AnswerOutcomeWrong}, nil
	}

	distance := fuzzy.Distance(fuzzy.Normalize(text), fuzzy.Normalize(session.CorrectAnswer))
	answer := &models.SessionAnswer{
		UserID:     user.ID,
		Content:    text,
		Distance:   &distance,
		AnsweredAt: now,
	}
	if err := service.store.AppendAnswer(ctx, session, answer); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	session.Answers = append(session.Answers, answer)

	outcome := models.AnswerOutcomeWrong
	if distance == 1 {
		outcome = models.AnswerOutcomeVeryClose
	}

	return &models.AnswerResult{Outcome: outcome}, nil
}

// Abandon ends a session that never reached its audience, e.g. when
// the chat message could not be delivered. Benign on ended sessions.
func (service *ServiceGame) Abandon(ctx context.Context, sessionID int) error {
	live, err := service.resolve(ctx, sessionID)
	if err != nil {
		return err
	}
	if live == nil {
		return nil
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	if live.session.Ended() {
		return nil
	}

	service.finish(ctx, live, models.EndReasonAbandoned)
	return nil
}

// TimeExpired is the system transition fired when the armed timeout
// elapses. Benign against sessions already ended by any other path.
func (service *ServiceGame) TimeExpired(ctx context.Context, sessionID int) (*models.GameResponse, error) {
	live, err := service.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if live == nil {
		return &models.GameResponse{Status: models.StatusNotFound}, nil
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	if live.session.Ended() {
		return &models.GameResponse{Status: models.StatusNotFound}, nil
	}

	service.finish(ctx, live, models.EndReasonTimedOut)

	resp := service.endedResponse(live.session)
	resp.Title = "Time is up!"
	if len(live.session.Answers) >= 1 {
		resp.Announcement = fmt.Sprintf("Nobody guessed it right. The answer was `%s`", live.session.CorrectAnswer)
	}

	return resp, nil
}

// SessionByChannel returns a copy of the channel's active session, or
// nil. The copy is taken under the session lock; the live aggregate
// never leaves its exclusion scope.
func (service *ServiceGame) SessionByChannel(ctx context.Context, channelID int64) (*models.GameSession, error) {
	live, err := service.resolveByChannel(ctx, channelID)
	if err != nil || live == nil {
		return nil, err
	}

	live.mu.Lock()
	defer live.mu.Unlock()
	return live.session.Clone(), nil
}

// AttachMessage stores the rendered-message reference used to edit the
// game message on resolution.
func (service *ServiceGame) AttachMessage(ctx context.Context, sessionID int, messageID int64) {
	live, err := service.resolve(ctx, sessionID)
	if err != nil || live == nil {
		return
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	live.session.ResponseMessageID = messageID
	if err := service.store.UpdateMessageID(ctx, live.session); err != nil {
		log.Printf("attach message to session %d: %v", sessionID, err)
	}
}

// finish is the single exactly-once end transition. Caller holds the
// live lock. The pending timeout is cancelled before the announcement
// side effects can run, so a stale expiry never double-fires.
func (service *ServiceGame) finish(ctx context.Context, live *liveGame, reason models.EndReason) {
	if live.session.Ended() {
		return
	}

	now := time.Now()
	live.session.DateEnded = &now
	live.session.EndReason = reason

	if live.cancel != nil {
		live.cancel()
		live.cancel = nil
	}

	if err := service.store.MarkEnded(ctx, live.session); err != nil {
		log.Printf("mark session %d ended: %v", live.session.ID, err)
	}

	service.mu.Lock()
	delete(service.live, live.session.ID)
	delete(service.byChannel, live.session.ChannelID)
	service.mu.Unlock()
}

// adopt returns the live record for a session, creating one without a
// timer when the session was loaded from the store (restart, other
// replica).
func (service *ServiceGame) adopt(session *models.GameSession) *liveGame {
	service.mu.Lock()
	defer service.mu.Unlock()

	if id, ok := service.byChannel[session.ChannelID]; ok && id == session.ID {
		if live, ok := service.live[id]; ok {
			return live
		}
	}
	if live, ok := service.live[session.ID]; ok {
		return live
	}

	live := &liveGame{session: session}
	service.live[session.ID] = live
	service.byChannel[session.ChannelID] = session.ID
	return live
}

func (service *ServiceGame) armTimeout(live *liveGame) {
	ctx, cancel := context.WithCancel(context.Background())
	live.cancel = cancel
	go service.watchTimeout(ctx, live)
}

func (service *ServiceGame) watchTimeout(ctx context.Context, live *liveGame) {
	timer := time.NewTimer(live.session.GuessWindow())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	resp, err := service.TimeExpired(context.Background(), live.session.ID)
	if err != nil {
		log.Printf("session %d expiry: %v", live.session.ID, err)
		return
	}

	if resp.Status != models.StatusNotFound && service.onExpire != nil {
		live.mu.Lock()
		snapshot := live.session.Clone()
		live.mu.Unlock()

		fn := service.onExpire
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("expiry notification for session %d: %v", snapshot.ID, r)
				}
			}()
			fn(snapshot, resp)
		}()
	}
}

func (service *ServiceGame) resolve(ctx context.Context, sessionID int) (*liveGame, error) {
	service.mu.Lock()
	live, ok := service.live[sessionID]
	service.mu.Unlock()
	if ok {
		return live, nil
	}

	session, err := service.store.SessionByID(ctx, sessionID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if session == nil {
		return nil, nil
	}
	if session.Ended() {
		return &liveGame{session: session}, nil
	}

	return service.adopt(session), nil
}

func (service *ServiceGame) resolveByChannel(ctx context.Context, channelID int64) (*liveGame, error) {
	service.mu.Lock()
	id, ok := service.byChannel[channelID]
	live := service.live[id]
	service.mu.Unlock()
	if ok && live != nil {
		return live, nil
	}

	session, err := service.store.ActiveSessionByChannel(ctx, channelID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if session == nil {
		return nil, nil
	}

	return service.adopt(session), nil
}

func (service *ServiceGame) activeResponse(session *models.GameSession) *models.GameResponse {
	resp := &models.GameResponse{
		Status:    models.StatusOK,
		SessionID: session.ID,
		PublicID:  session.PublicID,
		HintTitle: HintTitle(session.Hints),
		HintText:  HintsToString(session.Hints),
		Footer:    fmt.Sprintf("Type your answer within %d seconds to make a guess", session.GuessSeconds),
		Actions: &models.GameActions{
			AddHint:   session.HintsShown() < len(session.Hints),
			Reshuffle: session.Type == models.GameTypeJumble,
			GiveUp:    true,
		},
	}

	if session.Type == models.GameTypeJumble {
		resp.Title = "Guess the artist - Jumble"
		resp.Jumbled = session.JumbledAnswer
	} else {
		resp.Title = "Guess the album - Pixelation"
	}

	return resp
}

func (service *ServiceGame) endedResponse(session *models.GameSession) *models.GameResponse {
	resp := service.activeResponse(session)
	resp.Actions = nil
	resp.CorrectAnswer = session.CorrectAnswer
	resp.Footer = fmt.Sprintf("The correct answer was %s", session.CorrectAnswer)
	return resp
}

func (service *ServiceGame) countryOf(artist *models.Artist) *models.CountryInfo {
	if artist == nil || artist.CountryCode == "" || service.countries == nil {
		return nil
	}
	return service.countries.CountryFor(artist.CountryCode)
}

func (service *ServiceGame) guessSeconds(ctx context.Context, gameType models.GameType) int {
	if service.config == nil {
		if gameType == models.GameTypePixelation {
			return DEFAULT_PIXELATION_SECONDS_TO_GUESS
		}
		return DEFAULT_JUMBLE_SECONDS_TO_GUESS
	}

	if gameType == models.GameTypePixelation {
		return service.config.GetIntConfig(ctx, CONFIG_PIXELATION_SECONDS_TO_GUESS, DEFAULT_PIXELATION_SECONDS_TO_GUESS)
	}
	return service.config.GetIntConfig(ctx, CONFIG_JUMBLE_SECONDS_TO_GUESS, DEFAULT_JUMBLE_SECONDS_TO_GUESS)
}

func (service *ServiceGame) dailyLimit(ctx context.Context) int {
	if service.config == nil {
		return DEFAULT_DAILY_GAME_LIMIT
	}
	return service.config.GetIntConfig(ctx, CONFIG_DAILY_GAME_LIMIT, DEFAULT_DAILY_GAME_LIMIT)
}

func (service *ServiceGame) lockChannel(channelID int64) (func(), error) {
	if service.rs == nil {
		return func() {}, nil
	}

	mutex := service.rs.NewMutex(LockKeyChannelGame(channelID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrChannelLock, errorx.Invalid)
	}

	return func() {
		// nolint:errcheck
		mutex.Unlock()
	}, nil
}

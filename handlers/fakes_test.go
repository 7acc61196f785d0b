package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mapleleafu/lanerunner/game"
	"github.com/mapleleafu/lanerunner/models"
	"github.com/mapleleafu/lanerunner/repository"
)

var errStore = errors.New("store unavailable")

type fakeStats struct {
	mu    sync.Mutex
	stats map[game.Difficulty]models.GameStats
	fail  bool
}

func newFakeStats() *fakeStats {
	return &fakeStats{stats: make(map[game.Difficulty]models.GameStats)}
}

func (f *fakeStats) Get(_ context.Context, d game.Difficulty) (models.GameStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return models.GameStats{}, errStore
	}
	st, ok := f.stats[d]
	if !ok {
		st = models.GameStats{ID: primitive.NewObjectID(), Difficulty: d, LastUpdated: time.Now()}
		f.stats[d] = st
	}
	return st, nil
}

func (f *fakeStats) All(context.Context) ([]models.GameStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStore
	}
	all := []models.GameStats{}
	for _, d := range game.Difficulties {
		if st, ok := f.stats[d]; ok {
			all = append(all, st)
		}
	}
	return all, nil
}

func (f *fakeStats) Update(_ context.Context, d game.Difficulty, score, coins int) (models.GameStats, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return models.GameStats{}, false, errStore
	}
	st := f.stats[d]
	st.Difficulty = d
	isNew := score > st.HighScore
	if isNew {
		st.HighScore = score
	}
	st.TotalCoins += coins
	st.LastUpdated = time.Now()
	f.stats[d] = st
	return st, isNew, nil
}

type fakeLeaderboard struct {
	mu      sync.Mutex
	entries []models.LeaderboardEntry
}

func (f *fakeLeaderboard) Add(_ context.Context, e models.LeaderboardEntry) (models.LeaderboardEntry, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = primitive.NewObjectID()
	f.entries = append(f.entries, e)
	rank := 1
	for _, other := range f.entries {
		if other.Difficulty == e.Difficulty && other.Score > e.Score {
			rank++
		}
	}
	e.Rank = rank
	return e, rank, nil
}

func (f *fakeLeaderboard) sorted(d game.Difficulty) []models.LeaderboardEntry {
	var out []models.LeaderboardEntry
	for _, e := range f.entries {
		if e.Difficulty == d {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func (f *fakeLeaderboard) Top(_ context.Context, d game.Difficulty, limit int) ([]models.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.sorted(d)
	if len(all) > limit {
		all = all[:limit]
	}
	out := []models.LeaderboardEntry{}
	for i, e := range all {
		e.Rank = i + 1
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeLeaderboard) PlayerBest(_ context.Context, name string, d game.Difficulty) (models.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.sorted(d) {
		if strings.EqualFold(e.PlayerName, name) {
			return e, nil
		}
	}
	return models.LeaderboardEntry{}, repository.ErrNotFound
}

func (f *fakeLeaderboard) Cleanup(_ context.Context, keep int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []models.LeaderboardEntry
	for _, d := range game.Difficulties {
		all := f.sorted(d)
		if len(all) > keep {
			all = all[:keep]
		}
		kept = append(kept, all...)
	}
	deleted := int64(len(f.entries) - len(kept))
	f.entries = kept
	return deleted, nil
}

type fakeRunLogs struct {
	mu   sync.Mutex
	logs map[string]models.RunLog
}

func newFakeRunLogs() *fakeRunLogs {
	return &fakeRunLogs{logs: make(map[string]models.RunLog)}
}

func (f *fakeRunLogs) Save(_ context.Context, l models.RunLog) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l.ID = primitive.NewObjectID()
	f.logs[l.ID.Hex()] = l
	return l.ID.Hex(), nil
}

func (f *fakeRunLogs) Find(_ context.Context, id string) (models.RunLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return models.RunLog{}, repository.ErrInvalidID
	}
	l, ok := f.logs[id]
	if !ok {
		return l, repository.ErrNotFound
	}
	return l, nil
}

type fakeRuns struct {
	mu   sync.Mutex
	runs []models.Run
}

func (f *fakeRuns) Record(_ context.Context, run models.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRuns) ListByUser(_ context.Context, userID string, ds []game.Difficulty) ([]models.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Run{}
	for _, r := range f.runs {
		if r.UserID != userID {
			continue
		}
		if len(ds) > 0 {
			match := false
			for _, d := range ds {
				match = match || r.Difficulty == d
			}
			if !match {
				continue
			}
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeUsers struct {
	mu     sync.Mutex
	users  []models.User
	tokens map[string]models.RefreshToken
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{tokens: make(map[string]models.RefreshToken)}
}

func (f *fakeUsers) Create(_ context.Context, username, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return repository.ErrDuplicate
		}
	}
	f.users = append(f.users, models.User{ID: int64(len(f.users) + 1), Username: username, Password: hash})
	return nil
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (f *fakeUsers) SaveRefreshToken(_ context.Context, t models.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[t.Token] = t
	return nil
}

func (f *fakeUsers) FindRefreshToken(_ context.Context, token string) (models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok {
		return t, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeUsers) DeleteRefreshToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

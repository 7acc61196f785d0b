package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mapleleafu/lanerunner/game"
	"github.com/mapleleafu/lanerunner/middleware"
	"github.com/mapleleafu/lanerunner/models"
	"github.com/mapleleafu/lanerunner/responses"
	"github.com/mapleleafu/lanerunner/utils"
)

// PlayHandler upgrades to a websocket and runs one game after another for the
// caller until the socket closes.
func (s *Server) PlayHandler(w http.ResponseWriter, r *http.Request) {
	difficulty, err := difficultyParam(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	claims, err := middleware.ParseToken(mux.Vars(r)["token"], s.JWTSecret)
	if err != nil {
		log.Println(err)
		utils.HandleError(w, responses.UnauthorizedError{Msg: "Error validating token."})
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	conn := newConnection(ws, claims.ID, claims.Username)
	if s.Hub != nil {
		s.Hub.Register(conn)
		defer s.Hub.Unregister(conn)
	}
	log.Printf("User %s started playing %s", claims.ID, difficulty)

	ctx, cancel := context.WithCancel(context.Background())
	session := newPlaySession(s, conn, difficulty)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		conn.writePump()
	}()
	go func() {
		defer wg.Done()
		session.run(ctx)
	}()

	conn.readPump(session.handleMessage)
	cancel()
	conn.close()
	wg.Wait()
	log.Printf("User %s disconnected", claims.ID)
}

// playSession hosts the runs of one connection. The session goroutine is the
// only one touching loop state; the read pump talks to it through the loop's
// input latch, the restart channel and the cancel func of the live run.
type playSession struct {
	server     *Server
	conn       *Connection
	difficulty game.Difficulty
	id         string
	now        func() time.Time
	loopOpts   []game.Option

	seed      int64
	tickRate  int
	startedAt time.Time
	lastTime  int
	tick      atomic.Int64
	restart   chan struct{}

	mu        sync.Mutex
	loop      *game.Loop
	cancelRun context.CancelFunc
	actions   []models.GameAction
}

func newPlaySession(s *Server, conn *Connection, d game.Difficulty) *playSession {
	return &playSession{
		server:     s,
		conn:       conn,
		difficulty: d,
		id:         uuid.New().String(),
		now:        time.Now,
		restart:    make(chan struct{}, 1),
	}
}

// start sets up a fresh run. Runs use a fixed-step clock so the seed, the
// tick rate and the logged actions reproduce them exactly.
func (p *playSession) start(cancelRun context.CancelFunc) {
	p.seed = p.now().UnixNano()
	p.startedAt = p.now()
	p.lastTime = -1
	p.tick.Store(0)
	p.tickRate = p.server.TickRate
	if p.tickRate <= 0 {
		p.tickRate = game.DefaultTickRate
	}

	opts := []game.Option{
		game.WithSeed(p.seed),
		game.WithTickRate(p.tickRate),
		game.WithClock(p.now),
		game.WithFixedStep(),
	}
	loop := game.NewLoop(p.difficulty, game.Callbacks{
		OnScoreUpdate: func(score int) {
			p.conn.sendJSON(models.MsgScore, score)
		},
		OnTimeUpdate: func(sec int) {
			if sec != p.lastTime {
				p.lastTime = sec
				p.conn.sendJSON(models.MsgTime, sec)
			}
		},
		OnCoinCollect: func() {
			p.conn.sendJSON(models.MsgCoin, nil)
		},
		OnInput:    p.recordInput,
		OnGameOver: p.finish,
	}, append(opts, p.loopOpts...)...)

	p.mu.Lock()
	p.loop = loop
	p.cancelRun = cancelRun
	p.actions = nil
	// A restart that arrived before this point is the one being served now.
	select {
	case <-p.restart:
	default:
	}
	p.mu.Unlock()
}

func (p *playSession) run(ctx context.Context) {
	for {
		runCtx, cancelRun := context.WithCancel(ctx)
		p.start(cancelRun)
		err := p.currentLoop().Run(runCtx, p.afterTick)
		cancelRun()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			// Restarted mid-run.
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-p.restart:
		}
	}
}

func (p *playSession) currentLoop() *game.Loop {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loop
}

func (p *playSession) afterTick(state *game.State) {
	n := p.tick.Add(1)
	every := int64(p.server.SnapshotEvery)
	if every <= 0 {
		every = game.DefaultSnapshotTick
	}
	if n%every == 0 || !state.Running {
		p.conn.sendJSON(models.MsgState, state.Snapshot())
	}
}

func (p *playSession) handleMessage(raw []byte) {
	var msg models.GameActionMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Printf("Error unmarshalling game action message: %v", err)
		p.conn.sendJSON(models.MsgError, "Invalid game action.")
		return
	}

	switch msg.Action {
	case models.ActionLeft:
		p.press(game.Input{Left: true})
	case models.ActionRight:
		p.press(game.Input{Right: true})
	case models.ActionRestart:
		p.requestRestart()
	default:
		log.Printf("Unhandled game action: %s", msg.Action)
		p.conn.sendJSON(models.MsgError, "Unknown game action.")
	}
}

func (p *playSession) press(in game.Input) {
	if loop := p.currentLoop(); loop != nil {
		loop.Press(in)
	}
}

// requestRestart ends the live run, if any, and queues a new one.
func (p *playSession) requestRestart() {
	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case p.restart <- struct{}{}:
	default:
	}
	if p.cancelRun != nil {
		p.cancelRun()
	}
}

// recordInput runs on the loop goroutine with the step that consumed the input.
func (p *playSession) recordInput(step int, in game.Input) {
	ts := p.now().UnixMilli()
	p.mu.Lock()
	defer p.mu.Unlock()
	if in.Left {
		p.actions = append(p.actions, models.GameAction{Tick: step, Action: models.ActionLeft, Timestamp: ts})
	}
	if in.Right {
		p.actions = append(p.actions, models.GameAction{Tick: step, Action: models.ActionRight, Timestamp: ts})
	}
}

func (p *playSession) finish(score, coins, elapsed int) {
	p.mu.Lock()
	actions := append([]models.GameAction(nil), p.actions...)
	p.mu.Unlock()

	runLog := models.RunLog{
		SessionID:  p.id,
		UserID:     p.conn.userID,
		Difficulty: p.difficulty,
		Seed:       p.seed,
		TickRate:   p.tickRate,
		StartedAt:  p.startedAt.UTC(),
		FinishedAt: p.now().UTC(),
		Actions:    actions,
		Result:     game.Result{Score: score, CoinsCollected: coins, ElapsedSeconds: elapsed},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	runID, isNewHighScore := p.server.saveRun(ctx, runLog, p.conn.username)

	p.conn.sendJSON(models.MsgGameOver, models.GameOverMessage{
		Score:          score,
		Coins:          coins,
		Time:           elapsed,
		RunID:          runID,
		IsNewHighScore: isNewHighScore,
	})
}

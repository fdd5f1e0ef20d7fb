package engine

import (
	"context"
	"sync"
	"time"

	"github.com/Frostlock/Warrens-II/internal/network"
	"github.com/Frostlock/Warrens-II/pkg/api"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/sirupsen/logrus"
)

const commandQueueSize = 100

// DebugInfo - служебное состояние для /debug. Собирается в горутине симуляции.
type DebugInfo struct {
	Level    string          `json:"level"`
	Turn     int64           `json:"turn"`
	ClockMs  int64           `json:"clockMs"`
	Actors   int             `json:"actors"`
	Map      string          `json:"map"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// Service владеет симуляцией и крутит её в одной горутине.
// Снаружи приходят только команды через Submit, наружу уходят только снимки.
type Service struct {
	Mode string
	Game *Game
	Hub  *network.Broadcaster

	realm       *Realm // nil в пошаговом режиме
	interval    time.Duration
	CommandChan chan api.ClientCommand

	debugMu sync.RWMutex
	debug   DebugInfo

	log *logrus.Entry
}

// NewService строит мир и оборачивает его в выбранный режим.
func NewService(ctx context.Context, cfg Config) (*Service, error) {
	g, err := NewGame(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &Service{
		Mode:        cfg.Mode,
		Game:        g,
		Hub:         network.NewBroadcaster(),
		interval:    cfg.TickInterval,
		CommandChan: make(chan api.ClientCommand, commandQueueSize),
		log:         logger.For("service"),
	}
	if cfg.Mode == ModeRealtime {
		s.realm = NewRealm(g, cfg.TickInterval)
	}
	s.publish()
	return s, nil
}

// Submit ставит команду в очередь. false - очередь переполнена.
func (s *Service) Submit(cmd api.ClientCommand) bool {
	select {
	case s.CommandChan <- cmd:
		return true
	default:
		s.log.WithField("action", cmd.Action).Warn("Command queue full, command dropped")
		return false
	}
}

// Run - главный цикл. Возвращается, когда отменён ctx.
func (s *Service) Run(ctx context.Context) error {
	s.log.WithField("mode", s.Mode).Info("Game loop started")

	// В пошаговом режиме тикер не нужен: nil-канал никогда не сработает
	var tick <-chan time.Time
	if s.realm != nil {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Game loop stopped")
			return ctx.Err()

		case cmd := <-s.CommandChan:
			s.execute(ctx, cmd)
			s.publish()

		case now := <-tick:
			elapsed := now.Sub(last).Milliseconds()
			last = now
			if s.realm.Tick(ctx, elapsed) > 0 {
				s.publish()
			}
		}
	}
}

// execute выполняет команду игрока. В пошаговом режиме за ней следует ход мира.
func (s *Service) execute(ctx context.Context, cmd api.ClientCommand) {
	if err := s.Game.Perform(cmd); err != nil {
		// Ошибка уже в логе, мир не двигается
		return
	}
	if s.realm == nil {
		s.Game.AdvanceTurn(ctx)
	}
}

// Snapshot текущего режима.
func (s *Service) Snapshot() *api.Snapshot {
	if s.realm != nil {
		return s.realm.Snapshot()
	}
	return s.Game.Snapshot()
}

func (s *Service) publish() {
	s.Hub.Publish(s.Snapshot())

	info := DebugInfo{
		Turn:     s.Game.Turn,
		Actors:   s.Game.World.Reg.Count(),
		Schedule: make([]ScheduleEntry, 0),
	}
	if lvl := s.Game.CurrentLevel(); lvl != nil {
		info.Level = lvl.Name
		info.Map = lvl.Map.String()
	}
	if s.realm != nil {
		info.ClockMs = s.realm.ClockMs()
		info.Schedule = s.realm.Schedule()
	}

	s.debugMu.Lock()
	s.debug = info
	s.debugMu.Unlock()
}

// Debug возвращает копию служебного состояния. Безопасно из любой горутины.
func (s *Service) Debug() DebugInfo {
	s.debugMu.RLock()
	defer s.debugMu.RUnlock()
	return s.debug
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"pandemic-deck/deck"
	"pandemic-deck/dto"
	"pandemic-deck/entities"
	"pandemic-deck/repository"
	"pandemic-deck/utils"
)

// MaxHistory 最多保留的历史状态数（包括当前状态）
const MaxHistory = 20

// Notifier 每次状态被接受后收到新的快照
type Notifier interface {
	Notify(snapshot dto.Snapshot)
}

type Option func(*Session)

func WithLocale(locale language.Tag) Option {
	return func(s *Session) { s.locale = locale }
}

func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notifiers = append(s.notifiers, n) }
}

// Session 共享牌堆的会话。所有读写都按到达顺序排队，同一时间只有一个操作在执行
type Session struct {
	store     repository.Storage
	logger    *zap.Logger
	locale    language.Tag
	notifiers []Notifier
	// 容量为 1 的通道充当队列：阻塞的发送者按先后顺序被唤醒
	turn      chan struct{}
}

func NewSession(store repository.Storage, logger *zap.Logger, opts ...Option) *Session {
	s := &Session{
		store:  store,
		logger: logger,
		locale: entities.DefaultLocale,
		turn:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) acquire(ctx context.Context) error {
	select {
	case s.turn <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) release() {
	<-s.turn
}

// loadHistory 读取历史，不存在时写入初始状态
func (s *Session) loadHistory(ctx context.Context) (entities.GameStorage, error) {
	history, ok, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if ok && len(history) > 0 {
		return history, nil
	}

	history = entities.GameStorage{deck.InitialState()}
	if err := s.store.Save(ctx, history); err != nil {
		return nil, fmt.Errorf("save initial history: %w", err)
	}
	s.logger.Info("seeded initial deck state")
	return history, nil
}

func (s *Session) save(ctx context.Context, history entities.GameStorage) error {
	if err := s.store.Save(ctx, history); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	historyDepth.Set(float64(len(history)))
	currentRevision.Set(float64(history[len(history)-1].Revision))
	return nil
}

// notify 在释放队列之后调用，推送慢不会阻塞后面的操作。
// 并发时推送顺序可能和 revision 顺序不同，订阅方按 revision 丢弃旧快照
func (s *Session) notify(snapshot dto.Snapshot) {
	for _, n := range s.notifiers {
		n.Notify(snapshot)
	}
}

func (s *Session) fail(operation string, start time.Time, err error) error {
	if errors.Is(err, entities.ErrInternalInvariant) || !isUserError(err) {
		observe(operation, resultError, start)
		s.logger.Error("deck operation failed", zap.String("operation", operation), zap.Error(err))
		return err
	}
	observe(operation, resultRejected, start)
	s.logger.Info("deck operation rejected", zap.String("operation", operation), zap.Error(err))
	return err
}

func isUserError(err error) bool {
	return errors.Is(err, entities.ErrValidation) ||
		errors.Is(err, entities.ErrDuplicateCity) ||
		errors.Is(err, entities.ErrInsufficientCards) ||
		errors.Is(err, entities.ErrNoHistory)
}

// apply 在当前状态的副本上执行 mutate，成功后追加到历史并持久化。
// mutate 失败时副本直接丢弃，历史和存储都不变
func (s *Session) apply(ctx context.Context, operation string, mutate func(state *entities.GameState) error) (dto.Snapshot, error) {
	snapshot, err := s.commit(ctx, operation, mutate)
	if err != nil {
		return dto.Snapshot{}, err
	}
	s.notify(snapshot)
	return snapshot, nil
}

func (s *Session) commit(ctx context.Context, operation string, mutate func(state *entities.GameState) error) (dto.Snapshot, error) {
	start := time.Now()
	if err := s.acquire(ctx); err != nil {
		return dto.Snapshot{}, err
	}
	defer s.release()
	// 出队之后的操作不可取消，必须执行完
	ctx = context.WithoutCancel(ctx)

	history, err := s.loadHistory(ctx)
	if err != nil {
		return dto.Snapshot{}, s.fail(operation, start, err)
	}
	current := history[len(history)-1]

	next := current.Clone()
	if err := mutate(&next); err != nil {
		return dto.Snapshot{}, s.fail(operation, start, err)
	}
	deck.PruneEmptyLayers(&next)
	if err := deck.CheckConservation(&next); err != nil {
		return dto.Snapshot{}, s.fail(operation, start, err)
	}
	next.Revision = current.Revision + 1

	history = utils.TailSlice(append(history, next), MaxHistory)
	if err := s.save(ctx, history); err != nil {
		return dto.Snapshot{}, s.fail(operation, start, err)
	}

	snapshot := Project(&next, s.locale)
	observe(operation, resultAccepted, start)
	s.logger.Info("deck operation applied",
		zap.String("operation", operation),
		zap.Int("revision", next.Revision),
		zap.Int("history", len(history)))
	return snapshot, nil
}

// Snapshot 读取当前状态，同样经过队列，保证读到的是完整的状态
func (s *Session) Snapshot(ctx context.Context) (dto.Snapshot, error) {
	if err := s.acquire(ctx); err != nil {
		return dto.Snapshot{}, err
	}
	defer s.release()

	history, err := s.loadHistory(context.WithoutCancel(ctx))
	if err != nil {
		return dto.Snapshot{}, err
	}
	return Project(&history[len(history)-1], s.locale), nil
}

// Forecast 对当前状态做抽牌预测
func (s *Session) Forecast(ctx context.Context, draws int, afterEpidemic bool) (dto.Forecast, error) {
	if err := s.acquire(ctx); err != nil {
		return dto.Forecast{}, err
	}
	defer s.release()

	history, err := s.loadHistory(context.WithoutCancel(ctx))
	if err != nil {
		return dto.Forecast{}, err
	}
	return Forecast(&history[len(history)-1], draws, afterEpidemic, s.locale)
}

// Undo 删除最后一条历史，回到上一个状态。revision 继续递增，客户端据此丢弃旧快照
func (s *Session) Undo(ctx context.Context) (dto.Snapshot, error) {
	snapshot, err := s.undo(ctx)
	if err != nil {
		return dto.Snapshot{}, err
	}
	s.notify(snapshot)
	return snapshot, nil
}

func (s *Session) undo(ctx context.Context) (dto.Snapshot, error) {
	const operation = "undo"
	start := time.Now()
	if err := s.acquire(ctx); err != nil {
		return dto.Snapshot{}, err
	}
	defer s.release()
	ctx = context.WithoutCancel(ctx)

	history, err := s.loadHistory(ctx)
	if err != nil {
		return dto.Snapshot{}, s.fail(operation, start, err)
	}
	if len(history) <= 1 {
		return dto.Snapshot{}, s.fail(operation, start, fmt.Errorf("%w: nothing to undo", entities.ErrNoHistory))
	}

	popped := history[len(history)-1]
	history = history[:len(history)-1]
	current := &history[len(history)-1]
	current.Revision = popped.Revision + 1

	if err := s.save(ctx, history); err != nil {
		return dto.Snapshot{}, s.fail(operation, start, err)
	}

	snapshot := Project(current, s.locale)
	observe(operation, resultAccepted, start)
	s.logger.Info("deck operation undone",
		zap.Int("undoneRevision", popped.Revision),
		zap.Int("revision", current.Revision),
		zap.Int("history", len(history)))
	return snapshot, nil
}

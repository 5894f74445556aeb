// scheduler — периодические задачи сервиса на robfig/cron.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/pkg/log"

	"github.com/robfig/cron/v3"
)

// Имена задач.
const (
	JobEntitlementSync = "entitlement_sync"
	JobFeedRefresh     = "feed_refresh"
)

// ErrUnknownJob — задачи с таким именем нет в расписании.
var ErrUnknownJob = errors.New("unknown job")

// jobTimeout — дедлайн одного запуска задачи.
const jobTimeout = 2 * time.Minute

// Job — периодическая задача.
type Job func(ctx context.Context) error

// JobInfo — сведения о зарегистрированной задаче.
type JobInfo struct {
	Name    string    `json:"name"`
	Spec    string    `json:"spec"`
	NextRun time.Time `json:"next_run"`
	LastRun time.Time `json:"last_run"`
}

type entry struct {
	id   cron.EntryID
	spec string
	job  Job
}

// Scheduler — обёртка над cron с именованными задачами.
// Пересекающиеся запуски одной задачи пропускаются.
type Scheduler struct {
	cron *cron.Cron
	lg   *slog.Logger

	mu   sync.Mutex
	jobs map[string]entry
}

// New создаёт планировщик в часовом поясе timezone (5-польные спецификации).
func New(timezone string, lg *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("scheduler.New: invalid timezone %q: %w", timezone, err)
	}

	if lg == nil {
		lg = slog.Default()
	}

	cl := cronLogger{lg: lg}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		lg:   lg,
		jobs: make(map[string]entry),
	}, nil
}

// AddJob регистрирует задачу; повторное имя заменяет прежнюю.
func (s *Scheduler) AddJob(name, spec string, job Job) error {
	id, err := s.cron.AddFunc(spec, func() { _ = s.run(name, job) })
	if err != nil {
		return fmt.Errorf("scheduler.AddJob %s: %w", name, err)
	}

	s.mu.Lock()
	if prev, ok := s.jobs[name]; ok {
		s.cron.Remove(prev.id)
	}
	s.jobs[name] = entry{id: id, spec: spec, job: job}
	s.mu.Unlock()

	s.lg.Info("scheduler_job_added", slog.String("job", name), slog.String("spec", spec))

	return nil
}

// RemoveJob снимает задачу с расписания.
func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("scheduler.RemoveJob %s: %w", name, ErrUnknownJob)
	}

	s.cron.Remove(e.id)
	delete(s.jobs, name)
	s.lg.Info("scheduler_job_removed", slog.String("job", name))

	return nil
}

// RunNow выполняет зарегистрированную задачу вне расписания и возвращает её ошибку.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	e, ok := s.jobs[name]
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("scheduler.RunNow %s: %w", name, ErrUnknownJob)
	}

	return s.run(name, e.job)
}

func (s *Scheduler) run(name string, job Job) error {
	lg := s.lg.With(slog.String("job", name))

	ctx, cancel := context.WithTimeout(log.Into(context.Background(), lg), jobTimeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		lg.Warn("scheduler_job_failed", slog.String("err", err.Error()))
		return err
	}

	lg.Debug("scheduler_job_ok", slog.Duration("took", time.Since(start)))

	return nil
}

func (s *Scheduler) Start() {
	s.lg.Info("scheduler_started")
	s.cron.Start()
}

// Stop останавливает расписание; контекст завершается, когда закончатся текущие запуски.
func (s *Scheduler) Stop() context.Context {
	s.lg.Info("scheduler_stopping")
	return s.cron.Stop()
}

// Jobs — задачи по имени с временем следующего и прошлого запуска.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]JobInfo, 0, len(s.jobs))
	for name, je := range s.jobs {
		e := s.cron.Entry(je.id)
		infos = append(infos, JobInfo{Name: name, Spec: je.spec, NextRun: e.Next, LastRun: e.Prev})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	return infos
}

// cronLogger направляет внутренний лог cron в slog.
type cronLogger struct {
	lg *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.lg.Debug("cron_"+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.lg.Error("cron_"+msg, append([]any{slog.String("err", err.Error())}, keysAndValues...)...)
}

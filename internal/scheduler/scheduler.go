package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jentichuang-afk/stock-watchlist/internal/collector"
	"github.com/jentichuang-afk/stock-watchlist/internal/logger"
	"github.com/jentichuang-afk/stock-watchlist/internal/metrics"
	"github.com/jentichuang-afk/stock-watchlist/internal/model"
	"github.com/jentichuang-afk/stock-watchlist/internal/narrative"
	"github.com/jentichuang-afk/stock-watchlist/internal/notifier"
	"github.com/jentichuang-afk/stock-watchlist/internal/recorder"
)

// Taipei is the exchange time zone used for cron expressions.
var Taipei = time.FixedZone("CST", 8*60*60)

// Scanner runs one batch over a list of codes.
type Scanner interface {
	Scan(ctx context.Context, codes []string, progress collector.Progress) (*model.ScanResult, error)
}

// Watchlist is the persisted code list.
type Watchlist interface {
	Codes() []string
	Add(s string) ([]string, error)
	Remove(s string) ([]string, error)
}

// Narrator produces model commentary for an indicator table.
type Narrator interface {
	Compare(ctx context.Context, table string) []narrative.Result
}

// Sender delivers a message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the periodic refresh and bot commands.
type Scheduler struct {
	Cron      *cron.Cron
	Scanner   Scanner
	Watchlist Watchlist
	Narrator  Narrator // nil disables /ai
	Notifier  Sender
	Recorder  recorder.Recorder
	Ctx       context.Context

	CardLimit          int
	NarrativeOnRefresh bool

	running sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sc Scanner, wl Watchlist, nr Narrator, tn Sender, rec recorder.Recorder) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithLocation(Taipei)),
		Scanner:   sc,
		Watchlist: wl,
		Narrator:  nr,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
		CardLimit: notifier.DefaultCardLimit,
	}
}

// RegisterAll registers the watchlist refresh task.
func (s *Scheduler) RegisterAll(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Info("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	logger.Info("running refresh task")
	report, err := s.Refresh(s.Ctx, recorder.TriggerCron, s.NarrativeOnRefresh)
	if errors.Is(err, errBusy) {
		logger.Warn("refresh skipped, previous scan still running")
		return
	}
	if err != nil && report == "" {
		logger.Error("refresh failed", logger.ErrorField(err))
		s.trySend(fmt.Sprintf("❌ 自選股掃描失敗: %v", err))
		return
	}
	s.trySend(report)
}

var errBusy = errors.New("scan already running")

// Refresh scans the watchlist, records the run and renders the report. An
// empty scan still yields the no-data report together with model.ErrNoData.
func (s *Scheduler) Refresh(ctx context.Context, trigger string, withNarrative bool) (string, error) {
	if !s.running.TryLock() {
		return "", errBusy
	}
	defer s.running.Unlock()

	runID := recorder.NewRunID()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.WithContext(ctx)

	codes := s.Watchlist.Codes()
	start := time.Now()
	res, err := s.Scanner.Scan(ctx, codes, func(done, total int, code string) {
		log.Debug("scan progress", logger.Int("done", done), logger.Int("total", total), logger.String("symbol", code))
	})
	metrics.ObserveScan(trigger, time.Since(start))
	if err != nil && !errors.Is(err, model.ErrNoData) {
		return "", err
	}

	if res != nil {
		if recErr := s.Recorder.RecordScan(runID, trigger, res); recErr != nil {
			log.Error("record scan failed", logger.ErrorField(recErr))
		}
	}

	report := notifier.FormatScanReport(res, s.CardLimit)
	if err != nil {
		return report, err
	}

	if withNarrative && s.Narrator != nil {
		results := s.Narrator.Compare(ctx, notifier.FormatTable(res.Rows))
		if recErr := s.Recorder.RecordNarrative(runID, results); recErr != nil {
			log.Error("record narrative failed", logger.ErrorField(recErr))
		}
		report += "\n" + notifier.FormatNarrative(results)
	}
	return report, nil
}

const helpText = "可用命令:\n• /scan 立即掃描自選股\n• /ai 掃描並產生 AI 解讀\n• /list 查看自選股\n• /add 代號[,代號] 加入自選股\n• /remove 代號[,代號] 移除自選股"

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(command), " ")
	arg = strings.TrimSpace(arg)
	// "/scan@my_bot" in group chats
	cmd, _, _ = strings.Cut(cmd, "@")

	switch cmd {
	case "/scan", "掃描":
		return s.replyRefresh(ctx, false)
	case "/ai", "AI分析":
		if s.Narrator == nil {
			return "AI 分析未啟用 (未設定 GEMINI_API_KEY)"
		}
		return s.replyRefresh(ctx, true)
	case "/list", "清單":
		return notifier.FormatWatchlist(s.Watchlist.Codes())
	case "/add":
		if arg == "" {
			return "用法: /add 2330,2317"
		}
		added, err := s.Watchlist.Add(arg)
		if err != nil {
			return fmt.Sprintf("❌ 儲存失敗: %v", err)
		}
		if len(added) == 0 {
			return "沒有新增任何代號"
		}
		return "✅ 已加入: " + strings.Join(added, ", ")
	case "/remove", "/rm":
		if arg == "" {
			return "用法: /remove 2330"
		}
		removed, err := s.Watchlist.Remove(arg)
		if err != nil {
			return fmt.Sprintf("❌ 儲存失敗: %v", err)
		}
		if len(removed) == 0 {
			return "清單中沒有這些代號"
		}
		return "🗑 已移除: " + strings.Join(removed, ", ")
	default:
		return helpText
	}
}

func (s *Scheduler) replyRefresh(ctx context.Context, withNarrative bool) string {
	report, err := s.Refresh(ctx, recorder.TriggerCommand, withNarrative)
	switch {
	case errors.Is(err, errBusy):
		return "⏳ 掃描進行中，請稍候"
	case report != "":
		return report
	case err != nil:
		return fmt.Sprintf("❌ 自選股掃描失敗: %v", err)
	}
	return ""
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		logger.Error("send notification failed", logger.ErrorField(err))
	}
}

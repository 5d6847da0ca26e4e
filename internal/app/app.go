// Package app wires repositories, the scheduling engine and services into
// one App, and hosts the use cases that span several services.
package app

import (
	"database/sql"
	"io"
	"log/slog"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/intelligence"
	"github.com/alexanderramin/todoer/internal/llm"
	"github.com/alexanderramin/todoer/internal/repository"
	"github.com/alexanderramin/todoer/internal/scheduler"
	"github.com/alexanderramin/todoer/internal/service"
)

// App holds every service a command may use.
type App struct {
	Goals       service.GoalService
	Commitments service.CommitmentService
	Schedule    service.ScheduleService
	Leisure     service.LeisureService
	Events      service.EventService
	Reminders   service.ReminderService
	Init        service.InitService
	Import      service.ImportService

	// Breakdown is nil when the LLM is disabled in config.
	Breakdown intelligence.BreakdownService

	Clock scheduler.Clock
}

// Options configure Wire. Zero values fall back to defaults.
type Options struct {
	Scheduler scheduler.Options
	Clock     scheduler.Clock
	LeadMin   int
	Logger    *slog.Logger
	Notifier  service.Notifier
	LLM       llm.LLMConfig
	// LLMLog receives one line per LLM call when LLM.LogCalls is set.
	LLMLog io.Writer
}

// Wire builds an App on database.
func Wire(database *sql.DB, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clock := opts.Clock
	if clock == nil {
		clock = scheduler.SystemClock{}
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = service.NewLogNotifier(logger)
	}
	observer := service.NewSlogUseCaseObserver(logger)

	goalRepo := repository.NewSQLiteGoalRepo(database)
	commitmentRepo := repository.NewSQLiteCommitmentRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	eventRepo := repository.NewSQLiteEventRepo(database)
	itemRepo := repository.NewSQLiteLeisureItemRepo(database)
	purchaseRepo := repository.NewSQLitePurchaseRepo(database)
	profileRepo := repository.NewSQLiteUserProfileRepo(database)
	reminderRepo := repository.NewSQLiteReminderRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	engine := scheduler.NewEngine(opts.Scheduler, clock)

	a := &App{
		Goals:       service.NewGoalService(goalRepo, uow, clock, observer),
		Commitments: service.NewCommitmentService(commitmentRepo, clock),
		Schedule:    service.NewScheduleService(goalRepo, commitmentRepo, taskRepo, engine, uow, observer),
		Leisure:     service.NewLeisureService(itemRepo, purchaseRepo, profileRepo, uow, clock, observer),
		Events:      service.NewEventService(eventRepo, clock),
		Reminders:   service.NewReminderService(taskRepo, reminderRepo, profileRepo, uow, notifier, opts.LeadMin, clock, observer),
		Init:        service.NewInitService(uow, observer),
		Import:      service.NewImportService(uow, observer),
		Clock:       clock,
	}

	if opts.LLM.Enabled {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if opts.LLM.LogCalls && opts.LLMLog != nil {
			llmObserver = llm.NewLogObserver(opts.LLMLog)
		}
		a.Breakdown = intelligence.NewBreakdownService(llm.NewChatClient(opts.LLM, llmObserver), logger)
	}
	return a
}

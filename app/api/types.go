package api

import (
	"context"

	"github.com/yeonho-kim/newsdigest/app/config"
	"github.com/yeonho-kim/newsdigest/app/database"
	"github.com/yeonho-kim/newsdigest/app/engine"
	"github.com/yeonho-kim/newsdigest/app/scheduler"
)

type SchedulerInterface interface {
	TriggerNow(ctx context.Context, announcement string) (*engine.Report, error)
	LastReport() *engine.Report
}

var _ SchedulerInterface = (*scheduler.Scheduler)(nil)

type KeywordSource interface {
	Keywords() []string
	HasKeyword(keyword string) bool
	SourceCount() int
}

var _ KeywordSource = (*config.Loader)(nil)

type Handler struct {
	subscriberRepo   database.SubscriberRepository
	announcementRepo database.AnnouncementRepository
	keywords         KeywordSource
	scheduler        SchedulerInterface
}

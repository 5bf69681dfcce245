package digest

import (
	"github.com/yeonho-kim/newsdigest/app/database"
	"github.com/yeonho-kim/newsdigest/app/news"
)

// Section is one keyword's slice of a digest, in the order the source
// returned its items.
type Section struct {
	Keyword string
	Items   []news.Item
}

// Bundle is the per-subscriber, per-run input to the composer. Every
// bundle has at least one non-empty section; subscribers without any
// are filtered out before bundling.
type Bundle struct {
	Subscriber database.Subscriber
	Sections   []Section
}

// Content is a composed message ready for delivery.
type Content struct {
	Subject string
	Body    string
}

package digest

import (
	"github.com/yeonho-kim/newsdigest/app/database"
	"github.com/yeonho-kim/newsdigest/app/news"
)

// Match computes the digest bundles for a run. For each subscriber the
// sections are the intersection of the subscriber's keywords with the
// configured keywords, restricted to keywords that fetched at least one
// item. Subscribers left without sections get no bundle. Subscriber
// order is preserved; section order follows the configured keyword
// order, not the subscriber's declaration order.
func Match(subscribers []database.Subscriber, keywords []string, newsByKeyword map[string][]news.Item) []Bundle {
	bundles := make([]Bundle, 0, len(subscribers))

	for _, sub := range subscribers {
		var sections []Section
		for _, keyword := range keywords {
			if !sub.HasKeyword(keyword) {
				continue
			}
			items := newsByKeyword[keyword]
			if len(items) == 0 {
				continue
			}
			sections = append(sections, Section{Keyword: keyword, Items: items})
		}

		if len(sections) == 0 {
			continue
		}

		bundles = append(bundles, Bundle{Subscriber: sub, Sections: sections})
	}

	return bundles
}

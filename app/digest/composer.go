package digest

import (
	"fmt"
	"strings"
)

// Subject is fixed per deployment; the body carries all per-subscriber
// content.
const Subject = "Your Daily News Digest"

type Composer struct{}

func NewComposer() *Composer {
	return &Composer{}
}

// Run builds the plain-text message for one bundle. It is a pure
// function: identical bundle and announcement always produce
// byte-identical content.
func (c *Composer) Run(bundle Bundle, announcement string) Content {
	var body strings.Builder

	fmt.Fprintf(&body, "Hello %s,\n\n", bundle.Subscriber.Name)

	if announcement != "" {
		body.WriteString(announcement)
		body.WriteString("\n\n")
	}

	body.WriteString("Here are today's news updates:\n")

	for _, section := range bundle.Sections {
		fmt.Fprintf(&body, "\n[%s]\n", section.Keyword)
		for _, item := range section.Items {
			fmt.Fprintf(&body, "- %s\n  %s\n", item.Title, item.Link)
		}
	}

	return Content{
		Subject: Subject,
		Body:    body.String(),
	}
}

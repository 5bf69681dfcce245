package database

// SubscriberRepository is the pipeline's narrow contract with the
// subscriber registry: list everything at run start, append on
// subscription. A ListAll failure aborts the whole run.
type SubscriberRepository interface {
	ListAll() ([]Subscriber, error)
	Add(sub Subscriber) error
	Count() (int, error)
}

// AnnouncementRepository reads and overwrites the single operator
// announcement record.
type AnnouncementRepository interface {
	Get() (Announcement, error)
	Set(message string) error
}

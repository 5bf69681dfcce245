package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	SourcesDir   string
	Port         string
	APIAccessKey string
	WorkerCount  int
	ItemLimit    int

	// Delivery configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	SendAt       string
	SendTimeout  int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}

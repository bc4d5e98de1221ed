package domain

// Intent is the classification of an incoming message.
type Intent string

const (
	IntentGreeting Intent = "greeting"
	IntentTravel   Intent = "travel"
	IntentOffTopic Intent = "off_topic"
)

// Source records where a reply came from.
type Source string

const (
	SourceCanned    Source = "canned"
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Turn is a single entry in an interactive session transcript.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

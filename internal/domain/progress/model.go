package progress

// Entry records the completion state of one catalog topic. A topic has at
// most one entry; topics without an entry are implicitly not started.
type Entry struct {
	TopicID int
	Status  Status
	Note    string
}

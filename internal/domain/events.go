package domain

type Message struct {
	Key   []byte
	Value []byte
}

// PublisherPort decouples usecases from the broker. Publishing is
// best-effort: lifecycle events never block or fail a state transition.
type PublisherPort interface {
	Publish(topic string, msgs ...Message) error
}

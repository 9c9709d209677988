package application

// SessionStore keeps live cart sessions keyed by id.
type SessionStore interface {
	Put(session *Session)
	Get(id string) (*Session, bool)
	Delete(id string) (*Session, bool)
}

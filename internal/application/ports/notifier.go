package ports

import "net/http"

// Notifier pushes a named event to every connection joined to room.
// Delivery is fire-and-forget.
type Notifier interface {
	Emit(room, event string, payload any)
}

// Realtime is a Notifier that also accepts client connections.
type Realtime interface {
	Notifier
	Serve(w http.ResponseWriter, r *http.Request, room string) error
}

package engine

// EventKind names something that happened in a game.
type EventKind string

const (
	EventRolled          EventKind = "rolled"
	EventMoved           EventKind = "moved"
	EventBonus           EventKind = "revolution-bonus"
	EventPurchased       EventKind = "purchased"
	EventPaid            EventKind = "paid"
	EventCredited        EventKind = "credited"
	EventCardDrawn       EventKind = "card-drawn"
	EventVacationEntered EventKind = "vacation-entered"
	EventVacationLeft    EventKind = "vacation-left"
	EventEliminated      EventKind = "eliminated"
	EventTraded          EventKind = "traded"
	EventDeveloped       EventKind = "developed"
	EventRestaurantSold  EventKind = "restaurant-sold"
	EventPawned          EventKind = "pawned"
	EventUnpawned        EventKind = "unpawned"
	EventRefunded        EventKind = "refunded"
	EventTurnEnded       EventKind = "turn-ended"
	EventGameOver        EventKind = "game-over"
)

// Event is one state change. Other is the counterpart player, if any.
type Event struct {
	Kind     EventKind `json:"kind"`
	Turn     int       `json:"turn"`
	Player   int       `json:"player"`
	Other    int       `json:"other,omitempty"`
	Amount   int       `json:"amount,omitempty"`
	Position int       `json:"position,omitempty"`
	Message  string    `json:"message,omitempty"`
}

// Observer receives every event in order.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) { f(e) }

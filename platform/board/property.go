package board

import "math"

// NoOwner marks a property held by the bank.
const NoOwner = 0

// MaxRestaurants is the development cap of a single street.
const MaxRestaurants = 5

// unpawnSurcharge is applied to the pawn price when a property is redeemed.
const unpawnSurcharge = 1.1024

// Kind discriminates the property variants.
type Kind int

const (
	KindStreet Kind = iota + 1
	KindSuperStore
	KindGolfClub
)

func (k Kind) String() string {
	switch k {
	case KindStreet:
		return "street"
	case KindSuperStore:
		return "store"
	case KindGolfClub:
		return "golf"
	default:
		return "unknown"
	}
}

// Property is an ownable board space. The set of implementations is closed:
// *Street, *SuperStore and *GolfClub.
type Property interface {
	Name() string
	Position() int
	Kind() Kind
	Owner() int
	Pawned() bool
	PurchasePrice() int
	PawnPrice() int
	UnpawnPrice() int

	base() *holding
}

// holding carries the fields every property variant shares.
type holding struct {
	name     string
	position int
	price    int
	owner    int
	pawned   bool
}

func (h *holding) Name() string       { return h.name }
func (h *holding) Position() int      { return h.position }
func (h *holding) Owner() int         { return h.owner }
func (h *holding) Pawned() bool       { return h.pawned }
func (h *holding) PurchasePrice() int { return h.price }
func (h *holding) PawnPrice() int     { return h.price / 2 }
func (h *holding) base() *holding     { return h }
func (h *holding) earning() bool      { return h.owner != NoOwner && !h.pawned }
func (h *holding) UnpawnPrice() int {
	return int(math.Round(float64(h.PawnPrice()) * unpawnSurcharge))
}

// Street is a property that belongs to a neighborhood and can be developed.
type Street struct {
	holding
	neighborhood *Neighborhood
	restaurants  int
}

func (s *Street) Kind() Kind                  { return KindStreet }
func (s *Street) Neighborhood() *Neighborhood { return s.neighborhood }
func (s *Street) Restaurants() int            { return s.restaurants }

// SuperStore is a property whose fee scales with a fresh dice roll.
type SuperStore struct {
	holding
}

func (s *SuperStore) Kind() Kind { return KindSuperStore }

// GolfClub is a property whose fee depends on how many clubs the owner holds.
type GolfClub struct {
	holding
}

func (g *GolfClub) Kind() Kind { return KindGolfClub }

// Neighborhood groups three streets sharing one fee structure.
type Neighborhood struct {
	Ordinal         int
	Name            string
	StartingFee     int
	Fees            [MaxRestaurants + 1]int
	RestaurantPrice int
	RestaurantGain  int

	streets []*Street
	owner   int // unified owner
}

// Streets returns the member streets in board order.
func (n *Neighborhood) Streets() []*Street {
	return append([]*Street(nil), n.streets...)
}

// Unified reports whether one player owns every street of the neighborhood.
func (n *Neighborhood) Unified() bool { return n.owner != NoOwner }

// UnifiedOwner returns the player owning the whole neighborhood, or NoOwner.
func (n *Neighborhood) UnifiedOwner() int { return n.owner }

// Restaurants returns the total restaurant count across the neighborhood.
func (n *Neighborhood) Restaurants() int {
	total := 0
	for _, s := range n.streets {
		total += s.restaurants
	}
	return total
}

// Tier is the fee tier of the neighborhood: its restaurant count, capped at
// MaxRestaurants.
func (n *Neighborhood) Tier() int {
	if t := n.Restaurants(); t < MaxRestaurants {
		return t
	}
	return MaxRestaurants
}

func (n *Neighborhood) anyPawned() bool {
	for _, s := range n.streets {
		if s.pawned {
			return true
		}
	}
	return false
}

// sameOwner returns the common owner of every street, or NoOwner.
func (n *Neighborhood) sameOwner() int {
	owner := n.streets[0].owner
	for _, s := range n.streets[1:] {
		if s.owner != owner {
			return NoOwner
		}
	}
	return owner
}

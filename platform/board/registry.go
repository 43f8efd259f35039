package board

import (
	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
)

// SpaceKind tags a board slot.
type SpaceKind int

const (
	SpaceStart SpaceKind = iota + 1
	SpaceDrawActionCard
	SpaceBreakTime
	SpaceVacation
	SpaceGoOnVacation
	SpaceProperty
)

func (k SpaceKind) String() string {
	switch k {
	case SpaceStart:
		return "start"
	case SpaceDrawActionCard:
		return "draw"
	case SpaceBreakTime:
		return "break"
	case SpaceVacation:
		return "vacation"
	case SpaceGoOnVacation:
		return "go-vacation"
	case SpaceProperty:
		return "property"
	default:
		return "unknown"
	}
}

// Space is one board slot. Property is set only for SpaceProperty.
type Space struct {
	Position int
	Kind     SpaceKind
	Name     string
	Property Property
}

// Refund is money owed to a former unified owner after its neighborhood's
// restaurants were removed.
type Refund struct {
	Owner       int
	Restaurants int
	Amount      int
}

// Registry owns the board layout and every ownable property of one game.
type Registry struct {
	spaces        []Space
	properties    []Property
	byName        map[string]Property
	neighborhoods []*Neighborhood
	stores        []*SuperStore
	clubs         []*GolfClub

	storeMultipliers []int
	golfFees         []int

	vacation     int
	goOnVacation int
}

// Size returns the number of board spaces.
func (r *Registry) Size() int { return len(r.spaces) }

// VacationPosition returns the position of the vacation space.
func (r *Registry) VacationPosition() int { return r.vacation }

// GoOnVacationPosition returns the position of the go-on-vacation space.
func (r *Registry) GoOnVacationPosition() int { return r.goOnVacation }

// Properties returns every property in board order.
func (r *Registry) Properties() []Property {
	return append([]Property(nil), r.properties...)
}

// Neighborhoods returns every neighborhood by ordinal.
func (r *Registry) Neighborhoods() []*Neighborhood {
	return append([]*Neighborhood(nil), r.neighborhoods...)
}

// SpaceAt returns the space at a 1-based position.
func (r *Registry) SpaceAt(pos int) (Space, error) {
	if pos < 1 || pos > len(r.spaces) {
		return Space{}, gameerr.Newf(gameerr.CodeInvalidPosition, "position %d is off the board", pos)
	}
	return r.spaces[pos-1], nil
}

// PropertyAt returns the property at a 1-based position.
func (r *Registry) PropertyAt(pos int) (Property, error) {
	space, err := r.SpaceAt(pos)
	if err != nil {
		return nil, err
	}
	if space.Property == nil {
		return nil, gameerr.Newf(gameerr.CodeInvalidPosition, "position %d is not a property", pos)
	}
	return space.Property, nil
}

// StreetAt returns the street at a 1-based position.
func (r *Registry) StreetAt(pos int) (*Street, error) {
	p, err := r.PropertyAt(pos)
	if err != nil {
		return nil, err
	}
	s, ok := p.(*Street)
	if !ok {
		return nil, gameerr.Newf(gameerr.CodeInvalidPosition, "position %d is not a street", pos)
	}
	return s, nil
}

// PropertyByName looks a property up by its unique name.
func (r *Registry) PropertyByName(name string) (Property, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, gameerr.Newf(gameerr.CodeInvalidPosition, "no property named %q", name)
	}
	return p, nil
}

// CurrentFee returns what a visitor owes on landing. diceTotal is only read
// for super-stores.
func (r *Registry) CurrentFee(p Property, diceTotal int) int {
	switch v := p.(type) {
	case *Street:
		return r.StreetFee(v)
	case *SuperStore:
		_, amount := r.SuperStoreFee(v, diceTotal)
		return amount
	case *GolfClub:
		return r.GolfClubFee(v)
	default:
		panic(gameerr.Newf(gameerr.CodeInvalidState, "unknown property type %T", p))
	}
}

// StreetFee returns the fee of a street. Every street of a unified
// neighborhood charges the tier of the neighborhood's restaurant count.
func (r *Registry) StreetFee(s *Street) int {
	if !s.earning() {
		return 0
	}
	n := s.neighborhood
	if n.owner == NoOwner {
		return n.StartingFee
	}
	return n.Fees[n.Tier()]
}

// SuperStoreFee returns the multiplier and the fee for a given dice total.
func (r *Registry) SuperStoreFee(s *SuperStore, diceTotal int) (multiplier, amount int) {
	if !s.earning() {
		return 0, 0
	}
	held := 0
	for _, other := range r.stores {
		if other.owner == s.owner {
			held++
		}
	}
	multiplier = r.storeMultipliers[held]
	return multiplier, multiplier * diceTotal
}

// GolfClubFee returns the fee of a golf club.
func (r *Registry) GolfClubFee(g *GolfClub) int {
	if !g.earning() {
		return 0
	}
	held := 0
	for _, other := range r.clubs {
		if other.owner == g.owner {
			held++
		}
	}
	return r.golfFees[held]
}

// SetOwner changes the owner of a property. Handing a property back to the
// bank also clears its pawn. The returned refund is non-zero when the change
// broke a unified neighborhood that had restaurants.
func (r *Registry) SetOwner(p Property, owner int) Refund {
	h := p.base()
	h.owner = owner
	if owner == NoOwner {
		h.pawned = false
	}
	if s, ok := p.(*Street); ok {
		return r.NeighborhoodUnifiedOwnerChanged(s)
	}
	return Refund{}
}

// NeighborhoodUnifiedOwnerChanged recomputes the unified flag of the street's
// neighborhood. On a transition away from unified every restaurant is
// removed and the former owner is refunded the restaurant gain per unit.
func (r *Registry) NeighborhoodUnifiedOwnerChanged(s *Street) Refund {
	return r.refresh(s.neighborhood)
}

func (r *Registry) refresh(n *Neighborhood) Refund {
	if owner := n.sameOwner(); owner != NoOwner {
		n.owner = owner
		return Refund{}
	}
	if n.owner == NoOwner {
		return Refund{}
	}
	refund := Refund{Owner: n.owner}
	n.owner = NoOwner
	for _, s := range n.streets {
		refund.Restaurants += s.restaurants
		s.restaurants = 0
	}
	if refund.Restaurants == 0 {
		return Refund{}
	}
	refund.Amount = refund.Restaurants * n.RestaurantGain
	return refund
}

// TransferAllOwnedBy hands every property of from to to. Neighborhoods that
// move as a whole stay unified and keep their restaurants.
func (r *Registry) TransferAllOwnedBy(from, to int) {
	if to == NoOwner {
		r.ReleaseAllOwnedBy(from)
		return
	}
	for _, p := range r.properties {
		if h := p.base(); h.owner == from {
			h.owner = to
		}
	}
	for _, n := range r.neighborhoods {
		r.refresh(n)
	}
}

// ReleaseAllOwnedBy returns every property of owner to the bank, unpawned and
// undeveloped.
func (r *Registry) ReleaseAllOwnedBy(owner int) {
	if owner == NoOwner {
		return
	}
	for _, p := range r.properties {
		h := p.base()
		if h.owner != owner {
			continue
		}
		h.owner = NoOwner
		h.pawned = false
		if s, ok := p.(*Street); ok {
			s.restaurants = 0
		}
	}
	for _, n := range r.neighborhoods {
		r.refresh(n)
	}
}

// OwnedBy returns the properties of owner in board order.
func (r *Registry) OwnedBy(owner int) []Property {
	var out []Property
	if owner == NoOwner {
		return out
	}
	for _, p := range r.properties {
		if p.Owner() == owner {
			out = append(out, p)
		}
	}
	return out
}

// RestaurantsOwnedBy counts every restaurant on streets owned by owner.
func (r *Registry) RestaurantsOwnedBy(owner int) int {
	total := 0
	for _, p := range r.OwnedBy(owner) {
		if s, ok := p.(*Street); ok {
			total += s.restaurants
		}
	}
	return total
}

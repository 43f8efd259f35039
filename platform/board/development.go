package board

import (
	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
)

// CanAddRestaurant validates a restaurant purchase without applying it.
func (r *Registry) CanAddRestaurant(s *Street, owner int) error {
	if s.owner != owner || owner == NoOwner {
		return gameerr.Newf(gameerr.CodeNotOwner, "%s is not owned by player %d", s.name, owner)
	}
	n := s.neighborhood
	switch {
	case n.owner != owner:
		return gameerr.Newf(gameerr.CodeIllegalDevelopment, "%s is not owned entirely by player %d", n.Name, owner)
	case n.anyPawned():
		return gameerr.Newf(gameerr.CodeIllegalDevelopment, "%s has a pawned street", n.Name)
	case s.restaurants >= MaxRestaurants:
		return gameerr.Newf(gameerr.CodeIllegalDevelopment, "%s already has %d restaurants", s.name, MaxRestaurants)
	}
	return nil
}

// AddRestaurant develops a street and returns the price to charge. The caller
// checks the owner can afford it first.
func (r *Registry) AddRestaurant(s *Street, owner int) (int, error) {
	if err := r.CanAddRestaurant(s, owner); err != nil {
		return 0, err
	}
	s.restaurants++
	return s.neighborhood.RestaurantPrice, nil
}

// RemoveRestaurant sells one restaurant back and returns the gain to credit.
func (r *Registry) RemoveRestaurant(s *Street, owner int) (int, error) {
	if s.owner != owner || owner == NoOwner {
		return 0, gameerr.Newf(gameerr.CodeNotOwner, "%s is not owned by player %d", s.name, owner)
	}
	if s.restaurants == 0 {
		return 0, gameerr.Newf(gameerr.CodeIllegalDevelopment, "%s has no restaurant", s.name)
	}
	s.restaurants--
	return s.neighborhood.RestaurantGain, nil
}

// Pawn disables a property's fee and returns the cash to credit. Streets can
// only be pawned once their neighborhood has no restaurants.
func (r *Registry) Pawn(p Property, owner int) (int, error) {
	h := p.base()
	if h.owner != owner || owner == NoOwner {
		return 0, gameerr.Newf(gameerr.CodeNotOwner, "%s is not owned by player %d", h.name, owner)
	}
	if h.pawned {
		return 0, gameerr.Newf(gameerr.CodeIllegalDevelopment, "%s is already pawned", h.name)
	}
	if s, ok := p.(*Street); ok && s.neighborhood.Restaurants() > 0 {
		return 0, gameerr.Newf(gameerr.CodeIllegalDevelopment, "%s still has restaurants", s.neighborhood.Name)
	}
	h.pawned = true
	return h.PawnPrice(), nil
}

// Unpawn redeems a pawned property and returns the price to charge. The
// caller checks the owner can afford it first.
func (r *Registry) Unpawn(p Property, owner int) (int, error) {
	h := p.base()
	if h.owner != owner || owner == NoOwner {
		return 0, gameerr.Newf(gameerr.CodeNotOwner, "%s is not owned by player %d", h.name, owner)
	}
	if !h.pawned {
		return 0, gameerr.Newf(gameerr.CodeIllegalDevelopment, "%s is not pawned", h.name)
	}
	h.pawned = false
	return h.UnpawnPrice(), nil
}

// Developable returns the streets of owner that can take another restaurant.
func (r *Registry) Developable(owner int) []*Street {
	var out []*Street
	for _, p := range r.OwnedBy(owner) {
		if s, ok := p.(*Street); ok && r.CanAddRestaurant(s, owner) == nil {
			out = append(out, s)
		}
	}
	return out
}

// Developed returns the streets of owner carrying at least one restaurant.
func (r *Registry) Developed(owner int) []*Street {
	var out []*Street
	for _, p := range r.OwnedBy(owner) {
		if s, ok := p.(*Street); ok && s.restaurants > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Pawnable returns the properties of owner that Pawn would accept.
func (r *Registry) Pawnable(owner int) []Property {
	var out []Property
	for _, p := range r.OwnedBy(owner) {
		if p.Pawned() {
			continue
		}
		if s, ok := p.(*Street); ok && s.neighborhood.Restaurants() > 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Pawned returns the pawned properties of owner.
func (r *Registry) Pawned(owner int) []Property {
	var out []Property
	for _, p := range r.OwnedBy(owner) {
		if p.Pawned() {
			out = append(out, p)
		}
	}
	return out
}

// Worth values the holdings of owner: purchase price of earning properties,
// pawn price of pawned ones, plus the price paid for restaurants.
func (r *Registry) Worth(owner int) int {
	total := 0
	for _, p := range r.OwnedBy(owner) {
		if p.Pawned() {
			total += p.PawnPrice()
		} else {
			total += p.PurchasePrice()
		}
		if s, ok := p.(*Street); ok {
			total += s.restaurants * s.neighborhood.RestaurantPrice
		}
	}
	return total
}

package board

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
)

const streetsPerNeighborhood = 3

//go:embed board.json
var boardJSON []byte

// LoadBoard decodes the embedded reference board definition.
func LoadBoard() (models.Board, error) {
	var def models.Board
	if err := json.Unmarshal(boardJSON, &def); err != nil {
		return models.Board{}, fmt.Errorf("decode board: %w", err)
	}
	return def, nil
}

// Load builds a registry from the embedded reference board.
func Load() (*Registry, error) {
	def, err := LoadBoard()
	if err != nil {
		return nil, err
	}
	return New(def)
}

// New builds a registry from a board definition. Positions must be 1..N
// without gaps, with exactly one vacation and one go-on-vacation space and
// three streets per neighborhood.
func New(def models.Board) (*Registry, error) {
	r := &Registry{
		spaces:           make([]Space, len(def.Spaces)),
		byName:           make(map[string]Property),
		storeMultipliers: def.StoreMultipliers,
		golfFees:         def.GolfFees,
	}

	groups := make(map[int]*Neighborhood, len(def.Neighborhoods))
	for _, nd := range def.Neighborhoods {
		if len(nd.Fees) != MaxRestaurants+1 {
			return nil, invalidBoard("neighborhood %d needs %d fees, got %d", nd.Ordinal, MaxRestaurants+1, len(nd.Fees))
		}
		n := &Neighborhood{
			Ordinal:         nd.Ordinal,
			Name:            nd.Name,
			StartingFee:     nd.StartingFee,
			RestaurantPrice: nd.RestaurantPrice,
			RestaurantGain:  nd.RestaurantGain,
		}
		for i, fee := range nd.Fees {
			if i > 0 && fee <= nd.Fees[i-1] {
				return nil, invalidBoard("neighborhood %d fees must increase", nd.Ordinal)
			}
			n.Fees[i] = fee
		}
		if _, dup := groups[n.Ordinal]; dup {
			return nil, invalidBoard("duplicate neighborhood %d", n.Ordinal)
		}
		groups[n.Ordinal] = n
		r.neighborhoods = append(r.neighborhoods, n)
	}

	for _, sd := range def.Spaces {
		if sd.Position < 1 || sd.Position > len(def.Spaces) || r.spaces[sd.Position-1].Kind != 0 {
			return nil, invalidBoard("bad or duplicate position %d", sd.Position)
		}
		space := Space{Position: sd.Position, Name: sd.Name}
		base := holding{name: sd.Name, position: sd.Position, price: sd.Price}

		switch sd.Type {
		case "start":
			space.Kind = SpaceStart
		case "draw":
			space.Kind = SpaceDrawActionCard
		case "break":
			space.Kind = SpaceBreakTime
		case "vacation":
			if r.vacation != 0 {
				return nil, invalidBoard("more than one vacation space")
			}
			space.Kind = SpaceVacation
			r.vacation = sd.Position
		case "go-vacation":
			if r.goOnVacation != 0 {
				return nil, invalidBoard("more than one go-on-vacation space")
			}
			space.Kind = SpaceGoOnVacation
			r.goOnVacation = sd.Position
		case "street":
			n, ok := groups[sd.Group]
			if !ok {
				return nil, invalidBoard("street %q references unknown neighborhood %d", sd.Name, sd.Group)
			}
			s := &Street{holding: base, neighborhood: n}
			n.streets = append(n.streets, s)
			space.Kind, space.Property = SpaceProperty, s
		case "store":
			s := &SuperStore{holding: base}
			r.stores = append(r.stores, s)
			space.Kind, space.Property = SpaceProperty, s
		case "golf":
			g := &GolfClub{holding: base}
			r.clubs = append(r.clubs, g)
			space.Kind, space.Property = SpaceProperty, g
		default:
			return nil, invalidBoard("unknown space type %q at %d", sd.Type, sd.Position)
		}

		if space.Property != nil {
			if _, dup := r.byName[sd.Name]; dup {
				return nil, invalidBoard("duplicate property name %q", sd.Name)
			}
			r.byName[sd.Name] = space.Property
			r.properties = append(r.properties, space.Property)
		}
		r.spaces[sd.Position-1] = space
	}

	if r.vacation == 0 || r.goOnVacation == 0 {
		return nil, invalidBoard("board needs a vacation and a go-on-vacation space")
	}
	for _, n := range r.neighborhoods {
		if len(n.streets) != streetsPerNeighborhood {
			return nil, invalidBoard("neighborhood %d has %d streets", n.Ordinal, len(n.streets))
		}
	}
	if len(r.storeMultipliers) != len(r.stores)+1 {
		return nil, invalidBoard("need %d store multipliers", len(r.stores)+1)
	}
	if len(r.golfFees) != len(r.clubs)+1 {
		return nil, invalidBoard("need %d golf fees", len(r.clubs)+1)
	}
	return r, nil
}

func invalidBoard(format string, args ...any) error {
	return gameerr.Wrap(gameerr.CodeInvalidState, "invalid board", fmt.Errorf(format, args...))
}

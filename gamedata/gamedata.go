// Package gamedata serves the embedded inducement catalog. The catalog is
// immutable rules data, not persisted state: entries are filtered and
// priced per team at read time.
package gamedata

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/manugarri/bb-league/model"
)

//go:embed inducements.json
var inducementsJSON []byte

// Availability gates on catalog entries.
const (
	AvailableToAll         = "all"
	AvailableToSpecialRule = "special_rule"
	AvailableToApothecary  = "apothecary_allowed"
	AvailableToStarLeagues = "star_players_allowed"
)

// Inducement is one catalog entry. Cost is the list price; race and
// special-rule discounts are applied by AvailableTo.
type Inducement struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameES string `json:"name_es"`

	Cost        int    `json:"cost"`
	MaxQuantity int    `json:"max_quantity"`
	AvailableTo string `json:"available_to"`

	SpecialRulesRequired []string `json:"special_rules_required"`
	SpecialRulesExcluded []string `json:"special_rules_excluded"`

	RaceDiscount        map[string]int `json:"race_discount"`
	MaxQuantityWithRule map[string]int `json:"max_quantity_with_rule"`

	// Set by AvailableTo when a discount applied.
	OriginalCost int  `json:"-"`
	HasDiscount  bool `json:"-"`
}

// LocalizedName returns the entry name in the requested language,
// falling back to English.
func (i *Inducement) LocalizedName(lang string) string {
	if lang == "es" && i.NameES != "" {
		return i.NameES
	}
	return i.Name
}

// Catalog is the loaded inducement list, in file order. Order matters:
// discount and quantity overrides resolve first match wins.
type Catalog struct {
	inducements []Inducement
}

type catalogFile struct {
	Inducements []Inducement `json:"inducements"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(inducementsJSON, &f); err != nil {
		return nil, fmt.Errorf("parsing inducement catalog: %w", err)
	}
	return &Catalog{inducements: f.Inducements}, nil
}

// Find returns the catalog entry with the given id at its list price.
func (c *Catalog) Find(id string) (Inducement, bool) {
	for _, ind := range c.inducements {
		if ind.ID == id {
			return ind, true
		}
	}
	return Inducement{}, false
}

// All returns every entry at list price.
func (c *Catalog) All() []Inducement {
	out := make([]Inducement, len(c.inducements))
	copy(out, c.inducements)
	return out
}

// AvailableTo filters the catalog for one team and prices each entry with
// that team's discounts. league may be nil for friendlies; star-player
// gated entries are then available.
//
// Discounts match the race name first, then the team's special rules in
// declaration order; the first match wins.
func (c *Catalog) AvailableTo(team *model.Team, league *model.League) []Inducement {
	race := team.Race

	allowStars := true
	if league != nil {
		allowStars = league.AllowStarPlayers
	}

	var available []Inducement
	for _, ind := range c.inducements {
		switch ind.AvailableTo {
		case AvailableToSpecialRule:
			if !hasAnyRule(race, ind.SpecialRulesRequired) {
				continue
			}
		case AvailableToApothecary:
			if !race.ApothecaryAllowed {
				continue
			}
		case AvailableToStarLeagues:
			if !allowStars {
				continue
			}
		}

		if hasAnyRule(race, ind.SpecialRulesExcluded) {
			continue
		}

		entry := ind
		entry.OriginalCost = ind.Cost
		if cost, ok := ind.RaceDiscount[race.Name]; ok {
			entry.Cost = cost
		} else {
			for _, rule := range race.SpecialRules {
				if cost, ok := ind.RaceDiscount[rule]; ok {
					entry.Cost = cost
					break
				}
			}
		}
		entry.HasDiscount = entry.Cost < entry.OriginalCost

		for rule, maxQty := range ind.MaxQuantityWithRule {
			if race.HasSpecialRule(rule) {
				entry.MaxQuantity = maxQty
				break
			}
		}

		available = append(available, entry)
	}
	return available
}

func hasAnyRule(race *model.Race, rules []string) bool {
	for _, rule := range rules {
		if race.HasSpecialRule(rule) {
			return true
		}
	}
	return false
}

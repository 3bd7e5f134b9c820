package controller

import (
	"slices"

	"github.com/manugarri/bb-league/model"
)

// pairing is one scheduled fixture, home side first.
type pairing struct {
	home int32
	away int32
}

// byeTeam marks the synthetic opponent added to make an odd field even.
// Pairings against it are dropped, which gives that team the round off.
const byeTeam int32 = -1

// roundRobin builds a full single round robin with the circle method: the
// first team stays fixed while the rest rotate one slot per round. Home
// and away alternate with round parity so no team plays a long home or
// away streak. An odd field gets a synthetic bye opponent; the team drawn
// against it simply has no match that round.
func roundRobin(teamIDs []int32) [][]pairing {
	ids := slices.Clone(teamIDs)
	if len(ids)%2 != 0 {
		ids = append(ids, byeTeam)
	}
	n := len(ids)
	if n < 2 {
		return nil
	}

	rounds := make([][]pairing, 0, n-1)
	for round := 0; round < n-1; round++ {
		matches := make([]pairing, 0, n/2)
		for i := 0; i < n/2; i++ {
			a, b := ids[i], ids[n-1-i]
			if a == byeTeam || b == byeTeam {
				continue
			}
			// The fixed team's pairing alternates sides by round
			// parity; the rotating pairs alternate by slot index.
			// Together this bounds any team's home/away imbalance
			// at one game (two with an odd field).
			if swap := round%2 == 1; i == 0 && swap || i > 0 && i%2 == 1 {
				a, b = b, a
			}
			matches = append(matches, pairing{home: a, away: b})
		}
		rounds = append(rounds, matches)

		// Rotate all but the first element one position clockwise.
		last := ids[n-1]
		copy(ids[2:], ids[1:n-1])
		ids[1] = last
	}
	return rounds
}

// swissPairings pairs teams by standing proximity: walk the table top to
// bottom and match each unpaired team with the nearest unpaired team it
// has not already played. If every remaining opponent is a rematch the
// nearest one is taken anyway rather than leaving teams unpaired. Teams
// with no standing row yet sort to the bottom. An odd field leaves the
// lowest-ranked unpaired team with a bye (no match emitted).
func swissPairings(teamIDs []int32, standings []model.Standing, played map[[2]int32]bool) []pairing {
	model.SortStandings(standings)

	rank := make(map[int32]int, len(standings))
	for i, s := range standings {
		rank[s.TeamID] = i
	}

	order := slices.Clone(teamIDs)
	slices.SortFunc(order, func(a, b int32) int {
		ra, aok := rank[a]
		rb, bok := rank[b]
		switch {
		case aok && bok:
			if ra != rb {
				return ra - rb
			}
			return int(a - b)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return int(a - b)
		}
	})

	paired := make(map[int32]bool, len(order))
	var pairings []pairing
	for i, a := range order {
		if paired[a] {
			continue
		}
		opponent := int32(0)
		found := false
		for _, b := range order[i+1:] {
			if paired[b] || played[pairKey(a, b)] {
				continue
			}
			opponent, found = b, true
			break
		}
		if !found {
			// Only rematches left; take the nearest one.
			for _, b := range order[i+1:] {
				if !paired[b] {
					opponent, found = b, true
					break
				}
			}
		}
		if !found {
			break
		}
		paired[a], paired[opponent] = true, true
		// Higher seed hosts; alternating per round is not worth the
		// bookkeeping for swiss, where pairings reshuffle anyway.
		pairings = append(pairings, pairing{home: a, away: opponent})
	}
	return pairings
}

// knockoutBracket seeds the opening round of a single elimination
// bracket. The field is padded to the next power of two with byes, and
// seeds pair highest against lowest (1vN, 2vN-1, ...). A pairing against
// a bye slot is dropped, advancing the real team for free; byes land on
// the top seeds by construction.
func knockoutBracket(teamIDs []int32) []pairing {
	size := 1
	for size < len(teamIDs) {
		size *= 2
	}

	seeds := make([]int32, size)
	copy(seeds, teamIDs)
	for i := len(teamIDs); i < size; i++ {
		seeds[i] = byeTeam
	}

	pairings := make([]pairing, 0, size/2)
	for i := 0; i < size/2; i++ {
		a, b := seeds[i], seeds[size-1-i]
		if a == byeTeam || b == byeTeam {
			continue
		}
		pairings = append(pairings, pairing{home: a, away: b})
	}
	return pairings
}

// pairKey normalizes a team pair so (a,b) and (b,a) map to the same key.
func pairKey(a, b int32) [2]int32 {
	if a > b {
		a, b = b, a
	}
	return [2]int32{a, b}
}

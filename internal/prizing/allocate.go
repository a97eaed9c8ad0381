// Package prizing implements the prize allocation rules for tournament
// standings. Everything here is pure computation over in-memory values so
// the same inputs always produce the same awards.
package prizing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/chughjug/ratings-sub000/internal/models"
)

// tieGroup is a maximal run of players on the same score. topRank is the
// 1-based rank of the best finishing slot the group occupies, so a group of
// k players covers positions topRank through topRank+k-1.
type tieGroup struct {
	topRank int
	members []models.StandingsEntry
}

func (g tieGroup) bottomRank() int {
	return g.topRank + len(g.members) - 1
}

// buildTieGroups sorts the standings by score and slices them into tie
// groups. Ordering within a group is by player name then player ID; it has
// no effect on amounts, only on the order rows are emitted in.
func buildTieGroups(standings []models.StandingsEntry) []tieGroup {
	sorted := make([]models.StandingsEntry, len(standings))
	copy(sorted, standings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		if sorted[i].PlayerName != sorted[j].PlayerName {
			return sorted[i].PlayerName < sorted[j].PlayerName
		}
		return sorted[i].PlayerID < sorted[j].PlayerID
	})

	var groups []tieGroup
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j].Score == sorted[i].Score {
			j++
		}
		groups = append(groups, tieGroup{topRank: i + 1, members: sorted[i:j]})
		i = j
	}
	return groups
}

// AllocateSection computes the awarded prizes for one section. The standings
// slice must contain only that section's entries. Returned rows carry the
// prize fields but not persistence identity; tie group numbers are local to
// the section and are renumbered once all sections are merged.
//
// Cash prizes whose positions fall inside a tie group pool together and the
// pool splits evenly, except that no player's share may exceed the largest
// single prize in the covered range. Shares are truncated to whole cents and
// any shortfall from the cap or from truncation goes unawarded. Non-cash
// prizes are duplicated for every member of the covering tie group.
func AllocateSection(section models.PrizeSection, standings []models.StandingsEntry) []models.PrizeDistribution {
	if len(standings) == 0 {
		return nil
	}

	cashAt := make(map[int]*models.PrizeConfiguration)
	var nonCash []*models.PrizeConfiguration
	var category []*models.PrizeConfiguration
	for i := range section.Prizes {
		prize := &section.Prizes[i]
		switch {
		case prize.IsPositional() && prize.Type.IsCash():
			cashAt[*prize.Position] = prize
		case prize.IsPositional():
			nonCash = append(nonCash, prize)
		case prize.IsCategory():
			category = append(category, prize)
		}
	}

	groups := buildTieGroups(standings)
	var rows []models.PrizeDistribution
	localTieGroups := 0

	for _, group := range groups {
		lo, hi := group.topRank, group.bottomRank()

		pool := decimal.Zero
		largest := decimal.Zero
		var first *models.PrizeConfiguration
		for pos := lo; pos <= hi; pos++ {
			prize, ok := cashAt[pos]
			if !ok {
				continue
			}
			pool = pool.Add(prize.Amount.Decimal)
			if prize.Amount.GreaterThan(largest) {
				largest = prize.Amount.Decimal
			}
			if first == nil {
				first = prize
			}
		}

		if first != nil {
			share := pool
			description := first.Description
			var groupID *int
			if len(group.members) > 1 {
				share = pool.Div(decimal.NewFromInt(int64(len(group.members))))
				if share.GreaterThan(largest) {
					share = largest
				}
				share = share.Truncate(2)
				localTieGroups++
				id := localTieGroups
				groupID = &id
				description = fmt.Sprintf("%d-way split of positions %d-%d", len(group.members), lo, hi)
			}
			for _, member := range group.members {
				position := lo
				amount := models.NewMoney(share)
				rows = append(rows, models.PrizeDistribution{
					PlayerID:    member.PlayerID,
					PlayerName:  member.PlayerName,
					Section:     section.Name,
					PrizeName:   first.Name,
					PrizeType:   models.PrizeTypeCash,
					Amount:      &amount,
					Position:    &position,
					TieGroup:    groupID,
					Description: description,
				})
			}
		}

		for _, prize := range nonCash {
			if *prize.Position < lo || *prize.Position > hi {
				continue
			}
			for _, member := range group.members {
				position := *prize.Position
				rows = append(rows, models.PrizeDistribution{
					PlayerID:    member.PlayerID,
					PlayerName:  member.PlayerName,
					Section:     section.Name,
					PrizeName:   prize.Name,
					PrizeType:   prize.Type,
					Position:    &position,
					Description: prize.Description,
				})
			}
		}
	}

	for _, prize := range category {
		rows = append(rows, allocateCategory(section.Name, prize, standings, &localTieGroups)...)
	}
	return rows
}

// allocateCategory awards one rating-restricted prize. Eligibility comes
// from the prize's rating band, never from parsing its display name. The
// prize goes to the best score among eligible players; a tie on that score
// splits a cash amount or duplicates a non-cash award.
func allocateCategory(sectionName string, prize *models.PrizeConfiguration, standings []models.StandingsEntry, localTieGroups *int) []models.PrizeDistribution {
	if prize.RatingBand == nil {
		return nil
	}
	var eligible []models.StandingsEntry
	for _, entry := range standings {
		if prize.RatingBand.Eligible(entry.Rating) {
			eligible = append(eligible, entry)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Score != eligible[j].Score {
			return eligible[i].Score > eligible[j].Score
		}
		if eligible[i].PlayerName != eligible[j].PlayerName {
			return eligible[i].PlayerName < eligible[j].PlayerName
		}
		return eligible[i].PlayerID < eligible[j].PlayerID
	})
	leaders := eligible[:1]
	for _, entry := range eligible[1:] {
		if entry.Score != eligible[0].Score {
			break
		}
		leaders = append(leaders, entry)
	}

	var rows []models.PrizeDistribution
	if prize.Type.IsCash() {
		share := prize.Amount.Decimal
		description := prize.Description
		var groupID *int
		if len(leaders) > 1 {
			share = share.Div(decimal.NewFromInt(int64(len(leaders)))).Truncate(2)
			*localTieGroups++
			id := *localTieGroups
			groupID = &id
			description = fmt.Sprintf("%d-way split of %s", len(leaders), prize.Name)
		}
		for _, leader := range leaders {
			amount := models.NewMoney(share)
			rows = append(rows, models.PrizeDistribution{
				PlayerID:       leader.PlayerID,
				PlayerName:     leader.PlayerName,
				Section:        sectionName,
				PrizeName:      prize.Name,
				PrizeType:      models.PrizeTypeCash,
				Amount:         &amount,
				RatingCategory: prize.RatingCategory,
				TieGroup:       groupID,
				Description:    description,
			})
		}
		return rows
	}

	for _, leader := range leaders {
		rows = append(rows, models.PrizeDistribution{
			PlayerID:       leader.PlayerID,
			PlayerName:     leader.PlayerName,
			Section:        sectionName,
			PrizeName:      prize.Name,
			PrizeType:      prize.Type,
			RatingCategory: prize.RatingCategory,
			Description:    prize.Description,
		})
	}
	return rows
}

// ReconcileCash enforces the rule that a player collects at most one cash
// prize per tournament. When a player holds several cash rows, only the
// preferred one survives; forfeited shares are not redistributed and the
// surviving members of a split keep their original amounts. Non-cash rows
// pass through untouched.
func ReconcileCash(rows []models.PrizeDistribution) []models.PrizeDistribution {
	best := make(map[string]int)
	for i := range rows {
		if !rows[i].PrizeType.IsCash() {
			continue
		}
		current, ok := best[rows[i].PlayerID]
		if !ok || cashPreferred(&rows[i], &rows[current]) {
			best[rows[i].PlayerID] = i
		}
	}

	out := make([]models.PrizeDistribution, 0, len(rows))
	for i := range rows {
		if rows[i].PrizeType.IsCash() && best[rows[i].PlayerID] != i {
			continue
		}
		out = append(out, rows[i])
	}
	return out
}

// cashPreferred reports whether cash row a beats cash row b for the same
// player. Larger amounts win; on equal amounts a position prize beats a
// rating prize, then the lower position, section name and prize name break
// the remaining ties so the choice is deterministic.
func cashPreferred(a, b *models.PrizeDistribution) bool {
	if !a.Amount.Equal(b.Amount.Decimal) {
		return a.Amount.GreaterThan(b.Amount.Decimal)
	}
	if (a.RatingCategory == "") != (b.RatingCategory == "") {
		return a.RatingCategory == ""
	}
	if a.Position != nil && b.Position != nil && *a.Position != *b.Position {
		return *a.Position < *b.Position
	}
	if a.Section != b.Section {
		return a.Section < b.Section
	}
	return a.PrizeName < b.PrizeName
}

// SortDistributions puts rows in report order: by section, position prizes
// before rating prizes, then position, prize name and player. Sorting before
// IDs and tie group numbers are assigned is what keeps recomputation output
// stable when sections were computed concurrently.
func SortDistributions(rows []models.PrizeDistribution) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if a.Section != b.Section {
			return a.Section < b.Section
		}
		if (a.Position != nil) != (b.Position != nil) {
			return a.Position != nil
		}
		if a.Position != nil && *a.Position != *b.Position {
			return *a.Position < *b.Position
		}
		if a.RatingCategory != b.RatingCategory {
			return a.RatingCategory < b.RatingCategory
		}
		if a.PrizeName != b.PrizeName {
			return a.PrizeName < b.PrizeName
		}
		if a.PlayerName != b.PlayerName {
			return a.PlayerName < b.PlayerName
		}
		return a.PlayerID < b.PlayerID
	})
}

// RenumberTieGroups rewrites section-local tie group numbers into a single
// sequence in row order. Rows must already be in final sorted order. Rows
// from the same section and local group keep a shared number.
func RenumberTieGroups(rows []models.PrizeDistribution) {
	assigned := make(map[string]int)
	next := 0
	for i := range rows {
		if rows[i].TieGroup == nil {
			continue
		}
		key := fmt.Sprintf("%s|%d", rows[i].Section, *rows[i].TieGroup)
		id, ok := assigned[key]
		if !ok {
			next++
			id = next
			assigned[key] = id
		}
		renumbered := id
		rows[i].TieGroup = &renumbered
	}
}

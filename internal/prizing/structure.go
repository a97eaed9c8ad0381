package prizing

import (
	"github.com/shopspring/decimal"

	"github.com/chughjug/ratings-sub000/internal/models"
	"github.com/chughjug/ratings-sub000/internal/utils"
)

// placeWeights are the basis-point shares of a section's cash fund for the
// top paid places. Only the first PaidPositions entries are used, with the
// live entries renormalized against their own total.
var placeWeights = []int64{3000, 2000, 1500, 1000, 800}

// maxTrophies is how many trophy places a generated structure includes
const maxTrophies = 3

// PaidPositions returns how many cash places a section pays: one place per
// eight entrants, rounded up, capped at five.
func PaidPositions(entrants int) int {
	if entrants <= 0 {
		return 0
	}
	paid := (entrants + 7) / 8
	if paid > len(placeWeights) {
		paid = len(placeWeights)
	}
	return paid
}

// GenerateStructure proposes a prize list for one section from its entrant
// count and cash fund. Cash amounts are whole cents and always sum exactly
// to the fund: each place takes the truncated weighted share and the
// sub-cent residue is added to first place. Trophies cover the top three
// places, fewer if the section is smaller than that.
func GenerateStructure(entrants int, fund models.Money) []models.PrizeConfiguration {
	var prizes []models.PrizeConfiguration

	paid := PaidPositions(entrants)
	if paid > 0 && fund.IsPositive() {
		weights := placeWeights[:paid]
		var totalWeight int64
		for _, w := range weights {
			totalWeight += w
		}

		amounts := make([]decimal.Decimal, paid)
		allocated := decimal.Zero
		for i, w := range weights {
			amounts[i] = fund.Mul(decimal.NewFromInt(w)).
				Div(decimal.NewFromInt(totalWeight)).
				Truncate(2)
			allocated = allocated.Add(amounts[i])
		}
		amounts[0] = amounts[0].Add(fund.Sub(allocated))

		for i, amt := range amounts {
			position := i + 1
			amount := models.NewMoney(amt)
			prizes = append(prizes, models.PrizeConfiguration{
				Name:     utils.FormatPlace(position),
				Type:     models.PrizeTypeCash,
				Position: &position,
				Amount:   &amount,
			})
		}
	}

	trophies := maxTrophies
	if entrants < trophies {
		trophies = entrants
	}
	for i := 0; i < trophies; i++ {
		position := i + 1
		prizes = append(prizes, models.PrizeConfiguration{
			Name:     utils.FormatPlace(position) + " Trophy",
			Type:     models.PrizeTypeTrophy,
			Position: &position,
		})
	}
	return prizes
}

// SplitFund divides a tournament-wide cash fund across count sections in
// whole cents. Every section gets the truncated equal share and the
// remainder goes to the first section, so the parts always sum to the fund.
func SplitFund(fund models.Money, count int) []models.Money {
	if count <= 0 {
		return nil
	}
	share := fund.Div(decimal.NewFromInt(int64(count))).Truncate(2)
	parts := make([]models.Money, count)
	allocated := decimal.Zero
	for i := range parts {
		parts[i] = models.NewMoney(share)
		allocated = allocated.Add(share)
	}
	parts[0] = models.NewMoney(share.Add(fund.Sub(allocated)))
	return parts
}

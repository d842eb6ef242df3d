package service

import (
	"github.com/shopspring/decimal"

	"swapskillz/internal/domain/entity"
)

// ComputeRating averages ratings to one decimal. No ratings yields {0, 0}.
func ComputeRating(ratings []int) entity.Rating {
	if len(ratings) == 0 {
		return entity.Rating{}
	}

	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}
	avg, _ := sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1).Float64()

	return entity.Rating{Average: avg, Count: len(ratings)}
}

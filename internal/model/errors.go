package model

import "errors"

var (
	// ErrNoFoodFound: neither the catalog nor the remote API recognized any
	// food in the text.
	ErrNoFoodFound = errors.New("no food found")

	// ErrNutritionUnavailable: the remote nutrition API was unreachable or
	// returned an unusable response.
	ErrNutritionUnavailable = errors.New("nutrition service unavailable")
)

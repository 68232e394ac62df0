package rates

// Store manages data regarding rates.
type Store interface {
	Rates() ([]Rate, error)
	Rate(symbol string) (Rate, error)
	UpsertRate(*Rate) error
}

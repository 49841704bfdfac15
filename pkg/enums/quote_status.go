package enums

// QuoteStatus tracks the back-office lifecycle of a quote request.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusContacted QuoteStatus = "contacted"
	QuoteStatusClosed    QuoteStatus = "closed"
)

func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusContacted, QuoteStatusClosed:
		return true
	}
	return false
}

func (s QuoteStatus) String() string {
	return string(s)
}

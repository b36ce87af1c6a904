package sheets

import "fmt"

// Column is a 0-based slot in the fixed row layout.
type Column int

// Letter renders the column in A1 notation.
func (c Column) Letter() string {
	letter := ""
	n := int(c)
	for {
		letter = string(rune('A'+n%26)) + letter
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return letter
}

// FirstDataRow is the first row holding an order record; the rows above it
// are sheet headers.
const FirstDataRow = 3

// DateLayout is the calendar-date format used everywhere in the spreadsheet.
const DateLayout = "02.01.2006"

// Schema maps every order record field to its column. The layout is fixed and
// positional: 17 slots, one field per slot.
type Schema struct {
	Handle         Column
	ArticleNumber  Column
	FullName       Column
	Status         Column
	BuyoutPrice    Column
	RequestDate    Column
	PaymentPrice   Column
	PaymentDetails Column
	SocialLink     Column
	AdDate         Column
	ReceivedDate   Column
	PaidDate       Column
	Size           Column
	FeedbackLink   Column
	FeedbackStatus Column
	CorrelationKey Column
	OrderNumber    Column

	// Width is the total number of columns a record occupies; ClearRow wipes
	// exactly this range.
	Width int
}

// Payments list layout: one row per date.
const (
	PaymentsDateColumn  Column = 0
	PaymentsTotalColumn Column = 1
)

// DefaultSchema returns the production column layout (A through Q).
func DefaultSchema() Schema {
	return Schema{
		Handle:         0,  // A
		ArticleNumber:  1,  // B
		FullName:       2,  // C
		Status:         3,  // D
		BuyoutPrice:    4,  // E
		RequestDate:    5,  // F
		PaymentPrice:   6,  // G
		PaymentDetails: 7,  // H
		SocialLink:     8,  // I
		AdDate:         9,  // J
		ReceivedDate:   10, // K
		PaidDate:       11, // L
		Size:           12, // M
		FeedbackLink:   13, // N
		FeedbackStatus: 14, // O
		CorrelationKey: 15, // P
		OrderNumber:    16, // Q
		Width:          17,
	}
}

func (s Schema) columns() map[string]Column {
	return map[string]Column{
		"handle":          s.Handle,
		"article_number":  s.ArticleNumber,
		"full_name":       s.FullName,
		"status":          s.Status,
		"buyout_price":    s.BuyoutPrice,
		"request_date":    s.RequestDate,
		"payment_price":   s.PaymentPrice,
		"payment_details": s.PaymentDetails,
		"social_link":     s.SocialLink,
		"ad_date":         s.AdDate,
		"received_date":   s.ReceivedDate,
		"paid_date":       s.PaidDate,
		"size":            s.Size,
		"feedback_link":   s.FeedbackLink,
		"feedback_status": s.FeedbackStatus,
		"correlation_key": s.CorrelationKey,
		"order_number":    s.OrderNumber,
	}
}

// Validate checks the layout once at startup: every field within the row
// width, no two fields sharing a column.
func (s Schema) Validate() error {
	if s.Width <= 0 {
		return fmt.Errorf("schema width must be positive, got %d", s.Width)
	}

	taken := make(map[Column]string, s.Width)
	for name, col := range s.columns() {
		if col < 0 || int(col) >= s.Width {
			return fmt.Errorf("column %s is out of range: %d not in [0, %d)", name, col, s.Width)
		}
		if other, ok := taken[col]; ok {
			return fmt.Errorf("columns %s and %s both map to %s", other, name, col.Letter())
		}
		taken[col] = name
	}
	return nil
}

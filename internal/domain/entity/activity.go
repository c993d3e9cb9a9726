package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityAction acción registrada en la actividad reciente.
type ActivityAction string

const (
	ActionCheckout   ActivityAction = "checkout"
	ActionRestock    ActivityAction = "restock"
	ActionTransfer   ActivityAction = "transfer"
	ActionDispense   ActivityAction = "dispense"
	ActionAdjustment ActivityAction = "adjustment"
	ActionRequest    ActivityAction = "request"
	ActionUpdate     ActivityAction = "update"
)

// Activity entrada de la actividad reciente del dashboard.
type Activity struct {
	ID         string
	Actor      string
	Action     ActivityAction
	Item       string
	Quantity   decimal.Decimal
	Unit       string
	Location   string
	Province   string
	Note       string
	OccurredAt time.Time
}

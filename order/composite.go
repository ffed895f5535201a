package order

import (
	"fmt"

	"github.com/rustyeddy/simbroker/internal/id"
)

// Bracket pairs an entry order with a take-profit and a stop-loss that
// activate only after the entry completes. The exit legs must exactly negate
// the entry size and trade the same asset.
type Bracket struct {
	bid        string
	entry      SingleOrder
	takeProfit SingleOrder
	stopLoss   SingleOrder
}

func NewBracket(entry, takeProfit, stopLoss SingleOrder) *Bracket {
	sameAsset("bracket", entry, takeProfit, stopLoss)
	if entry.Size() != -takeProfit.Size() || entry.Size() != -stopLoss.Size() {
		panic("order: bracket legs must negate the entry size")
	}
	return &Bracket{bid: id.New(), entry: entry, takeProfit: takeProfit, stopLoss: stopLoss}
}

func (o *Bracket) ID() string              { return o.bid }
func (o *Bracket) Entry() SingleOrder      { return o.entry }
func (o *Bracket) TakeProfit() SingleOrder { return o.takeProfit }
func (o *Bracket) StopLoss() SingleOrder   { return o.stopLoss }

// OCO is a one-cancels-other pair: whichever child fills first wins and the
// other is abandoned.
type OCO struct {
	oid    string
	first  SingleOrder
	second SingleOrder
}

func NewOCO(first, second SingleOrder) *OCO {
	sameAsset("oco", first, second)
	return &OCO{oid: id.New(), first: first, second: second}
}

func (o *OCO) ID() string          { return o.oid }
func (o *OCO) First() SingleOrder  { return o.first }
func (o *OCO) Second() SingleOrder { return o.second }

// OTO is a one-triggers-other pair: the secondary order only activates once
// the primary has completed.
type OTO struct {
	oid       string
	primary   SingleOrder
	secondary SingleOrder
}

func NewOTO(primary, secondary SingleOrder) *OTO {
	sameAsset("oto", primary, secondary)
	return &OTO{oid: id.New(), primary: primary, secondary: secondary}
}

func (o *OTO) ID() string             { return o.oid }
func (o *OTO) Primary() SingleOrder   { return o.primary }
func (o *OTO) Secondary() SingleOrder { return o.secondary }

// sameAsset enforces that composite children trade one asset, since the
// execution engine routes exactly one price observation per handler.
func sameAsset(kind string, orders ...SingleOrder) {
	asset := orders[0].Asset()
	for _, o := range orders[1:] {
		if o.Asset() != asset {
			panic(fmt.Sprintf("order: %s children must share one asset", kind))
		}
	}
}

// Update asks the broker to replace the parameters of a live order. The
// target must be a non-composite order that is still open.
type Update struct {
	uid    string
	target string
	update SingleOrder
}

func NewUpdate(targetID string, update SingleOrder) *Update {
	if targetID == "" {
		panic("order: update target id is empty")
	}
	return &Update{uid: id.New(), target: targetID, update: update}
}

func (o *Update) ID() string          { return o.uid }
func (o *Update) Target() string      { return o.target }
func (o *Update) Update() SingleOrder { return o.update }

// Cancel asks the broker to close a live order.
type Cancel struct {
	cid    string
	target string
}

func NewCancel(targetID string) *Cancel {
	if targetID == "" {
		panic("order: cancel target id is empty")
	}
	return &Cancel{cid: id.New(), target: targetID}
}

func (o *Cancel) ID() string     { return o.cid }
func (o *Cancel) Target() string { return o.target }

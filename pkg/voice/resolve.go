package voice

import (
	"math"

	"github.com/hazyhaar/pantry-voice/pkg/pantry"
)

// CandidateAction is the structured command the upstream extractor
// (speech recognizer or language model) produced from an utterance.
// Unit and Category are any-typed: extractors emit strings, numbers or
// nothing at all, and the normalizers absorb all of it.
type CandidateAction struct {
	Intent      string  `json:"intent,omitempty"`
	Action      string  `json:"action,omitempty"`
	ProductName string  `json:"product_name"`
	Amount      float64 `json:"amount"`
	Unit        any     `json:"unit,omitempty"`
	Category    any     `json:"category,omitempty"`
}

// ResolvedAction is the normalized form of a candidate action: canonical
// intent, the matched inventory item (nil when none), canonical unit and
// category.
type ResolvedAction struct {
	Intent   Intent       `json:"intent"`
	Item     *pantry.Item `json:"item,omitempty"`
	Unit     pantry.Unit  `json:"unit"`
	Category string       `json:"category"`
}

// Op is what the caller should do with the inventory.
type Op string

const (
	OpUpdate Op = "update" // set Item's quantity to NewQuantity
	OpCreate Op = "create" // insert NewItem
	OpReject Op = "reject" // do nothing; Reason says why
)

// Reject reasons.
const (
	ReasonInvalidCommand = "invalid_command" // no intent, empty name or bad amount
	ReasonNotFound       = "not_found"       // consume intent with no matching item
)

// Decision is the mutation the engine recommends. The engine itself
// never touches the inventory; applying the decision is the caller's
// job.
type Decision struct {
	Op          Op           `json:"op"`
	Reason      string       `json:"reason,omitempty"`
	Item        *pantry.Item `json:"item,omitempty"`         // target of an update
	NewQuantity float64      `json:"new_quantity,omitempty"` // quantity after an update
	NewItem     *pantry.Item `json:"new_item,omitempty"`     // proposed record for a create
}

// Resolver turns candidate actions into resolved actions and decisions
// using the given lexicon.
type Resolver struct {
	lex *Lexicon
}

// NewResolver builds a resolver over the given lexicon.
func NewResolver(lex *Lexicon) *Resolver {
	return &Resolver{lex: lex}
}

// Resolve normalizes a candidate action against the current inventory:
// intent, unit and category are classified independently, and the
// product name is fuzzy-matched against the item list.
func (r *Resolver) Resolve(items []pantry.Item, action CandidateAction) ResolvedAction {
	return ResolvedAction{
		Intent:   InferIntent(action),
		Item:     BestMatch(items, action.ProductName),
		Unit:     r.lex.NormalizeUnit(action.Unit),
		Category: r.lex.NormalizeCategory(action.Category),
	}
}

// Decide resolves a candidate action and derives the inventory mutation:
//
//   - unknown intent, empty product name or a non-positive amount
//     rejects the command;
//   - consume with no matching item rejects it as not found;
//   - add with no matching item proposes a new record (min quantity 1);
//   - a matched item gets its quantity adjusted, floored at zero.
func (r *Resolver) Decide(items []pantry.Item, action CandidateAction) (ResolvedAction, Decision) {
	resolved := r.Resolve(items, action)

	amount := action.Amount
	if resolved.Intent == IntentNone || action.ProductName == "" ||
		math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return resolved, Decision{Op: OpReject, Reason: ReasonInvalidCommand}
	}

	if resolved.Item == nil {
		if resolved.Intent == IntentConsume {
			return resolved, Decision{Op: OpReject, Reason: ReasonNotFound}
		}
		return resolved, Decision{Op: OpCreate, NewItem: &pantry.Item{
			Name:            action.ProductName,
			Category:        resolved.Category,
			CurrentQuantity: amount,
			MinQuantity:     1,
			Unit:            resolved.Unit,
		}}
	}

	newQty := resolved.Item.CurrentQuantity + amount
	if resolved.Intent == IntentConsume {
		newQty = math.Max(0, resolved.Item.CurrentQuantity-amount)
	}
	return resolved, Decision{Op: OpUpdate, Item: resolved.Item, NewQuantity: newQty}
}

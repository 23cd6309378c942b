package voice

import "strings"

// Intent is the canonical action of a voice command.
type Intent string

const (
	IntentConsume Intent = "consume"
	IntentAdd     Intent = "add"
	// IntentNone means the command could not be classified and must be
	// rejected by the caller.
	IntentNone Intent = ""
)

var consumeAliases = map[string]struct{}{
	"consume": {}, "consumir": {}, "consumi": {},
	"remove": {}, "retirar": {}, "usar": {}, "used": {},
}

var addAliases = map[string]struct{}{
	"add": {}, "adicionar": {}, "adicionei": {},
	"inserir": {}, "insert": {}, "comprar": {}, "bought": {},
}

// InferIntent maps a free-form intent word to a canonical Intent by
// case-insensitive exact match against the alias tables. The upstream
// extractor reports the word in either the intent or the action field;
// intent wins when both are set. Anything unrecognized is IntentNone.
func InferIntent(a CandidateAction) Intent {
	raw := a.Intent
	if raw == "" {
		raw = a.Action
	}
	raw = strings.ToLower(strings.TrimSpace(raw))

	if _, ok := consumeAliases[raw]; ok {
		return IntentConsume
	}
	if _, ok := addAliases[raw]; ok {
		return IntentAdd
	}
	return IntentNone
}

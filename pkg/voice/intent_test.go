package voice

import "testing"

func TestInferIntent(t *testing.T) {
	tests := []struct {
		name   string
		action CandidateAction
		want   Intent
	}{
		{"pt consume", CandidateAction{Intent: "consumir"}, IntentConsume},
		{"pt consume past", CandidateAction{Intent: "consumi"}, IntentConsume},
		{"en consume", CandidateAction{Intent: "consume"}, IntentConsume},
		{"remove", CandidateAction{Intent: "remove"}, IntentConsume},
		{"used", CandidateAction{Intent: "used"}, IntentConsume},
		{"pt add", CandidateAction{Intent: "adicionar"}, IntentAdd},
		{"en add", CandidateAction{Intent: "add"}, IntentAdd},
		{"bought", CandidateAction{Intent: "bought"}, IntentAdd},
		{"insert", CandidateAction{Intent: "insert"}, IntentAdd},
		{"uppercase", CandidateAction{Intent: "ADICIONAR"}, IntentAdd},
		{"padded", CandidateAction{Intent: "  consumir  "}, IntentConsume},
		{"action fallback", CandidateAction{Action: "comprar"}, IntentAdd},
		{"intent wins over action", CandidateAction{Intent: "usar", Action: "adicionar"}, IntentConsume},
		{"unknown", CandidateAction{Intent: "dance"}, IntentNone},
		{"empty", CandidateAction{}, IntentNone},
		// inflections outside the alias tables are not guessed
		{"unlisted inflection", CandidateAction{Intent: "adicionando"}, IntentNone},
	}
	for _, tt := range tests {
		if got := InferIntent(tt.action); got != tt.want {
			t.Errorf("%s: InferIntent(%+v) = %q, want %q", tt.name, tt.action, got, tt.want)
		}
	}
}

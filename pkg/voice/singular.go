package voice

import "strings"

// SingularizeToken collapses a Portuguese/English plural token to a
// pseudo-singular form with an ordered suffix cascade. First rule wins;
// the length guards keep short words ("os", "mes") intact. This is a
// pragmatic heuristic, not a stemmer: it over- and under-stems rare
// words, which the fuzzy matcher tolerates.
func SingularizeToken(token string) string {
	switch {
	case strings.HasSuffix(token, "zes") && len(token) > 4:
		return token[:len(token)-3] + "z" // arrozes -> arroz
	case strings.HasSuffix(token, "tes") && len(token) > 4:
		return token[:len(token)-1] // tomates -> tomate
	case strings.HasSuffix(token, "es") && len(token) > 4:
		return token[:len(token)-2]
	case strings.HasSuffix(token, "s") && len(token) > 3:
		return token[:len(token)-1]
	}
	return token
}

// protectedWords pass through SingularizeTranscript untouched: command
// verbs, articles, prepositions, politeness fillers and number words in
// both languages. Stripping their trailing "s" would corrupt the
// command grammar ("menos" -> "meno", "duas" -> "dua") before the
// upstream extractor sees it.
var protectedWords = map[string]struct{}{}

func init() {
	words := []string{
		// command verbs (pt)
		"adicionar", "adicione", "adiciona", "adicionei",
		"consumir", "consuma", "consome", "consumi",
		"remover", "remove", "retirar", "retire",
		"usar", "use", "comprar", "compre", "comprei",
		// command verbs (en)
		"add", "consume", "used", "buy", "bought", "insert",
		// articles, pronouns, prepositions, connectives
		"i", "you", "me", "my", "o", "a", "os", "as",
		"um", "uma", "uns", "umas",
		"de", "do", "da", "dos", "das",
		"no", "na", "nos", "nas",
		"para", "por", "com", "sem", "e", "ou",
		"mais", "menos", "que", "what",
		"please", "porfavor", "favor",
		// number words
		"um", "uma", "dois", "duas", "tres", "quatro", "cinco",
		"seis", "sete", "oito", "nove", "dez", "onze", "doze",
		"one", "two", "three", "four", "five",
		"six", "seven", "eight", "nine", "ten",
	}
	for _, w := range words {
		protectedWords[w] = struct{}{}
	}
}

// SingularizeTranscript normalizes a whole utterance word by word and
// singularizes product nouns while leaving protected function words and
// digits alone: "Adicionar 2 bananas e 3 tomates, por favor" becomes
// "adicionar 2 banana e 3 tomate por favor". Used before the candidate
// action is extracted upstream.
func SingularizeTranscript(transcript string) string {
	if strings.TrimSpace(transcript) == "" {
		return ""
	}

	var out []string
	for _, word := range strings.Fields(transcript) {
		normalized := NormalizeText(word)
		if normalized == "" {
			continue
		}
		if _, ok := protectedWords[normalized]; !ok {
			normalized = SingularizeToken(normalized)
		}
		out = append(out, normalized)
	}
	return strings.Join(out, " ")
}
